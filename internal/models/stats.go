package models

// Stats is a tally of declarations per emotion. It is never persisted.
type Stats struct {
	Total    int `json:"total"`
	Happy    int `json:"happy"`
	Sad      int `json:"sad"`
	Neutral  int `json:"neutral"`
	Stressed int `json:"stressed"`
	Excited  int `json:"excited"`
	Tired    int `json:"tired"`
}

func (s *Stats) Add(e Emotion) {
	s.Total++
	switch e {
	case EmotionHappy:
		s.Happy++
	case EmotionSad:
		s.Sad++
	case EmotionNeutral:
		s.Neutral++
	case EmotionStressed:
		s.Stressed++
	case EmotionExcited:
		s.Excited++
	case EmotionTired:
		s.Tired++
	}
}

func (s Stats) Count(e Emotion) int {
	switch e {
	case EmotionHappy:
		return s.Happy
	case EmotionSad:
		return s.Sad
	case EmotionNeutral:
		return s.Neutral
	case EmotionStressed:
		return s.Stressed
	case EmotionExcited:
		return s.Excited
	case EmotionTired:
		return s.Tired
	}
	return 0
}

func (s Stats) Positive() int {
	return s.Happy + s.Excited
}

func (s Stats) Negative() int {
	return s.Sad + s.Stressed + s.Tired
}

// Share returns the percentage of declarations carrying e, 0 for an empty tally.
func (s Stats) Share(e Emotion) float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Count(e)) / float64(s.Total) * 100
}

// DailyStats is the tally of a single calendar day.
type DailyStats struct {
	Date  string `json:"date"`
	Stats Stats  `json:"stats"`
}

type DayScore struct {
	Date        string  `json:"date"`
	MoraleScore float64 `json:"moraleScore"`
	Stats       Stats   `json:"stats"`
}

type BestWorst struct {
	Best  DayScore `json:"best"`
	Worst DayScore `json:"worst"`
}

// Group is the input of a rollup: the subjects it covers and their records.
type Group struct {
	Members []string
	Records []EmotionRecord
}

type Rollup struct {
	Stats             Stats   `json:"stats"`
	MoraleScore       float64 `json:"moraleScore"`
	ParticipationRate float64 `json:"participationRate"`
	TotalDeclarations int     `json:"totalDeclarations"`
	ActiveMembers     int     `json:"activeMembers"`
	TotalMembers      int     `json:"totalMembers"`
}
