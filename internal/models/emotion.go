package models

import (
	"time"
)

type Emotion string

const (
	EmotionHappy    Emotion = "happy"
	EmotionSad      Emotion = "sad"
	EmotionNeutral  Emotion = "neutral"
	EmotionStressed Emotion = "stressed"
	EmotionExcited  Emotion = "excited"
	EmotionTired    Emotion = "tired"
)

// Emotions lists every emotion in dominance priority order.
var Emotions = []Emotion{
	EmotionHappy,
	EmotionExcited,
	EmotionNeutral,
	EmotionStressed,
	EmotionTired,
	EmotionSad,
}

func (e Emotion) Valid() bool {
	switch e {
	case EmotionHappy, EmotionSad, EmotionNeutral, EmotionStressed, EmotionExcited, EmotionTired:
		return true
	}
	return false
}

func (e Emotion) IsPositive() bool {
	return e == EmotionHappy || e == EmotionExcited
}

func (e Emotion) IsNegative() bool {
	return e == EmotionSad || e == EmotionStressed || e == EmotionTired
}

type Period string

const (
	PeriodMorning Period = "morning"
	PeriodEvening Period = "evening"
)

func (p Period) Valid() bool {
	return p == PeriodMorning || p == PeriodEvening
}

// DateLayout is the calendar-day format used for EmotionRecord.Date.
// Dates in this layout sort lexicographically in chronological order.
const DateLayout = "2006-01-02"

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

type EmotionRecord struct {
	ID         string    `json:"id"`
	SubjectID  string    `json:"subjectId"`
	Date       string    `json:"date"`
	Period     Period    `json:"period"`
	Emotion    Emotion   `json:"emotion"`
	Comment    string    `json:"comment,omitempty"`
	RecordedAt time.Time `json:"recordedAt"`
}

// RecordID derives the identity of a declaration. Two declarations for the
// same subject, day and period share an id, so the second replaces the first.
func RecordID(subjectID, date string, period Period) string {
	return subjectID + "-" + date + "-" + string(period)
}

type TodayRecords struct {
	Morning *EmotionRecord `json:"morning"`
	Evening *EmotionRecord `json:"evening"`
}
