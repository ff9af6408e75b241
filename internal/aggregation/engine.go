// Package aggregation holds the pure functions every dashboard view is built
// from. Nothing here reads storage or mutates its input; callers pass the
// records and subject sets they have already resolved.
package aggregation

import (
	"sort"

	"emotrack/internal/models"
)

const (
	moraleExcellent = 20.0
	moraleCorrect   = 0.0
)

const (
	LabelExcellent = "excellent"
	LabelCorrect   = "correct"
	LabelCritical  = "critical"
)

func ComputeStats(records []models.EmotionRecord) models.Stats {
	var stats models.Stats
	for i := range records {
		stats.Add(records[i].Emotion)
	}
	return stats
}

// MoraleScore is the net positivity percentage of a tally, in [-100, 100].
func MoraleScore(stats models.Stats) float64 {
	if stats.Total == 0 {
		return 0
	}
	return float64(stats.Positive()-stats.Negative()) / float64(stats.Total) * 100
}

func ParticipationRate(active, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(active) / float64(total) * 100
}

// DeclarationRate is the share of the 2*windowDays possible declarations a
// single subject made, clamped to 100.
func DeclarationRate(declarations, windowDays int) float64 {
	if windowDays <= 0 {
		return 0
	}
	rate := float64(declarations) / float64(windowDays*2) * 100
	if rate > 100 {
		return 100
	}
	return rate
}

// DominantEmotion returns the most declared emotion. Ties go to the earliest
// entry of models.Emotions.
func DominantEmotion(stats models.Stats) (models.Emotion, bool) {
	if stats.Total == 0 {
		return "", false
	}
	var (
		dominant models.Emotion
		best     int
	)
	for _, e := range models.Emotions {
		if c := stats.Count(e); c > best {
			best = c
			dominant = e
		}
	}
	return dominant, best > 0
}

func PositivityRate(records []models.EmotionRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	positive := 0
	for i := range records {
		if records[i].Emotion.IsPositive() {
			positive++
		}
	}
	return float64(positive) / float64(len(records)) * 100
}

// Trend is the positivity delta between two record sets, typically the latest
// N records against the N before them.
func Trend(recent, prior []models.EmotionRecord) float64 {
	return PositivityRate(recent) - PositivityRate(prior)
}

// SplitTrend cuts a newest-first list into the latest n records and the n
// before them.
func SplitTrend(newestFirst []models.EmotionRecord, n int) (recent, prior []models.EmotionRecord) {
	if n <= 0 {
		return nil, nil
	}
	end := min(n, len(newestFirst))
	recent = newestFirst[:end]
	priorEnd := min(2*n, len(newestFirst))
	prior = newestFirst[end:priorEnd]
	return recent, prior
}

// DailyBreakdown groups records per calendar day, ascending.
func DailyBreakdown(records []models.EmotionRecord) []models.DailyStats {
	byDate := make(map[string]*models.Stats)
	for i := range records {
		s, ok := byDate[records[i].Date]
		if !ok {
			s = &models.Stats{}
			byDate[records[i].Date] = s
		}
		s.Add(records[i].Emotion)
	}

	days := make([]models.DailyStats, 0, len(byDate))
	for date, s := range byDate {
		days = append(days, models.DailyStats{Date: date, Stats: *s})
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date < days[j].Date
	})
	return days
}

// BestWorstDay scores each day by morale. The first day reaching the extreme
// wins on ties. The bool is false for an empty breakdown.
func BestWorstDay(daily []models.DailyStats) (models.BestWorst, bool) {
	if len(daily) == 0 {
		return models.BestWorst{}, false
	}
	first := dayScore(daily[0])
	result := models.BestWorst{Best: first, Worst: first}
	for _, d := range daily[1:] {
		score := dayScore(d)
		if score.MoraleScore > result.Best.MoraleScore {
			result.Best = score
		}
		if score.MoraleScore < result.Worst.MoraleScore {
			result.Worst = score
		}
	}
	return result, true
}

func dayScore(d models.DailyStats) models.DayScore {
	return models.DayScore{Date: d.Date, MoraleScore: MoraleScore(d.Stats), Stats: d.Stats}
}

func AverageDailyDeclarations(daily []models.DailyStats) float64 {
	if len(daily) == 0 {
		return 0
	}
	total := 0
	for _, d := range daily {
		total += d.Stats.Total
	}
	return float64(total) / float64(len(daily))
}

// ActiveSubjects counts the members that have at least one record in records.
func ActiveSubjects(records []models.EmotionRecord, members []string) int {
	seen := make(map[string]struct{}, len(records))
	for i := range records {
		seen[records[i].SubjectID] = struct{}{}
	}
	active := 0
	for _, id := range members {
		if _, ok := seen[id]; ok {
			active++
		}
	}
	return active
}

func ComputeRollup(group models.Group) models.Rollup {
	stats := ComputeStats(group.Records)
	active := ActiveSubjects(group.Records, group.Members)
	return models.Rollup{
		Stats:             stats,
		MoraleScore:       MoraleScore(stats),
		ParticipationRate: ParticipationRate(active, len(group.Members)),
		TotalDeclarations: stats.Total,
		ActiveMembers:     active,
		TotalMembers:      len(group.Members),
	}
}

// GroupRollup applies ComputeRollup to every group. It is the same function
// for teams, departments and pole departments.
func GroupRollup(groups map[string]models.Group) map[string]models.Rollup {
	rollups := make(map[string]models.Rollup, len(groups))
	for id, g := range groups {
		rollups[id] = ComputeRollup(g)
	}
	return rollups
}

func MoraleLabel(score float64) string {
	switch {
	case score >= moraleExcellent:
		return LabelExcellent
	case score >= moraleCorrect:
		return LabelCorrect
	default:
		return LabelCritical
	}
}

func MeanMorale(rollups map[string]models.Rollup) float64 {
	if len(rollups) == 0 {
		return 0
	}
	sum := 0.0
	for _, r := range rollups {
		sum += r.MoraleScore
	}
	return sum / float64(len(rollups))
}

func MeanParticipation(rollups map[string]models.Rollup) float64 {
	if len(rollups) == 0 {
		return 0
	}
	sum := 0.0
	for _, r := range rollups {
		sum += r.ParticipationRate
	}
	return sum / float64(len(rollups))
}

func TopByMorale(rollups map[string]models.Rollup) (string, bool) {
	return topBy(rollups, func(r models.Rollup) float64 { return r.MoraleScore })
}

func TopByParticipation(rollups map[string]models.Rollup) (string, bool) {
	return topBy(rollups, func(r models.Rollup) float64 { return r.ParticipationRate })
}

// topBy walks group ids in ascending order so ties are deterministic.
func topBy(rollups map[string]models.Rollup, metric func(models.Rollup) float64) (string, bool) {
	ids := SortedKeys(rollups)
	if len(ids) == 0 {
		return "", false
	}
	best := ids[0]
	for _, id := range ids[1:] {
		if metric(rollups[id]) > metric(rollups[best]) {
			best = id
		}
	}
	return best, true
}

func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
