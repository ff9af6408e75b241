package aggregation

import (
	"testing"

	"emotrack/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(subject, date string, period models.Period, e models.Emotion) models.EmotionRecord {
	return models.EmotionRecord{
		ID:        models.RecordID(subject, date, period),
		SubjectID: subject,
		Date:      date,
		Period:    period,
		Emotion:   e,
	}
}

func repeat(e models.Emotion, n int) []models.EmotionRecord {
	out := make([]models.EmotionRecord, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, models.EmotionRecord{SubjectID: "u1", Date: "2024-01-01", Emotion: e})
	}
	return out
}

func TestComputeStats_Empty(t *testing.T) {
	assert.Equal(t, models.Stats{}, ComputeStats(nil))
}

func TestComputeStats_TotalMatchesSum(t *testing.T) {
	records := []models.EmotionRecord{
		rec("u1", "2024-01-01", models.PeriodMorning, models.EmotionHappy),
		rec("u1", "2024-01-01", models.PeriodEvening, models.EmotionSad),
		rec("u2", "2024-01-01", models.PeriodMorning, models.EmotionTired),
		rec("u2", "2024-01-02", models.PeriodMorning, models.EmotionTired),
		rec("u3", "2024-01-02", models.PeriodMorning, models.EmotionNeutral),
	}
	stats := ComputeStats(records)

	assert.Equal(t, len(records), stats.Total)
	sum := 0
	for _, e := range models.Emotions {
		sum += stats.Count(e)
	}
	assert.Equal(t, stats.Total, sum)
	assert.Equal(t, 2, stats.Tired)
}

func TestMoraleScore(t *testing.T) {
	assert.Equal(t, 0.0, MoraleScore(models.Stats{}))
	assert.Equal(t, 100.0, MoraleScore(ComputeStats(repeat(models.EmotionHappy, 4))))
	assert.Equal(t, -100.0, MoraleScore(ComputeStats(repeat(models.EmotionSad, 3))))

	mixed := append(repeat(models.EmotionExcited, 3), repeat(models.EmotionStressed, 1)...)
	assert.Equal(t, 50.0, MoraleScore(ComputeStats(mixed)))

	neutral := repeat(models.EmotionNeutral, 2)
	assert.Equal(t, 0.0, MoraleScore(ComputeStats(neutral)))
}

func TestParticipationRate(t *testing.T) {
	assert.Equal(t, 0.0, ParticipationRate(0, 0))
	assert.Equal(t, 100.0, ParticipationRate(7, 7))
	assert.Equal(t, 50.0, ParticipationRate(2, 4))
}

func TestDeclarationRate(t *testing.T) {
	assert.Equal(t, 0.0, DeclarationRate(3, 0))
	assert.Equal(t, 50.0, DeclarationRate(7, 7))
	assert.Equal(t, 100.0, DeclarationRate(20, 7))
}

func TestDominantEmotion_TieBreak(t *testing.T) {
	stats := models.Stats{Total: 7, Happy: 3, Excited: 3, Sad: 1}
	e, ok := DominantEmotion(stats)
	require.True(t, ok)
	assert.Equal(t, models.EmotionHappy, e)
}

func TestDominantEmotion_PriorityBeyondHappy(t *testing.T) {
	stats := models.Stats{Total: 4, Sad: 2, Tired: 2}
	e, ok := DominantEmotion(stats)
	require.True(t, ok)
	assert.Equal(t, models.EmotionTired, e)
}

func TestDominantEmotion_Empty(t *testing.T) {
	_, ok := DominantEmotion(models.Stats{})
	assert.False(t, ok)
}

func TestTrend(t *testing.T) {
	recent := append(repeat(models.EmotionHappy, 3), repeat(models.EmotionSad, 1)...)
	prior := append(repeat(models.EmotionHappy, 1), repeat(models.EmotionSad, 3)...)
	assert.Equal(t, 50.0, Trend(recent, prior))
	assert.Equal(t, 75.0, Trend(recent, nil))
	assert.Equal(t, 0.0, Trend(nil, nil))
}

func TestSplitTrend(t *testing.T) {
	records := repeat(models.EmotionHappy, 10)
	recent, prior := SplitTrend(records, 7)
	assert.Len(t, recent, 7)
	assert.Len(t, prior, 3)

	recent, prior = SplitTrend(records[:4], 7)
	assert.Len(t, recent, 4)
	assert.Empty(t, prior)
}

func TestDailyBreakdown_AscendingDates(t *testing.T) {
	records := []models.EmotionRecord{
		rec("u1", "2024-01-03", models.PeriodMorning, models.EmotionHappy),
		rec("u1", "2024-01-01", models.PeriodMorning, models.EmotionSad),
		rec("u2", "2024-01-03", models.PeriodMorning, models.EmotionSad),
		rec("u1", "2024-01-02", models.PeriodEvening, models.EmotionNeutral),
	}
	daily := DailyBreakdown(records)

	require.Len(t, daily, 3)
	assert.Equal(t, "2024-01-01", daily[0].Date)
	assert.Equal(t, "2024-01-02", daily[1].Date)
	assert.Equal(t, "2024-01-03", daily[2].Date)
	assert.Equal(t, 2, daily[2].Stats.Total)
	assert.Equal(t, 1, daily[2].Stats.Happy)
}

func TestBestWorstDay(t *testing.T) {
	daily := []models.DailyStats{
		{Date: "2024-01-01", Stats: models.Stats{Total: 4, Happy: 3, Sad: 1}},
		{Date: "2024-01-02", Stats: models.Stats{Total: 10, Happy: 4, Sad: 3, Tired: 2, Neutral: 1}},
	}
	bw, ok := BestWorstDay(daily)
	require.True(t, ok)
	assert.Equal(t, "2024-01-01", bw.Best.Date)
	assert.Equal(t, 50.0, bw.Best.MoraleScore)
	assert.Equal(t, "2024-01-02", bw.Worst.Date)
	assert.InDelta(t, -10.0, bw.Worst.MoraleScore, 1e-9)
}

func TestBestWorstDay_TiesKeepFirst(t *testing.T) {
	daily := []models.DailyStats{
		{Date: "2024-01-01", Stats: models.Stats{Total: 1, Neutral: 1}},
		{Date: "2024-01-02", Stats: models.Stats{Total: 2, Neutral: 2}},
	}
	bw, ok := BestWorstDay(daily)
	require.True(t, ok)
	assert.Equal(t, "2024-01-01", bw.Best.Date)
	assert.Equal(t, "2024-01-01", bw.Worst.Date)
}

func TestBestWorstDay_Empty(t *testing.T) {
	_, ok := BestWorstDay(nil)
	assert.False(t, ok)
}

func TestAverageDailyDeclarations(t *testing.T) {
	assert.Equal(t, 0.0, AverageDailyDeclarations(nil))
	daily := []models.DailyStats{
		{Date: "2024-01-01", Stats: models.Stats{Total: 3}},
		{Date: "2024-01-02", Stats: models.Stats{Total: 5}},
	}
	assert.Equal(t, 4.0, AverageDailyDeclarations(daily))
}

func TestGroupRollup_SameFunctionAtEveryLevel(t *testing.T) {
	groups := map[string]models.Group{
		"team-5": {
			Members: []string{"1", "2"},
			Records: []models.EmotionRecord{
				rec("1", "2024-01-01", models.PeriodMorning, models.EmotionHappy),
				rec("1", "2024-01-01", models.PeriodEvening, models.EmotionExcited),
			},
		},
		"Marketing": {
			Members: []string{"1", "2", "5", "9"},
			Records: []models.EmotionRecord{
				rec("1", "2024-01-01", models.PeriodMorning, models.EmotionSad),
				rec("5", "2024-01-01", models.PeriodMorning, models.EmotionTired),
				rec("9", "2024-01-01", models.PeriodMorning, models.EmotionNeutral),
			},
		},
		"empty": {},
	}
	rollups := GroupRollup(groups)
	require.Len(t, rollups, 3)

	team := rollups["team-5"]
	assert.Equal(t, 100.0, team.MoraleScore)
	assert.Equal(t, 50.0, team.ParticipationRate)
	assert.Equal(t, 2, team.TotalDeclarations)
	assert.Equal(t, 1, team.ActiveMembers)

	dept := rollups["Marketing"]
	assert.InDelta(t, -66.666, dept.MoraleScore, 0.01)
	assert.Equal(t, 75.0, dept.ParticipationRate)

	assert.Equal(t, models.Rollup{}, rollups["empty"])
}

func TestActiveSubjects_IgnoresOutsiders(t *testing.T) {
	records := []models.EmotionRecord{
		rec("1", "2024-01-01", models.PeriodMorning, models.EmotionHappy),
		rec("42", "2024-01-01", models.PeriodMorning, models.EmotionHappy),
	}
	assert.Equal(t, 1, ActiveSubjects(records, []string{"1", "2"}))
}

func TestMoraleLabel(t *testing.T) {
	assert.Equal(t, LabelExcellent, MoraleLabel(20))
	assert.Equal(t, LabelCorrect, MoraleLabel(0))
	assert.Equal(t, LabelCorrect, MoraleLabel(19.9))
	assert.Equal(t, LabelCritical, MoraleLabel(-0.1))
}

func TestMeansAndTops(t *testing.T) {
	rollups := map[string]models.Rollup{
		"IT":        {MoraleScore: 40, ParticipationRate: 50},
		"Marketing": {MoraleScore: -20, ParticipationRate: 100},
		"Finance":   {MoraleScore: 40, ParticipationRate: 30},
	}
	assert.InDelta(t, 20.0, MeanMorale(rollups), 1e-9)
	assert.InDelta(t, 60.0, MeanParticipation(rollups), 1e-9)

	top, ok := TopByMorale(rollups)
	require.True(t, ok)
	assert.Equal(t, "Finance", top)

	best, ok := TopByParticipation(rollups)
	require.True(t, ok)
	assert.Equal(t, "Marketing", best)

	_, ok = TopByMorale(nil)
	assert.False(t, ok)
	assert.Equal(t, 0.0, MeanMorale(nil))
}

func TestStatsShare(t *testing.T) {
	stats := models.Stats{Total: 4, Happy: 1, Sad: 3}
	assert.Equal(t, 25.0, stats.Share(models.EmotionHappy))
	assert.Equal(t, 0.0, models.Stats{}.Share(models.EmotionHappy))
}
