package alerts

import (
	"fmt"
	"time"

	"emotrack/internal/aggregation"
	"emotrack/internal/models"

	"github.com/google/uuid"
)

// alertNamespace seeds the name-based ids so that the same condition on the
// same day always yields the same alert id.
var alertNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("emotrack/alerts"))

type Level string

const (
	LevelTeam       Level = "team"
	LevelDepartment Level = "department"
)

type Thresholds struct {
	MoraleFloor        float64
	ParticipationFloor float64
}

// NegativeRule flags a subject with at least Threshold negative records in
// the last WindowDays days.
type NegativeRule struct {
	Threshold  int
	WindowDays int
}

func DefaultNegativeRule() NegativeRule {
	return NegativeRule{Threshold: 2, WindowDays: 7}
}

func DefaultTeamThresholds() Thresholds {
	return Thresholds{MoraleFloor: -20, ParticipationFloor: 50}
}

func DefaultDepartmentThresholds() Thresholds {
	return Thresholds{MoraleFloor: -15, ParticipationFloor: 60}
}

func EvaluateConsecutiveNegative(records []models.EmotionRecord, rule NegativeRule, asOf time.Time) bool {
	if rule.Threshold <= 0 {
		return false
	}
	cutoff := models.FormatDate(asOf.AddDate(0, 0, -rule.WindowDays))
	today := models.FormatDate(asOf)
	negative := 0
	for i := range records {
		if records[i].Date < cutoff || records[i].Date > today || !records[i].Emotion.IsNegative() {
			continue
		}
		negative++
		if negative >= rule.Threshold {
			return true
		}
	}
	return false
}

func EvaluateLowMorale(moraleScore, floor float64) bool {
	return moraleScore < floor
}

func EvaluateLowParticipation(participationRate, floor float64) bool {
	return participationRate < floor
}

// BuildAlerts emits one low_team_morale alert per group failing either floor,
// in ascending group id order.
func BuildAlerts(level Level, rollups map[string]models.Rollup, th Thresholds, date string) []models.Alert {
	result := make([]models.Alert, 0)
	for _, id := range aggregation.SortedKeys(rollups) {
		r := rollups[id]
		lowMorale := EvaluateLowMorale(r.MoraleScore, th.MoraleFloor)
		lowParticipation := EvaluateLowParticipation(r.ParticipationRate, th.ParticipationFloor)
		if !lowMorale && !lowParticipation {
			continue
		}
		result = append(result, newAlert(id, models.AlertLowTeamMorale, groupMessage(level, id, r, lowMorale, lowParticipation), date))
	}
	return result
}

// BuildSubjectAlerts emits one consecutive_negative alert per flagged subject.
func BuildSubjectAlerts(bySubject map[string][]models.EmotionRecord, rule NegativeRule, asOf time.Time) []models.Alert {
	date := models.FormatDate(asOf)
	result := make([]models.Alert, 0)
	for _, id := range aggregation.SortedKeys(bySubject) {
		if !EvaluateConsecutiveNegative(bySubject[id], rule, asOf) {
			continue
		}
		msg := fmt.Sprintf("Subject %s declared at least %d negative emotions in the last %d days", id, rule.Threshold, rule.WindowDays)
		result = append(result, newAlert(id, models.AlertConsecutiveNegative, msg, date))
	}
	return result
}

// AlertID is stable for a (scope, kind, date) triple.
func AlertID(scope string, kind models.AlertKind, date string) string {
	return uuid.NewSHA1(alertNamespace, []byte(scope+"|"+string(kind)+"|"+date)).String()
}

func newAlert(scope string, kind models.AlertKind, message, date string) models.Alert {
	return models.Alert{
		ID:      AlertID(scope, kind, date),
		Scope:   scope,
		Kind:    kind,
		Message: message,
		Date:    date,
	}
}

func groupMessage(level Level, id string, r models.Rollup, lowMorale, lowParticipation bool) string {
	switch {
	case lowMorale && lowParticipation:
		return fmt.Sprintf("%s %s needs attention: morale %.0f and participation %.0f%%", level, id, r.MoraleScore, r.ParticipationRate)
	case lowMorale:
		return fmt.Sprintf("%s %s needs attention: morale %.0f", level, id, r.MoraleScore)
	default:
		return fmt.Sprintf("%s %s needs attention: participation %.0f%%", level, id, r.ParticipationRate)
	}
}

// GroupBySubject partitions records per subject id.
func GroupBySubject(records []models.EmotionRecord) map[string][]models.EmotionRecord {
	out := make(map[string][]models.EmotionRecord)
	for i := range records {
		out[records[i].SubjectID] = append(out[records[i].SubjectID], records[i])
	}
	return out
}

// ApplyResolved marks alerts whose id is in resolved.
func ApplyResolved(list []models.Alert, resolved map[string]struct{}) []models.Alert {
	for i := range list {
		if _, ok := resolved[list[i].ID]; ok {
			list[i].Resolved = true
		}
	}
	return list
}
