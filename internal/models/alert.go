package models

type AlertKind string

const (
	AlertConsecutiveNegative AlertKind = "consecutive_negative"
	AlertLowTeamMorale       AlertKind = "low_team_morale"
)

// Alert is a derived signal. Scope is a subject id for consecutive_negative
// alerts and a group id (manager or department) for low_team_morale alerts.
type Alert struct {
	ID       string    `json:"id"`
	Scope    string    `json:"scope"`
	Kind     AlertKind `json:"kind"`
	Message  string    `json:"message"`
	Date     string    `json:"date"`
	Resolved bool      `json:"resolved"`
}
