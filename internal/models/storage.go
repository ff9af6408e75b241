package models

// StorageVersion is written into every snapshot. Version 1 is the bare JSON
// array of records produced by the browser front end.
const StorageVersion = 2

// Storage is the single persisted blob.
type Storage struct {
	Version        int             `json:"version"`
	Records        []EmotionRecord `json:"records"`
	ResolvedAlerts []string        `json:"resolved_alerts"`
}
