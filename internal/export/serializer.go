package export

import (
	"fmt"
	"strings"
	"time"

	"emotrack/internal/models"

	json "github.com/goccy/go-json"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

const csvHeader = "Date,Utilisateur,Période,Émotion,Commentaire"

type Export struct {
	Data        []byte
	Filename    string
	ContentType string
}

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatCSV, "":
		return FormatCSV, nil
	case FormatJSON:
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unsupported export format %q", s)
}

// Serialize renders records in store order. The filename carries today's date.
func Serialize(records []models.EmotionRecord, format Format, today time.Time) (*Export, error) {
	filename := fmt.Sprintf("emotions-%s.%s", models.FormatDate(today), format)
	switch format {
	case FormatCSV:
		return &Export{Data: []byte(ToCSV(records)), Filename: filename, ContentType: "text/csv"}, nil
	case FormatJSON:
		data, err := ToJSON(records)
		if err != nil {
			return nil, err
		}
		return &Export{Data: data, Filename: filename, ContentType: "application/json"}, nil
	}
	return nil, fmt.Errorf("unsupported export format %q", format)
}

// ToCSV writes one line per record with the comment always quoted. Lines are
// joined with '\n' and there is no trailing newline.
func ToCSV(records []models.EmotionRecord) string {
	var b strings.Builder
	b.WriteString(csvHeader)
	for i := range records {
		r := &records[i]
		b.WriteByte('\n')
		b.WriteString(r.Date)
		b.WriteByte(',')
		b.WriteString(r.SubjectID)
		b.WriteByte(',')
		b.WriteString(string(r.Period))
		b.WriteByte(',')
		b.WriteString(string(r.Emotion))
		b.WriteString(`,"`)
		b.WriteString(strings.ReplaceAll(r.Comment, `"`, `""`))
		b.WriteByte('"')
	}
	return b.String()
}

func ToJSON(records []models.EmotionRecord) ([]byte, error) {
	if records == nil {
		records = []models.EmotionRecord{}
	}
	return json.MarshalIndent(records, "", "  ")
}
