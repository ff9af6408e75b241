package models

import (
	"strings"
	"time"

	"github.com/gookit/validate"
)

const MaxCommentLength = 500

// Declaration is an emotion declaration as submitted by a subject, before it
// becomes an EmotionRecord. Validation happens here; the store trusts its input.
type Declaration struct {
	SubjectID string `json:"subjectId" validate:"required"`
	Date      string `json:"date" validate:"required|isoDate"`
	Period    string `json:"period" validate:"required|in:morning,evening"`
	Emotion   string `json:"emotion" validate:"required|in:happy,sad,neutral,stressed,excited,tired"`
	Comment   string `json:"comment" validate:"maxLen:500"`
}

// IsoDate is used by the isoDate rule.
func (d Declaration) IsoDate(val string) bool {
	_, err := time.Parse(DateLayout, val)
	return err == nil
}

func (d *Declaration) Validate() error {
	d.SubjectID = strings.TrimSpace(d.SubjectID)
	d.Comment = strings.TrimSpace(d.Comment)

	v := validate.Struct(d)
	if !v.Validate() {
		return v.Errors
	}
	return nil
}

// ValidateAt validates the declaration and rejects days after now's date.
func (d *Declaration) ValidateAt(now time.Time) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if d.Date > FormatDate(now) {
		errs := validate.Errors{}
		errs.Add("date", "notFuture", "date must not be after "+FormatDate(now))
		return errs
	}
	return nil
}

// ToRecord converts a validated declaration. ID and RecordedAt are left for the store.
func (d *Declaration) ToRecord() EmotionRecord {
	return EmotionRecord{
		SubjectID: d.SubjectID,
		Date:      d.Date,
		Period:    Period(d.Period),
		Emotion:   Emotion(d.Emotion),
		Comment:   d.Comment,
	}
}
