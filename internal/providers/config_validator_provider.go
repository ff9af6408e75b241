package providers

import (
	"fmt"

	"emotrack/internal/structures"

	"github.com/gookit/validate"
)

type CnfValidatorInterface interface {
	Validate() error
}

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) CnfValidatorInterface {
	return &CnfValidator{conf: conf}
}

func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	if !v.Validate() {
		return fmt.Errorf("invalid configuration: %w", v.Errors)
	}

	// floors are percentages on a [-100, 100] morale scale and [0, 100] participation scale
	for name, th := range map[string]structures.ThresholdConfig{
		"alerts.team":       cv.conf.Alerts.Team,
		"alerts.department": cv.conf.Alerts.Department,
	} {
		if th.MoraleFloor < -100 || th.MoraleFloor > 100 {
			return fmt.Errorf("invalid configuration: %s.moraleFloor out of range: %v", name, th.MoraleFloor)
		}
		if th.ParticipationFloor < 0 || th.ParticipationFloor > 100 {
			return fmt.Errorf("invalid configuration: %s.participationFloor out of range: %v", name, th.ParticipationFloor)
		}
	}
	return nil
}
