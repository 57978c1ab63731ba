package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks the structural invariants a completed profile must hold.
// Optional string fields may be nil but never empty or padded; required
// fields must carry their value or the documented fallback.
func (p *Profile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("name is empty")
	}
	if strings.TrimSpace(p.CurrentRole) == "" {
		return errors.New("currentRole is empty")
	}
	if strings.TrimSpace(p.Summary) == "" {
		return errors.New("summary is empty")
	}
	if p.ExperienceYears < 0 {
		return fmt.Errorf("experienceYears is negative: %d", p.ExperienceYears)
	}
	if p.Skills == nil {
		return errors.New("skills is nil, expected empty list")
	}
	if p.Education == nil {
		return errors.New("education is nil, expected empty list")
	}
	for i, edu := range p.Education {
		if strings.TrimSpace(edu.Degree) == "" && strings.TrimSpace(edu.Institution) == "" {
			return fmt.Errorf("education entry %d has neither degree nor institution", i)
		}
	}
	for _, field := range []struct {
		name  string
		value *string
	}{
		{"email", p.Email},
		{"phone", p.Phone},
		{"location", p.Location},
	} {
		if field.value != nil && strings.TrimSpace(*field.value) == "" {
			return fmt.Errorf("%s is an empty string, expected null", field.name)
		}
	}
	if p.SocialHandles != nil && p.SocialHandles.Empty() {
		return errors.New("socialHandles present but all sub-fields are empty")
	}
	return nil
}
