package assistant

import (
	"errors"
	"fmt"
)

// Mode selects the persona and knowledge context the assistant
// operates under.
type Mode string

const (
	ModeGeneral           Mode = "general"
	ModeCitizenService    Mode = "citizen_service"
	ModeCompliance        Mode = "compliance"
	ModeEmergencyResponse Mode = "emergency_response"
	ModeDocumentAnalysis  Mode = "document_analysis"
	ModeTranslation       Mode = "translation"
)

// ErrInvalidMode is returned when a mode name does not match a known mode.
var ErrInvalidMode = errors.New("invalid assistant mode")

// Modes lists every supported mode in a stable order.
func Modes() []Mode {
	return []Mode{
		ModeGeneral,
		ModeCitizenService,
		ModeCompliance,
		ModeEmergencyResponse,
		ModeDocumentAnalysis,
		ModeTranslation,
	}
}

// ParseMode resolves a mode name to a Mode value.
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes() {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
}
