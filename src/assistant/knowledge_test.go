package assistant

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestCategorizeCitizenService(t *testing.T) {
	cases := []struct {
		message string
		want    string
	}{
		{"There is a pothole on my street", "311_services"},
		{"How do I apply for SNAP benefits?", "benefits"},
		{"I need a business license", "permits_licenses"},
		{"Tell me something", "311_services"},
		{"streetlight out AND I need housing assistance", "311_services"}, // 311 checked first
	}
	for _, tc := range cases {
		t.Run(tc.message, func(t *testing.T) {
			assert.Equal(t, tc.want, categorizeCitizenService(tc.message))
		})
	}
}

func TestAssessQueryPriority(t *testing.T) {
	assert.Equal(t, "high", assessQueryPriority("This is an URGENT safety issue"))
	assert.Equal(t, "medium", assessQueryPriority("My permit expires next week"))
	assert.Equal(t, "normal", assessQueryPriority("General question about services"))
}

func TestCitizenServicesCopy(t *testing.T) {
	services := CitizenServices()
	services["311_services"][0] = "mutated"
	assert.Equal(t, "Street light repair", CitizenServices()["311_services"][0])
}

func TestTruncateKeepsRuneBoundaries(t *testing.T) {
	s := strings.Repeat("é", 30) // 2 bytes per rune

	cut := truncate(s, 5)
	assert.True(t, utf8.ValidString(cut))
	assert.LessOrEqual(t, len(cut), 5)
	assert.Equal(t, 4, len(cut)) // backs off the split rune

	assert.Equal(t, "abc", truncate("abc", 10))
	assert.Equal(t, "ab", truncate("abcdef", 2))
}

func TestParseMode(t *testing.T) {
	mode, err := ParseMode("compliance")
	assert.NoError(t, err)
	assert.Equal(t, ModeCompliance, mode)

	_, err = ParseMode("bogus")
	assert.ErrorIs(t, err, ErrInvalidMode)
}
