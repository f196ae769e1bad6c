package logging

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsRateLimit(t *testing.T) {
	assert.False(t, IsRateLimit(nil))
	assert.True(t, IsRateLimit(errors.New("openAI API error: rate_limit_exceeded")))
	assert.True(t, IsRateLimit(errors.New("claude API error: status 429")))
	assert.False(t, IsRateLimit(errors.New("connection refused")))
}

func TestNewReturnsLogger(t *testing.T) {
	assert.NotNil(t, New(true))
	assert.NotNil(t, New(false))
}
