package reasoning

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/govsecure/platform/src/config"
)

func newTestOrchestrator(t *testing.T) *Orchestrator {
	t.Helper()
	return New(config.Load(), nil, zap.NewNop())
}

func TestRunAllTaskTypes(t *testing.T) {
	o := newTestOrchestrator(t)
	for _, taskType := range TaskTypes() {
		t.Run(string(taskType), func(t *testing.T) {
			result, err := o.Run(context.Background(), taskType, "Evaluate the records management system.")
			require.NoError(t, err)
			assert.Equal(t, taskType, result.TaskType)
			assert.NotEmpty(t, result.Result)
			assert.NotEmpty(t, result.ReasoningSteps)
			assert.Equal(t, mockConfidence, result.ConfidenceScore)
			assert.Equal(t, "mock", result.ModelUsed)
		})
	}
}

func TestRunUnknownTaskType(t *testing.T) {
	o := newTestOrchestrator(t)
	_, err := o.Run(context.Background(), TaskType("astrology"), "input")
	assert.Error(t, err)
}

func TestParseTaskType(t *testing.T) {
	taskType, err := ParseTaskType(" Risk_Assessment ")
	require.NoError(t, err)
	assert.Equal(t, TaskRiskAssessment, taskType)

	_, err = ParseTaskType("fortune_telling")
	assert.Error(t, err)
}
