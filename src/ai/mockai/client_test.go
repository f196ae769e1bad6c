package mockai

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/govsecure/platform/src/ai/core"
)

func complete(t *testing.T, req core.Request) string {
	t.Helper()
	resp, err := New().Complete(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, resp)
	return resp
}

func TestChatByMode(t *testing.T) {
	cases := []struct {
		name     string
		metadata map[string]string
		contains string
	}{
		{"citizen 311", map[string]string{"mode": "citizen_service", "category": "311_services"}, "311"},
		{"citizen benefits", map[string]string{"mode": "citizen_service", "category": "benefits"}, "SNAP"},
		{"citizen permits", map[string]string{"mode": "citizen_service", "category": "permits_licenses"}, "permit"},
		{"compliance", map[string]string{"mode": "compliance"}, "NIST 800-53"},
		{"emergency", map[string]string{"mode": "emergency_response"}, "911"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := complete(t, core.Request{
				Task:     core.TaskChat,
				Prompt:   "test inquiry",
				Metadata: tc.metadata,
			})
			assert.Contains(t, resp, tc.contains)
		})
	}
}

func TestGeneralChatKeywords(t *testing.T) {
	welcome := complete(t, core.Request{Task: core.TaskChat, Prompt: "what services do you offer"})
	assert.Contains(t, welcome, "Welcome")

	bye := complete(t, core.Request{Task: core.TaskChat, Prompt: "thank you, goodbye"})
	assert.Contains(t, bye, "Have a great day")

	fallback := complete(t, core.Request{Task: core.TaskChat, Prompt: "zoning variance appeal"})
	assert.Contains(t, fallback, "zoning variance appeal")
}

func TestDocumentSummaryTypes(t *testing.T) {
	meta := map[string]string{"word_count": "120", "compliance_points": "3"}

	for analysisType, want := range map[string]string{
		"compliance": "3 potential compliance points",
		"policy":     "120 words",
		"legal":      "Legal Analysis",
		"financial":  "Financial Analysis",
		"general":    "120 words",
	} {
		t.Run(analysisType, func(t *testing.T) {
			meta["analysis_type"] = analysisType
			resp := complete(t, core.Request{Task: core.TaskDocumentAnalysis, Metadata: meta})
			assert.Contains(t, resp, want)
		})
	}
}

func TestTranslationMarker(t *testing.T) {
	resp := complete(t, core.Request{
		Task:     core.TaskTranslation,
		Metadata: map[string]string{"target_language": "French", "text": "Hello"},
	})
	assert.Contains(t, resp, "[MOCK TRANSLATION TO FRENCH]")
	assert.Contains(t, resp, "Hello")
}

func TestControlAssessmentParseable(t *testing.T) {
	resp := complete(t, core.Request{
		Task:     core.TaskControlAssessment,
		Metadata: map[string]string{"control_id": "SC-7"},
	})
	assert.Contains(t, resp, "Partially Implemented")
	assert.Contains(t, resp, "Risk level: Medium")
	assert.Contains(t, resp, "SC-7")
}

func TestTranslationTruncationValidUTF8(t *testing.T) {
	resp := complete(t, core.Request{
		Task: core.TaskTranslation,
		Metadata: map[string]string{
			"target_language": "Japanese",
			"text":            strings.Repeat("日", 120), // 3 bytes per rune, forces the 200-byte cut
		},
	})
	assert.True(t, utf8.ValidString(resp))
}

func TestReasoningByTaskType(t *testing.T) {
	for taskType, want := range map[string]string{
		"policy_analysis":      "Policy analysis",
		"risk_assessment":      "Risk assessment",
		"multi_step_analysis":  "Step 1",
		"document_synthesis":   "synthesis",
		"compliance_reasoning": "Compliance reasoning",
	} {
		t.Run(taskType, func(t *testing.T) {
			resp := complete(t, core.Request{
				Task:     core.TaskReasoning,
				Metadata: map[string]string{"task_type": taskType},
			})
			assert.Contains(t, resp, want)
		})
	}
}
