// Package reasoning runs multi-step analysis pipelines over the
// completion provider. Each task type maps to a fixed prompt pipeline;
// the orchestrator records the steps taken so callers can audit how a
// result was produced.
package reasoning

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/govsecure/platform/src/ai/core"
	"github.com/govsecure/platform/src/ai/mockai"
	"github.com/govsecure/platform/src/config"
)

// TaskType selects a reasoning pipeline.
type TaskType string

const (
	TaskComplianceReasoning TaskType = "compliance_reasoning"
	TaskPolicyAnalysis      TaskType = "policy_analysis"
	TaskRiskAssessment      TaskType = "risk_assessment"
	TaskMultiStepAnalysis   TaskType = "multi_step_analysis"
	TaskDocumentSynthesis   TaskType = "document_synthesis"
)

// mockConfidence is reported when the offline provider produced the
// answer.
const mockConfidence = 0.75

// Result is the outcome of one reasoning run.
type Result struct {
	TaskType        TaskType      `json:"task_type"`
	Result          string        `json:"result"`
	ReasoningSteps  []string      `json:"reasoning_steps"`
	ConfidenceScore float64       `json:"confidence_score"`
	ModelUsed       string        `json:"model_used"`
	ProcessingTime  time.Duration `json:"processing_time"`
}

// Orchestrator drives reasoning pipelines. client may be nil, which
// selects the offline provider.
type Orchestrator struct {
	cfg    config.Config
	log    *zap.Logger
	client core.Client
	mock   core.Client
	live   bool
}

// New builds an orchestrator.
func New(cfg config.Config, client core.Client, log *zap.Logger) *Orchestrator {
	mock := mockai.New()
	live := client != nil
	if !live {
		client = mock
	}
	return &Orchestrator{cfg: cfg, log: log, client: client, mock: mock, live: live}
}

var pipelines = map[TaskType][]string{
	TaskComplianceReasoning: {
		"Identify applicable regulations and frameworks",
		"Map input against framework requirements",
		"Determine compliance status and gaps",
		"Formulate remediation recommendations",
	},
	TaskPolicyAnalysis: {
		"Extract policy objectives and scope",
		"Identify implementation requirements",
		"Assess stakeholder impact",
		"Summarize implications and open questions",
	},
	TaskRiskAssessment: {
		"Enumerate threat scenarios",
		"Rate likelihood and impact per scenario",
		"Derive overall risk level",
		"Propose mitigations",
	},
	TaskMultiStepAnalysis: {
		"Decompose input into discrete analysis tasks",
		"Evaluate each task independently",
		"Synthesize findings into a conclusion",
	},
	TaskDocumentSynthesis: {
		"Extract common themes across sources",
		"Flag conflicting requirements",
		"Compose a synthesized answer",
	},
}

// ParseTaskType validates a raw task type string.
func ParseTaskType(name string) (TaskType, error) {
	t := TaskType(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := pipelines[t]; !ok {
		return "", fmt.Errorf("unknown reasoning task type %q", name)
	}
	return t, nil
}

// TaskTypes lists the supported task types.
func TaskTypes() []TaskType {
	return []TaskType{
		TaskComplianceReasoning, TaskPolicyAnalysis, TaskRiskAssessment,
		TaskMultiStepAnalysis, TaskDocumentSynthesis,
	}
}

// Run executes the pipeline for a task type over the given input.
// Provider failures degrade to the offline provider; Run only fails on
// an unknown task type.
func (o *Orchestrator) Run(ctx context.Context, taskType TaskType, input string) (Result, error) {
	steps, ok := pipelines[taskType]
	if !ok {
		return Result{}, fmt.Errorf("unknown reasoning task type %q", taskType)
	}
	start := time.Now()

	system := fmt.Sprintf(`You are a government analysis engine performing %s.

Work through these steps in order and present the outcome of each:
%s

Close with a clear conclusion and confidence statement.`,
		strings.ReplaceAll(string(taskType), "_", " "), numbered(steps))

	req := core.Request{
		Task:     core.TaskReasoning,
		System:   system,
		Prompt:   input,
		Metadata: map[string]string{"task_type": string(taskType)},
		Options:  core.Options{Temperature: 0.3, MaxTokens: 1500},
	}

	text, err := o.client.Complete(ctx, req)
	model := o.client.Model()
	confidence := 0.9
	if err != nil || strings.TrimSpace(text) == "" {
		if err != nil {
			o.log.Error("reasoning completion failed, degrading to offline response",
				zap.String("task_type", string(taskType)), zap.Error(err))
		}
		text, _ = o.mock.Complete(ctx, req)
		model = o.mock.Model()
	}
	if model == o.mock.Model() {
		confidence = mockConfidence
	}

	return Result{
		TaskType:        taskType,
		Result:          text,
		ReasoningSteps:  append([]string(nil), steps...),
		ConfidenceScore: confidence,
		ModelUsed:       model,
		ProcessingTime:  time.Since(start),
	}, nil
}

func numbered(steps []string) string {
	var b strings.Builder
	for i, s := range steps {
		fmt.Fprintf(&b, "%d. %s\n", i+1, s)
	}
	return b.String()
}
