package core

import "context"

// Task labels what a completion request is for. Live providers ignore
// it; the offline provider uses it to pick a deterministic template.
type Task string

const (
	TaskChat              Task = "chat"
	TaskDocumentAnalysis  Task = "document_analysis"
	TaskTranslation       Task = "translation"
	TaskControlAssessment Task = "control_assessment"
	TaskReasoning         Task = "reasoning"
)

// Options controls model behavior; zero fields fall back to the
// client's defaults.
type Options struct {
	Model        string
	Temperature  float64
	MaxTokens    int
	SystemPrompt string
}

// Request is a single completion call.
type Request struct {
	Task     Task
	System   string
	Prompt   string
	Metadata map[string]string // task hints consumed by the offline provider
	Options  Options
}

// Client is a provider-agnostic interface over hosted completion APIs.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
	// Model reports the model name responses are attributed to.
	Model() string
}
