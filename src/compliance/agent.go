package compliance

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/govsecure/platform/src/ai/core"
	"github.com/govsecure/platform/src/ai/mockai"
	"github.com/govsecure/platform/src/config"
	"github.com/govsecure/platform/src/logging"
)

// bulkBatchSize is how many controls are assessed concurrently per
// batch.
const bulkBatchSize = 5

// bulkBatchPause is the delay between bulk-assessment batches so a
// live provider is not hammered.
const bulkBatchPause = time.Second

// Agent assesses NIST 800-53 controls against a completion provider.
// client may be nil; the offline provider then answers every call.
type Agent struct {
	cfg    config.Config
	log    *zap.Logger
	client core.Client
	mock   core.Client
	live   bool
}

// NewAgent builds a compliance assessment agent.
func NewAgent(cfg config.Config, client core.Client, log *zap.Logger) *Agent {
	mock := mockai.New()
	live := client != nil
	if !live {
		client = mock
		log.Warn("no completion provider configured, compliance agent runs offline")
	}
	return &Agent{cfg: cfg, log: log, client: client, mock: mock, live: live}
}

// AssessControl assesses a single control. Provider failures degrade
// to the offline assessment; only context cancellation is returned as
// an error.
func (ag *Agent) AssessControl(ctx context.Context, controlID string, systemContext string) (Assessment, error) {
	if err := ctx.Err(); err != nil {
		return Assessment{}, err
	}

	req := core.Request{
		Task:   core.TaskControlAssessment,
		System: "You are a federal compliance assessor specializing in NIST 800-53 security controls.",
		Prompt: fmt.Sprintf(`Assess the implementation of NIST 800-53 control %s for the following system context:

%s

Provide:
- Implementation status: (Implemented / Partially Implemented / Planned / Not Implemented / Not Applicable)
- Risk level: (Critical / High / Medium / Low / Informational)
- Findings: specific gaps or observations, one per line
- Recommendations: remediation steps, one per line
- Evidence: evidence required to verify implementation, one per line`, controlID, systemContext),
		Metadata: map[string]string{"control_id": controlID},
		Options:  core.Options{Temperature: 0.2, MaxTokens: 1000},
	}

	text, err := ag.client.Complete(ctx, req)
	if err != nil || strings.TrimSpace(text) == "" {
		if ctx.Err() != nil {
			return Assessment{}, ctx.Err()
		}
		if err != nil {
			if logging.IsRateLimit(err) {
				ag.log.Warn("control assessment rate limited, degrading to offline assessment",
					zap.String("control_id", controlID), zap.Error(err))
			} else {
				ag.log.Error("control assessment failed, degrading to offline assessment",
					zap.String("control_id", controlID), zap.Error(err))
			}
		}
		text, err = ag.mock.Complete(ctx, req)
		if err != nil {
			return errorAssessment(controlID), nil
		}
	}

	a := parseAssessment(controlID, text)
	return a, nil
}

// BulkAssessControls assesses controls in concurrent batches. Failed
// assessments are logged and omitted; results come back in completion
// order, not input order.
func (ag *Agent) BulkAssessControls(ctx context.Context, controlIDs []string, systemContext string) []Assessment {
	results := make([]Assessment, 0, len(controlIDs))

	for start := 0; start < len(controlIDs); start += bulkBatchSize {
		end := start + bulkBatchSize
		if end > len(controlIDs) {
			end = len(controlIDs)
		}
		batch := controlIDs[start:end]

		ch := make(chan Assessment, len(batch))
		var wg sync.WaitGroup
		for _, id := range batch {
			wg.Add(1)
			go func(id string) {
				defer wg.Done()
				a, err := ag.AssessControl(ctx, id, systemContext)
				if err != nil {
					ag.log.Warn("bulk assessment skipped control",
						zap.String("control_id", id), zap.Error(err))
					return
				}
				ch <- a
			}(id)
		}
		wg.Wait()
		close(ch)
		for a := range ch {
			results = append(results, a)
		}

		if end < len(controlIDs) {
			select {
			case <-ctx.Done():
				return results
			case <-time.After(bulkBatchPause):
			}
		}
	}
	return results
}

// GapAnalysis summarizes a set of assessments into counts and the
// controls needing remediation.
type GapAnalysis struct {
	TotalControls   int             `json:"total_controls"`
	StatusCounts    map[string]int  `json:"status_counts"`
	RiskCounts      map[string]int  `json:"risk_counts"`
	ControlGaps     []string        `json:"control_gaps"`
	HighRiskItems   []string        `json:"high_risk_items"`
	ComplianceScore float64         `json:"compliance_score"`
	Assessments     []Assessment    `json:"assessments"`
	GeneratedAt     time.Time       `json:"generated_at"`
	Framework       Framework       `json:"framework"`
}

// AnalyzeGaps assesses the given controls and aggregates the outcome.
func (ag *Agent) AnalyzeGaps(ctx context.Context, controlIDs []string, systemContext string) GapAnalysis {
	assessments := ag.BulkAssessControls(ctx, controlIDs, systemContext)

	ga := GapAnalysis{
		TotalControls: len(assessments),
		StatusCounts:  make(map[string]int),
		RiskCounts:    make(map[string]int),
		Assessments:   assessments,
		GeneratedAt:   time.Now(),
		Framework:     FrameworkNIST80053,
	}

	implemented := 0
	for _, a := range assessments {
		ga.StatusCounts[string(a.Status)]++
		ga.RiskCounts[string(a.RiskLevel)]++
		switch a.Status {
		case StatusImplemented:
			implemented++
		case StatusNotImplemented, StatusPlanned:
			ga.ControlGaps = append(ga.ControlGaps, a.ControlID)
		}
		if a.RiskLevel == RiskCritical || a.RiskLevel == RiskHigh {
			ga.HighRiskItems = append(ga.HighRiskItems, a.ControlID)
		}
	}
	if len(assessments) > 0 {
		ga.ComplianceScore = float64(implemented) / float64(len(assessments)) * 100
	}
	return ga
}

// errorAssessment is the conservative assessment used when no provider
// response could be obtained at all.
func errorAssessment(controlID string) Assessment {
	return Assessment{
		ControlID:           controlID,
		ControlName:         controlName(controlID),
		Framework:           FrameworkNIST80053,
		Status:              StatusNotImplemented,
		RiskLevel:           RiskHigh,
		AssessmentDate:      time.Now(),
		Findings:            []string{"Assessment could not be completed"},
		Recommendations:     []string{"Retry assessment with a configured provider"},
		EvidenceRequired:    []string{"Control implementation documentation"},
		RemediationTimeline: "30 days",
	}
}

// parseAssessment extracts a structured assessment from free-form
// assessor text. Unrecognized sections fall back to conservative
// defaults.
func parseAssessment(controlID, text string) Assessment {
	a := Assessment{
		ControlID:      controlID,
		ControlName:    controlName(controlID),
		Framework:      FrameworkNIST80053,
		Status:         StatusPartiallyImplemented,
		RiskLevel:      RiskMedium,
		AssessmentDate: time.Now(),
	}

	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "not implemented"):
		a.Status = StatusNotImplemented
	case strings.Contains(lower, "not applicable"):
		a.Status = StatusNotApplicable
	case strings.Contains(lower, "partially implemented"):
		a.Status = StatusPartiallyImplemented
	case strings.Contains(lower, "planned"):
		a.Status = StatusPlanned
	case strings.Contains(lower, "implemented"):
		a.Status = StatusImplemented
	}

	switch {
	case strings.Contains(lower, "critical"):
		a.RiskLevel = RiskCritical
	case strings.Contains(lower, "high"):
		a.RiskLevel = RiskHigh
	case strings.Contains(lower, "low"):
		a.RiskLevel = RiskLow
	case strings.Contains(lower, "informational"):
		a.RiskLevel = RiskInformational
	case strings.Contains(lower, "medium"):
		a.RiskLevel = RiskMedium
	}

	section := ""
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(line, "-* "))
		if line == "" {
			continue
		}
		ll := strings.ToLower(line)
		switch {
		case strings.HasPrefix(ll, "finding") || strings.HasPrefix(ll, "gap"):
			section = "findings"
			continue
		case strings.HasPrefix(ll, "recommendation"):
			section = "recommendations"
			continue
		case strings.HasPrefix(ll, "evidence"):
			section = "evidence"
			continue
		case strings.HasPrefix(ll, "implementation status") || strings.HasPrefix(ll, "risk level"):
			section = ""
			continue
		}
		switch section {
		case "findings":
			a.Findings = append(a.Findings, line)
		case "recommendations":
			a.Recommendations = append(a.Recommendations, line)
		case "evidence":
			a.EvidenceRequired = append(a.EvidenceRequired, line)
		}
	}

	if len(a.Findings) == 0 {
		a.Findings = []string{"No specific findings reported"}
	}
	if len(a.Recommendations) == 0 {
		a.Recommendations = []string{"Review control implementation against NIST 800-53 guidance"}
	}
	if len(a.EvidenceRequired) == 0 {
		a.EvidenceRequired = []string{"Control implementation documentation"}
	}

	switch a.RiskLevel {
	case RiskCritical:
		a.RemediationTimeline = "7 days"
	case RiskHigh:
		a.RemediationTimeline = "30 days"
	case RiskMedium:
		a.RemediationTimeline = "90 days"
	default:
		a.RemediationTimeline = "180 days"
	}
	return a
}

// controlName derives a display name from a control's family prefix.
func controlName(controlID string) string {
	prefix, _, ok := strings.Cut(controlID, "-")
	if !ok {
		return controlID
	}
	family, ok := FamilyName(prefix)
	if !ok {
		return controlID
	}
	return fmt.Sprintf("%s (%s)", family, controlID)
}
