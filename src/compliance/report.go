package compliance

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Report is an executive compliance report built from a recorded scan.
type Report struct {
	ReportID         string         `json:"report_id"`
	GeneratedAt      time.Time      `json:"generated_at"`
	BasedOnScan      string         `json:"based_on_scan"`
	Framework        Framework      `json:"framework"`
	ExecutiveSummary string         `json:"executive_summary"`
	OverallScore     float64        `json:"overall_score"`
	TotalChecks      int            `json:"total_checks"`
	PassedChecks     int            `json:"passed_checks"`
	FailedChecks     int            `json:"failed_checks"`
	FindingsBySev    map[string]int `json:"findings_by_severity"`
	DetailedFindings []Finding      `json:"detailed_findings"`
	Recommendations  []string       `json:"recommendations"`
	NextSteps        []string       `json:"next_steps"`
}

// Statistics aggregates recorded scan history.
type Statistics struct {
	TotalScans   int            `json:"total_scans"`
	AverageScore float64        `json:"average_score"`
	HighestScore float64        `json:"highest_score"`
	LowestScore  float64        `json:"lowest_score"`
	ScansByType  map[string]int `json:"scans_by_type"`
	LatestScanID string         `json:"latest_scan_id"`
	ScoreTrend   string         `json:"score_trend"`
}

// GenerateComplianceReport builds a report from one recorded scan. An
// empty scanID selects the most recent scan; an empty framework
// defaults to NIST 800-53.
func (s *Scanner) GenerateComplianceReport(scanID string, framework Framework) (Report, error) {
	var (
		latest ScanResult
		err    error
	)
	if scanID == "" {
		latest, err = s.LatestScan()
	} else {
		latest, err = s.ScanByID(scanID)
	}
	if err != nil {
		return Report{}, err
	}
	if framework == "" {
		framework = FrameworkNIST80053
	}

	sev := map[string]int{"critical": 0, "high": 0, "medium": 0, "low": 0}
	for _, f := range latest.Findings {
		switch RiskLevel(f.RiskLevel) {
		case RiskCritical:
			sev["critical"]++
		case RiskHigh:
			sev["high"]++
		case RiskMedium:
			sev["medium"]++
		default:
			sev["low"]++
		}
	}

	return Report{
		ReportID:    "report-" + uuid.NewString()[:8],
		GeneratedAt: time.Now(),
		BasedOnScan: latest.ScanID,
		Framework:   framework,
		ExecutiveSummary: fmt.Sprintf(
			"Compliance scan %s evaluated %d controls with an overall score of %.1f%%. %d controls passed and %d require remediation.",
			latest.ScanID, latest.TotalChecks, latest.OverallScore,
			latest.PassedChecks, latest.FailedChecks),
		OverallScore:     latest.OverallScore,
		TotalChecks:      latest.TotalChecks,
		PassedChecks:     latest.PassedChecks,
		FailedChecks:     latest.FailedChecks,
		FindingsBySev:    sev,
		DetailedFindings: latest.Findings,
		Recommendations:  latest.Recommendations,
		NextSteps: []string{
			"Review detailed findings with system owners",
			"Assign remediation owners and timelines",
			"Track remediation progress to closure",
			"Schedule follow-up scan to verify remediation",
		},
	}, nil
}

// ExportScanResults writes a scan result to the export directory and
// returns the file path. The payload is JSON regardless of the
// requested format extension.
func (s *Scanner) ExportScanResults(scanID, format string) (string, error) {
	result, err := s.ScanByID(scanID)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.cfg.ExportDir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	if format == "" {
		format = "json"
	}
	name := fmt.Sprintf("compliance_scan_%s_%s.%s",
		result.ScanID, time.Now().Format("20060102_150405"), strings.ToLower(format))
	path := filepath.Join(s.cfg.ExportDir, name)

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal scan result: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}

	s.log.Info("scan results exported",
		zap.String("scan_id", scanID), zap.String("path", path))
	return path, nil
}

// ScanStatistics aggregates all recorded scans.
func (s *Scanner) ScanStatistics() (Statistics, error) {
	history := s.History()
	if len(history) == 0 {
		return Statistics{}, ErrNoScans
	}

	stats := Statistics{
		TotalScans:   len(history),
		HighestScore: history[0].OverallScore,
		LowestScore:  history[0].OverallScore,
		ScansByType:  make(map[string]int),
	}

	var sum float64
	latest := history[0]
	for _, r := range history {
		sum += r.OverallScore
		if r.OverallScore > stats.HighestScore {
			stats.HighestScore = r.OverallScore
		}
		if r.OverallScore < stats.LowestScore {
			stats.LowestScore = r.OverallScore
		}
		stats.ScansByType[string(r.ScanType)]++
		if r.StartTime.After(latest.StartTime) {
			latest = r
		}
	}
	stats.AverageScore = sum / float64(len(history))
	stats.LatestScanID = latest.ScanID

	stats.ScoreTrend = "Stable"
	if len(history) >= 2 &&
		history[len(history)-1].OverallScore > history[len(history)-2].OverallScore {
		stats.ScoreTrend = "Improving"
	}
	return stats, nil
}
