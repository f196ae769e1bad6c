// Package compliance implements the control-assessment agent and the
// scan aggregator. Scan results live only in process memory; the
// scanner simulates check outcomes, it performs no real control
// evaluation.
package compliance

import (
	"errors"
	"time"
)

// Framework is a supported compliance framework.
type Framework string

const (
	FrameworkNIST80053 Framework = "nist_800_53"
	FrameworkFedRAMP   Framework = "fedramp"
	FrameworkFISMA     Framework = "fisma"
	FrameworkCJIS      Framework = "cjis"
	FrameworkHIPAA     Framework = "hipaa"
	FrameworkSOC2      Framework = "soc2"
)

// ControlStatus is a control implementation status.
type ControlStatus string

const (
	StatusImplemented          ControlStatus = "implemented"
	StatusPartiallyImplemented ControlStatus = "partially_implemented"
	StatusPlanned              ControlStatus = "planned"
	StatusNotImplemented       ControlStatus = "not_implemented"
	StatusNotApplicable        ControlStatus = "not_applicable"
)

// RiskLevel grades assessment risk.
type RiskLevel string

const (
	RiskCritical      RiskLevel = "critical"
	RiskHigh          RiskLevel = "high"
	RiskMedium        RiskLevel = "medium"
	RiskLow           RiskLevel = "low"
	RiskInformational RiskLevel = "informational"
)

// Assessment is the result of assessing one control. Immutable once
// returned.
type Assessment struct {
	ControlID           string        `json:"control_id"`
	ControlName         string        `json:"control_name"`
	Framework           Framework     `json:"framework"`
	Status              ControlStatus `json:"status"`
	RiskLevel           RiskLevel     `json:"risk_level"`
	AssessmentDate      time.Time     `json:"assessment_date"`
	Findings            []string      `json:"findings"`
	Recommendations     []string      `json:"recommendations"`
	EvidenceRequired    []string      `json:"evidence_required"`
	RemediationTimeline string        `json:"remediation_timeline,omitempty"`
}

// ScanType labels a compliance scan.
type ScanType string

const (
	ScanQuick      ScanType = "quick"
	ScanFull       ScanType = "full"
	ScanTargeted   ScanType = "targeted"
	ScanContinuous ScanType = "continuous"
)

// ScanStatus is the lifecycle state of a scan.
type ScanStatus string

const (
	ScanPending   ScanStatus = "pending"
	ScanRunning   ScanStatus = "running"
	ScanCompleted ScanStatus = "completed"
	ScanFailed    ScanStatus = "failed"
	ScanCancelled ScanStatus = "cancelled"
)

// Finding is one per-control scan observation.
type Finding struct {
	ControlID      string `json:"control_id"`
	Status         string `json:"status"`
	RiskLevel      string `json:"risk_level"`
	Finding        string `json:"finding"`
	Recommendation string `json:"recommendation"`
}

// ScanResult holds the outcome of a compliance scan.
// Invariant: PassedChecks + FailedChecks == TotalChecks.
type ScanResult struct {
	ScanID          string     `json:"scan_id"`
	ScanType        ScanType   `json:"scan_type"`
	Status          ScanStatus `json:"status"`
	StartTime       time.Time  `json:"start_time"`
	EndTime         time.Time  `json:"end_time"`
	OverallScore    float64    `json:"overall_score"`
	TotalChecks     int        `json:"total_checks"`
	PassedChecks    int        `json:"passed_checks"`
	FailedChecks    int        `json:"failed_checks"`
	Findings        []Finding  `json:"findings"`
	Recommendations []string   `json:"recommendations"`
}

var (
	// ErrScanNotFound is returned for an unknown scan id.
	ErrScanNotFound = errors.New("scan not found")
	// ErrNoScans is returned when no scan results are available.
	ErrNoScans = errors.New("no scan results available")
)
