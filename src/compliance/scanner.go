package compliance

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/OneOfOne/xxhash"
	"go.uber.org/zap"

	"github.com/govsecure/platform/src/config"
)

// scanSeed pins the simulated check distribution so repeated full
// scans over the same control set produce identical results.
const scanSeed = 0x60755EC

// checkDelay is the simulated per-control check latency.
const checkDelay = 10 * time.Millisecond

// Scanner runs simulated compliance scans and keeps their results in
// memory. Safe for concurrent use.
type Scanner struct {
	cfg config.Config
	log *zap.Logger

	mu      sync.Mutex
	history []ScanResult
}

// NewScanner builds a scanner.
func NewScanner(cfg config.Config, log *zap.Logger) *Scanner {
	return &Scanner{cfg: cfg, log: log}
}

// QuickScan checks the critical control set. Pass/fail outcomes follow
// a fixed table so repeated scans are identical.
func (s *Scanner) QuickScan(ctx context.Context) (ScanResult, error) {
	start := time.Now()
	result := ScanResult{
		ScanID:    fmt.Sprintf("quick-%s", start.Format("20060102-150405")),
		ScanType:  ScanQuick,
		Status:    ScanRunning,
		StartTime: start,
	}
	s.log.Info("quick compliance scan started", zap.String("scan_id", result.ScanID))

	for _, id := range criticalControls {
		if err := sleepCtx(ctx, checkDelay); err != nil {
			result.Status = ScanCancelled
			result.EndTime = time.Now()
			return result, err
		}
		result.TotalChecks++
		if quickScanPassSet[id] {
			result.PassedChecks++
			continue
		}
		result.FailedChecks++
		result.Findings = append(result.Findings, Finding{
			ControlID:      id,
			Status:         "FAIL",
			RiskLevel:      string(RiskMedium),
			Finding:        fmt.Sprintf("Control %s requires attention", id),
			Recommendation: fmt.Sprintf("Review and remediate %s implementation", id),
		})
	}

	result.Status = ScanCompleted
	result.EndTime = time.Now()
	result.OverallScore = score(result.PassedChecks, result.TotalChecks)
	result.Recommendations = []string{
		"Prioritize remediation of failed critical controls",
		"Schedule a full compliance scan for complete coverage",
		"Document remediation plans with timelines",
		"Enable continuous monitoring for critical controls",
	}

	s.record(result)
	s.log.Info("quick compliance scan completed",
		zap.String("scan_id", result.ScanID),
		zap.Float64("score", result.OverallScore),
		zap.Int("failed", result.FailedChecks))
	return result, nil
}

// RunFullScan checks the comprehensive control set. Each control's
// outcome derives from a seeded hash of its id, so full scans are
// reproducible across runs and hosts.
func (s *Scanner) RunFullScan(ctx context.Context) (ScanResult, error) {
	start := time.Now()
	result := ScanResult{
		ScanID:    fmt.Sprintf("full-%s", start.Format("20060102-150405")),
		ScanType:  ScanFull,
		Status:    ScanRunning,
		StartTime: start,
	}
	s.log.Info("full compliance scan started",
		zap.String("scan_id", result.ScanID),
		zap.Int("controls", len(fullScanControls)))

	for _, id := range fullScanControls {
		if err := sleepCtx(ctx, checkDelay); err != nil {
			result.Status = ScanCancelled
			result.EndTime = time.Now()
			return result, err
		}
		result.TotalChecks++
		h := controlHash(id)
		if h%3 == 0 {
			result.PassedChecks++
			continue
		}
		result.FailedChecks++
		result.Findings = append(result.Findings, Finding{
			ControlID:      id,
			Status:         "FAIL",
			RiskLevel:      string(controlRisk(h)),
			Finding:        fmt.Sprintf("Implementation gaps identified for %s", id),
			Recommendation: fmt.Sprintf("Remediate %s per NIST 800-53 guidance", id),
		})
	}

	result.Status = ScanCompleted
	result.EndTime = time.Now()
	result.OverallScore = score(result.PassedChecks, result.TotalChecks)
	result.Recommendations = []string{
		"Address high-risk findings first",
		"Develop remediation roadmap for all failed controls",
		"Re-scan after remediation to verify closure",
		"Establish quarterly full-scan cadence",
	}

	s.record(result)
	s.log.Info("full compliance scan completed",
		zap.String("scan_id", result.ScanID),
		zap.Float64("score", result.OverallScore),
		zap.Int("failed", result.FailedChecks))
	return result, nil
}

// LatestScan returns the most recently started scan.
func (s *Scanner) LatestScan() (ScanResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.history) == 0 {
		return ScanResult{}, ErrNoScans
	}
	latest := s.history[0]
	for _, r := range s.history[1:] {
		if r.StartTime.After(latest.StartTime) {
			latest = r
		}
	}
	return latest, nil
}

// ScanByID looks up a scan result by id.
func (s *Scanner) ScanByID(scanID string) (ScanResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.history {
		if r.ScanID == scanID {
			return r, nil
		}
	}
	return ScanResult{}, ErrScanNotFound
}

// History returns a copy of all recorded scans in insertion order.
func (s *Scanner) History() []ScanResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ScanResult(nil), s.history...)
}

// FilterByType returns recorded scans of one type.
func (s *Scanner) FilterByType(t ScanType) []ScanResult {
	var out []ScanResult
	for _, r := range s.History() {
		if r.ScanType == t {
			out = append(out, r)
		}
	}
	return out
}

// SortByDate returns recorded scans ordered newest first.
func (s *Scanner) SortByDate() []ScanResult {
	out := s.History()
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartTime.After(out[j].StartTime)
	})
	return out
}

func (s *Scanner) record(r ScanResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, r)
}

func controlHash(controlID string) uint64 {
	h := xxhash.NewS64(scanSeed)
	h.WriteString(controlID)
	return h.Sum64()
}

// controlRisk grades a failed control. Keyed off %5 and %7 so the
// simulated findings span all three levels (%3 would never fire here:
// controls with h%3 == 0 pass).
func controlRisk(h uint64) RiskLevel {
	switch {
	case h%5 == 0:
		return RiskHigh
	case h%7 == 0:
		return RiskMedium
	default:
		return RiskLow
	}
}

func score(passed, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(passed) / float64(total) * 100
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
