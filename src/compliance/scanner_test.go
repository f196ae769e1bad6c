package compliance

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/govsecure/platform/src/config"
)

func newTestScanner(t *testing.T) *Scanner {
	t.Helper()
	cfg := config.Load()
	cfg.ExportDir = t.TempDir()
	return NewScanner(cfg, zap.NewNop())
}

func TestQuickScan(t *testing.T) {
	s := newTestScanner(t)
	result, err := s.QuickScan(context.Background())
	require.NoError(t, err)

	assert.Equal(t, ScanQuick, result.ScanType)
	assert.Equal(t, ScanCompleted, result.Status)
	assert.Equal(t, len(criticalControls), result.TotalChecks)
	assert.Equal(t, result.TotalChecks, result.PassedChecks+result.FailedChecks)
	assert.Equal(t, len(quickScanPassSet), result.PassedChecks)
	assert.GreaterOrEqual(t, result.OverallScore, 0.0)
	assert.LessOrEqual(t, result.OverallScore, 100.0)
	assert.Len(t, result.Findings, result.FailedChecks)
	assert.NotEmpty(t, result.Recommendations)
}

func TestFullScanDeterministic(t *testing.T) {
	s := newTestScanner(t)
	first, err := s.RunFullScan(context.Background())
	require.NoError(t, err)
	second, err := s.RunFullScan(context.Background())
	require.NoError(t, err)

	assert.Equal(t, ScanCompleted, first.Status)
	assert.Equal(t, len(fullScanControls), first.TotalChecks)
	assert.Equal(t, first.TotalChecks, first.PassedChecks+first.FailedChecks)

	assert.Equal(t, first.PassedChecks, second.PassedChecks)
	assert.Equal(t, first.OverallScore, second.OverallScore)
	require.Equal(t, len(first.Findings), len(second.Findings))
	for i := range first.Findings {
		assert.Equal(t, first.Findings[i].ControlID, second.Findings[i].ControlID)
		assert.Equal(t, first.Findings[i].RiskLevel, second.Findings[i].RiskLevel)
	}
}

func TestFullScanCancellation(t *testing.T) {
	s := newTestScanner(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := s.RunFullScan(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, ScanCancelled, result.Status)
}

func TestControlRiskCoversAllLevels(t *testing.T) {
	assert.Equal(t, RiskHigh, controlRisk(10))  // %5
	assert.Equal(t, RiskHigh, controlRisk(35))  // %5 wins over %7
	assert.Equal(t, RiskMedium, controlRisk(7)) // %7
	assert.Equal(t, RiskLow, controlRisk(8))
}

func TestScanByID(t *testing.T) {
	s := newTestScanner(t)
	result, err := s.QuickScan(context.Background())
	require.NoError(t, err)

	found, err := s.ScanByID(result.ScanID)
	require.NoError(t, err)
	assert.Equal(t, result.ScanID, found.ScanID)

	_, err = s.ScanByID("quick-00000000-000000")
	assert.ErrorIs(t, err, ErrScanNotFound)
}

func TestLatestScanEmpty(t *testing.T) {
	s := newTestScanner(t)
	_, err := s.LatestScan()
	assert.ErrorIs(t, err, ErrNoScans)
}

func TestGenerateComplianceReport(t *testing.T) {
	s := newTestScanner(t)
	_, err := s.GenerateComplianceReport("", "")
	assert.ErrorIs(t, err, ErrNoScans)

	scan, err := s.QuickScan(context.Background())
	require.NoError(t, err)

	report, err := s.GenerateComplianceReport("", "")
	require.NoError(t, err)
	assert.Equal(t, scan.ScanID, report.BasedOnScan)
	assert.Equal(t, FrameworkNIST80053, report.Framework)
	assert.Equal(t, scan.OverallScore, report.OverallScore)
	assert.NotEmpty(t, report.ExecutiveSummary)
	assert.NotEmpty(t, report.NextSteps)

	total := 0
	for _, n := range report.FindingsBySev {
		total += n
	}
	assert.Equal(t, len(scan.Findings), total)
}

func TestGenerateComplianceReportByScanID(t *testing.T) {
	s := newTestScanner(t)
	first := ScanResult{ScanID: "quick-20260101-090000", ScanType: ScanQuick, Status: ScanCompleted, StartTime: time.Now().Add(-time.Hour), OverallScore: 30.8}
	second := ScanResult{ScanID: "full-20260101-100000", ScanType: ScanFull, Status: ScanCompleted, StartTime: time.Now(), OverallScore: 52.1}
	s.record(first)
	s.record(second)

	report, err := s.GenerateComplianceReport(first.ScanID, FrameworkFedRAMP)
	require.NoError(t, err)
	assert.Equal(t, first.ScanID, report.BasedOnScan)
	assert.Equal(t, FrameworkFedRAMP, report.Framework)

	_, err = s.GenerateComplianceReport("quick-19990101-000000", "")
	assert.ErrorIs(t, err, ErrScanNotFound)
}

func TestExportScanResults(t *testing.T) {
	s := newTestScanner(t)
	result, err := s.QuickScan(context.Background())
	require.NoError(t, err)

	path, err := s.ExportScanResults(result.ScanID, "json")
	require.NoError(t, err)
	assert.Equal(t, ".json", filepath.Ext(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), result.ScanID)

	_, err = s.ExportScanResults("nope", "json")
	assert.ErrorIs(t, err, ErrScanNotFound)
}

func TestScanStatistics(t *testing.T) {
	s := newTestScanner(t)
	_, err := s.ScanStatistics()
	assert.ErrorIs(t, err, ErrNoScans)

	_, err = s.QuickScan(context.Background())
	require.NoError(t, err)
	full, err := s.RunFullScan(context.Background())
	require.NoError(t, err)

	stats, err := s.ScanStatistics()
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalScans)
	assert.Equal(t, 1, stats.ScansByType[string(ScanQuick)])
	assert.Equal(t, 1, stats.ScansByType[string(ScanFull)])
	assert.Equal(t, full.ScanID, stats.LatestScanID)
	assert.GreaterOrEqual(t, stats.HighestScore, stats.LowestScore)
}

func TestScoreTrendComparesLastTwo(t *testing.T) {
	s := newTestScanner(t)
	base := time.Now().Add(-3 * time.Hour)
	scores := []float64{52.1, 30.8, 30.8}
	for i, score := range scores {
		s.record(ScanResult{
			ScanID:       fmt.Sprintf("quick-2026010%d-000000", i+1),
			ScanType:     ScanQuick,
			Status:       ScanCompleted,
			StartTime:    base.Add(time.Duration(i) * time.Hour),
			OverallScore: score,
		})
	}

	stats, err := s.ScanStatistics()
	require.NoError(t, err)
	assert.Equal(t, "Stable", stats.ScoreTrend)

	s.record(ScanResult{
		ScanID:       "quick-20260104-000000",
		ScanType:     ScanQuick,
		Status:       ScanCompleted,
		StartTime:    base.Add(3 * time.Hour),
		OverallScore: 46.2,
	})
	stats, err = s.ScanStatistics()
	require.NoError(t, err)
	assert.Equal(t, "Improving", stats.ScoreTrend)
}

func TestFilterAndSort(t *testing.T) {
	s := newTestScanner(t)
	_, err := s.QuickScan(context.Background())
	require.NoError(t, err)
	_, err = s.RunFullScan(context.Background())
	require.NoError(t, err)

	quick := s.FilterByType(ScanQuick)
	require.Len(t, quick, 1)
	assert.Equal(t, ScanQuick, quick[0].ScanType)

	sorted := s.SortByDate()
	require.Len(t, sorted, 2)
	assert.True(t, !sorted[0].StartTime.Before(sorted[1].StartTime))
}
