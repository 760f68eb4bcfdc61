package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/n8hotnews-a11y/Smart-Frigde/models"
)

// fakeSummarizer fails for the member ids in failFor.
type fakeSummarizer struct {
	failFor map[string]bool
}

func (f *fakeSummarizer) GenerateReportSummary(_ context.Context, m models.FamilyMember) (string, error) {
	if f.failFor[m.ID] {
		return "", errors.New("boom")
	}
	return fmt.Sprintf("nhận xét cho %s", m.Name), nil
}

// fixedMetrics always returns the same numbers, so assertions are exact.
type fixedMetrics struct{}

func (fixedMetrics) MetricsFor(models.FamilyMember) ReportMetrics {
	return ReportMetrics{
		AverageCalories: 2000,
		AverageProtein:  80,
		AverageCarbs:    220,
		AverageFat:      65,
		GoalProgress:    70,
	}
}

func roster() []models.FamilyMember {
	return []models.FamilyMember{
		{ID: "fm1", Name: "Anh Hùng", Age: 35, Goal: "Duy trì sức khỏe"},
		{ID: "fm2", Name: "Chị Mai", Age: 32, Goal: "Giảm cân"},
		{ID: "fm3", Name: "Bé An", Age: 6, Goal: "Tăng cân"},
	}
}

func TestGenerateAllReportsOrderMatchesInput(t *testing.T) {
	svc := NewReportService(&fakeSummarizer{}, fixedMetrics{})

	reports := svc.GenerateAllReports(context.Background(), roster())

	require.Len(t, reports, 3)
	assert.Equal(t, "fm1", reports[0].MemberID)
	assert.Equal(t, "fm2", reports[1].MemberID)
	assert.Equal(t, "fm3", reports[2].MemberID)
	for _, r := range reports {
		assert.Equal(t, models.PeriodWeekly, r.Period)
		assert.Equal(t, 2000, r.AverageCalories)
		assert.Equal(t, 70, r.GoalProgress)
		assert.NotEqual(t, FallbackReportSummary, r.Summary)
	}
}

func TestGenerateAllReportsIsolatesOneFailure(t *testing.T) {
	svc := NewReportService(&fakeSummarizer{failFor: map[string]bool{"fm2": true}}, fixedMetrics{})

	reports := svc.GenerateAllReports(context.Background(), roster())

	require.Len(t, reports, 3, "one failed member must not shrink the batch")

	assert.Equal(t, "nhận xét cho Anh Hùng", reports[0].Summary)
	assert.Equal(t, "nhận xét cho Bé An", reports[2].Summary)

	failed := reports[1]
	assert.Equal(t, "fm2", failed.MemberID)
	assert.Equal(t, FallbackReportSummary, failed.Summary)
	assert.Zero(t, failed.AverageCalories)
	assert.Zero(t, failed.AverageProtein)
	assert.Zero(t, failed.AverageCarbs)
	assert.Zero(t, failed.AverageFat)
	assert.Zero(t, failed.GoalProgress)
}

func TestGenerateAllReportsEmptyRoster(t *testing.T) {
	svc := NewReportService(&fakeSummarizer{}, fixedMetrics{})
	assert.Empty(t, svc.GenerateAllReports(context.Background(), nil))
}

func TestSimulatedMetricsStayInRange(t *testing.T) {
	p := NewSimulatedMetricsProvider(1)
	for i := 0; i < 100; i++ {
		m := p.MetricsFor(models.FamilyMember{})
		assert.GreaterOrEqual(t, m.AverageCalories, 1800)
		assert.Less(t, m.AverageCalories, 2300)
		assert.GreaterOrEqual(t, m.GoalProgress, 50)
		assert.Less(t, m.GoalProgress, 90)
	}
}
