package services

import (
	"context"
	"log"
	"math/rand"
	"sync"

	"github.com/n8hotnews-a11y/Smart-Frigde/models"
)

// FallbackReportSummary stands in when the AI summary for a member fails.
const FallbackReportSummary = "Không thể tạo nhận xét từ AI do lỗi."

// ReportMetrics are the numeric fields of a report.
type ReportMetrics struct {
	AverageCalories int
	AverageProtein  int
	AverageCarbs    int
	AverageFat      int
	GoalProgress    int
}

// MetricsProvider supplies the numeric half of a report. There is no real
// meal-logging source yet, so the default implementation simulates values;
// keeping it behind an interface makes that explicit and swappable.
type MetricsProvider interface {
	MetricsFor(member models.FamilyMember) ReportMetrics
}

// SimulatedMetricsProvider fabricates plausible averages. It is a stand-in,
// not telemetry.
type SimulatedMetricsProvider struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewSimulatedMetricsProvider(seed int64) *SimulatedMetricsProvider {
	return &SimulatedMetricsProvider{rnd: rand.New(rand.NewSource(seed))}
}

func (p *SimulatedMetricsProvider) MetricsFor(models.FamilyMember) ReportMetrics {
	p.mu.Lock()
	defer p.mu.Unlock()
	return ReportMetrics{
		AverageCalories: p.rnd.Intn(500) + 1800,
		AverageProtein:  p.rnd.Intn(30) + 70,
		AverageCarbs:    p.rnd.Intn(50) + 200,
		AverageFat:      p.rnd.Intn(20) + 60,
		GoalProgress:    p.rnd.Intn(40) + 50,
	}
}

// Summarizer is the free-text side of the AI endpoint.
type Summarizer interface {
	GenerateReportSummary(ctx context.Context, member models.FamilyMember) (string, error)
}

// ReportService builds the weekly nutrition report for every member.
type ReportService struct {
	ai      Summarizer
	metrics MetricsProvider
}

func NewReportService(ai Summarizer, metrics MetricsProvider) *ReportService {
	return &ReportService{ai: ai, metrics: metrics}
}

// GenerateAllReports fans out one summary call per member and joins on all
// of them. Result order matches the input roster, not completion order. A
// failed member gets the fallback summary and zeroed metrics; the rest of
// the batch is unaffected.
func (s *ReportService) GenerateAllReports(ctx context.Context, members []models.FamilyMember) []models.NutritionReportData {
	results := make([]models.NutritionReportData, len(members))

	var wg sync.WaitGroup
	for i, member := range members {
		wg.Add(1)
		go func(i int, member models.FamilyMember) {
			defer wg.Done()

			report := models.NutritionReportData{
				MemberID: member.ID,
				Period:   models.PeriodWeekly,
			}

			summary, err := s.ai.GenerateReportSummary(ctx, member)
			if err != nil {
				log.Printf("report for %s failed: %v", member.Name, err)
				report.Summary = FallbackReportSummary
				results[i] = report
				return
			}

			m := s.metrics.MetricsFor(member)
			report.AverageCalories = m.AverageCalories
			report.AverageProtein = m.AverageProtein
			report.AverageCarbs = m.AverageCarbs
			report.AverageFat = m.AverageFat
			report.GoalProgress = m.GoalProgress
			report.Summary = summary
			results[i] = report
		}(i, member)
	}
	wg.Wait()

	return results
}
