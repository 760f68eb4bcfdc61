package models

// ReportPeriod is the window a nutrition report covers.
type ReportPeriod string

const (
	PeriodWeekly  ReportPeriod = "weekly"
	PeriodMonthly ReportPeriod = "monthly"
)

// NutritionReportData is one member's generated report. Reports are rebuilt
// wholesale on every generation cycle; old ones are replaced, never merged.
type NutritionReportData struct {
	MemberID        string       `json:"memberId"`
	Period          ReportPeriod `json:"period"`
	AverageCalories int          `json:"averageCalories"`
	AverageProtein  int          `json:"averageProtein"`
	AverageCarbs    int          `json:"averageCarbs"`
	AverageFat      int          `json:"averageFat"`
	GoalProgress    int          `json:"goalProgress"` // percentage, 0–100
	Summary         string       `json:"summary"`
}
