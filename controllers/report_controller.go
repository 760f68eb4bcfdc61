package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/n8hotnews-a11y/Smart-Frigde/services"
)

type ReportController struct {
	Reports *services.ReportService
	Family  *services.FamilyService
}

func NewReportController(reports *services.ReportService, family *services.FamilyService) *ReportController {
	return &ReportController{Reports: reports, Family: family}
}

// GET /reports — regenerates every member's report. A member whose summary
// failed still shows up, with the fallback text; the endpoint never 500s on
// a partial batch.
func (rc *ReportController) GenerateAll(c *gin.Context) {
	reports := rc.Reports.GenerateAllReports(c.Request.Context(), rc.Family.List())
	c.JSON(http.StatusOK, reports)
}
