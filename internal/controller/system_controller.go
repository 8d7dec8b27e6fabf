package controller

import (
	"CommunityReportAPI/internal/helper"
	"CommunityReportAPI/internal/service"
	"net/http"
)

type SystemController struct {
	reportService *service.ReportService
}

func NewSystemController(reportService *service.ReportService) *SystemController {
	return &SystemController{
		reportService: reportService,
	}
}

// Health godoc
// @Summary      Health Check
// @Tags         system
// @Produce      json
// @Success      200  {object}  model.HealthResponse
// @Router       /api/health [get]
func (c *SystemController) Health(w http.ResponseWriter, r *http.Request) {
	helper.WriteSuccess(w, c.reportService.Health(r.Context()))
}

// Meta godoc
// @Summary      Reference Data
// @Description  Closed sets the validator enforces, for building select lists.
// @Tags         system
// @Produce      json
// @Success      200  {object}  model.MetaResponse
// @Router       /api/meta [get]
func (c *SystemController) Meta(w http.ResponseWriter, r *http.Request) {
	helper.WriteSuccess(w, c.reportService.Meta())
}
