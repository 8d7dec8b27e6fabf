package controller

import (
	"CommunityReportAPI/internal/helper"
	"CommunityReportAPI/internal/service"
	"net/http"
)

type LocationController struct {
	reportService *service.ReportService
}

func NewLocationController(reportService *service.ReportService) *LocationController {
	return &LocationController{
		reportService: reportService,
	}
}

// GetLocationStatus godoc
// @Summary      Location Status
// @Description  Report count and latest report date per (building, location). Locations without reports are absent.
// @Tags         location
// @Produce      json
// @Success      200  {object}  model.LocationStatusListResponse
// @Failure      500  {object}  helper.ResponseError
// @Router       /api/locations/status [get]
func (c *LocationController) GetLocationStatus(w http.ResponseWriter, r *http.Request) {
	resp, err := c.reportService.GetLocationStatus(r.Context())
	if err != nil {
		helper.WriteError(w, err)
		return
	}

	helper.WriteSuccess(w, resp)
}
