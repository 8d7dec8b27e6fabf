package controller

import (
	"CommunityReportAPI/internal/helper"
	"CommunityReportAPI/internal/model"
	"CommunityReportAPI/internal/service"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

const maxJSONBodyBytes = 1 << 20

type ReportController struct {
	reportService *service.ReportService
}

func NewReportController(reportService *service.ReportService) *ReportController {
	return &ReportController{
		reportService: reportService,
	}
}

// CreateReport godoc
// @Summary      Create Report
// @Description  Submit a facility issue. Every invalid field is listed in details.
// @Tags         report
// @Accept       json
// @Produce      json
// @Param        request body model.CreateReportRequest true "Report Request"
// @Success      201  {object}  model.CreateReportResponse
// @Failure      400  {object}  helper.ResponseError
// @Failure      429  {object}  helper.ResponseError
// @Failure      500  {object}  helper.ResponseError
// @Router       /api/reports [post]
func (c *ReportController) CreateReport(w http.ResponseWriter, r *http.Request) {
	var req model.CreateReportRequest
	if err := decodeJSON(w, r, &req); err != nil {
		helper.WriteError(w, err)
		return
	}

	resp, err := c.reportService.CreateReport(r.Context(), req)
	if err != nil {
		helper.WriteError(w, err)
		return
	}

	helper.WriteCreated(w, resp)
}

// ListReports godoc
// @Summary      List Reports
// @Description  All reports, newest first.
// @Tags         report
// @Produce      json
// @Success      200  {array}   model.ReportResponse
// @Failure      500  {object}  helper.ResponseError
// @Router       /api/reports [get]
func (c *ReportController) ListReports(w http.ResponseWriter, r *http.Request) {
	resp, err := c.reportService.ListReports(r.Context())
	if err != nil {
		helper.WriteError(w, err)
		return
	}

	helper.WriteSuccess(w, resp)
}

// GetReport godoc
// @Summary      Get Report
// @Description  A report with its comments, newest comment first.
// @Tags         report
// @Produce      json
// @Param        id path int true "Report ID"
// @Success      200  {object}  model.ReportDetailResponse
// @Failure      400  {object}  helper.ResponseError
// @Failure      404  {object}  helper.ResponseError
// @Failure      500  {object}  helper.ResponseError
// @Router       /api/reports/{id} [get]
func (c *ReportController) GetReport(w http.ResponseWriter, r *http.Request) {
	id, err := helper.ParseReportID(chi.URLParam(r, "id"))
	if err != nil {
		helper.WriteError(w, err)
		return
	}

	resp, err := c.reportService.GetReport(r.Context(), id)
	if err != nil {
		helper.WriteError(w, err)
		return
	}

	helper.WriteSuccess(w, resp)
}

// UpdateReportStatus godoc
// @Summary      Update Report Status
// @Description  Set the status and optionally the improvement text. Omitting improvementText keeps the stored value.
// @Tags         report
// @Accept       json
// @Produce      json
// @Param        id path int true "Report ID"
// @Param        request body model.UpdateReportStatusRequest true "Status Request"
// @Success      200  {object}  model.ReportResponse
// @Failure      400  {object}  helper.ResponseError
// @Failure      404  {object}  helper.ResponseError
// @Failure      500  {object}  helper.ResponseError
// @Router       /api/reports/{id} [patch]
func (c *ReportController) UpdateReportStatus(w http.ResponseWriter, r *http.Request) {
	id, err := helper.ParseReportID(chi.URLParam(r, "id"))
	if err != nil {
		helper.WriteError(w, err)
		return
	}

	var req model.UpdateReportStatusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		helper.WriteError(w, err)
		return
	}

	resp, err := c.reportService.UpdateReportStatus(r.Context(), id, req)
	if err != nil {
		helper.WriteError(w, err)
		return
	}

	helper.WriteSuccess(w, resp)
}

// AddComment godoc
// @Summary      Add Comment
// @Tags         comment
// @Accept       json
// @Produce      json
// @Param        id path int true "Report ID"
// @Param        request body model.CreateCommentRequest true "Comment Request"
// @Success      201  {object}  model.CommentResponse
// @Failure      400  {object}  helper.ResponseError
// @Failure      404  {object}  helper.ResponseError
// @Failure      429  {object}  helper.ResponseError
// @Failure      500  {object}  helper.ResponseError
// @Router       /api/reports/{id}/comments [post]
func (c *ReportController) AddComment(w http.ResponseWriter, r *http.Request) {
	id, err := helper.ParseReportID(chi.URLParam(r, "id"))
	if err != nil {
		helper.WriteError(w, err)
		return
	}

	var req model.CreateCommentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		helper.WriteError(w, err)
		return
	}

	resp, err := c.reportService.AddComment(r.Context(), id, req)
	if err != nil {
		helper.WriteError(w, err)
		return
	}

	helper.WriteCreated(w, resp)
}

// ListComments godoc
// @Summary      List Comments
// @Tags         comment
// @Produce      json
// @Param        id path int true "Report ID"
// @Success      200  {array}   model.CommentResponse
// @Failure      400  {object}  helper.ResponseError
// @Failure      500  {object}  helper.ResponseError
// @Router       /api/reports/{id}/comments [get]
func (c *ReportController) ListComments(w http.ResponseWriter, r *http.Request) {
	id, err := helper.ParseReportID(chi.URLParam(r, "id"))
	if err != nil {
		helper.WriteError(w, err)
		return
	}

	resp, err := c.reportService.ListComments(r.Context(), id)
	if err != nil {
		helper.WriteError(w, err)
		return
	}

	helper.WriteSuccess(w, resp)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return helper.NewBadRequestError("Invalid request body")
	}
	return nil
}
