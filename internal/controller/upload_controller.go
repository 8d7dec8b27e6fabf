package controller

import (
	"CommunityReportAPI/internal/constant"
	"CommunityReportAPI/internal/helper"
	"CommunityReportAPI/internal/model"
	"CommunityReportAPI/internal/service"
	"errors"
	"log/slog"
	"net/http"
)

// multipart overhead on top of the file itself
const uploadFormSlack = 1 << 20

type UploadController struct {
	uploadService *service.UploadService
}

func NewUploadController(uploadService *service.UploadService) *UploadController {
	return &UploadController{
		uploadService: uploadService,
	}
}

// UploadPhoto godoc
// @Summary      Upload Photo
// @Description  Upload one report photo (JPEG, PNG or HEIC, at most 10 MiB) and get back its public URL.
// @Tags         upload
// @Accept       multipart/form-data
// @Produce      json
// @Param        photo formData file true "Photo to upload"
// @Success      201  {object}  model.UploadPhotoResponse
// @Failure      400  {object}  helper.ResponseError
// @Failure      429  {object}  helper.ResponseError
// @Failure      500  {object}  helper.ResponseError
// @Router       /api/uploads [post]
func (c *UploadController) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, constant.MaxUploadBytes+uploadFormSlack)

	file, header, err := r.FormFile(constant.UploadFormField)
	if err != nil {
		slog.Warn("Error retrieving file", "error", err)
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			helper.WriteError(w, helper.NewValidationError([]string{"photo must be at most 10 MiB"}))
			return
		}
		helper.WriteError(w, helper.NewValidationError([]string{"photo is required"}))
		return
	}
	defer file.Close()

	resp, err := c.uploadService.UploadPhoto(r.Context(), model.UploadPhotoRequest{File: header})
	if err != nil {
		helper.WriteError(w, err)
		return
	}

	helper.WriteCreated(w, resp)
}

// PresignUpload godoc
// @Summary      Presign Upload
// @Description  Get a short-lived URL to PUT a photo directly to object storage.
// @Tags         upload
// @Produce      json
// @Param        fileName query string true "Original file name"
// @Param        fileType query string true "Content type"
// @Success      200  {object}  model.PresignUploadResponse
// @Failure      400  {object}  helper.ResponseError
// @Failure      429  {object}  helper.ResponseError
// @Failure      500  {object}  helper.ResponseError
// @Router       /api/uploads/presign [get]
func (c *UploadController) PresignUpload(w http.ResponseWriter, r *http.Request) {
	req := model.PresignUploadRequest{
		FileName: r.URL.Query().Get("fileName"),
		FileType: r.URL.Query().Get("fileType"),
	}

	resp, err := c.uploadService.PresignUpload(r.Context(), req)
	if err != nil {
		helper.WriteError(w, err)
		return
	}

	helper.WriteSuccess(w, resp)
}
