package model

import "mime/multipart"

type UploadPhotoRequest struct {
	File *multipart.FileHeader `form:"photo" validate:"required"`
}

type PresignUploadRequest struct {
	FileName string `form:"fileName" validate:"required,notblank,max=255"`
	FileType string `form:"fileType" validate:"required"`
}

type PresignUploadResponse struct {
	URL       string `json:"url"`
	PublicURL string `json:"publicUrl"`
	Key       string `json:"key"`
	ExpiresAt string `json:"expiresAt"`
}

type UploadPhotoResponse struct {
	URL string `json:"url"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
