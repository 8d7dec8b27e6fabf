package service

import (
	"CommunityReportAPI/internal/config"
	"CommunityReportAPI/internal/constant"
	"CommunityReportAPI/internal/helper"
	"CommunityReportAPI/internal/model"
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngBytes = append([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}, make([]byte, 64)...)

func newTestUploadService(store BlobStore) *UploadService {
	s := NewUploadService(store, &config.AppConfig{S3UploadPrefix: "uploads", S3PresignExpirySeconds: 300}, config.NewValidator(), nil)
	s.now = func() time.Time { return fixedNow }
	return s
}

func newFileHeader(t *testing.T, name string, data []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(constant.UploadFormField, name)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/uploads", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))
	t.Cleanup(func() { _ = req.MultipartForm.RemoveAll() })

	return req.MultipartForm.File[constant.UploadFormField][0]
}

func TestUploadPhoto(t *testing.T) {
	store := newFakeBlobStore()
	s := newTestUploadService(store)

	resp, err := s.UploadPhoto(context.Background(), model.UploadPhotoRequest{File: newFileHeader(t, "IMG_0001.PNG", pngBytes)})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(resp.URL, "https://cdn.example.com/uploads/"), resp.URL)
	assert.True(t, strings.HasSuffix(resp.URL, ".png"), resp.URL)

	require.Len(t, store.objects, 1)
	for key, data := range store.objects {
		assert.Equal(t, pngBytes, data)
		assert.Equal(t, "image/png", store.types[key])
	}
}

func TestUploadPhotoRejectsDisallowedType(t *testing.T) {
	store := newFakeBlobStore()
	s := newTestUploadService(store)

	_, err := s.UploadPhoto(context.Background(), model.UploadPhotoRequest{File: newFileHeader(t, "notes.png", []byte("%PDF-1.7 not an image"))})
	appErr := requireKind(t, err, helper.KindValidation)
	require.Len(t, appErr.Details, 1)
	assert.Contains(t, appErr.Details[0], "application/pdf")
	assert.Empty(t, store.objects)
}

func TestUploadPhotoRejectsOversize(t *testing.T) {
	store := newFakeBlobStore()
	s := newTestUploadService(store)

	header := newFileHeader(t, "big.png", pngBytes)
	header.Size = constant.MaxUploadBytes + 1

	_, err := s.UploadPhoto(context.Background(), model.UploadPhotoRequest{File: header})
	appErr := requireKind(t, err, helper.KindValidation)
	assert.Equal(t, []string{"photo must be at most 10 MiB"}, appErr.Details)
	assert.Empty(t, store.objects)
}

func TestUploadPhotoMissingFile(t *testing.T) {
	s := newTestUploadService(newFakeBlobStore())

	_, err := s.UploadPhoto(context.Background(), model.UploadPhotoRequest{})
	appErr := requireKind(t, err, helper.KindValidation)
	assert.Equal(t, []string{"photo is required"}, appErr.Details)
}

func TestUploadPhotoStorageFailure(t *testing.T) {
	store := newFakeBlobStore()
	store.storeErr = errors.New("AccessDenied: bucket policy")
	s := newTestUploadService(store)

	_, err := s.UploadPhoto(context.Background(), model.UploadPhotoRequest{File: newFileHeader(t, "a.png", pngBytes)})
	appErr := requireKind(t, err, helper.KindUpload)
	assert.Equal(t, http.StatusInternalServerError, appErr.Code)
	assert.Equal(t, helper.MsgUploadFailed, appErr.Message)
}

func TestPresignUpload(t *testing.T) {
	s := newTestUploadService(newFakeBlobStore())

	resp, err := s.PresignUpload(context.Background(), model.PresignUploadRequest{FileName: "leak.HEIC", FileType: "image/heic"})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(resp.Key, "uploads/"), resp.Key)
	assert.True(t, strings.HasSuffix(resp.Key, ".heic"), resp.Key)
	assert.Equal(t, "https://cdn.example.com/"+resp.Key, resp.PublicURL)
	assert.Contains(t, resp.URL, resp.Key)
	assert.Contains(t, resp.URL, "5m0s")
	assert.Equal(t, "2024-07-01T08:05:00.000Z", resp.ExpiresAt)
}

func TestPresignUploadValidation(t *testing.T) {
	s := newTestUploadService(newFakeBlobStore())
	ctx := context.Background()

	_, err := s.PresignUpload(ctx, model.PresignUploadRequest{})
	appErr := requireKind(t, err, helper.KindValidation)
	assert.Equal(t, []string{"fileName is required", "fileType is required"}, appErr.Details)

	_, err = s.PresignUpload(ctx, model.PresignUploadRequest{FileName: "a.gif", FileType: "image/gif"})
	requireKind(t, err, helper.KindValidation)
}

func TestPresignUploadStorageFailure(t *testing.T) {
	store := newFakeBlobStore()
	store.storeErr = errors.New("no credentials")
	s := newTestUploadService(store)

	_, err := s.PresignUpload(context.Background(), model.PresignUploadRequest{FileName: "a.jpg", FileType: "image/jpeg"})
	requireKind(t, err, helper.KindUpload)
}
