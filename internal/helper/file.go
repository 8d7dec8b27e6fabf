package helper

import (
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

var extensionByContentType = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/heic": ".heic",
}

// GenerateUploadKey builds an object key under prefix. The original name only
// contributes its extension so user input never reaches the key path.
func GenerateUploadKey(prefix, originalName, contentType string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	if ext == "" {
		ext = extensionByContentType[contentType]
	}
	if ext == "" {
		ext = ".jpg"
	}

	uniqueName := fmt.Sprintf("%d-%s%s", time.Now().UTC().UnixMilli(), uuid.New().String(), ext)

	return path.Join(strings.Trim(prefix, "/"), uniqueName)
}

// DetectFileContentType sniffs the content type from the first bytes of file
// and rewinds it.
func DetectFileContentType(file io.ReadSeeker) (string, error) {
	mtype, err := mimetype.DetectReader(file)
	if err != nil {
		return "", err
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	contentType, _, _ := strings.Cut(mtype.String(), ";")
	return contentType, nil
}
