package constant

import "slices"

const (
	MaxPhotosPerReport    = 4
	MaxUploadBytes        = 10 << 20
	MaxDescriptionLength  = 500
	MaxCommentLength      = 500
	ReportCodePrefix      = "CR"
	UploadFormField       = "photo"
	DefaultUploadPrefix   = "uploads"
	DefaultPresignSeconds = 300
)

const (
	ContentTypeJPEG = "image/jpeg"
	ContentTypePNG  = "image/png"
	ContentTypeHEIC = "image/heic"
)

var AllowedContentTypes = []string{
	ContentTypeJPEG,
	ContentTypePNG,
	ContentTypeHEIC,
}

func IsAllowedContentType(contentType string) bool {
	return slices.Contains(AllowedContentTypes, contentType)
}
