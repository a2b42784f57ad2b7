package content

import "time"

// Asset is a downloadable file attached to a lesson (slides, source code,
// worksheets). The bytes live in object storage; this row carries metadata
// and the storage key.
type Asset struct {
	ID       string `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	LessonID string `gorm:"type:uuid;not null;index" json:"lesson_id"`

	Filename  string `gorm:"not null" json:"filename"`
	ObjectKey string `gorm:"not null;uniqueIndex:idx_assets_object_key" json:"-"`
	Size      int64  `json:"size"`
	MimeType  string `json:"mime_type"`

	CreatedAt time.Time `json:"created_at"`
}

var allowedAssetMimeTypes = map[string]bool{
	"application/pdf":    true,
	"application/zip":    true,
	"text/plain":         true,
	"text/markdown":      true,
	"image/png":          true,
	"image/jpeg":         true,
	"image/svg+xml":      true,
	"application/json":   true,
	"text/csv":           true,
	"application/x-zip-compressed": true,
}

func IsAllowedAssetType(mimeType string) bool {
	return allowedAssetMimeTypes[mimeType]
}
