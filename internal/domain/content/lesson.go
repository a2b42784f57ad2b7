package content

import (
	"time"

	"gorm.io/datatypes"
)

type VideoStatus string

const (
	VideoNone       VideoStatus = "none"
	VideoProcessing VideoStatus = "processing"
	VideoReady      VideoStatus = "ready"
	VideoErrored    VideoStatus = "errored"
)

type Lesson struct {
	ID       string `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ModuleID string `gorm:"type:uuid;not null;index:idx_lessons_module_position,priority:1" json:"module_id"`

	Title string `gorm:"not null" json:"title"`

	// Rich-text body as editor JSON.
	Content datatypes.JSON `json:"content,omitempty"`

	// 1-based, dense within the owning module.
	Position int `gorm:"not null;default:0;index:idx_lessons_module_position,priority:2" json:"position"`

	Published bool `gorm:"not null;default:false" json:"published"`
	IsFree    bool `gorm:"not null;default:false" json:"is_free"`

	MuxAssetID    *string     `gorm:"column:mux_asset_id;index" json:"-"`
	MuxPlaybackID *string     `gorm:"column:mux_playback_id" json:"-"`
	VideoStatus   VideoStatus `gorm:"type:varchar(16);not null;default:'none'" json:"video_status"`
	VideoDuration *int        `json:"video_duration,omitempty"` // seconds

	Assets []Asset `gorm:"constraint:OnDelete:CASCADE;" json:"assets,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
