package content

import "time"

type Module struct {
	ID          string `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description,omitempty"`

	// 1-based, dense and unique across the course. Maintained by the create,
	// delete and reorder paths; never written outside a transaction.
	Position int `gorm:"not null;default:0;index" json:"position"`

	Published bool `gorm:"not null;default:false" json:"published"`

	Lessons []Lesson `gorm:"constraint:OnDelete:CASCADE;" json:"lessons,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
