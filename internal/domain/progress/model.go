package progress

import "time"

type LessonProgress struct {
	ID       uint   `gorm:"primaryKey"`
	UserID   uint   `gorm:"not null;uniqueIndex:idx_progress_user_lesson,priority:1"`
	LessonID string `gorm:"type:uuid;not null;uniqueIndex:idx_progress_user_lesson,priority:2"`

	CompletedAt time.Time
}

type ModuleSummary struct {
	ModuleID  string `json:"module_id"`
	Title     string `json:"title"`
	Position  int    `json:"position"`
	Total     int    `json:"total_lessons"`
	Completed int    `json:"completed_lessons"`
}

func (s ModuleSummary) Percent() int {
	if s.Total == 0 {
		return 0
	}
	return s.Completed * 100 / s.Total
}

func (s ModuleSummary) Done() bool {
	return s.Total > 0 && s.Completed >= s.Total
}
