package models

import "time"

type Goal struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	UserID      uint       `json:"-" gorm:"index;not null"`
	Title       string     `json:"title" gorm:"size:255;not null"`
	Description string     `json:"description" gorm:"type:text;not null"`
	IsCompleted bool       `json:"is_completed" gorm:"not null;default:false"`
	TargetDate  *time.Time `json:"target_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at" gorm:"autoUpdateTime:false"`
	CompletedAt *time.Time `json:"completed_at"`
}

// Complete marks the goal done, stamping CompletedAt on the transition only.
func (g *Goal) Complete(now time.Time) {
	if g.IsCompleted {
		return
	}
	g.IsCompleted = true
	g.CompletedAt = &now
}
