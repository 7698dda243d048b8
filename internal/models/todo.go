package models

import "time"

// Recognised priorities. Other values are stored as given.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Column widths, kept in step with the size tags below and on Note and Tag.
const (
	MaxTitleLen    = 255
	MaxPriorityLen = 50
	MaxTagLen      = 50
	// usernames and emails
	MaxNameLen = 255
)

type Todo struct {
	ID                uint       `json:"id" gorm:"primaryKey"`
	UserID            uint       `json:"-" gorm:"index;not null"`
	Title             string     `json:"title" gorm:"size:255;not null"`
	Description       *string    `json:"description" gorm:"type:text"`
	Priority          string     `json:"priority" gorm:"size:50;not null"`
	Status            bool       `json:"status" gorm:"not null;default:false"`
	EntryDatetime     time.Time  `json:"entry_datetime" gorm:"index;not null"`
	Edited            bool       `json:"edited" gorm:"not null;default:false"`
	EditedDatetime    *time.Time `json:"edited_datetime"`
	CompletedDatetime *time.Time `json:"completed_datetime"`
}

// SetStatus flips completion and keeps CompletedDatetime in step with it.
func (t *Todo) SetStatus(done bool, now time.Time) {
	t.Status = done
	if done {
		t.CompletedDatetime = &now
	} else {
		t.CompletedDatetime = nil
	}
}

// MarkEdited stamps the edit flag and time.
func (t *Todo) MarkEdited(now time.Time) {
	t.Edited = true
	t.EditedDatetime = &now
}
