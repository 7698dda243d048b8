package models

import "time"

type Diary struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	UserID         uint       `json:"-" gorm:"index;not null"`
	Title          string     `json:"title" gorm:"size:255"`
	Content        string     `json:"content" gorm:"type:text;not null"`
	EntryDatetime  time.Time  `json:"entry_datetime" gorm:"index;not null"`
	Edited         bool       `json:"edited" gorm:"not null;default:false"`
	EditedDatetime *time.Time `json:"edited_datetime"`
}
