package models

import "time"

// Tag is shared by every user's notes; Name is stored normalised.
type Tag struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:50;uniqueIndex;not null"`
}

type Note struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	UserID     uint       `json:"-" gorm:"index;not null"`
	Title      string     `json:"title" gorm:"size:255;not null"`
	Content    string     `json:"content" gorm:"type:text;not null"`
	IsPinned   bool       `json:"is_pinned" gorm:"not null;default:false"`
	IsArchived bool       `json:"is_archived" gorm:"not null;default:false"`
	CreatedAt  time.Time  `json:"created_at" gorm:"index"`
	EditedAt   *time.Time `json:"edited_at"`
	Tags       []Tag      `json:"tags" gorm:"many2many:note_tags"`
}
