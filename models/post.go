package models

import (
	"time"
)

type Post struct {
	ID        string    `json:"id" gorm:"primarykey"`
	Title     string    `json:"title" gorm:"not null"`
	Content   string    `json:"content" gorm:"not null"`
	Excerpt   string    `json:"excerpt"`
	Published bool      `json:"published" gorm:"default:false"`
	AuthorID  string    `json:"author_id" gorm:"index;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
