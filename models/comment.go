package models

import (
	"time"
)

type Comment struct {
	ID        string    `json:"id" gorm:"primarykey"`
	PostID    string    `json:"post_id" gorm:"index;not null"`
	AuthorID  string    `json:"author_id" gorm:"index;not null"`
	Content   string    `json:"content" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}
