package models

import (
	"time"
)

type Review struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	ReviewerID uint    `gorm:"not null;uniqueIndex:idx_reviews_triple;index" json:"reviewer_id"`
	RevieweeID uint    `gorm:"not null;uniqueIndex:idx_reviews_triple;index" json:"reviewee_id"`
	JobID      uint    `gorm:"not null;uniqueIndex:idx_reviews_triple;index" json:"job_id"`
	Rating     int     `gorm:"not null" json:"rating"` // 1-5
	Comment    *string `gorm:"type:text" json:"comment"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`

	// Relations
	Reviewer *User `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
	Reviewee *User `gorm:"foreignKey:RevieweeID" json:"reviewee,omitempty"`
	Job      *Job  `gorm:"foreignKey:JobID" json:"job,omitempty"`
}
