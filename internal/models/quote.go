package models

import (
	"time"
)

// Quote is a fundi's priced offer on an open job. One per (job, fundi).
type Quote struct {
	ID      uint    `gorm:"primaryKey" json:"id"`
	JobID   uint    `gorm:"not null;uniqueIndex:idx_quotes_job_fundi" json:"job_id"`
	UserID  uint    `gorm:"not null;uniqueIndex:idx_quotes_job_fundi;index" json:"user_id"` // fundi
	Price   float64 `gorm:"not null" json:"price"`
	Message *string `gorm:"type:text" json:"message"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`

	// Relations
	Job   *Job  `gorm:"foreignKey:JobID" json:"job,omitempty"`
	Fundi *User `gorm:"foreignKey:UserID" json:"fundi,omitempty"`
}
