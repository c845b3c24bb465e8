package models

import (
	"time"
)

type Role string

const (
	RoleHomeowner Role = "homeowner"
	RoleFundi     Role = "fundi"
)

// internal/models/user.go
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"type:varchar(100);not null" json:"name"`
	Phone    string `gorm:"type:varchar(20);uniqueIndex;not null" json:"phone"`
	Role     Role   `gorm:"type:varchar(20);not null;index" json:"role"`
	Location string `gorm:"type:varchar(100);not null" json:"location"` // e.g. "Nairobi, Kibera"

	CreatedAt time.Time `json:"created_at"`

	// saved_jobs has no endpoints yet, the table is kept so the schema matches production.
	SavedJobs []Job `gorm:"many2many:saved_jobs;" json:"-"`
}
