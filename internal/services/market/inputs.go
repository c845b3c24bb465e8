package market

import (
	"bytes"
	"encoding/json"

	"github.com/mtaafundi/fundi-finder/internal/models"
)

// NullableString tells an absent JSON field apart from an explicit null.
// Set is false when the key was missing; Value is nil when it was null.
type NullableString struct {
	Set   bool
	Value *string
}

func (n *NullableString) UnmarshalJSON(b []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}

type CreateUserInput struct {
	Name     string      `json:"name" validate:"required,max=100"`
	Phone    string      `json:"phone" validate:"required,kephone"`
	Role     models.Role `json:"role" validate:"required,oneof=homeowner fundi"`
	Location string      `json:"location" validate:"required,max=100"`
}

// UpdateUserInput is a partial update: nil fields are left untouched.
type UpdateUserInput struct {
	Name     *string      `json:"name" validate:"omitempty,min=1,max=100"`
	Phone    *string      `json:"phone" validate:"omitempty,kephone"`
	Role     *models.Role `json:"role" validate:"omitempty,oneof=homeowner fundi"`
	Location *string      `json:"location" validate:"omitempty,min=1,max=100"`
}

type CreateJobInput struct {
	UserID        uint               `json:"user_id" validate:"required"`
	Title         string             `json:"title" validate:"required,max=200"`
	Description   string             `json:"description" validate:"required"`
	Category      models.JobCategory `json:"category" validate:"required,oneof=plumbing electrical painting carpentry masonry roofing gardening cleaning security other"`
	PreferredDate *models.Timestamp  `json:"preferred_date" validate:"required,notpast"`
	Budget        *float64           `json:"budget" validate:"required,gte=100,lte=50000"`
}

type UpdateJobInput struct {
	Title         *string             `json:"title" validate:"omitempty,min=1,max=200"`
	Description   *string             `json:"description" validate:"omitempty,min=1"`
	Category      *models.JobCategory `json:"category" validate:"omitempty,oneof=plumbing electrical painting carpentry masonry roofing gardening cleaning security other"`
	PreferredDate *models.Timestamp   `json:"preferred_date" validate:"omitempty,notpast"`
	Budget        *float64            `json:"budget" validate:"omitempty,gte=100,lte=50000"`
	Status        *models.JobStatus   `json:"status" validate:"omitempty,oneof=open closed"`
}

// JobFilter narrows ListJobs; zero values match everything.
type JobFilter struct {
	Status   string
	Category string
	UserID   *uint
}

type CreateQuoteInput struct {
	JobID   uint     `json:"job_id" validate:"required"`
	UserID  uint     `json:"user_id" validate:"required"`
	Price   *float64 `json:"price" validate:"required,gt=0,lte=100000"`
	Message *string  `json:"message"`
}

// UpdateQuoteInput only exposes the mutable quote fields. A null message
// clears it.
type UpdateQuoteInput struct {
	Price   *float64       `json:"price" validate:"omitempty,gt=0,lte=100000"`
	Message NullableString `json:"message"`
}

type CreateReviewInput struct {
	ReviewerID uint    `json:"reviewer_id" validate:"required"`
	RevieweeID uint    `json:"reviewee_id" validate:"required"`
	JobID      uint    `json:"job_id" validate:"required"`
	Rating     *int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment    *string `json:"comment"`
}

type UpdateReviewInput struct {
	Rating  *int           `json:"rating" validate:"omitempty,gte=1,lte=5"`
	Comment NullableString `json:"comment"`
}
