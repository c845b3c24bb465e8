package validation

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtaafundi/fundi-finder/internal/models"
)

type sample struct {
	Name   string            `json:"name" validate:"required,max=5"`
	Phone  string            `json:"phone" validate:"required,kephone"`
	Budget *float64          `json:"budget" validate:"required,gte=100,lte=50000"`
	When   *models.Timestamp `json:"preferred_date" validate:"required,notpast"`
	Role   *models.Role      `json:"role" validate:"omitempty,oneof=homeowner fundi"`
}

func ptr[T any](v T) *T { return &v }

func TestStructAccumulatesEveryViolation(t *testing.T) {
	s := sample{
		Name:   "too long name",
		Phone:  "12345",
		Budget: ptr(99.0),
		When:   &models.Timestamp{Time: time.Now().Add(-time.Hour)},
		Role:   ptr(models.Role("admin")),
	}
	err := Struct(s)
	require.Error(t, err)

	var verrs Errors
	require.True(t, errors.As(err, &verrs))
	assert.Len(t, verrs, 5)
	assert.Contains(t, verrs, "name must be at most 5 characters")
	assert.Contains(t, verrs, "budget must be greater than or equal to 100")
	assert.Contains(t, verrs, "preferred_date cannot be in the past")
	assert.Contains(t, verrs, "role must be one of: homeowner, fundi")
	assert.Contains(t, err.Error(), "; ")
}

func TestStructMissingRequired(t *testing.T) {
	err := Struct(sample{})
	require.Error(t, err)
	var verrs Errors
	require.True(t, errors.As(err, &verrs))
	assert.ElementsMatch(t, Errors{
		"name is required",
		"phone is required",
		"budget is required",
		"preferred_date is required",
	}, verrs)
}

func TestStructOK(t *testing.T) {
	s := sample{
		Name:   "Amina",
		Phone:  "0712345678",
		Budget: ptr(50000.0),
		When:   &models.Timestamp{Time: time.Now().Add(24 * time.Hour)},
	}
	assert.NoError(t, Struct(s))
}

func TestNotPastUsesClock(t *testing.T) {
	fixed := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	old := Now
	Now = func() time.Time { return fixed }
	t.Cleanup(func() { Now = old })

	s := sample{
		Name:   "Amina",
		Phone:  "0712345678",
		Budget: ptr(100.0),
		When:   &models.Timestamp{Time: fixed},
	}
	assert.NoError(t, Struct(s))

	s.When = &models.Timestamp{Time: fixed.Add(-time.Second)}
	assert.EqualError(t, Struct(s), "preferred_date cannot be in the past")
}
