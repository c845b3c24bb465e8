package market

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtaafundi/fundi-finder/internal/models"
)

func TestCreateUserRoundTrip(t *testing.T) {
	s, _ := setupTestService(t)
	ctx := context.Background()

	created, err := s.CreateUser(ctx, CreateUserInput{
		Name:     "John Mwangi",
		Phone:    "+254712345678",
		Role:     models.RoleHomeowner,
		Location: "Nairobi, Westlands",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := s.GetUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "John Mwangi", got.Name)
	assert.Equal(t, "+254712345678", got.Phone)
	assert.Equal(t, models.RoleHomeowner, got.Role)
	assert.Equal(t, "Nairobi, Westlands", got.Location)
	assert.Equal(t, created.ID, got.ID)
	assert.True(t, created.CreatedAt.Equal(got.CreatedAt))
}

func TestCreateUserValidationAccumulates(t *testing.T) {
	s, _ := setupTestService(t)

	_, err := s.CreateUser(context.Background(), CreateUserInput{
		Phone: "0712",
		Role:  "admin",
	})
	requireKind(t, err, KindValidation)

	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "Validation error", e.Message)
	assert.Contains(t, e.Details, "name is required")
	assert.Contains(t, e.Details, "phone must be a Kenyan number")
	assert.Contains(t, e.Details, "role must be one of: homeowner, fundi")
	assert.Contains(t, e.Details, "location is required")
}

func TestCreateUserDuplicatePhone(t *testing.T) {
	s, _ := setupTestService(t)
	ctx := context.Background()

	in := CreateUserInput{Name: "Peter", Phone: "0734567890", Role: models.RoleFundi, Location: "Kibera"}
	_, err := s.CreateUser(ctx, in)
	require.NoError(t, err)

	in.Name = "Someone else"
	_, err = s.CreateUser(ctx, in)
	requireKind(t, err, KindConflict)
	assert.EqualError(t, err, "Phone number already registered")
}

func TestUpdateUser(t *testing.T) {
	s, _ := setupTestService(t)
	ctx := context.Background()
	a := createUser(t, s, "Mary", models.RoleHomeowner)
	b := createUser(t, s, "Grace", models.RoleFundi)

	t.Run("same phone is not a conflict", func(t *testing.T) {
		u, err := s.UpdateUser(ctx, a.ID, UpdateUserInput{Phone: ptr(a.Phone), Location: ptr("Karen")})
		require.NoError(t, err)
		assert.Equal(t, "Karen", u.Location)
		assert.Equal(t, "Mary", u.Name)
	})

	t.Run("taken phone", func(t *testing.T) {
		_, err := s.UpdateUser(ctx, a.ID, UpdateUserInput{Phone: ptr(b.Phone)})
		requireKind(t, err, KindConflict)
	})

	t.Run("empty name rejected", func(t *testing.T) {
		_, err := s.UpdateUser(ctx, a.ID, UpdateUserInput{Name: ptr("")})
		requireKind(t, err, KindValidation)
		assert.Contains(t, err.Error(), "name cannot be empty")
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := s.UpdateUser(ctx, 9999, UpdateUserInput{Name: ptr("x")})
		requireKind(t, err, KindNotFound)
		assert.EqualError(t, err, "User not found")
	})
}

func TestDeleteUserCascades(t *testing.T) {
	s, _ := setupTestService(t)
	ctx := context.Background()

	h := createUser(t, s, "Homeowner", models.RoleHomeowner)
	f := createUser(t, s, "Fundi", models.RoleFundi)
	other := createUser(t, s, "Other homeowner", models.RoleHomeowner)

	job := createJob(t, s, h.ID, 2000)
	createQuote(t, s, job.ID, f.ID, 1500)
	closeJob(t, s, job.ID)
	_, err := s.CreateReview(ctx, CreateReviewInput{ReviewerID: f.ID, RevieweeID: h.ID, JobID: job.ID, Rating: ptr(4)})
	require.NoError(t, err)

	otherJob := createJob(t, s, other.ID, 3000)
	createQuote(t, s, otherJob.ID, f.ID, 2500)

	require.NoError(t, s.DeleteUser(ctx, h.ID))

	_, err = s.GetUser(ctx, h.ID)
	requireKind(t, err, KindNotFound)
	_, err = s.GetJob(ctx, job.ID)
	requireKind(t, err, KindNotFound)

	var n int64
	require.NoError(t, s.DB.Model(&models.Review{}).Count(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, s.DB.Model(&models.Quote{}).Where("job_id = ?", job.ID).Count(&n).Error)
	assert.Zero(t, n)

	// the fundi's quote on someone else's job survives
	quotes, err := s.ListQuotes(ctx, otherJob.ID)
	require.NoError(t, err)
	assert.Len(t, quotes, 1)

	require.NoError(t, s.DeleteUser(ctx, f.ID))
	quotes, err = s.ListQuotes(ctx, otherJob.ID)
	require.NoError(t, err)
	assert.Empty(t, quotes)

	requireKind(t, s.DeleteUser(ctx, h.ID), KindNotFound)
}

func TestUserAggregates(t *testing.T) {
	s, _ := setupTestService(t)
	ctx := context.Background()

	h := createUser(t, s, "Homeowner", models.RoleHomeowner)
	f1 := createUser(t, s, "Fundi one", models.RoleFundi)
	f2 := createUser(t, s, "Fundi two", models.RoleFundi)

	j1 := createJob(t, s, h.ID, 1000)
	j2 := createJob(t, s, h.ID, 2000)
	createQuote(t, s, j1.ID, f1.ID, 900)
	createQuote(t, s, j2.ID, f1.ID, 1800)
	createQuote(t, s, j1.ID, f2.ID, 950)
	closeJob(t, s, j1.ID)
	closeJob(t, s, j2.ID)
	for _, r := range []struct {
		job    uint
		rating int
	}{{j1.ID, 5}, {j2.ID, 4}} {
		_, err := s.CreateReview(ctx, CreateReviewInput{ReviewerID: h.ID, RevieweeID: f1.ID, JobID: r.job, Rating: ptr(r.rating)})
		require.NoError(t, err)
	}

	got, err := s.GetUser(ctx, f1.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.JobsCount)
	assert.Equal(t, int64(2), got.QuotesCount)
	assert.InDelta(t, 4.5, got.AverageRating, 0.001)

	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, h.ID, users[0].ID)
	assert.Equal(t, int64(2), users[0].JobsCount)
	assert.Zero(t, users[0].AverageRating)
	assert.Equal(t, int64(1), users[2].QuotesCount)

	job, err := s.GetJob(ctx, j1.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), job.QuotesCount)
	require.NotNil(t, job.User)
	assert.Equal(t, int64(2), job.User.JobsCount)
}
