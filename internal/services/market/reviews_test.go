package market

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtaafundi/fundi-finder/internal/models"
)

func TestHireAndReviewScenario(t *testing.T) {
	s, n := setupTestService(t)
	ctx := context.Background()

	h, err := s.CreateUser(ctx, CreateUserInput{Name: "John Mwangi", Phone: "+254712345678", Role: models.RoleHomeowner, Location: "Nairobi, Westlands"})
	require.NoError(t, err)
	f, err := s.CreateUser(ctx, CreateUserInput{Name: "Peter Otieno", Phone: "0734567890", Role: models.RoleFundi, Location: "Nairobi, Kibera"})
	require.NoError(t, err)

	job := createJob(t, s, h.ID, 2000)
	quote := createQuote(t, s, job.ID, f.ID, 1800)

	_, err = s.CreateReview(ctx, CreateReviewInput{ReviewerID: h.ID, RevieweeID: f.ID, JobID: job.ID, Rating: ptr(5)})
	requireKind(t, err, KindForbidden)
	assert.EqualError(t, err, "Can only review completed (closed) jobs")

	closeJob(t, s, job.ID)

	review, err := s.CreateReview(ctx, CreateReviewInput{
		ReviewerID: h.ID,
		RevieweeID: f.ID,
		JobID:      job.ID,
		Rating:     ptr(5),
		Comment:    ptr("Fast and tidy"),
	})
	require.NoError(t, err)
	assert.Equal(t, 5, review.Rating)
	require.NotNil(t, review.Reviewee)
	assert.InDelta(t, 5.0, review.Reviewee.AverageRating, 0.001)

	_, err = s.CreateReview(ctx, CreateReviewInput{ReviewerID: h.ID, RevieweeID: f.ID, JobID: job.ID, Rating: ptr(4)})
	requireKind(t, err, KindConflict)
	assert.EqualError(t, err, "Review already exists for this job")

	received, err := s.ListReviews(ctx, f.ID)
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, review.ID, received[0].ID)

	var got []string
	for _, e := range n.sent() {
		got = append(got, e.Event)
	}
	assert.Equal(t, []string{EventQuoteSubmitted, EventJobClosed, EventReviewReceived}, got)
	last := n.sent()[2]
	assert.Equal(t, f.ID, last.UserID)
	assert.Equal(t, quote.UserID, last.UserID)
}

func TestCreateReviewRules(t *testing.T) {
	s, _ := setupTestService(t)
	ctx := context.Background()
	h := createUser(t, s, "Homeowner", models.RoleHomeowner)
	h2 := createUser(t, s, "Neighbour", models.RoleHomeowner)
	f := createUser(t, s, "Fundi", models.RoleFundi)
	job := createJob(t, s, h.ID, 2000)
	closeJob(t, s, job.ID)

	t.Run("rating bounds", func(t *testing.T) {
		for _, r := range []int{0, 6, -1} {
			_, err := s.CreateReview(ctx, CreateReviewInput{ReviewerID: h.ID, RevieweeID: f.ID, JobID: job.ID, Rating: ptr(r)})
			requireKind(t, err, KindValidation)
		}
	})

	t.Run("rating required", func(t *testing.T) {
		_, err := s.CreateReview(ctx, CreateReviewInput{ReviewerID: h.ID, RevieweeID: f.ID, JobID: job.ID})
		requireKind(t, err, KindValidation)
		assert.Contains(t, err.Error(), "rating is required")
	})

	t.Run("same role", func(t *testing.T) {
		_, err := s.CreateReview(ctx, CreateReviewInput{ReviewerID: h.ID, RevieweeID: h2.ID, JobID: job.ID, Rating: ptr(3)})
		requireKind(t, err, KindForbidden)
		assert.EqualError(t, err, "Reviewer and reviewee must have different roles")
	})

	t.Run("unknown reviewer", func(t *testing.T) {
		_, err := s.CreateReview(ctx, CreateReviewInput{ReviewerID: 500, RevieweeID: f.ID, JobID: job.ID, Rating: ptr(3)})
		requireKind(t, err, KindNotFound)
		assert.EqualError(t, err, "Reviewer not found")
	})

	t.Run("unknown reviewee", func(t *testing.T) {
		_, err := s.CreateReview(ctx, CreateReviewInput{ReviewerID: h.ID, RevieweeID: 500, JobID: job.ID, Rating: ptr(3)})
		requireKind(t, err, KindNotFound)
		assert.EqualError(t, err, "Reviewee not found")
	})

	t.Run("both directions are allowed", func(t *testing.T) {
		_, err := s.CreateReview(ctx, CreateReviewInput{ReviewerID: h.ID, RevieweeID: f.ID, JobID: job.ID, Rating: ptr(4)})
		require.NoError(t, err)
		_, err = s.CreateReview(ctx, CreateReviewInput{ReviewerID: f.ID, RevieweeID: h.ID, JobID: job.ID, Rating: ptr(5)})
		require.NoError(t, err)
	})

	t.Run("reviewed job cannot be deleted", func(t *testing.T) {
		requireKind(t, s.DeleteJob(ctx, job.ID), KindConflict)
	})
}

func TestUpdateAndDeleteReview(t *testing.T) {
	s, _ := setupTestService(t)
	ctx := context.Background()
	h := createUser(t, s, "Homeowner", models.RoleHomeowner)
	f := createUser(t, s, "Fundi", models.RoleFundi)
	job := createJob(t, s, h.ID, 2000)
	closeJob(t, s, job.ID)

	r, err := s.CreateReview(ctx, CreateReviewInput{ReviewerID: h.ID, RevieweeID: f.ID, JobID: job.ID, Rating: ptr(2)})
	require.NoError(t, err)
	assert.Nil(t, r.Comment)

	got, err := s.UpdateReview(ctx, r.ID, UpdateReviewInput{Rating: ptr(4), Comment: setText("Came back and fixed it")})
	require.NoError(t, err)
	assert.Equal(t, 4, got.Rating)
	require.NotNil(t, got.Comment)
	assert.Equal(t, "Came back and fixed it", *got.Comment)
	assert.InDelta(t, 4.0, got.Reviewee.AverageRating, 0.001)

	got, err = s.UpdateReview(ctx, r.ID, UpdateReviewInput{Comment: NullableString{Set: true}})
	require.NoError(t, err)
	assert.Nil(t, got.Comment)
	assert.Equal(t, 4, got.Rating)

	_, err = s.UpdateReview(ctx, r.ID, UpdateReviewInput{Rating: ptr(9)})
	requireKind(t, err, KindValidation)

	require.NoError(t, s.DeleteReview(ctx, r.ID))
	_, err = s.GetReview(ctx, r.ID)
	requireKind(t, err, KindNotFound)

	_, err = s.ListReviews(ctx, 12345)
	requireKind(t, err, KindNotFound)
}
