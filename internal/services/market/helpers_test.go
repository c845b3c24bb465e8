package market

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mtaafundi/fundi-finder/internal/db"
	"github.com/mtaafundi/fundi-finder/internal/models"
)

type sentEvent struct {
	UserID uint
	Event  string
	Data   map[string]interface{}
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []sentEvent
}

func (r *recordingNotifier) Notify(_ context.Context, userID uint, event string, data map[string]interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, sentEvent{UserID: userID, Event: event, Data: data})
}

func (r *recordingNotifier) sent() []sentEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]sentEvent(nil), r.events...)
}

func setupTestService(t *testing.T) (*Service, *recordingNotifier) {
	t.Helper()
	gdb, err := db.Connect("sqlite", "file::memory:", false)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})
	n := &recordingNotifier{}
	return NewService(gdb, n), n
}

func ptr[T any](v T) *T { return &v }

func setText(s string) NullableString { return NullableString{Set: true, Value: &s} }

func future() *models.Timestamp {
	return &models.Timestamp{Time: time.Now().UTC().Add(72 * time.Hour).Truncate(time.Second)}
}

var phoneSeq = 100000000

func nextPhone() string {
	phoneSeq++
	return fmt.Sprintf("0%d", phoneSeq)
}

func createUser(t *testing.T, s *Service, name string, role models.Role) *UserView {
	t.Helper()
	u, err := s.CreateUser(context.Background(), CreateUserInput{
		Name:     name,
		Phone:    nextPhone(),
		Role:     role,
		Location: "Nairobi, Westlands",
	})
	require.NoError(t, err)
	return u
}

func createJob(t *testing.T, s *Service, ownerID uint, budget float64) *JobView {
	t.Helper()
	j, err := s.CreateJob(context.Background(), CreateJobInput{
		UserID:        ownerID,
		Title:         "Fix leaking kitchen sink",
		Description:   "The sink drips all night.",
		Category:      models.CategoryPlumbing,
		PreferredDate: future(),
		Budget:        ptr(budget),
	})
	require.NoError(t, err)
	return j
}

func createQuote(t *testing.T, s *Service, jobID, fundiID uint, price float64) *QuoteView {
	t.Helper()
	q, err := s.CreateQuote(context.Background(), CreateQuoteInput{
		JobID:   jobID,
		UserID:  fundiID,
		Price:   ptr(price),
		Message: ptr("I can come tomorrow"),
	})
	require.NoError(t, err)
	return q
}

func closeJob(t *testing.T, s *Service, jobID uint) {
	t.Helper()
	_, err := s.UpdateJob(context.Background(), jobID, UpdateJobInput{Status: ptr(models.JobStatusClosed)})
	require.NoError(t, err)
}

func requireKind(t *testing.T, err error, kind Kind) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, kind, KindOf(err), "error: %v", err)
}
