package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtaafundi/fundi-finder/internal/db"
	"github.com/mtaafundi/fundi-finder/internal/models"
	"github.com/mtaafundi/fundi-finder/internal/services/market"
)

func TestRunAndReset(t *testing.T) {
	gdb, err := db.Connect("sqlite", "file::memory:", false)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	svc := market.NewService(gdb, nil)
	ctx := context.Background()

	sum, err := Run(ctx, svc)
	require.NoError(t, err)
	assert.Len(t, sum.Users, 5)
	assert.Len(t, sum.Jobs, 4)
	assert.Len(t, sum.Quotes, 5)
	assert.Len(t, sum.Reviews, 3)
	assert.Equal(t, models.JobStatusClosed, sum.Jobs[0].Status)
	assert.Equal(t, models.JobStatusOpen, sum.Jobs[1].Status)

	peter, err := svc.GetUser(ctx, sum.Users[2].ID)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, peter.AverageRating, 0.001)
	assert.Equal(t, int64(2), peter.QuotesCount)

	// seeding twice collides on the phone numbers
	_, err = Run(ctx, svc)
	assert.Equal(t, market.KindConflict, market.KindOf(err))

	require.NoError(t, Reset(gdb))
	all, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	_, err = Run(ctx, svc)
	require.NoError(t, err)
}
