package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bloomgate/shipment-engine/forecast"
	"github.com/bloomgate/shipment-engine/store/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleRun() sqlite.RunRecord {
	d := forecast.NewDate(2023, time.November, 20)
	return sqlite.RunRecord{
		Adjusted:  true,
		InputJSON: `{"houses":[{"house_name":"A-1"}]}`,
		Records: []forecast.Shipment{
			{Date: d, Producer: "P1", HouseName: "A-1", Variety: "Pink", Color: "pink", Shape: "single", Boxes: 10},
			{Date: d.AddDays(2), Producer: "P1", HouseName: "A-1", Variety: "Pink", Color: "pink", Shape: "single", Boxes: 20},
			{Date: d.AddDays(2), Producer: "P1", HouseName: "B-2", Variety: "White", Color: "white", Shape: "double", Boxes: 5},
		},
	}
}

func TestSaveRun_AssignsIDAndRoundTrips(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.SaveRun(ctx, sampleRun())
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := store.GetRun(ctx, id)
	require.NoError(t, err)

	assert.True(t, got.Adjusted)
	assert.JSONEq(t, `{"houses":[{"house_name":"A-1"}]}`, got.InputJSON)
	require.Len(t, got.Records, 3)

	// Ordered by date, then house.
	assert.Equal(t, "A-1", got.Records[0].HouseName)
	assert.Equal(t, "2023-11-20", got.Records[0].Date.String())
	assert.Equal(t, "A-1", got.Records[1].HouseName)
	assert.Equal(t, "B-2", got.Records[2].HouseName)
	assert.Equal(t, 35, forecast.TotalBoxes(got.Records))
}

func TestGetRun_Missing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetRun(context.Background(), "no-such-run")
	require.Error(t, err)
	assert.True(t, errors.Is(err, forecast.ErrRunNotFound))
}

func TestListRuns_NewestFirstWithTotals(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	older := sampleRun()
	older.CreatedAt = time.Date(2023, 11, 1, 9, 0, 0, 0, time.UTC)
	olderID, err := store.SaveRun(ctx, older)
	require.NoError(t, err)

	newer := sampleRun()
	newer.CreatedAt = time.Date(2023, 11, 2, 9, 0, 0, 0, time.UTC)
	newer.Adjusted = false
	newerID, err := store.SaveRun(ctx, newer)
	require.NoError(t, err)

	runs, err := store.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	assert.Equal(t, newerID, runs[0].ID)
	assert.Equal(t, olderID, runs[1].ID)
	assert.Equal(t, 35, runs[0].TotalBoxes)
	assert.Equal(t, 2, runs[0].Houses)
	assert.False(t, runs[0].Adjusted)
	assert.True(t, runs[1].Adjusted)
}
