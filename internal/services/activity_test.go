package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindmate-backend/internal/models"
	"mindmate-backend/internal/storage"
)

func newTestActivityService(at time.Time) (*ActivityService, *storage.MemoryStore) {
	store := storage.NewMemoryStore()
	svc := NewActivityService(store)
	svc.now = func() time.Time { return at }
	return svc, store
}

func TestRecord_ValidationFailures(t *testing.T) {
	svc, store := newTestActivityService(testNow)
	ctx := context.Background()

	tests := []struct {
		name  string
		req   models.LogActivityRequest
		field string
	}{
		{
			name:  "unknown kind",
			req:   models.LogActivityRequest{Kind: "yoga"},
			field: "kind",
		},
		{
			name:  "missing exercise payload",
			req:   models.LogActivityRequest{Kind: models.KindExercise},
			field: "exercise",
		},
		{
			name: "intensity out of range",
			req: models.LogActivityRequest{
				Kind:     models.KindExercise,
				Exercise: &models.ExercisePayload{ExerciseType: "running", DurationMinutes: 30, Intensity: 11},
			},
			field: "intensity",
		},
		{
			name: "negative hours",
			req: models.LogActivityRequest{
				Kind: models.KindWork,
				Work: &models.WorkPayload{Hours: -1, Stress: 3, Productivity: 3},
			},
			field: "hours",
		},
		{
			name: "mood out of range",
			req: models.LogActivityRequest{
				Kind:     models.KindWellness,
				Wellness: &models.WellnessPayload{SleepHours: 8, SleepQuality: 4, Mood: 6},
			},
			field: "mood",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec, err := svc.Record(ctx, "guest", tc.req)

			require.Nil(t, rec)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tc.field)
		})
	}

	// Failed validation must not write anything.
	_, ok, err := store.Get(ctx, storage.Key(storage.CategoryActivities, "guest"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRecord_AppendsAndRoundTrips(t *testing.T) {
	svc, _ := newTestActivityService(testNow)
	ctx := context.Background()

	first, err := svc.Record(ctx, "amy@example.com", models.LogActivityRequest{
		Kind:     models.KindExercise,
		Exercise: &models.ExercisePayload{ExerciseType: "running", DurationMinutes: 30, Intensity: 6},
	})
	require.NoError(t, err)
	assert.Equal(t, testNow.UnixMilli(), first.ID)
	assert.Equal(t, testNow.Format(models.CalendarDateLayout), first.CalendarDate)

	svc.now = func() time.Time { return testNow.Add(time.Minute) }
	_, err = svc.Record(ctx, "amy@example.com", models.LogActivityRequest{
		Kind:     models.KindWellness,
		Wellness: &models.WellnessPayload{SleepHours: 7.5, SleepQuality: 4, Mood: 4},
	})
	require.NoError(t, err)

	records, err := svc.Load(ctx, "amy@example.com")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, models.KindExercise, records[0].Kind)
	assert.Equal(t, 30, records[0].Exercise.DurationMinutes)
	assert.Equal(t, models.KindWellness, records[1].Kind)
	assert.Equal(t, 7.5, records[1].Wellness.SleepHours)
}

func TestRecord_IdentitiesAreIsolated(t *testing.T) {
	svc, _ := newTestActivityService(testNow)
	ctx := context.Background()

	_, err := svc.Record(ctx, "amy@example.com", models.LogActivityRequest{
		Kind:     models.KindExercise,
		Exercise: &models.ExercisePayload{ExerciseType: "cycling", DurationMinutes: 45, Intensity: 5},
	})
	require.NoError(t, err)

	records, err := svc.Load(ctx, "guest")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestLoad_UnparseableStateYieldsEmpty(t *testing.T) {
	svc, store := newTestActivityService(testNow)
	ctx := context.Background()

	key := storage.Key(storage.CategoryActivities, "guest")
	require.NoError(t, store.Set(ctx, key, "{not json"))

	records, err := svc.Load(ctx, "guest")
	require.NoError(t, err)
	assert.Empty(t, records)

	// A fresh record starts a new sequence over the corrupt state.
	_, err = svc.Record(ctx, "guest", models.LogActivityRequest{
		Kind: models.KindWork,
		Work: &models.WorkPayload{Hours: 8, Stress: 2, Productivity: 4},
	})
	require.NoError(t, err)

	records, err = svc.Load(ctx, "guest")
	require.NoError(t, err)
	require.Len(t, records, 1)
}

func TestClear(t *testing.T) {
	svc, _ := newTestActivityService(testNow)
	ctx := context.Background()

	_, err := svc.Record(ctx, "guest", models.LogActivityRequest{
		Kind:     models.KindExercise,
		Exercise: &models.ExercisePayload{ExerciseType: "yoga", DurationMinutes: 20, Intensity: 3},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx, "guest"))

	records, err := svc.Load(ctx, "guest")
	require.NoError(t, err)
	assert.Empty(t, records)
}
