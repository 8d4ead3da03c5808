package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"mindmate-backend/internal/models"
	"mindmate-backend/internal/storage"
)

// ActivityService owns the append-only per-user activity log. Records are
// validated on the way in, never mutated, and only removed by an explicit
// Clear.
type ActivityService struct {
	store storage.Store
	now   func() time.Time
}

func NewActivityService(store storage.Store) *ActivityService {
	return &ActivityService{store: store, now: time.Now}
}

// Record validates the payload for its kind, appends the new record to the
// identity's sequence and persists the full sequence. On validation failure
// nothing is appended.
func (s *ActivityService) Record(ctx context.Context, identity string, req models.LogActivityRequest) (*models.ActivityRecord, error) {
	fieldErrors := make(map[string]string)

	rec := models.ActivityRecord{Kind: req.Kind}

	switch req.Kind {
	case models.KindExercise:
		if req.Exercise == nil {
			fieldErrors["exercise"] = "Exercise payload is required"
			break
		}
		p := *req.Exercise
		if p.ExerciseType == "" {
			fieldErrors["exercise_type"] = "Exercise type is required"
		}
		if p.DurationMinutes < 0 {
			fieldErrors["duration_minutes"] = "Duration must not be negative"
		}
		if p.Intensity < 1 || p.Intensity > 10 {
			fieldErrors["intensity"] = "Intensity must be between 1 and 10"
		}
		rec.Exercise = &p
	case models.KindWork:
		if req.Work == nil {
			fieldErrors["work"] = "Work payload is required"
			break
		}
		p := *req.Work
		if p.Hours < 0 {
			fieldErrors["hours"] = "Hours must not be negative"
		}
		if p.Stress < 1 || p.Stress > 5 {
			fieldErrors["stress"] = "Stress must be between 1 and 5"
		}
		if p.Productivity < 1 || p.Productivity > 5 {
			fieldErrors["productivity"] = "Productivity must be between 1 and 5"
		}
		rec.Work = &p
	case models.KindWellness:
		if req.Wellness == nil {
			fieldErrors["wellness"] = "Wellness payload is required"
			break
		}
		p := *req.Wellness
		if p.SleepHours < 0 {
			fieldErrors["sleep_hours"] = "Sleep hours must not be negative"
		}
		if p.SleepQuality < 1 || p.SleepQuality > 5 {
			fieldErrors["sleep_quality"] = "Sleep quality must be between 1 and 5"
		}
		if p.Mood < 1 || p.Mood > 5 {
			fieldErrors["mood"] = "Mood must be between 1 and 5"
		}
		rec.Wellness = &p
	default:
		fieldErrors["kind"] = "Kind must be exercise, work or wellness"
	}

	if len(fieldErrors) > 0 {
		return nil, &ValidationError{Fields: fieldErrors}
	}

	now := s.now()
	rec.ID = now.UnixMilli()
	rec.CreatedAt = now
	rec.CalendarDate = now.Format(models.CalendarDateLayout)

	records, err := s.Load(ctx, identity)
	if err != nil {
		return nil, err
	}
	records = append(records, rec)

	data, err := json.Marshal(records)
	if err != nil {
		return nil, err
	}
	if err := s.store.Set(ctx, storage.Key(storage.CategoryActivities, identity), string(data)); err != nil {
		return nil, err
	}

	return &rec, nil
}

// Load restores the identity's activity sequence. Absent or unparseable
// storage yields an empty sequence; only backend failures propagate.
func (s *ActivityService) Load(ctx context.Context, identity string) ([]models.ActivityRecord, error) {
	key := storage.Key(storage.CategoryActivities, identity)
	raw, ok, err := s.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var records []models.ActivityRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		log.Printf("activity store: %v", &StorageError{Key: key, Err: err})
		return nil, nil
	}
	return records, nil
}

// Clear empties the identity's activity sequence.
func (s *ActivityService) Clear(ctx context.Context, identity string) error {
	return s.store.Delete(ctx, storage.Key(storage.CategoryActivities, identity))
}
