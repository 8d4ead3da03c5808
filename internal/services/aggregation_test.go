package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindmate-backend/internal/models"
)

func exerciseRec(at time.Time, minutes, intensity int) models.ActivityRecord {
	return models.ActivityRecord{
		ID:   at.UnixMilli(),
		Kind: models.KindExercise,
		Exercise: &models.ExercisePayload{
			ExerciseType:    "running",
			DurationMinutes: minutes,
			Intensity:       intensity,
		},
		CreatedAt:    at,
		CalendarDate: at.Format(models.CalendarDateLayout),
	}
}

func workRec(at time.Time, hours float64, stress, productivity int) models.ActivityRecord {
	return models.ActivityRecord{
		ID:   at.UnixMilli(),
		Kind: models.KindWork,
		Work: &models.WorkPayload{
			Hours:        hours,
			Stress:       stress,
			Productivity: productivity,
		},
		CreatedAt:    at,
		CalendarDate: at.Format(models.CalendarDateLayout),
	}
}

func wellnessRec(at time.Time, sleepHours float64, quality, mood int) models.ActivityRecord {
	return models.ActivityRecord{
		ID:   at.UnixMilli(),
		Kind: models.KindWellness,
		Wellness: &models.WellnessPayload{
			SleepHours:   sleepHours,
			SleepQuality: quality,
			Mood:         mood,
		},
		CreatedAt:    at,
		CalendarDate: at.Format(models.CalendarDateLayout),
	}
}

var testNow = time.Date(2026, 3, 11, 15, 0, 0, 0, time.UTC) // a Wednesday

func TestTodaySummary_Defaults(t *testing.T) {
	summary := TodaySummary(nil, testNow.Format(models.CalendarDateLayout))

	assert.Equal(t, "😐", summary.MoodGlyph)
	assert.Equal(t, "—", summary.StressLabel)
	assert.Equal(t, 0, summary.ExerciseMinutes)
	assert.Equal(t, 0.0, summary.SleepHours)
}

func TestTodaySummary_LatestWinsAndExerciseAccumulates(t *testing.T) {
	today := testNow.Format(models.CalendarDateLayout)
	records := []models.ActivityRecord{
		exerciseRec(testNow.Add(-6*time.Hour), 20, 5),
		exerciseRec(testNow.Add(-2*time.Hour), 30, 7),
		wellnessRec(testNow.Add(-5*time.Hour), 6, 3, 2),
		wellnessRec(testNow.Add(-1*time.Hour), 7.5, 4, 5),
		workRec(testNow.Add(-3*time.Hour), 8, 4, 3),
		// Yesterday's record must not leak into today.
		exerciseRec(testNow.AddDate(0, 0, -1), 90, 9),
	}

	summary := TodaySummary(records, today)

	assert.Equal(t, 50, summary.ExerciseMinutes)
	assert.Equal(t, "😄", summary.MoodGlyph)
	assert.Equal(t, 7.5, summary.SleepHours)
	assert.Equal(t, "High", summary.StressLabel)
}

func TestWeekActivities_RollingWindow(t *testing.T) {
	records := []models.ActivityRecord{
		exerciseRec(testNow.Add(-8*24*time.Hour), 30, 5), // outside
		exerciseRec(testNow.Add(-7*24*time.Hour), 40, 5), // boundary, inclusive
		exerciseRec(testNow.Add(-1*time.Hour), 50, 5),    // inside
		exerciseRec(testNow.Add(-6*24*time.Hour), 60, 5), // inside
	}

	week := WeekActivities(records, testNow)

	require.Len(t, week, 3)
	assert.Equal(t, 40, week[0].Exercise.DurationMinutes)
}

func TestHealthScore_EmptyWeek(t *testing.T) {
	assert.Equal(t, 0, HealthScore(nil, testNow))
}

func TestHealthScore_AllCategoriesPerfect(t *testing.T) {
	records := []models.ActivityRecord{
		exerciseRec(testNow.Add(-24*time.Hour), 150, 7),
		wellnessRec(testNow.Add(-20*time.Hour), 8, 5, 5),
		workRec(testNow.Add(-10*time.Hour), 8, 1, 5),
	}

	// All four factors at full weight: (30+25+25+20)/4*4 = 100.
	assert.Equal(t, 100, HealthScore(records, testNow))
}

func TestHealthScore_WellnessOnlyTopMood(t *testing.T) {
	records := []models.ActivityRecord{
		wellnessRec(testNow.Add(-30*time.Hour), 8, 5, 5),
		wellnessRec(testNow.Add(-20*time.Hour), 8, 5, 5),
		wellnessRec(testNow.Add(-10*time.Hour), 8, 5, 5),
	}

	// Sleep and mood factors both saturate: (25+25)/2*4 = 100.
	assert.Equal(t, 100, HealthScore(records, testNow))
}

func TestHealthScore_ExerciseOnly(t *testing.T) {
	records := []models.ActivityRecord{
		exerciseRec(testNow.Add(-24*time.Hour), 160, 7),
	}

	// Single saturated exercise factor: 30/1*4 = 120. The over-100 result on
	// sparse weeks is a property of the rescale, preserved intentionally.
	assert.Equal(t, 120, HealthScore(records, testNow))
}

func TestHealthScore_MoreExerciseNeverLowersScore(t *testing.T) {
	base := []models.ActivityRecord{
		wellnessRec(testNow.Add(-20*time.Hour), 6, 3, 3),
		workRec(testNow.Add(-10*time.Hour), 9, 4, 3),
	}

	prev := -1
	for _, minutes := range []int{10, 50, 100, 150, 300} {
		records := append(append([]models.ActivityRecord{}, base...),
			exerciseRec(testNow.Add(-24*time.Hour), minutes, 5))
		score := HealthScore(records, testNow)
		assert.GreaterOrEqual(t, score, prev, "score dropped at %d minutes", minutes)
		prev = score
	}
}

func TestWeeklyProgress(t *testing.T) {
	records := []models.ActivityRecord{
		exerciseRec(testNow.Add(-24*time.Hour), 60, 5),
		exerciseRec(testNow.Add(-48*time.Hour), 45, 5),
		wellnessRec(testNow.Add(-20*time.Hour), 7.5, 4, 4),
		wellnessRec(testNow.Add(-44*time.Hour), 8, 4, 4),
		exerciseRec(testNow.Add(-9*24*time.Hour), 500, 5), // stale
	}

	progress := WeeklyProgress(records, testNow)

	assert.Equal(t, 105, progress.ExerciseMinutes)
	assert.Equal(t, 150, progress.ExerciseGoal)
	assert.Equal(t, 15.5, progress.SleepHours)
	assert.Equal(t, 56.0, progress.SleepGoal)
}

func TestInsights_EmptyWeek(t *testing.T) {
	assert.Empty(t, Insights(nil, testNow))
}

func TestInsights_AllRulesFireInOrder(t *testing.T) {
	records := []models.ActivityRecord{
		exerciseRec(testNow.Add(-24*time.Hour), 160, 7),
		wellnessRec(testNow.Add(-20*time.Hour), 6, 3, 2),
		workRec(testNow.Add(-10*time.Hour), 10, 4, 3),
	}

	insights := Insights(records, testNow)

	require.Len(t, insights, 5)
	assert.Equal(t, "Exercise Goal Achieved!", insights[0].Title)
	assert.Equal(t, "Sleep More", insights[1].Title)
	assert.Equal(t, "Mood Support", insights[2].Title)
	assert.Equal(t, "Work-Life Balance", insights[3].Title)
	assert.Equal(t, "Stress Management", insights[4].Title)
}

func TestInsights_PartialWeek(t *testing.T) {
	records := []models.ActivityRecord{
		exerciseRec(testNow.Add(-24*time.Hour), 60, 5),
		wellnessRec(testNow.Add(-20*time.Hour), 8, 5, 4),
	}

	insights := Insights(records, testNow)

	require.Len(t, insights, 3)
	assert.Equal(t, "Keep Moving!", insights[0].Title)
	assert.Contains(t, insights[0].Message, "90 more minutes")
	assert.Equal(t, "Great Sleep Habits!", insights[1].Title)
	assert.Equal(t, "Positive Mood Trend", insights[2].Title)
}

func TestDailyMoodSeries_GapsAndAverages(t *testing.T) {
	records := []models.ActivityRecord{
		wellnessRec(testNow.Add(-2*time.Hour), 8, 4, 4),
		wellnessRec(testNow.Add(-5*time.Hour), 8, 4, 2),
		wellnessRec(testNow.AddDate(0, 0, -3), 7, 3, 5),
	}

	points := DailyMoodSeries(records, testNow, 7)

	require.Len(t, points, 7)
	// Oldest first; today is the last point.
	assert.Equal(t, "Wed", points[6].Label)
	require.NotNil(t, points[6].Value)
	assert.Equal(t, 3.0, *points[6].Value)

	require.NotNil(t, points[3].Value)
	assert.Equal(t, 5.0, *points[3].Value)

	for _, i := range []int{0, 1, 2, 4, 5} {
		assert.Nil(t, points[i].Value, "day %d should be a gap", i)
	}
}

func TestWeeklyActivityBreakdown(t *testing.T) {
	records := []models.ActivityRecord{
		exerciseRec(testNow.Add(-24*time.Hour), 90, 5),
		workRec(testNow.Add(-10*time.Hour), 8, 3, 3),
		wellnessRec(testNow.Add(-20*time.Hour), 7.5, 4, 4),
	}

	b := WeeklyActivityBreakdown(records, testNow)

	assert.Equal(t, 90.0, b.ExerciseMinutes)
	assert.Equal(t, 480.0, b.WorkMinutes)
	assert.Equal(t, 450.0, b.SleepMinutes)
}
