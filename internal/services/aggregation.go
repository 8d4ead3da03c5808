package services

import (
	"fmt"
	"math"
	"time"

	"mindmate-backend/internal/models"
)

// Aggregation over the activity log. Every function here is pure: it takes
// the full record sequence plus a reference instant and derives its result
// from scratch, so callers can recompute on every request.

const (
	weeklyExerciseGoalMinutes = 150
	weeklySleepGoalHours      = 56
)

var moodGlyphs = [5]string{"😢", "😞", "😐", "😊", "😄"}

var stressLabels = [5]string{"Very Low", "Low", "Moderate", "High", "Very High"}

// TodaySummary reduces the records created on the given calendar date to the
// dashboard headline: latest mood glyph, cumulative exercise minutes, latest
// sleep hours and latest stress label. Defaults apply when a category has no
// record today.
func TodaySummary(records []models.ActivityRecord, today string) models.TodaySummary {
	summary := models.TodaySummary{MoodGlyph: "😐", StressLabel: "—"}

	for _, r := range records {
		if r.CalendarDate != today {
			continue
		}
		switch r.Kind {
		case models.KindExercise:
			summary.ExerciseMinutes += r.Exercise.DurationMinutes
		case models.KindWellness:
			summary.SleepHours = r.Wellness.SleepHours
			if m := r.Wellness.Mood; m >= 1 && m <= 5 {
				summary.MoodGlyph = moodGlyphs[m-1]
			}
		case models.KindWork:
			if st := r.Work.Stress; st >= 1 && st <= 5 {
				summary.StressLabel = stressLabels[st-1]
			}
		}
	}

	return summary
}

// WeekActivities filters to the rolling 7x24h window ending at now, on the
// creation timestamp (not the calendar date), lower bound inclusive.
func WeekActivities(records []models.ActivityRecord, now time.Time) []models.ActivityRecord {
	cutoff := now.Add(-7 * 24 * time.Hour)
	var week []models.ActivityRecord
	for _, r := range records {
		if !r.CreatedAt.Before(cutoff) {
			week = append(week, r)
		}
	}
	return week
}

// weekAverages collects the per-category totals and means the score and
// insight rules share.
type weekAverages struct {
	exerciseMinutes int
	exerciseCount   int

	sleepAvg      float64
	moodAvg       float64
	wellnessCount int

	workHoursAvg float64
	stressAvg    float64
	workCount    int
}

func averagesFor(week []models.ActivityRecord) weekAverages {
	var a weekAverages
	var sleepSum, moodSum, hoursSum, stressSum float64

	for _, r := range week {
		switch r.Kind {
		case models.KindExercise:
			a.exerciseMinutes += r.Exercise.DurationMinutes
			a.exerciseCount++
		case models.KindWellness:
			sleepSum += r.Wellness.SleepHours
			moodSum += float64(r.Wellness.Mood)
			a.wellnessCount++
		case models.KindWork:
			hoursSum += r.Work.Hours
			stressSum += float64(r.Work.Stress)
			a.workCount++
		}
	}

	if a.wellnessCount > 0 {
		a.sleepAvg = sleepSum / float64(a.wellnessCount)
		a.moodAvg = moodSum / float64(a.wellnessCount)
	}
	if a.workCount > 0 {
		a.workHoursAvg = hoursSum / float64(a.workCount)
		a.stressAvg = stressSum / float64(a.workCount)
	}
	return a
}

// HealthScore composes up to four weighted factors over the rolling week:
// exercise (30), sleep (25), mood (25) and inverted stress (20). A factor is
// skipped entirely (not zeroed) when its category has no record in the
// window. The final rescale divides by the factor count and multiplies by 4,
// in that order; the sparse-data behavior that falls out of this formula is
// intentional and preserved from the original scoring design.
func HealthScore(records []models.ActivityRecord, now time.Time) int {
	a := averagesFor(WeekActivities(records, now))

	var sum float64
	factors := 0

	if a.exerciseCount > 0 {
		sum += math.Min(float64(a.exerciseMinutes)/weeklyExerciseGoalMinutes, 1) * 30
		factors++
	}
	if a.wellnessCount > 0 {
		sum += math.Min(a.sleepAvg/8, 1) * 25
		factors++
		sum += a.moodAvg / 5 * 25
		factors++
	}
	if a.workCount > 0 {
		sum += (1 - (a.stressAvg-1)/4) * 20
		factors++
	}

	if factors == 0 {
		return 0
	}
	return int(math.Round(sum / float64(factors) * 4))
}

// WeeklyProgress totals the rolling week's exercise minutes and sleep hours
// against the fixed goals.
func WeeklyProgress(records []models.ActivityRecord, now time.Time) models.WeeklyProgress {
	progress := models.WeeklyProgress{
		ExerciseGoal: weeklyExerciseGoalMinutes,
		SleepGoal:    weeklySleepGoalHours,
	}
	for _, r := range WeekActivities(records, now) {
		switch r.Kind {
		case models.KindExercise:
			progress.ExerciseMinutes += r.Exercise.DurationMinutes
		case models.KindWellness:
			progress.SleepHours += r.Wellness.SleepHours
		}
	}
	return progress
}

// Insights evaluates the rule set over the rolling week. Rules are
// independent, each fires at most once, and the order is fixed: exercise,
// sleep, mood, work-life balance, stress. An empty week yields no insights.
func Insights(records []models.ActivityRecord, now time.Time) []models.Insight {
	a := averagesFor(WeekActivities(records, now))
	var insights []models.Insight

	if a.exerciseMinutes >= weeklyExerciseGoalMinutes {
		insights = append(insights, models.Insight{
			Icon:  "🎉",
			Title: "Exercise Goal Achieved!",
			Message: fmt.Sprintf("Congratulations! You've completed %d minutes of exercise this week, exceeding the recommended 150 minutes.",
				a.exerciseMinutes),
		})
	} else if a.exerciseMinutes > 0 {
		insights = append(insights, models.Insight{
			Icon:  "💪",
			Title: "Keep Moving!",
			Message: fmt.Sprintf("You've exercised for %d minutes this week. Try to add %d more minutes to reach your weekly goal.",
				a.exerciseMinutes, weeklyExerciseGoalMinutes-a.exerciseMinutes),
		})
	}

	if a.wellnessCount > 0 {
		if a.sleepAvg < 7 {
			insights = append(insights, models.Insight{
				Icon:    "😴",
				Title:   "Sleep More",
				Message: fmt.Sprintf("Your average sleep is %.1f hours. Try to get 7-9 hours for optimal mental health.", a.sleepAvg),
			})
		} else {
			insights = append(insights, models.Insight{
				Icon:    "✨",
				Title:   "Great Sleep Habits!",
				Message: fmt.Sprintf("You're averaging %.1f hours of sleep. Keep up the good work!", a.sleepAvg),
			})
		}

		if a.moodAvg >= 4 {
			insights = append(insights, models.Insight{
				Icon:    "😊",
				Title:   "Positive Mood Trend",
				Message: "Your mood has been consistently positive. Keep doing what makes you happy!",
			})
		} else if a.moodAvg <= 2 {
			insights = append(insights, models.Insight{
				Icon:    "🤗",
				Title:   "Mood Support",
				Message: "I notice your mood has been lower lately. Consider talking to someone or trying some mindfulness exercises.",
			})
		}
	}

	if a.workCount > 0 {
		if a.workHoursAvg > 9 {
			insights = append(insights, models.Insight{
				Icon:    "⚖️",
				Title:   "Work-Life Balance",
				Message: fmt.Sprintf("You're averaging %.1f work hours daily. Consider setting boundaries for better work-life balance.", a.workHoursAvg),
			})
		}
		if a.stressAvg >= 4 {
			insights = append(insights, models.Insight{
				Icon:    "🧘",
				Title:   "Stress Management",
				Message: "Your work stress levels are high. Try some breathing exercises or short breaks during work.",
			})
		}
	}

	return insights
}

// DailyMoodSeries returns one point per calendar day for the last `days`
// days, oldest first: the mean mood of that day's wellness records, or a nil
// value when the day has none. Charts render nil as a gap, never as zero.
func DailyMoodSeries(records []models.ActivityRecord, now time.Time, days int) []models.MoodPoint {
	points := make([]models.MoodPoint, 0, days)

	for i := days - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		date := day.Format(models.CalendarDateLayout)
		point := models.MoodPoint{Label: day.Format("Mon")}

		var sum float64
		count := 0
		for _, r := range records {
			if r.Kind == models.KindWellness && r.CalendarDate == date {
				sum += float64(r.Wellness.Mood)
				count++
			}
		}
		if count > 0 {
			avg := sum / float64(count)
			point.Value = &avg
		}

		points = append(points, point)
	}

	return points
}

// WeeklyActivityBreakdown converts the rolling week's records into minutes
// per category for the dashboard's time-split chart.
func WeeklyActivityBreakdown(records []models.ActivityRecord, now time.Time) models.ActivityBreakdown {
	var b models.ActivityBreakdown
	for _, r := range WeekActivities(records, now) {
		switch r.Kind {
		case models.KindExercise:
			b.ExerciseMinutes += float64(r.Exercise.DurationMinutes)
		case models.KindWork:
			b.WorkMinutes += r.Work.Hours * 60
		case models.KindWellness:
			b.SleepMinutes += r.Wellness.SleepHours * 60
		}
	}
	return b
}
