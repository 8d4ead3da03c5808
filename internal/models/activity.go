package models

import "time"

type ActivityKind string

const (
	KindExercise ActivityKind = "exercise"
	KindWork     ActivityKind = "work"
	KindWellness ActivityKind = "wellness"
)

type ExercisePayload struct {
	ExerciseType    string `json:"exercise_type"`
	DurationMinutes int    `json:"duration_minutes"`
	Intensity       int    `json:"intensity"` // 1-10
}

type WorkPayload struct {
	Hours        float64 `json:"hours"`
	Stress       int     `json:"stress"`       // 1-5
	Productivity int     `json:"productivity"` // 1-5
}

type WellnessPayload struct {
	SleepHours   float64 `json:"sleep_hours"`
	SleepQuality int     `json:"sleep_quality"` // 1-5
	Mood         int     `json:"mood"`          // 1-5
}

// ActivityRecord is one logged wellness-journal entry. Exactly one payload
// pointer is set, matching Kind. Records are append-only and never mutated.
type ActivityRecord struct {
	ID       int64            `json:"id"` // creation time in unix millis
	Kind     ActivityKind     `json:"kind"`
	Exercise *ExercisePayload `json:"exercise,omitempty"`
	Work     *WorkPayload     `json:"work,omitempty"`
	Wellness *WellnessPayload `json:"wellness,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	// CalendarDate is the local date the record was created on, computed once
	// at creation and kept verbatim so records never migrate between days.
	CalendarDate string `json:"calendar_date"`
}

// CalendarDateLayout is the format CalendarDate is rendered in.
const CalendarDateLayout = "2006-01-02"

// LogActivityRequest is the payload sent to POST /activities. The payload
// matching Kind must be present; pointer fields let validation tell a missing
// payload apart from a zero-valued one.
type LogActivityRequest struct {
	Kind     ActivityKind     `json:"kind"`
	Exercise *ExercisePayload `json:"exercise,omitempty"`
	Work     *WorkPayload     `json:"work,omitempty"`
	Wellness *WellnessPayload `json:"wellness,omitempty"`
}

// TodaySummary is the reduced view of today's records shown at the top of the
// dashboard.
type TodaySummary struct {
	MoodGlyph       string  `json:"mood_glyph"`
	ExerciseMinutes int     `json:"exercise_minutes"`
	SleepHours      float64 `json:"sleep_hours"`
	StressLabel     string  `json:"stress_label"`
}

// WeeklyProgress tracks the rolling-week totals against the fixed goals
// (150 exercise minutes, 56 sleep hours).
type WeeklyProgress struct {
	ExerciseMinutes int     `json:"exercise_minutes"`
	ExerciseGoal    int     `json:"exercise_goal"`
	SleepHours      float64 `json:"sleep_hours"`
	SleepGoal       float64 `json:"sleep_goal"`
}

// Insight is a single rule-based observation about the rolling week.
type Insight struct {
	Icon    string `json:"icon"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// MoodPoint is one day of the mood chart. Value is nil on days without
// wellness records so charts render a gap, never a zero.
type MoodPoint struct {
	Label string   `json:"label"`
	Value *float64 `json:"value"`
}

// ActivityView is the display form of one record in the recent-activities
// feed: a glyph, a headline and a detail line.
type ActivityView struct {
	Icon     string    `json:"icon"`
	Title    string    `json:"title"`
	Details  string    `json:"details"`
	LoggedAt time.Time `json:"logged_at"`
}

// ActivityBreakdown is the weekly time split behind the doughnut chart,
// all in minutes.
type ActivityBreakdown struct {
	ExerciseMinutes float64 `json:"exercise_minutes"`
	WorkMinutes     float64 `json:"work_minutes"`
	SleepMinutes    float64 `json:"sleep_minutes"`
}
