package models

// BreathingPhase is one step of a guided breathing cycle.
type BreathingPhase struct {
	Label   string `json:"label"`
	Seconds int    `json:"seconds"`
}

// BreathingExercise describes one entry of the guided-exercise catalog.
// Exercises without phases run only the countdown.
type BreathingExercise struct {
	Key          string           `json:"key"`
	Title        string           `json:"title"`
	Instructions string           `json:"instructions"`
	Phases       []BreathingPhase `json:"phases,omitempty"`
}

// StartExerciseRequest starts a guided exercise for the current identity.
type StartExerciseRequest struct {
	Exercise        string `json:"exercise"`
	DurationSeconds int    `json:"duration_seconds"`
}

// ExerciseState is a snapshot of a running (or just-stopped) exercise timer.
type ExerciseState struct {
	Exercise         string `json:"exercise"`
	Title            string `json:"title"`
	State            string `json:"state"` // "running" or "stopped"
	RemainingSeconds int    `json:"remaining_seconds"`
	Phase            string `json:"phase,omitempty"`
}
