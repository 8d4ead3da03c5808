package services

import (
	"context"
	"sync"
	"time"

	"mindmate-backend/internal/models"
)

// Timer states.
const (
	TimerRunning = "running"
	TimerStopped = "stopped"
)

// Timer is the guided-exercise state machine: an outer countdown plus an
// optional cyclic phase sequence. It is advanced one simulated second at a
// time by Tick, so the tick source (a wall-clock ticker in production, a
// plain loop in tests) is fully decoupled from the transitions.
type Timer struct {
	state        string
	remaining    int
	phases       []models.BreathingPhase
	phaseIdx     int
	phaseElapsed int
}

func NewTimer(totalSeconds int, phases []models.BreathingPhase) *Timer {
	return &Timer{
		state:     TimerRunning,
		remaining: totalSeconds,
		phases:    phases,
	}
}

// Tick advances one second. The countdown is decremented first; reaching
// zero stops the timer and halts phase cycling in the same instant,
// regardless of phase position. Otherwise the current phase accumulates and
// wraps to the next one when its duration elapses; cycling repeats without
// bound until the countdown expires or Stop is called.
func (t *Timer) Tick() {
	if t.state != TimerRunning {
		return
	}

	t.remaining--
	if t.remaining <= 0 {
		t.remaining = 0
		t.state = TimerStopped
		return
	}

	if len(t.phases) == 0 {
		return
	}
	t.phaseElapsed++
	if t.phaseElapsed >= t.phases[t.phaseIdx].Seconds {
		t.phaseIdx = (t.phaseIdx + 1) % len(t.phases)
		t.phaseElapsed = 0
	}
}

// Stop halts both the countdown and phase cycling. Idempotent.
func (t *Timer) Stop() {
	t.state = TimerStopped
}

func (t *Timer) State() string  { return t.state }
func (t *Timer) Remaining() int { return t.remaining }

// Phase returns the current phase label, or false for phaseless exercises.
func (t *Timer) Phase() (models.BreathingPhase, bool) {
	if len(t.phases) == 0 {
		return models.BreathingPhase{}, false
	}
	return t.phases[t.phaseIdx], true
}

// Catalog is the guided-exercise library.
var Catalog = []models.BreathingExercise{
	{
		Key:          "breathing",
		Title:        "4-7-8 Breathing",
		Instructions: "Inhale for 4s, hold for 7s, exhale for 8s.",
		Phases: []models.BreathingPhase{
			{Label: "Breathe In", Seconds: 4},
			{Label: "Hold", Seconds: 7},
			{Label: "Breathe Out", Seconds: 8},
		},
	},
	{
		Key:          "bodyscan",
		Title:        "Body Scan Meditation",
		Instructions: "Bring gentle awareness to each part of your body, from your toes to your head.",
	},
	{
		Key:          "mindfulbreathing",
		Title:        "Mindful Breathing",
		Instructions: "Focus on the natural rhythm of your breath without trying to change it.",
	},
	{
		Key:          "gratitude",
		Title:        "Gratitude Meditation",
		Instructions: "Focus on things you are grateful for and allow the positive feelings to fill you.",
	},
}

func exerciseByKey(key string) (models.BreathingExercise, bool) {
	for _, ex := range Catalog {
		if ex.Key == key {
			return ex, true
		}
	}
	return models.BreathingExercise{}, false
}

// BreathingService runs at most one guided exercise per identity and streams
// each tick to the identity's update channel.
type BreathingService struct {
	publisher UpdatePublisher
	interval  time.Duration

	mu     sync.Mutex
	active map[string]*activeExercise
}

type activeExercise struct {
	exercise models.BreathingExercise
	timer    *Timer
	done     chan struct{}
}

func NewBreathingService(publisher UpdatePublisher) *BreathingService {
	return &BreathingService{
		publisher: publisher,
		interval:  time.Second,
		active:    make(map[string]*activeExercise),
	}
}

// SetTickInterval overrides the wall-clock tick cadence. Call before any
// exercise is started.
func (s *BreathingService) SetTickInterval(d time.Duration) {
	if d > 0 {
		s.interval = d
	}
}

// Start begins an exercise for the identity, replacing any exercise already
// running (its pending ticks are cancelled first so a stale tick can never
// fire into the new run).
func (s *BreathingService) Start(ctx context.Context, identity, exerciseKey string, durationSeconds int) (*models.ExerciseState, error) {
	ex, ok := exerciseByKey(exerciseKey)
	if !ok {
		return nil, &NotFoundError{Message: "Unknown exercise"}
	}
	if durationSeconds <= 0 {
		return nil, &ValidationError{Fields: map[string]string{"duration_seconds": "Duration must be positive"}}
	}

	s.mu.Lock()
	if prev, running := s.active[identity]; running {
		prev.timer.Stop()
		close(prev.done)
	}

	run := &activeExercise{
		exercise: ex,
		timer:    NewTimer(durationSeconds, ex.Phases),
		done:     make(chan struct{}),
	}
	s.active[identity] = run
	state := s.snapshot(run)
	s.mu.Unlock()

	go s.drive(identity, run)

	return state, nil
}

// drive ticks the timer once per second until it stops or the run is
// cancelled.
func (s *BreathingService) drive(identity string, run *activeExercise) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-run.done:
			return
		case <-ticker.C:
			s.mu.Lock()
			run.timer.Tick()
			state := s.snapshot(run)
			stopped := run.timer.State() == TimerStopped
			if stopped && s.active[identity] == run {
				delete(s.active, identity)
			}
			s.mu.Unlock()

			s.publisher.Publish(context.Background(), identity, models.WSMessage{
				Type:    "exercise_tick",
				Payload: state,
			})
			if stopped {
				return
			}
		}
	}
}

// Stop halts the identity's exercise. Idempotent: stopping when nothing runs
// is a no-op.
func (s *BreathingService) Stop(identity string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	run, ok := s.active[identity]
	if !ok {
		return
	}
	run.timer.Stop()
	close(run.done)
	delete(s.active, identity)
}

// State reports the identity's current exercise, if any.
func (s *BreathingService) State(identity string) (*models.ExerciseState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	run, ok := s.active[identity]
	if !ok {
		return nil, false
	}
	return s.snapshot(run), true
}

// StopAll halts every running exercise; used during shutdown.
func (s *BreathingService) StopAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for identity, run := range s.active {
		run.timer.Stop()
		close(run.done)
		delete(s.active, identity)
	}
}

// snapshot renders the timer into its wire shape. Callers hold s.mu.
func (s *BreathingService) snapshot(run *activeExercise) *models.ExerciseState {
	state := &models.ExerciseState{
		Exercise:         run.exercise.Key,
		Title:            run.exercise.Title,
		State:            run.timer.State(),
		RemainingSeconds: run.timer.Remaining(),
	}
	if phase, ok := run.timer.Phase(); ok {
		state.Phase = phase.Label
	}
	return state
}
