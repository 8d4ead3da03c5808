package services

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"

	"mindmate-backend/internal/models"
	"mindmate-backend/internal/storage"
)

// contextWindow caps how many recent turns are sent to the generator. Older
// turns stay in the persisted transcript; this is a sliding window, not a
// summarization.
const contextWindow = 10

const chatGreeting = "Hello! I'm MindMate, your AI wellness companion. I'm here to support your mental health journey. How are you feeling today?"

const fallbackReply = "Sorry, I'm having trouble connecting to the AI. Please try again later."

// Generator produces a reply for an ordered conversation context. A single
// failed attempt surfaces as *GenerationError; no automatic retry.
type Generator interface {
	Name() string
	Generate(ctx context.Context, turns []models.ChatTurn) (string, error)
}

// ChatMirror is the remote document store that keeps a signed-in user's
// transcript for cross-device continuity. Guests are never mirrored.
type ChatMirror interface {
	Save(ctx context.Context, userID uuid.UUID, turns []models.ChatTurn) error
	Load(ctx context.Context, userID uuid.UUID) ([]models.ChatTurn, bool, error)
	Delete(ctx context.Context, userID uuid.UUID) error
}

// ChatService maintains one conversation per identity: an Idle/
// AwaitingResponse state machine whose transcript is persisted in full after
// every successful exchange.
type ChatService struct {
	store     storage.Store
	generator Generator
	mirror    ChatMirror // optional

	mu       sync.Mutex
	sessions map[string]*chatSession
}

type chatSession struct {
	mu       sync.Mutex
	loaded   bool
	awaiting bool
	turns    []models.ChatTurn
}

func NewChatService(store storage.Store, generator Generator, mirror ChatMirror) *ChatService {
	return &ChatService{
		store:     store,
		generator: generator,
		mirror:    mirror,
		sessions:  make(map[string]*chatSession),
	}
}

// Greeting is the canned opener shown before any turns exist.
func (s *ChatService) Greeting() string { return chatGreeting }

func (s *ChatService) session(identity string) *chatSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[identity]
	if !ok {
		sess = &chatSession{}
		s.sessions[identity] = sess
	}
	return sess
}

// Send appends the user's message, asks the generator for a reply with the
// current context window, appends and persists the model turn. While a
// response is in flight a second Send for the same identity fails with
// *BusyError. On generator failure the transcript keeps only the user turn
// and the returned reply is the canned fallback, flagged so it is never
// mistaken for a genuine model response.
func (s *ChatService) Send(ctx context.Context, identity string, userID *uuid.UUID, text string) (*models.ChatReply, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, &ValidationError{Fields: map[string]string{"message": "Message is required"}}
	}

	sess := s.session(identity)

	sess.mu.Lock()
	if sess.awaiting {
		sess.mu.Unlock()
		return nil, &BusyError{Message: "A response is already being generated. Please wait."}
	}
	if err := s.ensureLoaded(ctx, identity, userID, sess); err != nil {
		sess.mu.Unlock()
		return nil, err
	}
	sess.awaiting = true
	sess.turns = append(sess.turns, models.ChatTurn{Role: models.RoleUser, Content: text})
	window := contextFor(sess.turns)
	sess.mu.Unlock()

	reply, genErr := s.generator.Generate(ctx, window)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.awaiting = false

	if genErr != nil {
		log.Printf("chat: %v", &GenerationError{Generator: s.generator.Name(), Err: genErr})
		return &models.ChatReply{Reply: fallbackReply, Fallback: true, Generator: s.generator.Name()}, nil
	}

	sess.turns = append(sess.turns, models.ChatTurn{Role: models.RoleModel, Content: reply})
	if err := s.persist(ctx, identity, userID, sess.turns); err != nil {
		log.Printf("chat: persisting transcript for %s: %v", identity, err)
	}

	return &models.ChatReply{Reply: reply, Generator: s.generator.Name()}, nil
}

// History returns the full persisted transcript for the identity.
func (s *ChatService) History(ctx context.Context, identity string, userID *uuid.UUID) ([]models.ChatTurn, error) {
	sess := s.session(identity)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := s.ensureLoaded(ctx, identity, userID, sess); err != nil {
		return nil, err
	}
	out := make([]models.ChatTurn, len(sess.turns))
	copy(out, sess.turns)
	return out, nil
}

// Clear unconditionally empties the live context, the persisted transcript
// and the mirror document.
func (s *ChatService) Clear(ctx context.Context, identity string, userID *uuid.UUID) error {
	sess := s.session(identity)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.turns = nil
	sess.loaded = true

	if err := s.store.Delete(ctx, storage.Key(storage.CategoryChat, identity)); err != nil {
		return err
	}
	if s.mirror != nil && userID != nil {
		if err := s.mirror.Delete(ctx, *userID); err != nil {
			log.Printf("chat: clearing mirror for %s: %v", identity, err)
		}
	}
	return nil
}

// ensureLoaded restores the transcript once per process: from local storage
// first, falling back to the mirror for signed-in users whose local copy is
// empty. Unparseable storage degrades to an empty transcript. Callers hold
// sess.mu.
func (s *ChatService) ensureLoaded(ctx context.Context, identity string, userID *uuid.UUID, sess *chatSession) error {
	if sess.loaded {
		return nil
	}

	key := storage.Key(storage.CategoryChat, identity)
	raw, ok, err := s.store.Get(ctx, key)
	if err != nil {
		return err
	}
	if ok {
		var turns []models.ChatTurn
		if err := json.Unmarshal([]byte(raw), &turns); err != nil {
			log.Printf("chat: %v", &StorageError{Key: key, Err: err})
		} else {
			sess.turns = turns
		}
	}

	if len(sess.turns) == 0 && s.mirror != nil && userID != nil {
		turns, found, err := s.mirror.Load(ctx, *userID)
		if err != nil {
			log.Printf("chat: loading mirror for %s: %v", identity, err)
		} else if found {
			sess.turns = turns
		}
	}

	sess.loaded = true
	return nil
}

// persist writes the full transcript locally and mirrors it for signed-in
// users. Mirror failures degrade to local-only persistence. Callers hold
// sess.mu.
func (s *ChatService) persist(ctx context.Context, identity string, userID *uuid.UUID, turns []models.ChatTurn) error {
	data, err := json.Marshal(turns)
	if err != nil {
		return err
	}
	if err := s.store.Set(ctx, storage.Key(storage.CategoryChat, identity), string(data)); err != nil {
		return err
	}
	if s.mirror != nil && userID != nil {
		if err := s.mirror.Save(ctx, *userID, turns); err != nil {
			log.Printf("chat: mirroring transcript for %s: %v", identity, err)
		}
	}
	return nil
}

func contextFor(turns []models.ChatTurn) []models.ChatTurn {
	if len(turns) > contextWindow {
		turns = turns[len(turns)-contextWindow:]
	}
	window := make([]models.ChatTurn, len(turns))
	copy(window, turns)
	return window
}
