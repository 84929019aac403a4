package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// Session is the server-side state behind the opaque cookie id: the
// authenticated user (if any), pending one-shot flashes, and the URL to return
// to after a forced login.
type Session struct {
	ID         string  `json:"id"`
	UserID     string  `json:"user_id,omitempty"`
	Flashes    []Flash `json:"flashes,omitempty"`
	RedirectTo string  `json:"redirect_to,omitempty"`
}

func New() *Session {
	return &Session{ID: uuid.NewString()}
}

func (s *Session) Authenticated() bool {
	return s.UserID != ""
}

func (s *Session) Flash(category, message string) {
	s.Flashes = append(s.Flashes, Flash{Category: category, Message: message})
}

// PopFlashes clears pending flashes; each flash is delivered once.
func (s *Session) PopFlashes() []Flash {
	flashes := s.Flashes
	s.Flashes = nil
	return flashes
}

type Store interface {
	Get(ctx context.Context, id string) (*Session, error)

	Save(ctx context.Context, sess *Session) error

	Delete(ctx context.Context, id string) error
}

var ErrSessionNotFound = errors.New("session not found")

const DefaultTTL = 24 * time.Hour
