// Package profile loads and saves the user profile as a single opaque blob.
package profile

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/go-faster/errors"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/xenking/appetizers/internal/domain/user"
)

// Sentinel errors for profile validation and persistence.
var (
	// ErrInvalidForm means a required field (first name, last name, email)
	// is empty.
	ErrInvalidForm = errors.New("form is incomplete")
	// ErrInvalidEmail means the email does not match a basic email shape.
	ErrInvalidEmail = errors.New("email is invalid")
	// ErrCorruptData means a stored blob exists but does not decode.
	ErrCorruptData = errors.New("stored profile is corrupt")
	// ErrEncodeFailure means the profile could not be serialized. Defensive:
	// it should not occur for well-typed input.
	ErrEncodeFailure = errors.New("profile could not be encoded")
)

// Storage is a durable single-slot blob store. Read returns (nil, nil) when
// nothing has been stored yet; Write overwrites the slot wholesale.
type Storage interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
}

// Store owns the in-memory profile and its persistence. The profile starts
// at defaults, is loaded once from storage if present, and is overwritten
// wholesale on each save.
type Store struct {
	storage  Storage
	validate *validator.Validate
	lg       *zap.Logger

	mu      sync.Mutex
	current user.User
}

// New creates a Store with a default in-memory profile.
func New(storage Storage, lg *zap.Logger) *Store {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &Store{
		storage:  storage,
		validate: validator.New(),
		lg:       lg,
		current:  user.Default(),
	}
}

// Load reads the persisted blob into the in-memory profile. An absent blob
// leaves defaults in place without error; a present but undecodable blob
// returns ErrCorruptData and also leaves defaults in place.
func (s *Store) Load(ctx context.Context) error {
	data, err := s.storage.Read(ctx)
	if err != nil {
		return errors.Wrap(err, "read profile")
	}
	if data == nil {
		return nil
	}

	var u user.User
	if err := json.Unmarshal(data, &u); err != nil {
		s.lg.Warn("stored profile does not decode", zap.Error(err))
		return errors.Wrap(ErrCorruptData, err.Error())
	}

	s.mu.Lock()
	s.current = u
	s.mu.Unlock()
	return nil
}

// Save validates u, persists it, and replaces the in-memory profile. On any
// validation failure nothing is written and the in-memory profile is
// unchanged.
func (s *Store) Save(ctx context.Context, u user.User) error {
	if u.FirstName == "" || u.LastName == "" || u.Email == "" {
		return ErrInvalidForm
	}
	if err := s.validate.Var(u.Email, "email"); err != nil {
		return ErrInvalidEmail
	}

	data, err := json.Marshal(u)
	if err != nil {
		return errors.Wrap(ErrEncodeFailure, err.Error())
	}
	if err := s.storage.Write(ctx, data); err != nil {
		return errors.Wrap(err, "write profile")
	}

	s.mu.Lock()
	s.current = u
	s.mu.Unlock()
	s.lg.Info("profile saved", zap.String("email", u.Email))
	return nil
}

// Current returns the in-memory profile.
func (s *Store) Current() user.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Reset restores the in-memory profile to defaults without touching storage.
func (s *Store) Reset() {
	s.mu.Lock()
	s.current = user.Default()
	s.mu.Unlock()
}
