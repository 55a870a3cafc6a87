// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session tracks the single signed-in user of the blog and persists
// it in the key-value store so it survives restarts.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/olegiv/ocms-blog/internal/id"
	"github.com/olegiv/ocms-blog/internal/kv"
	"github.com/olegiv/ocms-blog/internal/model"
)

// DefaultLatency is the delay applied to Login and Register.
const DefaultLatency = 800 * time.Millisecond

// Credential is a built-in account with a plaintext password.
type Credential struct {
	model.User
	Password string
}

// DemoCredentials returns the built-in accounts.
func DemoCredentials() []Credential {
	return []Credential{
		{
			User:     model.User{ID: "1", Name: "Admin User", Email: "admin@example.com", Role: model.RoleAdmin},
			Password: "admin123",
		},
		{
			User:     model.User{ID: "2", Name: "Regular User", Email: "user@example.com", Role: model.RoleUser},
			Password: "user123",
		},
	}
}

// Options configures a Store.
type Options struct {
	// Latency is applied before Login and Register resolve.
	Latency time.Duration

	// RememberRegistrations keeps registered accounts so they can log in
	// again later. When false a registered account only lives in the
	// session that created it.
	RememberRegistrations bool

	// Credentials replaces DemoCredentials when non-nil.
	Credentials []Credential

	Logger *slog.Logger
}

// Store holds the current user. The zero value is not usable; call Open.
type Store struct {
	kv       kv.Store
	latency  time.Duration
	remember bool
	demo     []Credential
	accounts *accountBook
	logger   *slog.Logger
	sleep    func(time.Duration)

	mu      sync.RWMutex
	current *model.User
}

// Open creates a Store and restores the persisted session, if any.
// A malformed persisted session is logged and ignored.
func Open(ctx context.Context, store kv.Store, opts Options) (*Store, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Credentials == nil {
		opts.Credentials = DemoCredentials()
	}

	s := &Store{
		kv:       store,
		latency:  opts.Latency,
		remember: opts.RememberRegistrations,
		demo:     slices.Clone(opts.Credentials),
		accounts: &accountBook{store: store},
		logger:   opts.Logger,
		sleep:    time.Sleep,
	}

	data, err := store.Get(ctx, kv.KeySessionUser)
	switch {
	case errors.Is(err, kv.ErrNotFound):
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("reading session: %w", err)
	}

	var u model.User
	if err := json.Unmarshal(data, &u); err != nil || u.ID == "" || !u.Role.Valid() {
		s.logger.Warn("persisted session is malformed, starting signed out",
			"category", model.EventCategoryAuth, "error", err)
		return s, nil
	}
	s.current = &u
	return s, nil
}

func (s *Store) wait() {
	if s.latency > 0 {
		s.sleep(s.latency)
	}
}

// Login signs in the account matching email and password exactly. It
// reports false, leaving the session untouched, when nothing matches.
func (s *Store) Login(ctx context.Context, email, password string) (*model.User, bool, error) {
	s.wait()
	ctx = context.WithoutCancel(ctx)

	u, err := s.authenticate(ctx, email, password)
	if err != nil {
		return nil, false, err
	}
	if u == nil {
		s.logger.Warn("login failed", "category", model.EventCategoryAuth, "email", email)
		return nil, false, nil
	}

	if err := s.setCurrent(ctx, u); err != nil {
		return nil, false, err
	}
	s.logger.Info("user logged in", "user_id", u.ID, "role", u.Role)
	return copyUser(u), true, nil
}

func (s *Store) authenticate(ctx context.Context, email, password string) (*model.User, error) {
	for _, c := range s.demo {
		if c.Email == email && c.Password == password {
			u := c.User
			return &u, nil
		}
	}
	if !s.remember {
		return nil, nil
	}
	return s.accounts.verify(ctx, email, password)
}

// Register creates a user account with role user and signs it in. It
// reports false when the email is already taken.
func (s *Store) Register(ctx context.Context, name, email, password string) (bool, error) {
	s.wait()
	ctx = context.WithoutCancel(ctx)

	for _, c := range s.demo {
		if c.Email == email {
			return false, nil
		}
	}

	userID, err := id.Generate("usr")
	if err != nil {
		return false, err
	}
	u := &model.User{ID: userID, Name: name, Email: email, Role: model.RoleUser}

	if s.remember {
		added, err := s.accounts.add(ctx, *u, password)
		if err != nil {
			return false, err
		}
		if !added {
			return false, nil
		}
	}

	if err := s.setCurrent(ctx, u); err != nil {
		return false, err
	}
	s.logger.Info("user registered", "user_id", u.ID)
	return true, nil
}

// Logout clears the session. Logging out while signed out is a no-op.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Delete(context.WithoutCancel(ctx), kv.KeySessionUser); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	if s.current != nil {
		s.logger.Info("user logged out", "user_id", s.current.ID)
	}
	s.current = nil
	return nil
}

// Current returns a copy of the signed-in user, or nil.
func (s *Store) Current() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyUser(s.current)
}

// IsAuthenticated reports whether a user is signed in.
func (s *Store) IsAuthenticated() bool {
	return s.Current() != nil
}

// IsAdmin reports whether the signed-in user is an admin.
func (s *Store) IsAdmin() bool {
	return s.Current().IsAdmin()
}

func (s *Store) setCurrent(ctx context.Context, u *model.User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.kv.Set(ctx, kv.KeySessionUser, data); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	s.current = u
	return nil
}

func copyUser(u *model.User) *model.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
