// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/olegiv/ocms-blog/internal/auth"
	"github.com/olegiv/ocms-blog/internal/kv"
	"github.com/olegiv/ocms-blog/internal/model"
)

type account struct {
	model.User
	PasswordHash string `json:"passwordHash"`
}

// accountBook persists registered accounts under kv.KeyAccounts.
type accountBook struct {
	store kv.Store
	mu    sync.Mutex
}

func (b *accountBook) load(ctx context.Context) ([]account, error) {
	data, err := b.store.Get(ctx, kv.KeyAccounts)
	if errors.Is(err, kv.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading accounts: %w", err)
	}
	var accounts []account
	if err := json.Unmarshal(data, &accounts); err != nil {
		return nil, fmt.Errorf("decoding accounts: %w", err)
	}
	return accounts, nil
}

func (b *accountBook) verify(ctx context.Context, email, password string) (*model.User, error) {
	b.mu.Lock()
	accounts, err := b.load(ctx)
	b.mu.Unlock()
	if err != nil {
		return nil, err
	}

	for _, a := range accounts {
		if a.Email != email {
			continue
		}
		ok, err := auth.CheckPassword(password, a.PasswordHash)
		if err != nil {
			return nil, fmt.Errorf("checking password for %s: %w", a.ID, err)
		}
		if !ok {
			return nil, nil
		}
		u := a.User
		return &u, nil
	}
	return nil, nil
}

// add stores u with a hash of password. It reports false when the email is
// already registered.
func (b *accountBook) add(ctx context.Context, u model.User, password string) (bool, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return false, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	accounts, err := b.load(ctx)
	if err != nil {
		return false, err
	}
	for _, a := range accounts {
		if a.Email == u.Email {
			return false, nil
		}
	}

	data, err := json.Marshal(append(accounts, account{User: u, PasswordHash: hash}))
	if err != nil {
		return false, fmt.Errorf("encoding accounts: %w", err)
	}
	if err := b.store.Set(ctx, kv.KeyAccounts, data); err != nil {
		return false, fmt.Errorf("writing accounts: %w", err)
	}
	return true, nil
}
