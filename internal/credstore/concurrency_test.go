// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package credstore

import (
	"sync"
	"testing"

	"github.com/jeranaias/authcode-tui/internal/model"
	"github.com/stretchr/testify/require"
)

// TestStore_ConcurrentReadWrite hammers the store from many goroutines.
// SQLite serializes the writes; no call may error or race.
func TestStore_ConcurrentReadWrite(t *testing.T) {
	s := openTestStore(t)

	creds := model.Credentials{Username: "alice", Password: "hunter2"}
	session := model.Session{Token: "tok"}
	require.NoError(t, s.SaveLogin(creds, session))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := s.Load()
			require.NoError(t, err)
		}()

		wg.Add(1)
		go func() {
			defer wg.Done()
			require.NoError(t, s.SaveLogin(creds, session))
		}()
	}
	wg.Wait()

	got, sess, err := s.Load()
	require.NoError(t, err)
	require.Equal(t, "alice", got.Username)
	require.True(t, sess.Valid())
}

// TestStore_ConcurrentClearSession mixes session clears with reads. The
// login pair must survive every interleaving.
func TestStore_ConcurrentClearSession(t *testing.T) {
	s := openTestStore(t)

	creds := model.Credentials{Username: "alice", Password: "hunter2"}
	require.NoError(t, s.SaveLogin(creds, model.Session{Token: "tok"}))

	var wg sync.WaitGroup
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			require.NoError(t, s.ClearSession())
		}()

		wg.Add(1)
		go func() {
			defer wg.Done()
			c, _, err := s.Load()
			require.NoError(t, err)
			require.Equal(t, "alice", c.Username)
		}()
	}
	wg.Wait()

	_, sess, err := s.Load()
	require.NoError(t, err)
	require.False(t, sess.Valid())
}

// TestStore_ConcurrentInstallID verifies the install ID is stable under
// concurrent access.
func TestStore_ConcurrentInstallID(t *testing.T) {
	s := openTestStore(t)

	first, err := s.InstallID()
	require.NoError(t, err)
	require.NotEmpty(t, first)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := s.InstallID()
			require.NoError(t, err)
			require.Equal(t, first, id)
		}()
	}
	wg.Wait()
}
