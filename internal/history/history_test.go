// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	// Deterministic, strictly increasing clock.
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	n := 0
	s.now = func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Second)
	}
	return s
}

func TestRecordAndRecent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first, err := s.Record(ctx, "p1", KindReference, "[/gdc/md/p1/obj/1]")
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)

	_, err = s.Record(ctx, "p1", KindSnippet, "SELECT [/gdc/md/p1/obj/1]")
	require.NoError(t, err)

	entries, err := s.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, KindSnippet, entries[0].Kind)
	assert.Equal(t, "SELECT [/gdc/md/p1/obj/1]", entries[0].Text)
	assert.Equal(t, first.ID, entries[1].ID)
	assert.Equal(t, "p1", entries[1].PID)
	assert.True(t, entries[1].CreatedAt.Equal(first.CreatedAt))
}

func TestRecentLimit(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	for _, text := range []string{"a", "b", "c"} {
		_, err := s.Record(ctx, "p", KindSnippet, text)
		require.NoError(t, err)
	}

	entries, err := s.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "c", entries[0].Text)
	assert.Equal(t, "b", entries[1].Text)
}

func TestRecordRejectsUnknownKind(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Record(context.Background(), "p", Kind("bogus"), "x")
	assert.ErrorIs(t, err, ErrInvalidKind)
}

func TestPrune(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	for _, text := range []string{"a", "b", "c", "d"} {
		_, err := s.Record(ctx, "p", KindSnippet, text)
		require.NoError(t, err)
	}

	removed, err := s.Prune(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)

	entries, err := s.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "d", entries[0].Text)
}

func TestClosedStore(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.Close())

	_, err := s.Record(context.Background(), "p", KindSnippet, "x")
	assert.ErrorIs(t, err, ErrClosed)
	_, err = s.Recent(context.Background(), 1)
	assert.ErrorIs(t, err, ErrClosed)
	assert.NoError(t, s.Close())
}

func TestReopenKeepsEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.Record(context.Background(), "p", KindReference, "r")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	entries, err := s.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
