package tresor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/r4gus/tresor"
)

func TestEntryAddFieldDuplicateKeyRejected(t *testing.T) {
	s := newTestStore(t)
	e := s.CreateEntry([]byte("id"))
	require.NoError(t, e.AddField("user", []byte("alice"), 1000))

	err := e.AddField("user", []byte("bob"), 1000)
	assert.ErrorIs(t, err, tresor.ErrDuplicate)
}

func TestEntryGetFieldUpdatesAccessedAt(t *testing.T) {
	s := newTestStore(t)
	e := s.CreateEntry([]byte("id"))
	require.NoError(t, e.AddField("user", []byte("alice"), 1000))

	before := e.AccessedAt()
	_, err := e.GetField("user", before+500)
	require.NoError(t, err)
	assert.Greater(t, e.AccessedAt(), before)
}

func TestEntryUpdateFieldReplacesValue(t *testing.T) {
	s := newTestStore(t)
	e := s.CreateEntry([]byte("id"))
	require.NoError(t, e.AddField("user", []byte("alice"), 1000))
	require.NoError(t, e.UpdateField("user", []byte("carol"), 2000))

	v, err := e.GetField("user", 3000)
	require.NoError(t, err)
	assert.Equal(t, []byte("carol"), v)
	assert.Equal(t, int64(2000), e.ModifiedAt())
}

func TestEntryUpdateFieldNotFound(t *testing.T) {
	s := newTestStore(t)
	e := s.CreateEntry([]byte("id"))
	err := e.UpdateField("missing", []byte("x"), 1000)
	assert.ErrorIs(t, err, tresor.ErrNotFound)
}

func TestEntryRemoveFieldReindexes(t *testing.T) {
	s := newTestStore(t)
	e := s.CreateEntry([]byte("id"))
	require.NoError(t, e.AddField("a", []byte("1"), 1000))
	require.NoError(t, e.AddField("b", []byte("2"), 1000))
	require.NoError(t, e.AddField("c", []byte("3"), 1000))

	require.NoError(t, e.RemoveField("a"))

	_, err := e.GetField("a", 2000)
	assert.ErrorIs(t, err, tresor.ErrNotFound)

	v, err := e.GetField("c", 2000)
	require.NoError(t, err)
	assert.Equal(t, []byte("3"), v)
}
