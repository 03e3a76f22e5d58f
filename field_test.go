package tresor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/r4gus/tresor"
)

func TestFieldValueIsACopy(t *testing.T) {
	s := newTestStore(t)
	e := s.CreateEntry([]byte("id"))
	require.NoError(t, e.AddField("user", []byte("alice"), 1000))

	fields := e.Fields()
	require.Len(t, fields, 1)

	v := fields[0].Value()
	v[0] = 'X'

	v2, err := e.GetField("user", 2000)
	require.NoError(t, err)
	assert.Equal(t, []byte("alice"), v2)
}

func TestFieldKeyIsByteExact(t *testing.T) {
	s := newTestStore(t)
	e := s.CreateEntry([]byte("id"))
	require.NoError(t, e.AddField("User", []byte("alice"), 1000))

	_, err := e.GetField("user", 2000)
	assert.ErrorIs(t, err, tresor.ErrNotFound)
}
