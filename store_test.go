package tresor_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/r4gus/tresor"
)

// fixedClock returns a Clock that always answers t, for deterministic
// timestamps.
func fixedClock(t int64) tresor.Clock {
	return func() int64 { return t }
}

func newTestStore(t *testing.T) *tresor.Store {
	t.Helper()
	s, err := tresor.New("tresorctl-test/0.1", "my-store",
		tresor.ChaCha20Poly1305, tresor.CompressionNone, tresor.Argon2id,
		tresor.WithClock(fixedClock(1000)),
		tresor.WithKDFCost(1, 8*1024, 1),
	)
	require.NoError(t, err)
	return s
}

func TestNewRejectsUnsupportedAlgorithms(t *testing.T) {
	_, err := tresor.New("g", "n", tresor.CipherID(99), tresor.CompressionNone, tresor.Argon2id)
	assert.ErrorIs(t, err, tresor.ErrUnsupportedAlgorithm)

	_, err = tresor.New("g", "n", tresor.ChaCha20Poly1305, tresor.CompressionNone, tresor.KDFID(99))
	assert.ErrorIs(t, err, tresor.ErrUnsupportedAlgorithm)
}

func TestAddEntryRejectsDuplicateID(t *testing.T) {
	s := newTestStore(t)
	e1 := s.CreateEntry([]byte("login-1"))
	require.NoError(t, s.AddEntry(e1))

	e2 := s.CreateEntry([]byte("login-1"))
	err := s.AddEntry(e2)
	assert.ErrorIs(t, err, tresor.ErrDuplicate)
	assert.Equal(t, 1, s.EntryCount())
}

func TestGetEntryNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetEntry([]byte("nope"))
	assert.ErrorIs(t, err, tresor.ErrNotFound)
}

func TestRemoveEntry(t *testing.T) {
	s := newTestStore(t)
	e := s.CreateEntry([]byte("login-1"))
	require.NoError(t, s.AddEntry(e))
	require.NoError(t, s.RemoveEntry([]byte("login-1")))
	assert.Equal(t, 0, s.EntryCount())

	err := s.RemoveEntry([]byte("login-1"))
	assert.ErrorIs(t, err, tresor.ErrNotFound)
}

func TestGetEntriesFilter(t *testing.T) {
	s := newTestStore(t)
	now := int64(1000)

	e1 := s.CreateEntry([]byte("a"))
	require.NoError(t, e1.AddField("site", []byte("github.com"), now))
	require.NoError(t, s.AddEntry(e1))

	e2 := s.CreateEntry([]byte("b"))
	require.NoError(t, e2.AddField("site", []byte("gitlab.com"), now))
	require.NoError(t, s.AddEntry(e2))

	got := s.GetEntries([]tresor.Filter{{Key: "site", Value: []byte("github.com")}})
	require.Len(t, got, 1)
	assert.Equal(t, []byte("a"), got[0].ID())

	all := s.GetEntries(nil)
	assert.Len(t, all, 2)
}

func TestSealOpenRoundTrip(t *testing.T) {
	s := newTestStore(t)
	e := s.CreateEntry([]byte("login-1"))
	require.NoError(t, e.AddField("username", []byte("alice"), 1000))
	require.NoError(t, e.AddField("password", []byte("s3cr3t"), 1000))
	require.NoError(t, s.AddEntry(e))

	var buf bytes.Buffer
	password := []byte("correct horse battery staple")
	require.NoError(t, s.Seal(&buf, password))

	opened, err := tresor.Open(&buf, password, tresor.WithKDFCost(1, 8*1024, 1))
	require.NoError(t, err)
	assert.Equal(t, "my-store", opened.Name())
	assert.Equal(t, 1, opened.EntryCount())

	got, err := opened.GetEntry([]byte("login-1"))
	require.NoError(t, err)
	v, err := got.GetField("username", 2000)
	require.NoError(t, err)
	assert.Equal(t, []byte("alice"), v)
}

func TestOpenWrongPasswordFails(t *testing.T) {
	s := newTestStore(t)
	var buf bytes.Buffer
	require.NoError(t, s.Seal(&buf, []byte("right-password")))

	_, err := tresor.Open(&buf, []byte("wrong-password"), tresor.WithKDFCost(1, 8*1024, 1))
	assert.ErrorIs(t, err, tresor.ErrCannotOpen)
	assert.ErrorIs(t, err, tresor.ErrAuthFail)
}

func TestOpenTruncatedBlobFails(t *testing.T) {
	s := newTestStore(t)
	var buf bytes.Buffer
	require.NoError(t, s.Seal(&buf, []byte("pw")))

	truncated := bytes.NewReader(buf.Bytes()[:5])
	_, err := tresor.Open(truncated, []byte("pw"), tresor.WithKDFCost(1, 8*1024, 1))
	assert.ErrorIs(t, err, tresor.ErrCannotOpen)
	assert.ErrorIs(t, err, tresor.ErrTruncated)
}

func TestOpenTamperedHeaderRejected(t *testing.T) {
	s := newTestStore(t)
	var buf bytes.Buffer
	require.NoError(t, s.Seal(&buf, []byte("pw")))

	raw := buf.Bytes()
	raw[12] ^= 0xFF // perturb a header byte, part of the AAD

	_, err := tresor.Open(bytes.NewReader(raw), []byte("pw"), tresor.WithKDFCost(1, 8*1024, 1))
	assert.ErrorIs(t, err, tresor.ErrCannotOpen)
}

func TestOpenBadMagicRejected(t *testing.T) {
	s := newTestStore(t)
	var buf bytes.Buffer
	require.NoError(t, s.Seal(&buf, []byte("pw")))

	raw := buf.Bytes()
	raw[0] = 'X'

	_, err := tresor.Open(bytes.NewReader(raw), []byte("pw"), tresor.WithKDFCost(1, 8*1024, 1))
	assert.ErrorIs(t, err, tresor.ErrCannotOpen)
	assert.ErrorIs(t, err, tresor.ErrBadMagic)
}

func TestNeedsRehash(t *testing.T) {
	s := newTestStore(t)
	var buf bytes.Buffer
	require.NoError(t, s.Seal(&buf, []byte("pw")))

	opened, err := tresor.Open(&buf, []byte("pw"),
		tresor.WithKDFCost(1, 8*1024, 1),
		tresor.WithRehashPolicy(tresor.RehashPolicy{Iterations: 10, MemoryKiB: 256 * 1024, Parallelism: 4}),
	)
	require.NoError(t, err)
	assert.True(t, opened.NeedsRehash())
}

func TestCloseZeroesFieldValues(t *testing.T) {
	s := newTestStore(t)
	e := s.CreateEntry([]byte("login-1"))
	require.NoError(t, e.AddField("password", []byte("s3cr3t"), 1000))
	require.NoError(t, s.AddEntry(e))

	s.Close()

	got, err := s.GetEntry([]byte("login-1"))
	require.NoError(t, err)
	v, err := got.GetField("password", 2000)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0}, v)
}

func TestUpgradeKDFReseedsParams(t *testing.T) {
	s := newTestStore(t)
	var buf bytes.Buffer
	require.NoError(t, s.Seal(&buf, []byte("pw")))

	target := tresor.RehashPolicy{Iterations: 4, MemoryKiB: 128 * 1024, Parallelism: 2}
	opened, err := tresor.Open(&buf, []byte("pw"),
		tresor.WithKDFCost(1, 8*1024, 1),
		tresor.WithRehashPolicy(target),
	)
	require.NoError(t, err)
	require.True(t, opened.NeedsRehash())

	opened.UpgradeKDF()

	var resealed bytes.Buffer
	require.NoError(t, opened.Seal(&resealed, []byte("pw")))

	reopened, err := tresor.Open(&resealed, []byte("pw"), tresor.WithRehashPolicy(target))
	require.NoError(t, err)
	assert.False(t, reopened.NeedsRehash())
}
