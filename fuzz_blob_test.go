package tresor_test

import (
	"bytes"
	"testing"

	"github.com/r4gus/tresor"
)

// FuzzOpenNeverPanics feeds arbitrary bytes to Open and only requires
// that it not panic, whatever it returns; a sealed blob is seeded so
// the corpus starts from a structurally valid input the fuzzer can
// mutate.
func FuzzOpenNeverPanics(f *testing.F) {
	s := newTestStoreForFuzz()
	e := s.CreateEntry([]byte("id"))
	_ = e.AddField("k", []byte("v"), 1000)
	_ = s.AddEntry(e)

	var buf bytes.Buffer
	if err := s.Seal(&buf, []byte("pw")); err != nil {
		f.Fatalf("seal: %v", err)
	}
	f.Add(buf.Bytes())
	f.Add([]byte(""))
	f.Add([]byte("SECRET"))

	f.Fuzz(func(t *testing.T, raw []byte) {
		_, _ = tresor.Open(bytes.NewReader(raw), []byte("pw"), tresor.WithKDFCost(1, 8*1024, 1))
	})
}

func newTestStoreForFuzz() *tresor.Store {
	s, _ := tresor.New("fuzz/0.1", "fuzz-store",
		tresor.ChaCha20Poly1305, tresor.CompressionNone, tresor.Argon2id,
		tresor.WithKDFCost(1, 8*1024, 1),
	)
	return s
}
