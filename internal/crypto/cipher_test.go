package crypto

import (
	"bytes"
	"crypto/rand"
	"testing"
)

func randBytes(t *testing.T, n int) []byte {
	t.Helper()
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		t.Fatalf("rand.Read: %v", err)
	}
	return b
}

func TestChaChaPoly1305SealOpenRoundTrip(t *testing.T) {
	suite, ok := LookupCipher(CipherChaCha20Poly1305)
	if !ok {
		t.Fatal("cipher not registered")
	}
	key := randBytes(t, suite.KeyLen())
	iv := randBytes(t, suite.IVLen())
	pt := randBytes(t, 4096)
	aad := []byte("header-bytes")

	ct, tag, err := suite.Seal(key, iv, pt, aad)
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	if len(tag) != suite.TagLen() {
		t.Fatalf("tag length = %d, want %d", len(tag), suite.TagLen())
	}
	got, err := suite.Open(key, iv, ct, tag, aad)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if !bytes.Equal(pt, got) {
		t.Fatal("plaintext mismatch")
	}
}

func TestChaChaPoly1305OpenRejectsTamperedTag(t *testing.T) {
	suite, _ := LookupCipher(CipherChaCha20Poly1305)
	key := randBytes(t, suite.KeyLen())
	iv := randBytes(t, suite.IVLen())
	ct, tag, err := suite.Seal(key, iv, []byte("payload"), nil)
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	tag[0] ^= 0xFF
	if _, err := suite.Open(key, iv, ct, tag, nil); err == nil {
		t.Fatal("expected auth failure")
	}
}

func TestChaChaPoly1305OpenRejectsWrongAAD(t *testing.T) {
	suite, _ := LookupCipher(CipherChaCha20Poly1305)
	key := randBytes(t, suite.KeyLen())
	iv := randBytes(t, suite.IVLen())
	ct, tag, err := suite.Seal(key, iv, []byte("payload"), []byte("aad-1"))
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	if _, err := suite.Open(key, iv, ct, tag, []byte("aad-2")); err == nil {
		t.Fatal("expected auth failure on AAD mismatch")
	}
}

func FuzzChaChaPoly1305RejectMutation(f *testing.F) {
	f.Add([]byte("hello"), []byte("aad"))
	f.Add([]byte(""), []byte(""))
	f.Fuzz(func(t *testing.T, pt, aad []byte) {
		suite, _ := LookupCipher(CipherChaCha20Poly1305)
		key := randBytes(t, suite.KeyLen())
		iv := randBytes(t, suite.IVLen())
		ct, tag, err := suite.Seal(key, iv, pt, aad)
		if err != nil {
			t.Fatalf("seal: %v", err)
		}
		if _, err := suite.Open(key, iv, ct, tag, aad); err != nil {
			t.Fatalf("baseline open: %v", err)
		}
		if len(ct) == 0 {
			return
		}
		mut := append([]byte(nil), ct...)
		mut[len(pt)%len(mut)] ^= 0xFF
		if _, err := suite.Open(key, iv, mut, tag, aad); err == nil {
			t.Fatal("mutation went undetected")
		}
	})
}
