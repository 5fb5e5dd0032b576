package otp

import (
	"bytes"
	"errors"
	"testing"
)

func TestDecodeSecret(t *testing.T) {
	want := []byte("Hello!\xde\xad\xbe\xef")

	t.Run("Uppercase", func(t *testing.T) {
		key, err := DecodeSecret("JBSWY3DPEHPK3PXP")
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(key, want) {
			t.Errorf("unexpected key bytes %x", key)
		}
	})

	t.Run("LowercaseAndSpaced", func(t *testing.T) {
		key, err := DecodeSecret("  jbsw y3dp ehpk 3pxp ")
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(key, want) {
			t.Errorf("unexpected key bytes %x", key)
		}
	})

	t.Run("Padded", func(t *testing.T) {
		key, err := DecodeSecret("MZXW6===")
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(key, []byte("foo")) {
			t.Errorf("unexpected key bytes %x", key)
		}
	})

	t.Run("Rejected", func(t *testing.T) {
		for _, in := range []string{"", "   ", "====", "not-base32!", "189", "JBSWY3DPEHPK3PX0"} {
			if _, err := DecodeSecret(in); !errors.Is(err, ErrInvalidSecret) {
				t.Errorf("DecodeSecret(%q): expected ErrInvalidSecret, got %v", in, err)
			}
		}
	})
}

func TestNormalizeSecret(t *testing.T) {
	got, err := NormalizeSecret("jbsw y3dp ehpk 3pxp")
	if err != nil {
		t.Fatal(err)
	}
	if got != "JBSWY3DPEHPK3PXP" {
		t.Errorf("NormalizeSecret = %q", got)
	}

	got, err = NormalizeSecret("MZXW6===")
	if err != nil {
		t.Fatal(err)
	}
	if got != "MZXW6" {
		t.Errorf("NormalizeSecret = %q", got)
	}
}

func TestGenerateSecret(t *testing.T) {
	s1, err := GenerateSecret()
	if err != nil {
		t.Fatal(err)
	}
	s2, err := GenerateSecret()
	if err != nil {
		t.Fatal(err)
	}
	if s1 == s2 {
		t.Error("two generated secrets are identical")
	}

	key, err := DecodeSecret(s1)
	if err != nil {
		t.Fatalf("generated secret does not decode: %v", err)
	}
	if len(key) != 20 {
		t.Errorf("expected a 160-bit secret, got %d bytes", len(key))
	}
}
