package helpers

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func useCheapArgon2(t *testing.T) {
	t.Helper()
	prev := currentArgon2()
	if err := ConfigureArgon2(Argon2Params{Memory: 8 * 1024, Iterations: 1, Parallelism: 1, SaltLength: 8, KeyLength: 16}); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = ConfigureArgon2(prev) })
}

func TestHashPasswordRoundTrip(t *testing.T) {
	useCheapArgon2(t)
	h, err := HashPassword("Secret123")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(h, "argon2id$v=19$m=8192,t=1,p=1$") {
		t.Fatalf("hash = %q", h)
	}
	if !CompareHashAndPassword(h, "Secret123") {
		t.Fatal("correct password rejected")
	}
	if CompareHashAndPassword(h, "secret123") || CompareHashAndPassword(h, "") {
		t.Fatal("wrong password accepted")
	}
}

func TestHashKeepsItsOwnParams(t *testing.T) {
	useCheapArgon2(t)
	h, err := HashPassword("Secret123")
	if err != nil {
		t.Fatal(err)
	}
	if err := ConfigureArgon2(Argon2Params{Memory: 16 * 1024, Iterations: 2, Parallelism: 1, SaltLength: 16, KeyLength: 32}); err != nil {
		t.Fatal(err)
	}
	if !CompareHashAndPassword(h, "Secret123") {
		t.Fatal("retuning params broke an existing hash")
	}
}

func TestLegacyBcryptHash(t *testing.T) {
	h, err := bcrypt.GenerateFromPassword([]byte("Secret123"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	if !CompareHashAndPassword(string(h), "Secret123") {
		t.Fatal("bcrypt hash rejected")
	}
	if CompareHashAndPassword(string(h), "nope") {
		t.Fatal("bcrypt accepted wrong password")
	}
}

func TestMalformedHashes(t *testing.T) {
	for _, h := range []string{
		"",
		"plain",
		"argon2id$v=19$m=8192,t=1,p=1$$",
		"argon2id$v=19$m=1,t=1,p=1$c2FsdHNhbHQ$a2V5a2V5a2V5a2V5a2V5",
		"argon2i$v=19$m=8192,t=1,p=1$c2FsdHNhbHQ$a2V5a2V5a2V5a2V5a2V5",
	} {
		if CompareHashAndPassword(h, "anything") {
			t.Errorf("accepted malformed hash %q", h)
		}
	}
}

func TestConfigureArgon2Validates(t *testing.T) {
	if err := ConfigureArgon2(Argon2Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}); err == nil {
		t.Fatal("low memory accepted")
	}
	if currentArgon2().Memory == 1024 {
		t.Fatal("rejected params were applied")
	}
}
