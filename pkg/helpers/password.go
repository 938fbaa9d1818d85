package helpers

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

const (
	argon2Variant = "argon2id"
	argon2Version = "v=19"
)

var (
	errInvalidHashFormat = errors.New("argon2: invalid encoded hash format")
	errInvalidArgon2     = errors.New("argon2: invalid configuration")
)

// Argon2Params tunes argon2id hashing. Every hash records the params it was
// produced with, so changing them never invalidates stored credentials.
type Argon2Params struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

var (
	defaultArgon2 = Argon2Params{Memory: 64 * 1024, Iterations: 3, Parallelism: 2, SaltLength: 16, KeyLength: 32}

	argon2Mu     sync.RWMutex
	activeArgon2 = defaultArgon2
)

func DefaultArgon2Params() Argon2Params { return defaultArgon2 }

// ConfigureArgon2 replaces the params used for new hashes.
func ConfigureArgon2(p Argon2Params) error {
	if err := p.validate(); err != nil {
		return err
	}
	argon2Mu.Lock()
	activeArgon2 = p
	argon2Mu.Unlock()
	return nil
}

func currentArgon2() Argon2Params {
	argon2Mu.RLock()
	defer argon2Mu.RUnlock()
	return activeArgon2
}

func (p Argon2Params) validate() error {
	switch {
	case p.Memory < 8*1024:
		return fmt.Errorf("%w: memory must be at least 8192", errInvalidArgon2)
	case p.Iterations == 0:
		return fmt.Errorf("%w: iterations must be positive", errInvalidArgon2)
	case p.Parallelism == 0:
		return fmt.Errorf("%w: parallelism must be positive", errInvalidArgon2)
	case p.SaltLength < 8:
		return fmt.Errorf("%w: salt must be at least 8 bytes", errInvalidArgon2)
	case p.KeyLength < 16:
		return fmt.Errorf("%w: key must be at least 16 bytes", errInvalidArgon2)
	}
	return nil
}

// HashPassword hashes plain with argon2id and a random per-credential salt.
// Format: argon2id$v=19$m=<memory>,t=<iterations>,p=<parallelism>$<salt>$<hash>
func HashPassword(plain string) (string, error) {
	p := currentArgon2()
	salt := make([]byte, p.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("argon2: generate salt: %w", err)
	}
	sum := argon2.IDKey([]byte(plain), salt, p.Iterations, p.Memory, p.Parallelism, p.KeyLength)
	return strings.Join([]string{
		argon2Variant,
		argon2Version,
		fmt.Sprintf("m=%d,t=%d,p=%d", p.Memory, p.Iterations, p.Parallelism),
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(sum),
	}, "$"), nil
}

// CompareHashAndPassword reports whether plain matches hash. Hashes starting
// with "$2" are bcrypt hashes written before the switch to argon2id.
func CompareHashAndPassword(hash string, plain string) bool {
	if hash == "" || plain == "" {
		return false
	}
	if strings.HasPrefix(hash, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
	}
	p, salt, want, err := decodeArgon2(hash)
	if err != nil {
		return false
	}
	got := argon2.IDKey([]byte(plain), salt, p.Iterations, p.Memory, p.Parallelism, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1
}

func decodeArgon2(encoded string) (Argon2Params, []byte, []byte, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 5 || parts[0] != argon2Variant || parts[1] != argon2Version {
		return Argon2Params{}, nil, nil, errInvalidHashFormat
	}
	var p Argon2Params
	for _, kv := range strings.Split(parts[2], ",") {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			return Argon2Params{}, nil, nil, errInvalidHashFormat
		}
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return Argon2Params{}, nil, nil, fmt.Errorf("argon2: parse %s: %w", k, err)
		}
		switch k {
		case "m":
			p.Memory = uint32(n)
		case "t":
			p.Iterations = uint32(n)
		case "p":
			if n > 255 {
				return Argon2Params{}, nil, nil, errInvalidHashFormat
			}
			p.Parallelism = uint8(n)
		default:
			return Argon2Params{}, nil, nil, errInvalidHashFormat
		}
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[3])
	if err != nil {
		return Argon2Params{}, nil, nil, fmt.Errorf("argon2: decode salt: %w", err)
	}
	sum, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return Argon2Params{}, nil, nil, fmt.Errorf("argon2: decode hash: %w", err)
	}
	p.SaltLength = uint32(len(salt))
	p.KeyLength = uint32(len(sum))
	if err := p.validate(); err != nil {
		return Argon2Params{}, nil, nil, err
	}
	return p, salt, sum, nil
}
