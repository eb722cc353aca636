package random

import (
	"crypto/rand"
	"math/big"
	mrand "math/rand/v2"
)

// Random provides random number generation that can be mocked for testing
type Random interface {
	// Intn returns a random int in [0, n)
	Intn(n int) int

	// String generates a random string of the given length from the given alphabet
	String(length int, alphabet string) string
}

// CryptoRandom implements Random using crypto/rand
type CryptoRandom struct{}

// New creates a new CryptoRandom
func New() *CryptoRandom {
	return &CryptoRandom{}
}

// Intn returns a cryptographically random int in [0, n)
func (r *CryptoRandom) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	result, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(result.Int64())
}

// String generates a random string of the given length from the given alphabet
func (r *CryptoRandom) String(length int, alphabet string) string {
	return randomString(r, length, alphabet)
}

// SeededRandom is a deterministic Random: the same seed always yields the
// same sequence
type SeededRandom struct {
	rng *mrand.Rand
}

// NewSeeded creates a SeededRandom backed by a ChaCha8 stream
func NewSeeded(seed [32]byte) *SeededRandom {
	return &SeededRandom{rng: mrand.New(mrand.NewChaCha8(seed))}
}

// Intn returns a deterministic int in [0, n)
func (r *SeededRandom) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return r.rng.IntN(n)
}

// String generates a deterministic string of the given length from the given alphabet
func (r *SeededRandom) String(length int, alphabet string) string {
	return randomString(r, length, alphabet)
}

func randomString(r Random, length int, alphabet string) string {
	if length <= 0 || len(alphabet) == 0 {
		return ""
	}
	result := make([]byte, length)
	for i := range result {
		result[i] = alphabet[r.Intn(len(alphabet))]
	}
	return string(result)
}
