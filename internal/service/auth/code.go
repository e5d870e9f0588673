package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"io"
	"math/big"
)

// CodeDigits is the length of a verification code.
const CodeDigits = 6

var codeSpace = big.NewInt(1_000_000)

// CodeGenerator issues one-time verification codes.
type CodeGenerator interface {
	Generate() (string, error)
}

// RandomCodeGenerator draws six-digit codes from a random source.
type RandomCodeGenerator struct {
	rand io.Reader
}

// NewRandomCodeGenerator returns a generator backed by crypto/rand.
func NewRandomCodeGenerator() *RandomCodeGenerator {
	return &RandomCodeGenerator{rand: rand.Reader}
}

// Generate returns a zero-padded six-digit code.
func (g *RandomCodeGenerator) Generate() (string, error) {
	n, err := rand.Int(g.rand, codeSpace)
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}
	return fmt.Sprintf("%0*d", CodeDigits, n.Int64()), nil
}

// HashCode returns the hex SHA-256 digest stored in place of a code.
func HashCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

// CompareCode checks code against a digest produced by HashCode. The match
// is exact; surrounding whitespace is not ignored.
func CompareCode(hash, code string) error {
	if hash == "" {
		return ErrCodeMismatch
	}
	if subtle.ConstantTimeCompare([]byte(hash), []byte(HashCode(code))) != 1 {
		return ErrCodeMismatch
	}
	return nil
}
