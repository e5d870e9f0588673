package redact_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Venom-999/ALDA-FINAL-KURS/internal/redact"
	"github.com/stretchr/testify/assert"
)

func TestRedactString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "no sensitive data",
			input:    "request status changed to Completed",
			expected: "request status changed to Completed",
		},
		{
			name:     "email address",
			input:    "login failed for anna@example.com",
			expected: "login failed for [REDACTED_EMAIL]",
		},
		{
			name:     "international phone",
			input:    "duplicate phone +7 900 123-45-67",
			expected: "duplicate phone [REDACTED_PHONE]",
		},
		{
			name:     "bcrypt hash",
			input:    "hash $2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy stored",
			expected: "hash [REDACTED_HASH] stored",
		},
		{
			name:     "verification code parameter",
			input:    "verify code=123456 rejected",
			expected: "verify code=[REDACTED_SECRET] rejected",
		},
		{
			name:     "password parameter",
			input:    "bad password: hunter22",
			expected: "bad password=[REDACTED_SECRET]",
		},
		{
			name:     "unix data path",
			input:    "open /home/anna/.config/servicehub/users.json: permission denied",
			expected: "open [REDACTED_PATH]: permission denied",
		},
		{
			name:     "windows data path",
			input:    `open C:\Users\anna\AppData\servicehub\users.json failed`,
			expected: "open [REDACTED_PATH] failed",
		},
		{
			name:     "identifiers are kept",
			input:    "service 6f1c2a9e-1b2c-4d5e-8f90-123456789abc not found",
			expected: "service 6f1c2a9e-1b2c-4d5e-8f90-123456789abc not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, redact.String(tt.input))
		})
	}
}

func TestRedactError(t *testing.T) {
	assert.Equal(t, "", redact.Error(nil))

	err := fmt.Errorf("save users: %w", errors.New("write /var/lib/servicehub/users.json: disk full"))
	assert.Equal(t, "save users: write [REDACTED_PATH]: disk full", redact.Error(err))
}

func TestRedactEmail(t *testing.T) {
	assert.Equal(t, "a***@example.com", redact.Email(" anna@example.com "))
	assert.Equal(t, "а***@почта.рф", redact.Email("анна@почта.рф"))
	assert.Equal(t, "[REDACTED_EMAIL]", redact.Email("not-an-email"))
	assert.Equal(t, "", redact.Email(""))
}

func TestRedactPhone(t *testing.T) {
	assert.Equal(t, "*********67", redact.Phone("+7 (900) 123-45-67"))
	assert.Equal(t, "**", redact.Phone("12"))
	assert.Equal(t, "", redact.Phone("n/a"))
}

func TestRedactIdentifier(t *testing.T) {
	assert.Equal(t, "b***@x.org", redact.Identifier("bob@x.org"))
	assert.Equal(t, "*********67", redact.Identifier("+79001234567"))
}
