package domain

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common validation errors
var (
	ErrEmptyUserID         = errors.New("user ID cannot be empty")
	ErrEmptyEmail          = errors.New("email cannot be empty")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)

// Role is the kind of account. Values are persisted as their index.
type Role int

// Account roles
const (
	RoleClient Role = iota
	RoleProvider
	RoleAdmin
)

// RoleFromIndex clamps i into the valid role range.
func RoleFromIndex(i int) Role {
	if i < int(RoleClient) {
		return RoleClient
	}
	if i > int(RoleAdmin) {
		return RoleAdmin
	}
	return Role(i)
}

// String returns the role name.
func (r Role) String() string {
	switch r {
	case RoleProvider:
		return "Provider"
	case RoleAdmin:
		return "Admin"
	default:
		return "Client"
	}
}

// User is a registered account of the marketplace.
// Email is unique case-insensitively; phone is unique when non-empty.
type User struct {
	ID                   uuid.UUID
	Email                string
	Phone                string
	Role                 Role
	HashedPassword       string // bcrypt; the salt is embedded in the hash
	Verified             bool
	VerificationCodeHash string // pending single-use code, empty when none
	CreatedAt            time.Time
}

// NewUser creates an unverified User with trimmed email and phone.
// The caller is responsible for setting HashedPassword before storing it.
func NewUser(email, phone string, role Role) (*User, error) {
	user := &User{
		ID:        uuid.New(),
		Email:     strings.TrimSpace(email),
		Phone:     strings.TrimSpace(phone),
		Role:      RoleFromIndex(int(role)),
		CreatedAt: now(),
	}

	if user.Email == "" {
		return nil, ErrEmptyEmail
	}

	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}
	if strings.TrimSpace(u.Email) == "" {
		return ErrEmptyEmail
	}
	if u.HashedPassword == "" {
		return ErrEmptyHashedPassword
	}
	return nil
}

// HasEmail compares emails case-insensitively.
func (u *User) HasEmail(email string) bool {
	return strings.EqualFold(u.Email, strings.TrimSpace(email))
}

// HasPhone compares phones exactly; an empty phone never matches.
func (u *User) HasPhone(phone string) bool {
	phone = strings.TrimSpace(phone)
	return phone != "" && u.Phone == phone
}

// MatchesIdentifier reports whether identifier is this user's email or phone.
func (u *User) MatchesIdentifier(identifier string) bool {
	return u.HasEmail(identifier) || u.HasPhone(identifier)
}

type userJSON struct {
	ID                   string `json:"id"`
	Email                string `json:"email"`
	Phone                string `json:"phone"`
	Role                 int    `json:"role"`
	Verified             bool   `json:"verified"`
	PasswordHash         string `json:"passwordHash"`
	VerificationCodeHash string `json:"verificationCodeHash"`
	CreatedAt            string `json:"createdAt"`
}

// MarshalJSON implements json.Marshaler.
func (u User) MarshalJSON() ([]byte, error) {
	return json.Marshal(userJSON{
		ID:                   u.ID.String(),
		Email:                u.Email,
		Phone:                u.Phone,
		Role:                 int(u.Role),
		Verified:             u.Verified,
		PasswordHash:         u.HashedPassword,
		VerificationCodeHash: u.VerificationCodeHash,
		CreatedAt:            FormatTimestamp(u.CreatedAt),
	})
}

// UnmarshalJSON implements json.Unmarshaler. Records without an id or email
// are rejected.
func (u *User) UnmarshalJSON(data []byte) error {
	var raw userJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	id := parseIDOrNil(raw.ID)
	if id == uuid.Nil {
		return ErrEmptyUserID
	}
	if strings.TrimSpace(raw.Email) == "" {
		return ErrEmptyEmail
	}

	*u = User{
		ID:                   id,
		Email:                raw.Email,
		Phone:                raw.Phone,
		Role:                 RoleFromIndex(raw.Role),
		HashedPassword:       raw.PasswordHash,
		Verified:             raw.Verified,
		VerificationCodeHash: raw.VerificationCodeHash,
		CreatedAt:            parseTimestampOr(raw.CreatedAt, now()),
	}
	return nil
}
