package domain

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
)

func TestNewUser(t *testing.T) {
	user, err := NewUser("  test@example.com ", " +7 900 ", RoleProvider)

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if user.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if user.Email != "test@example.com" {
		t.Errorf("Expected trimmed email, got %q", user.Email)
	}

	if user.Phone != "+7 900" {
		t.Errorf("Expected trimmed phone, got %q", user.Phone)
	}

	if user.Role != RoleProvider {
		t.Errorf("Expected role %v, got %v", RoleProvider, user.Role)
	}

	if user.Verified {
		t.Error("Expected new user to be unverified")
	}

	if user.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	_, err = NewUser("   ", "", RoleClient)
	if err != ErrEmptyEmail {
		t.Errorf("Expected error %v, got %v", ErrEmptyEmail, err)
	}
}

func TestUserValidate(t *testing.T) {
	validUser := User{
		ID:             uuid.New(),
		Email:          "test@example.com",
		HashedPassword: "hashedpassword123",
	}

	if err := validUser.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	invalidUser := validUser
	invalidUser.ID = uuid.Nil
	if err := invalidUser.Validate(); err != ErrEmptyUserID {
		t.Errorf("Expected error %v, got %v", ErrEmptyUserID, err)
	}

	invalidUser = validUser
	invalidUser.Email = ""
	if err := invalidUser.Validate(); err != ErrEmptyEmail {
		t.Errorf("Expected error %v, got %v", ErrEmptyEmail, err)
	}

	invalidUser = validUser
	invalidUser.HashedPassword = ""
	if err := invalidUser.Validate(); err != ErrEmptyHashedPassword {
		t.Errorf("Expected error %v, got %v", ErrEmptyHashedPassword, err)
	}
}

func TestUserMatchesIdentifier(t *testing.T) {
	user := User{Email: "Anna@Example.com", Phone: "+79001234567"}

	matches := []string{"anna@example.com", "ANNA@EXAMPLE.COM", " anna@example.com ", "+79001234567"}
	for _, id := range matches {
		if !user.MatchesIdentifier(id) {
			t.Errorf("Expected %q to match", id)
		}
	}

	misses := []string{"", "anna@example.org", "79001234567"}
	for _, id := range misses {
		if user.MatchesIdentifier(id) {
			t.Errorf("Expected %q not to match", id)
		}
	}

	noPhone := User{Email: "a@x.com"}
	if noPhone.HasPhone("") {
		t.Error("Expected empty phone never to match")
	}
}

func TestRoleFromIndex(t *testing.T) {
	cases := map[int]Role{-3: RoleClient, 0: RoleClient, 1: RoleProvider, 2: RoleAdmin, 9: RoleAdmin}
	for in, want := range cases {
		if got := RoleFromIndex(in); got != want {
			t.Errorf("RoleFromIndex(%d) = %v, want %v", in, got, want)
		}
	}
	if RoleAdmin.String() != "Admin" || RoleClient.String() != "Client" {
		t.Error("Unexpected role names")
	}
}

func TestUserJSONRejectsIncompleteRecords(t *testing.T) {
	var u User
	if err := json.Unmarshal([]byte(`{"email":"a@x.com"}`), &u); err != ErrEmptyUserID {
		t.Errorf("Expected %v, got %v", ErrEmptyUserID, err)
	}
	if err := json.Unmarshal([]byte(`{"id":"`+uuid.NewString()+`"}`), &u); err != ErrEmptyEmail {
		t.Errorf("Expected %v, got %v", ErrEmptyEmail, err)
	}
}
