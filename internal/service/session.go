package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/Venom-999/ALDA-FINAL-KURS/internal/domain"
	"github.com/Venom-999/ALDA-FINAL-KURS/internal/events"
	"github.com/Venom-999/ALDA-FINAL-KURS/internal/redact"
	"github.com/Venom-999/ALDA-FINAL-KURS/internal/service/auth"
	"github.com/Venom-999/ALDA-FINAL-KURS/internal/store"
)

// Session is a read-only view of the logged-in user.
type Session struct {
	UserID   uuid.UUID
	Email    string
	Phone    string
	Role     domain.Role
	Verified bool
}

// RoleName returns the display name of the session role.
func (s Session) RoleName() string {
	return s.Role.String()
}

// LoggedIn reports whether a user is logged in.
func (m *Marketplace) LoggedIn() bool {
	return m.session != uuid.Nil
}

// CurrentSession returns the logged-in user, or false when logged out.
func (m *Marketplace) CurrentSession() (Session, bool) {
	i, err := m.currentUser()
	if err != nil {
		return Session{}, false
	}

	u := m.users[i]
	return Session{
		UserID:   u.ID,
		Email:    u.Email,
		Phone:    u.Phone,
		Role:     u.Role,
		Verified: u.Verified,
	}, true
}

// currentUser returns the index of the session user in m.users.
func (m *Marketplace) currentUser() (int, error) {
	if m.session == uuid.Nil {
		return -1, ErrNotLoggedIn
	}
	for i := range m.users {
		if m.users[i].ID == m.session {
			return i, nil
		}
	}
	return -1, ErrNotLoggedIn
}

func (m *Marketplace) checkPasswordLength(password string) error {
	if utf8.RuneCountInString(password) < m.settings.MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrValidation, m.settings.MinPasswordLength)
	}
	return nil
}

func (m *Marketplace) hashPassword(password string) (string, error) {
	hash, err := m.hasher.Hash(password)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		return "", fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return hash, nil
}

// Register creates an unverified account and logs it in. The email must be
// unique ignoring case; a non-empty phone must be unique.
func (m *Marketplace) Register(ctx context.Context, email, phone string, role domain.Role, password string) error {
	user, err := domain.NewUser(email, phone, role)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := m.checkPasswordLength(password); err != nil {
		return err
	}

	for i := range m.users {
		if m.users[i].HasEmail(user.Email) {
			return fmt.Errorf("%w: email already registered", ErrDuplicate)
		}
		if m.users[i].HasPhone(user.Phone) {
			return fmt.Errorf("%w: phone already registered", ErrDuplicate)
		}
	}

	user.HashedPassword, err = m.hashPassword(password)
	if err != nil {
		return err
	}
	user.CreatedAt = m.now()

	prev := m.users
	m.users = withAppended(prev, *user)
	if err := m.commit(ctx, store.DocUsers, events.UsersChanged, listDoc(m.users), func() { m.users = prev }); err != nil {
		return err
	}

	m.logger.Info("user registered",
		"user_id", user.ID,
		"email", redact.Email(user.Email),
		"role", user.Role.String())

	m.setSession(ctx, user.ID)
	return nil
}

// Login starts a session for the user whose email (ignoring case) or phone
// matches identifier. Every failure returns ErrInvalidCredentials.
func (m *Marketplace) Login(ctx context.Context, identifier, password string) error {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return ErrInvalidCredentials
	}

	for i := range m.users {
		u := m.users[i]
		if !u.MatchesIdentifier(identifier) {
			continue
		}
		if err := m.hasher.Compare(u.HashedPassword, password); err != nil {
			m.logger.Debug("login rejected", "user_id", u.ID)
			return ErrInvalidCredentials
		}
		m.setSession(ctx, u.ID)
		m.logger.Info("user logged in", "user_id", u.ID)
		return nil
	}

	m.logger.Debug("login rejected", "identifier", redact.Identifier(identifier))
	return ErrInvalidCredentials
}

// Logout ends the session. It does nothing when already logged out.
func (m *Marketplace) Logout(ctx context.Context) {
	if m.session == uuid.Nil {
		return
	}
	m.logger.Info("user logged out", "user_id", m.session)
	m.setSession(ctx, uuid.Nil)
}

func (m *Marketplace) setSession(ctx context.Context, id uuid.UUID) {
	wasLoggedIn := m.LoggedIn()
	m.session = id
	if wasLoggedIn != m.LoggedIn() {
		m.emit(ctx, events.LoggedInChanged)
	}
	m.emit(ctx, events.CurrentUserChanged)
}

// IssueVerificationCode generates a six-digit code for the session user and
// returns it. Only a hash of the code is stored; issuing again replaces it.
func (m *Marketplace) IssueVerificationCode(ctx context.Context) (string, error) {
	i, err := m.currentUser()
	if err != nil {
		return "", err
	}

	code, err := m.codes.Generate()
	if err != nil {
		return "", err
	}

	updated := m.users[i]
	updated.VerificationCodeHash = auth.HashCode(code)

	prev := m.users
	m.users = withReplaced(prev, i, updated)
	if err := m.commit(ctx, store.DocUsers, events.UsersChanged, listDoc(m.users), func() { m.users = prev }); err != nil {
		return "", err
	}

	m.logger.Info("verification code issued", "user_id", updated.ID)
	return code, nil
}

// VerifyAccount marks the session user verified when code matches the last
// issued one. The code is single-use.
func (m *Marketplace) VerifyAccount(ctx context.Context, code string) error {
	i, err := m.currentUser()
	if err != nil {
		return err
	}

	updated := m.users[i]
	if updated.VerificationCodeHash == "" {
		return ErrNoVerificationCode
	}
	if err := auth.CompareCode(updated.VerificationCodeHash, code); err != nil {
		m.logger.Debug("verification code rejected", "user_id", updated.ID)
		return ErrInvalidCredentials
	}

	updated.Verified = true
	updated.VerificationCodeHash = ""

	prev := m.users
	m.users = withReplaced(prev, i, updated)
	if err := m.commit(ctx, store.DocUsers, events.UsersChanged, listDoc(m.users), func() { m.users = prev }); err != nil {
		return err
	}
	m.emit(ctx, events.CurrentUserChanged)
	m.logger.Info("user verified", "user_id", updated.ID)

	m.syncProfileVerified(ctx, updated.ID)
	return nil
}

// syncProfileVerified copies the verified flag onto the user's profile. A
// failed write is logged; the account stays verified.
func (m *Marketplace) syncProfileVerified(ctx context.Context, userID uuid.UUID) {
	j := m.profileIndex(userID)
	if j < 0 || m.profiles[j].Verified {
		return
	}

	profile := m.profiles[j]
	profile.Verified = true

	prev := m.profiles
	m.profiles = withReplaced(prev, j, profile)
	if err := m.commit(ctx, store.DocProfiles, events.ProfilesChanged, listDoc(m.profiles), func() { m.profiles = prev }); err != nil {
		m.logger.Warn("profile verification flag not saved", "user_id", userID)
	}
}

// ChangePassword replaces the session user's password after checking the
// old one.
func (m *Marketplace) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	i, err := m.currentUser()
	if err != nil {
		return err
	}

	updated := m.users[i]
	if err := m.hasher.Compare(updated.HashedPassword, oldPassword); err != nil {
		return ErrInvalidCredentials
	}
	if err := m.checkPasswordLength(newPassword); err != nil {
		return err
	}

	updated.HashedPassword, err = m.hashPassword(newPassword)
	if err != nil {
		return err
	}

	prev := m.users
	m.users = withReplaced(prev, i, updated)
	if err := m.commit(ctx, store.DocUsers, events.UsersChanged, listDoc(m.users), func() { m.users = prev }); err != nil {
		return err
	}

	m.logger.Info("password changed", "user_id", updated.ID)
	return nil
}
