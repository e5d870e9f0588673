package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/Venom-999/ALDA-FINAL-KURS/internal/domain"
	"github.com/Venom-999/ALDA-FINAL-KURS/internal/events"
	"github.com/Venom-999/ALDA-FINAL-KURS/internal/store"
)

// ProfileInput carries the editable fields of a profile.
type ProfileInput struct {
	Name         string
	Description  string
	AvatarPath   string
	ContactEmail string
	ContactPhone string
}

func (m *Marketplace) profileIndex(userID uuid.UUID) int {
	for i := range m.profiles {
		if m.profiles[i].OwnerUserID == userID {
			return i
		}
	}
	return -1
}

// MyProfile returns the session user's profile. A user who never saved one
// gets an unsaved empty profile with a nil ID.
func (m *Marketplace) MyProfile() (domain.Profile, error) {
	i, err := m.currentUser()
	if err != nil {
		return domain.Profile{}, err
	}

	user := m.users[i]
	if j := m.profileIndex(user.ID); j >= 0 {
		return m.profiles[j], nil
	}
	return domain.Profile{OwnerUserID: user.ID, Verified: user.Verified}, nil
}

// SaveMyProfile creates or updates the session user's profile. Rating and
// review count are kept.
func (m *Marketplace) SaveMyProfile(ctx context.Context, in ProfileInput) (domain.Profile, error) {
	i, err := m.currentUser()
	if err != nil {
		return domain.Profile{}, err
	}
	user := m.users[i]

	j := m.profileIndex(user.ID)
	var profile domain.Profile
	if j >= 0 {
		profile = m.profiles[j]
	} else {
		profile = *domain.NewProfile(uuid.Nil, user.ID)
		profile.CreatedAt = m.now()
	}

	profile.Name = strings.TrimSpace(in.Name)
	profile.Description = strings.TrimSpace(in.Description)
	profile.AvatarPath = strings.TrimSpace(in.AvatarPath)
	profile.ContactEmail = strings.TrimSpace(in.ContactEmail)
	profile.ContactPhone = strings.TrimSpace(in.ContactPhone)
	profile.Verified = user.Verified

	prev := m.profiles
	if j >= 0 {
		m.profiles = withReplaced(prev, j, profile)
	} else {
		m.profiles = withAppended(prev, profile)
	}
	if err := m.commit(ctx, store.DocProfiles, events.ProfilesChanged, listDoc(m.profiles), func() { m.profiles = prev }); err != nil {
		return domain.Profile{}, err
	}

	return profile, nil
}
