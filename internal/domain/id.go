package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// IDPolicy decides what happens when a caller supplies a malformed identifier.
type IDPolicy string

const (
	// IDPolicySynthesize substitutes a freshly generated identifier.
	IDPolicySynthesize IDPolicy = "synthesize"

	// IDPolicyReject fails with ErrInvalidID.
	IDPolicyReject IDPolicy = "reject"
)

// ParseID parses a textual identifier. Canonical, braced and urn forms are
// accepted; blank input and the nil UUID are rejected.
func ParseID(s string) (uuid.UUID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return uuid.Nil, ErrInvalidID
	}

	id, err := uuid.Parse(s)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}

	return id, nil
}

// Resolve parses s according to the policy.
func (p IDPolicy) Resolve(s string) (uuid.UUID, error) {
	id, err := ParseID(s)
	if err == nil {
		return id, nil
	}
	if p == IDPolicySynthesize {
		return uuid.New(), nil
	}
	return uuid.Nil, err
}

// Valid reports whether p is a known policy.
func (p IDPolicy) Valid() bool {
	return p == IDPolicySynthesize || p == IDPolicyReject
}

// parseIDOrNil is the lenient decoder used when reading stored records.
func parseIDOrNil(s string) uuid.UUID {
	id, err := ParseID(s)
	if err != nil {
		return uuid.Nil
	}
	return id
}

// ensureID returns id, or a fresh identifier when id is nil.
func ensureID(id uuid.UUID) uuid.UUID {
	if id == uuid.Nil {
		return uuid.New()
	}
	return id
}

func parseIDList(values []string) []uuid.UUID {
	var out []uuid.UUID
	for _, v := range values {
		id := parseIDOrNil(v)
		if id == uuid.Nil || containsID(out, id) {
			continue
		}
		out = append(out, id)
	}
	return out
}

func formatIDList(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func cloneIDs(ids []uuid.UUID) []uuid.UUID {
	if ids == nil {
		return nil
	}
	out := make([]uuid.UUID, len(ids))
	copy(out, ids)
	return out
}

// shortID is the eight-character prefix used in one-line summaries.
func shortID(id uuid.UUID) string {
	return id.String()[:8]
}
