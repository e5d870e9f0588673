package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	t.Parallel()

	id := uuid.New()

	for _, in := range []string{id.String(), " " + id.String() + " ", "{" + id.String() + "}", "urn:uuid:" + id.String()} {
		got, err := ParseID(in)
		require.NoError(t, err, in)
		assert.Equal(t, id, got)
	}

	for _, in := range []string{"", "   ", "abc", uuid.Nil.String()} {
		_, err := ParseID(in)
		assert.ErrorIs(t, err, ErrInvalidID, in)
	}
}

func TestIDPolicyResolve(t *testing.T) {
	t.Parallel()

	id, err := IDPolicySynthesize.Resolve("garbage")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)

	_, err = IDPolicyReject.Resolve("garbage")
	assert.ErrorIs(t, err, ErrInvalidID)

	want := uuid.New()
	got, err := IDPolicyReject.Resolve(want.String())
	require.NoError(t, err)
	assert.Equal(t, want, got)

	assert.True(t, IDPolicyReject.Valid())
	assert.False(t, IDPolicy("lenient").Valid())
}

func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	utc, err := ParseTimestamp("2025-03-04T05:06:07.123Z")
	require.NoError(t, err)
	assert.True(t, utc.Equal(time.Date(2025, 3, 4, 5, 6, 7, 123000000, time.UTC)))

	local, err := ParseTimestamp("2025-03-04T05:06:07")
	require.NoError(t, err)
	assert.Equal(t, time.Local, local.Location())

	day, err := ParseTimestamp("2025-03-04")
	require.NoError(t, err)
	assert.Equal(t, 0, day.Hour())

	_, err = ParseTimestamp("04.03.2025")
	assert.ErrorIs(t, err, ErrInvalidTimestamp)

	assert.Equal(t, "", FormatTimestamp(time.Time{}))
	assert.Equal(t, "2025-03-04T05:06:07.123Z", FormatTimestamp(utc))
}
