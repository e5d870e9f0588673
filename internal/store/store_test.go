package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Venom-999/ALDA-FINAL-KURS/internal/domain"
)

func newFileBackend(t *testing.T) *FileBackend {
	t.Helper()
	b, err := NewFileBackend(filepath.Join(t.TempDir(), "data"))
	require.NoError(t, err)
	return b
}

func newSQLiteBackend(t *testing.T) *SQLiteBackend {
	t.Helper()
	b, err := OpenSQLite(filepath.Join(t.TempDir(), "servicehub.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })
	return b
}

// testBackendContract runs the behavior every Backend must share.
func testBackendContract(t *testing.T, b Backend) {
	ctx := context.Background()

	t.Run("missing document", func(t *testing.T) {
		_, err := b.Load(ctx, "absent.json")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("save then load", func(t *testing.T) {
		require.NoError(t, b.Save(ctx, DocRequests, []byte(`[{"id":"1"}]`)))
		data, err := b.Load(ctx, DocRequests)
		require.NoError(t, err)
		assert.Equal(t, `[{"id":"1"}]`, string(data))
	})

	t.Run("save replaces", func(t *testing.T) {
		require.NoError(t, b.Save(ctx, DocReviews, []byte(`[1]`)))
		require.NoError(t, b.Save(ctx, DocReviews, []byte(`[]`)))
		data, err := b.Load(ctx, DocReviews)
		require.NoError(t, err)
		assert.Equal(t, `[]`, string(data))
	})

	t.Run("invalid names", func(t *testing.T) {
		for _, name := range []string{"", "  ", "../escape.json", "nested/doc.json", ".."} {
			assert.ErrorIs(t, b.Save(ctx, name, []byte(`{}`)), ErrInvalidDocumentName, name)
			_, err := b.Load(ctx, name)
			assert.ErrorIs(t, err, ErrInvalidDocumentName, name)
		}
	})
}

func TestFileBackend(t *testing.T) {
	t.Parallel()
	testBackendContract(t, newFileBackend(t))
}

func TestSQLiteBackend(t *testing.T) {
	t.Parallel()
	testBackendContract(t, newSQLiteBackend(t))
}

func TestSQLiteBackendPersistsAcrossOpen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "servicehub.db")
	ctx := context.Background()

	first, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, first.Save(ctx, DocUsers, []byte(`[]`)))
	require.NoError(t, first.Close())

	second, err := OpenSQLite(path)
	require.NoError(t, err)
	defer func() { _ = second.Close() }()

	data, err := second.Load(ctx, DocUsers)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))
}

func TestFileBackendLeavesNoTemporaryFiles(t *testing.T) {
	t.Parallel()

	b := newFileBackend(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		require.NoError(t, b.Save(ctx, DocFavorites, []byte(`[]`)))
	}

	entries, err := os.ReadDir(b.Dir())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, DocFavorites, entries[0].Name())
}

func TestFileBackendKeepsOldVersionOnFailedSave(t *testing.T) {
	t.Parallel()

	b := newFileBackend(t)
	ctx := context.Background()
	require.NoError(t, b.Save(ctx, DocProfiles, []byte(`["old"]`)))

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	err := b.Save(cancelled, DocProfiles, []byte(`["new"]`))
	assert.True(t, errors.Is(err, context.Canceled))

	data, err := b.Load(ctx, DocProfiles)
	require.NoError(t, err)
	assert.Equal(t, `["old"]`, string(data))
}

func TestNewFileBackendRejectsEmptyDir(t *testing.T) {
	t.Parallel()

	_, err := NewFileBackend("")
	var storeErr *StoreError
	assert.True(t, errors.As(err, &storeErr))
}

func TestListHelpers(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	b := newFileBackend(t)

	t.Run("nil list is written as an empty array", func(t *testing.T) {
		require.NoError(t, SaveList[domain.Review](ctx, b, DocReviews, nil))
		data, err := b.Load(ctx, DocReviews)
		require.NoError(t, err)
		assert.Equal(t, "[]", string(data))
	})

	t.Run("documents are indented with four spaces", func(t *testing.T) {
		msg, err := domain.NewMessage(uuid.New(), uuid.New(), "hi")
		require.NoError(t, err)
		require.NoError(t, SaveList(ctx, b, DocMessages, []domain.Message{*msg}))

		data, err := b.Load(ctx, DocMessages)
		require.NoError(t, err)
		lines := strings.Split(string(data), "\n")
		require.Greater(t, len(lines), 2)
		assert.True(t, strings.HasPrefix(lines[1], "    {"), lines[1])
		assert.True(t, strings.HasPrefix(lines[2], "        \""), lines[2])
	})

	t.Run("round trip", func(t *testing.T) {
		r := domain.NewReview(uuid.Nil, uuid.New(), uuid.New(), 5, "great")
		require.NoError(t, SaveList(ctx, b, DocReviews, []domain.Review{*r}))

		got, skipped, err := LoadList[domain.Review](ctx, b, DocReviews)
		require.NoError(t, err)
		assert.Zero(t, skipped)
		require.Len(t, got, 1)
		assert.Equal(t, r.ID, got[0].ID)
		assert.Equal(t, "great", got[0].Comment)
	})

	t.Run("non-object elements are skipped", func(t *testing.T) {
		require.NoError(t, b.Save(ctx, DocRequests, []byte(`[1, "x", null, {"description":"ok"}]`)))
		got, skipped, err := LoadList[domain.Request](ctx, b, DocRequests)
		require.NoError(t, err)
		assert.Equal(t, 3, skipped)
		require.Len(t, got, 1)
		assert.Equal(t, "ok", got[0].Description)
	})

	t.Run("rejected records are skipped", func(t *testing.T) {
		require.NoError(t, b.Save(ctx, DocUsers, []byte(`[{"email":"no-id@example.com"}]`)))
		got, skipped, err := LoadList[domain.User](ctx, b, DocUsers)
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.Equal(t, 1, skipped)
	})

	t.Run("corrupt document", func(t *testing.T) {
		require.NoError(t, b.Save(ctx, DocSubscriptions, []byte(`{"not":"an array"}`)))
		_, _, err := LoadList[domain.Subscription](ctx, b, DocSubscriptions)
		assert.ErrorIs(t, err, ErrCorruptDocument)
	})

	t.Run("missing document", func(t *testing.T) {
		_, _, err := LoadList[domain.Profile](ctx, b, "never.json")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
