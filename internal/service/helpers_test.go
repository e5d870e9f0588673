package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Venom-999/ALDA-FINAL-KURS/internal/domain"
	"github.com/Venom-999/ALDA-FINAL-KURS/internal/events"
	"github.com/Venom-999/ALDA-FINAL-KURS/internal/mocks"
	"github.com/Venom-999/ALDA-FINAL-KURS/internal/service"
	"github.com/Venom-999/ALDA-FINAL-KURS/internal/service/auth"
	"github.com/Venom-999/ALDA-FINAL-KURS/internal/store"
)

var testNow = time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

const testCode = "123456"

type fixedCodes struct{}

func (fixedCodes) Generate() (string, error) {
	return testCode, nil
}

// flakyBackend fails every Save while failSaves is set.
type flakyBackend struct {
	store.Backend

	mu        sync.Mutex
	failSaves bool
	saves     int
}

func (b *flakyBackend) setFailing(fail bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failSaves = fail
}

func (b *flakyBackend) saveCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.saves
}

func (b *flakyBackend) Save(ctx context.Context, name string, data []byte) error {
	b.mu.Lock()
	fail := b.failSaves
	b.saves++
	b.mu.Unlock()

	if fail {
		return errors.New("disk full")
	}
	return b.Backend.Save(ctx, name, data)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newFileBackend(t *testing.T) *store.FileBackend {
	t.Helper()
	b, err := store.NewFileBackend(t.TempDir())
	require.NoError(t, err)
	return b
}

type harness struct {
	m        *service.Marketplace
	backend  *flakyBackend
	recorder *mocks.EventRecorder
}

// newHarness builds a Marketplace over a fresh file backend with a fixed
// clock, a cheap hasher and a predictable verification code.
func newHarness(t *testing.T, opts ...service.Option) *harness {
	t.Helper()
	return newHarnessWithBackend(t, newFileBackend(t), opts...)
}

func newHarnessWithBackend(t *testing.T, backend store.Backend, opts ...service.Option) *harness {
	t.Helper()

	flaky := &flakyBackend{Backend: backend}
	recorder := &mocks.EventRecorder{}
	emitter := events.NewInMemoryEventEmitter(testLogger())
	emitter.RegisterHandler(recorder)

	m, err := service.New(context.Background(), flaky, emitter, testLogger(), testOptions(opts...)...)
	require.NoError(t, err)

	return &harness{m: m, backend: flaky, recorder: recorder}
}

func testOptions(extra ...service.Option) []service.Option {
	opts := []service.Option{
		service.WithPasswordHasher(auth.NewBcryptHasher(bcrypt.MinCost)),
		service.WithCodeGenerator(fixedCodes{}),
		service.WithClock(func() time.Time { return testNow }),
	}
	return append(opts, extra...)
}

// register creates and logs in an account, returning its id.
func (h *harness) register(t *testing.T, email string) uuid.UUID {
	t.Helper()
	require.NoError(t, h.m.Register(context.Background(), email, "", domain.RoleClient, "secret1"))
	s, ok := h.m.CurrentSession()
	require.True(t, ok)
	return s.UserID
}

func (h *harness) login(t *testing.T, email string) {
	t.Helper()
	require.NoError(t, h.m.Login(context.Background(), email, "secret1"))
}
