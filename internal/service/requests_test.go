package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Venom-999/ALDA-FINAL-KURS/internal/domain"
	"github.com/Venom-999/ALDA-FINAL-KURS/internal/events"
	"github.com/Venom-999/ALDA-FINAL-KURS/internal/service"
)

func TestCreateRequest(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	_, err := h.m.CreateRequest(ctx, uuid.NewString(), uuid.NewString(), "x")
	assert.ErrorIs(t, err, service.ErrNotLoggedIn)

	clientID := h.register(t, "client@x.com")

	t.Run("valid identifiers are kept", func(t *testing.T) {
		serviceID, providerID := uuid.New(), uuid.New()
		req, err := h.m.CreateRequest(ctx, serviceID.String(), "{"+providerID.String()+"}", "  fix the sink ")
		require.NoError(t, err)

		assert.Equal(t, serviceID, req.ServiceID)
		assert.Equal(t, providerID, req.ProviderID)
		assert.Equal(t, clientID, req.ClientID)
		assert.Equal(t, "fix the sink", req.Description)
		assert.Equal(t, domain.RequestStatusPending, req.Status)
		assert.Equal(t, testNow, req.CreatedAt)
	})

	t.Run("malformed identifiers are replaced", func(t *testing.T) {
		req, err := h.m.CreateRequest(ctx, "not-a-uuid", "", "paint")
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, req.ServiceID)
		assert.NotEqual(t, uuid.Nil, req.ProviderID)
	})

	assert.Len(t, h.m.Requests(), 2)
	mine, err := h.m.MyRequests()
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}

func TestCreateRequestRejectPolicy(t *testing.T) {
	ctx := context.Background()
	settings := service.DefaultSettings()
	settings.RequestIDPolicy = domain.IDPolicyReject
	h := newHarness(t, service.WithSettings(settings))
	h.register(t, "client@x.com")
	h.recorder.Reset()

	_, err := h.m.CreateRequest(ctx, "not-a-uuid", uuid.NewString(), "x")
	assert.ErrorIs(t, err, service.ErrInvalidID)
	assert.Empty(t, h.m.Requests())
	assert.Empty(t, h.recorder.Kinds())

	_, err = h.m.CreateRequest(ctx, uuid.NewString(), uuid.NewString(), "x")
	assert.NoError(t, err)
}

func TestUpdateRequestStatus(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.register(t, "client@x.com")

	req, err := h.m.CreateRequest(ctx, uuid.NewString(), uuid.NewString(), "x")
	require.NoError(t, err)

	completed, err := h.m.UpdateRequestStatus(ctx, req.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusCompleted, completed.Status)
	assert.Equal(t, testNow, completed.CompletedAt)

	cancelled, err := h.m.UpdateRequestStatus(ctx, req.ID, 99)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusCancelled, cancelled.Status, "index is clamped")
	assert.Equal(t, testNow, cancelled.CompletedAt)

	pending, err := h.m.UpdateRequestStatus(ctx, req.ID, -4)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusPending, pending.Status)

	h.recorder.Reset()
	_, err = h.m.UpdateRequestStatus(ctx, req.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, h.recorder.Kinds(), "same status writes nothing")

	_, err = h.m.UpdateRequestStatus(ctx, uuid.New(), 1)
	assert.ErrorIs(t, err, service.ErrNotFound)
	_, err = h.m.UpdateRequestStatus(ctx, uuid.Nil, 1)
	assert.ErrorIs(t, err, service.ErrInvalidID)
}

func TestRequestDescriptionAndComments(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.register(t, "client@x.com")

	req, err := h.m.CreateRequest(ctx, uuid.NewString(), uuid.NewString(), "x")
	require.NoError(t, err)

	updated, err := h.m.UpdateRequestDescription(ctx, req.ID, " new text ")
	require.NoError(t, err)
	assert.Equal(t, "new text", updated.Description)

	commented, err := h.m.AddRequestComment(ctx, req.ID, " first ")
	require.NoError(t, err)
	assert.Equal(t, []string{"first"}, commented.Comments)

	h.recorder.Reset()
	_, err = h.m.AddRequestComment(ctx, req.ID, "   ")
	assert.ErrorIs(t, err, service.ErrValidation)
	assert.ErrorIs(t, err, domain.ErrEmptyContent)
	assert.Empty(t, h.recorder.Kinds())
	assert.Equal(t, []string{"first"}, h.m.Requests()[0].Comments)
}

func TestDeleteRequest(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.register(t, "client@x.com")

	req, err := h.m.CreateRequest(ctx, uuid.NewString(), uuid.NewString(), "x")
	require.NoError(t, err)
	h.recorder.Reset()

	require.NoError(t, h.m.DeleteRequest(ctx, req.ID))
	assert.Empty(t, h.m.Requests())
	assert.Equal(t, []events.Kind{events.RequestsChanged}, h.recorder.Kinds())
	assert.ErrorIs(t, h.m.DeleteRequest(ctx, req.ID), service.ErrNotFound)
}

func TestMyRequestsIncludesProviderSide(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	providerID := h.register(t, "provider@x.com")
	h.register(t, "client@x.com")
	_, err := h.m.CreateRequest(ctx, uuid.NewString(), providerID.String(), "x")
	require.NoError(t, err)

	h.register(t, "other@x.com")
	mine, err := h.m.MyRequests()
	require.NoError(t, err)
	assert.Empty(t, mine)

	h.login(t, "provider@x.com")
	mine, err = h.m.MyRequests()
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}
