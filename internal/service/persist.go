package service

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/Venom-999/ALDA-FINAL-KURS/internal/events"
	"github.com/Venom-999/ALDA-FINAL-KURS/internal/redact"
	"github.com/Venom-999/ALDA-FINAL-KURS/internal/store"
)

// commit rewrites one collection document and emits its change event. When
// the write fails, restore puts the previous in-memory state back and the
// returned error wraps a *store.StoreError.
func (m *Marketplace) commit(ctx context.Context, doc string, kind events.Kind, v any, restore func()) error {
	if err := store.SaveDocument(ctx, m.backend, doc, v); err != nil {
		restore()

		var storeErr *store.StoreError
		if !errors.As(err, &storeErr) {
			err = store.NewStoreError(doc, store.OpSave, "failed to persist collection", err)
		}
		m.logger.Error("failed to persist collection",
			"document", doc,
			"error", redact.Error(err))
		return fmt.Errorf("persist %s: %w", doc, err)
	}

	m.emit(ctx, kind)
	return nil
}

// emit publishes a change event. Handler failures are logged; they never
// undo a persisted mutation.
func (m *Marketplace) emit(ctx context.Context, kind events.Kind) {
	if m.emitter == nil {
		return
	}

	event, err := events.NewEvent(kind, nil)
	if err != nil {
		m.logger.Error("failed to create event", "event_kind", kind, "error", err)
		return
	}
	if err := m.emitter.EmitEvent(ctx, event); err != nil {
		m.logger.Warn("event handler failed",
			"event_kind", kind,
			"error", redact.Error(err))
	}
}

// The helpers below return new slices so the previous slice stays valid as
// a restore point.

// listDoc keeps empty collections encoded as [] rather than null.
func listDoc[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

func withAppended[T any](items []T, v T) []T {
	out := make([]T, len(items), len(items)+1)
	copy(out, items)
	return append(out, v)
}

func withReplaced[T any](items []T, i int, v T) []T {
	out := slices.Clone(items)
	out[i] = v
	return out
}

func withRemoved[T any](items []T, i int) []T {
	return slices.Delete(slices.Clone(items), i, i+1)
}
