package store

import (
	"context"
	"encoding/json"

	"github.com/Venom-999/ALDA-FINAL-KURS/internal/domain"
)

const indent = "    "

// Encode renders v as an indented JSON document.
func Encode(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", indent)
}

// SaveDocument encodes v and saves it under name.
func SaveDocument(ctx context.Context, b Backend, name string, v any) error {
	data, err := Encode(v)
	if err != nil {
		return NewStoreError(name, OpSave, "failed to encode document", err)
	}
	return b.Save(ctx, name, data)
}

// SaveList saves items as a JSON array. A nil slice is written as [].
func SaveList[T any](ctx context.Context, b Backend, name string, items []T) error {
	if items == nil {
		items = []T{}
	}
	return SaveDocument(ctx, b, name, items)
}

// LoadList loads a JSON array of records. Elements that are not objects or
// that fail to decode are skipped and counted in skipped. A document that
// was never saved returns ErrNotFound; one that is not an array returns a
// StoreError wrapping ErrCorruptDocument.
func LoadList[T any](ctx context.Context, b Backend, name string) (items []T, skipped int, err error) {
	data, err := b.Load(ctx, name)
	if err != nil {
		return nil, 0, err
	}

	items, skipped, err = domain.DecodeList[T](data)
	if err != nil {
		return nil, 0, NewStoreError(name, OpLoad, err.Error(), ErrCorruptDocument)
	}
	return items, skipped, nil
}
