package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// ReadList reads a JSON array stored under key. A missing key, a read
// failure or a value that does not decode yields an empty list; failures are
// logged and never returned.
func ReadList[T any](ctx context.Context, s Store, log logrus.FieldLogger, key string) []T {
	raw, ok, err := s.Get(ctx, key)
	if err != nil {
		log.WithFields(logrus.Fields{"key": key, "error": err}).Warn("storage read failed, treating as empty")
		return []T{}
	}
	if !ok || strings.TrimSpace(raw) == "" || raw == "null" {
		return []T{}
	}
	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		log.WithFields(logrus.Fields{"key": key, "error": err}).Warn("corrupt stored collection, treating as empty")
		return []T{}
	}
	if items == nil {
		items = []T{}
	}
	return items
}

// ReadJSON decodes the value under key into v. It reports whether a value was
// present and decoded.
func ReadJSON(ctx context.Context, s Store, key string, v any) (bool, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, fmt.Errorf("failed to decode key %q: %w", key, err)
	}
	return true, nil
}

// WriteJSON encodes v and stores it under key.
func WriteJSON(ctx context.Context, s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode key %q: %w", key, err)
	}
	return s.Set(ctx, key, string(data))
}
