package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/hiretrack/internal/logging"
)

type record struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type failingStore struct{ err error }

func (f failingStore) Get(context.Context, string) (string, bool, error) { return "", false, f.err }
func (f failingStore) Set(context.Context, string, string) error         { return f.err }
func (f failingStore) Remove(context.Context, string) error              { return f.err }

func TestReadList(t *testing.T) {
	ctx := context.Background()
	log := logging.Discard()

	tests := []struct {
		name  string
		value *string
		want  []record
	}{
		{"missing", nil, []record{}},
		{"empty string", strPtr(""), []record{}},
		{"null", strPtr("null"), []record{}},
		{"corrupt", strPtr("{not json"), []record{}},
		{"object instead of array", strPtr(`{"id":"1"}`), []record{}},
		{"valid", strPtr(`[{"id":"1","name":"a"},{"id":"2"}]`), []record{{ID: "1", Name: "a"}, {ID: "2"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewMemory()
			if tt.value != nil {
				require.NoError(t, s.Set(ctx, "k", *tt.value))
			}
			got := ReadList[record](ctx, s, log, "k")
			assert.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadList_StoreFailure(t *testing.T) {
	got := ReadList[record](context.Background(), failingStore{err: errors.New("disk gone")}, logging.Discard(), "k")
	assert.Empty(t, got)
}

func TestWriteJSON_ReadJSON(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	require.NoError(t, WriteJSON(ctx, s, "user", record{ID: "u1", Name: "Ada"}))

	var got record
	ok, err := ReadJSON(ctx, s, "user", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, record{ID: "u1", Name: "Ada"}, got)

	ok, err = ReadJSON(ctx, s, "absent", &got)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "user", "{oops"))
	_, err = ReadJSON(ctx, s, "user", &got)
	assert.Error(t, err)
}

func strPtr(s string) *string { return &s }
