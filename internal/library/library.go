// Package library keeps the recruiter's reusable interview material: custom
// questions per role, bookmarked questions and the interviewer directory.
package library

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jonathan/hiretrack/internal/logging"
	"github.com/jonathan/hiretrack/internal/storage"
	"github.com/jonathan/hiretrack/internal/types"
)

// ErrDuplicateInterviewer is returned when an interviewer email is already
// in the directory.
var ErrDuplicateInterviewer = errors.New("interviewer already exists")

// Library reads and writes the library collections.
type Library struct {
	store    storage.Store
	log      logrus.FieldLogger
	validate *validator.Validate
	newID    func() string
}

// New returns a library over store.
func New(store storage.Store, log logrus.FieldLogger) *Library {
	return &Library{
		store:    store,
		log:      logging.OrDiscard(log).WithField("component", "library"),
		validate: validator.New(),
		newID:    uuid.NewString,
	}
}

func (l *Library) write(ctx context.Context, key string, v any) error {
	if err := storage.WriteJSON(ctx, l.store, key, v); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

// Custom returns the custom questions of role.
func (l *Library) Custom(ctx context.Context, role string) []types.Question {
	return storage.ReadList[types.Question](ctx, l.store, l.log, storage.CustomQuestionsKey(role))
}

// AddCustom appends q to role's questions and returns it with its id.
func (l *Library) AddCustom(ctx context.Context, role string, q types.Question) (types.Question, error) {
	q.Text = strings.TrimSpace(q.Text)
	if err := l.validate.Struct(q); err != nil {
		return types.Question{}, fmt.Errorf("invalid question: %w", err)
	}
	if q.ID == "" {
		q.ID = "custom_" + l.newID()
	}
	q.Role = storage.RoleSlug(role)

	key := storage.CustomQuestionsKey(role)
	list := append(l.Custom(ctx, role), q)
	if err := l.write(ctx, key, list); err != nil {
		return types.Question{}, err
	}
	l.log.WithFields(logrus.Fields{"role": q.Role, "id": q.ID}).Debug("custom question added")
	return q, nil
}

// RemoveCustom deletes a question from role's list. It reports whether the
// question existed.
func (l *Library) RemoveCustom(ctx context.Context, role, id string) (bool, error) {
	list, removed := without(l.Custom(ctx, role), id)
	if !removed {
		return false, nil
	}
	return true, l.write(ctx, storage.CustomQuestionsKey(role), list)
}

// Saved returns the bookmarked questions.
func (l *Library) Saved(ctx context.Context) []types.Question {
	return storage.ReadList[types.Question](ctx, l.store, l.log, storage.KeySavedQuestions)
}

// IsSaved reports whether id is bookmarked.
func (l *Library) IsSaved(ctx context.Context, id string) bool {
	for _, q := range l.Saved(ctx) {
		if q.ID == id {
			return true
		}
	}
	return false
}

// ToggleSaved bookmarks q, or removes the bookmark when it is already
// saved. It returns the new state.
func (l *Library) ToggleSaved(ctx context.Context, q types.Question) (bool, error) {
	if q.ID == "" {
		return false, errors.New("question id is required")
	}
	list, removed := without(l.Saved(ctx), q.ID)
	if !removed {
		list = append(list, q)
	}
	if err := l.write(ctx, storage.KeySavedQuestions, list); err != nil {
		return removed, err
	}
	return !removed, nil
}

// Interviewers returns the interviewer directory.
func (l *Library) Interviewers(ctx context.Context) []types.Interviewer {
	return storage.ReadList[types.Interviewer](ctx, l.store, l.log, storage.KeyInterviewers)
}

// AddInterviewer adds iv to the directory. Emails are unique,
// case-insensitively.
func (l *Library) AddInterviewer(ctx context.Context, iv types.Interviewer) (types.Interviewer, error) {
	iv.Name = strings.TrimSpace(iv.Name)
	iv.Email = strings.TrimSpace(iv.Email)
	if err := l.validate.Struct(iv); err != nil {
		return types.Interviewer{}, fmt.Errorf("invalid interviewer: %w", err)
	}
	list := l.Interviewers(ctx)
	for _, existing := range list {
		if strings.EqualFold(existing.Email, iv.Email) {
			return types.Interviewer{}, fmt.Errorf("%w: %s", ErrDuplicateInterviewer, iv.Email)
		}
	}
	if iv.ID == "" {
		iv.ID = "int_" + l.newID()
	}
	if err := l.write(ctx, storage.KeyInterviewers, append(list, iv)); err != nil {
		return types.Interviewer{}, err
	}
	return iv, nil
}

// RemoveInterviewer deletes an interviewer. It reports whether one existed.
func (l *Library) RemoveInterviewer(ctx context.Context, id string) (bool, error) {
	list, removed := without(l.Interviewers(ctx), id)
	if !removed {
		return false, nil
	}
	return true, l.write(ctx, storage.KeyInterviewers, list)
}

func without[T interface{ GetID() string }](list []T, id string) ([]T, bool) {
	out := make([]T, 0, len(list))
	removed := false
	for _, item := range list {
		if item.GetID() == id {
			removed = true
			continue
		}
		out = append(out, item)
	}
	return out, removed
}
