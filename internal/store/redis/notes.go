package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sitecue/sitecue/internal/domain"
)

var ErrNoteNotFound = errors.New("note not found")

// SaveNote stores a note under its owner's keyspace
func (s *Store) SaveNote(ctx context.Context, note *domain.Note) error {
	data, err := json.Marshal(note)
	if err != nil {
		return fmt.Errorf("failed to marshal note: %w", err)
	}

	if err := s.client.Set(ctx, NoteKey(note.UserID, note.ID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save note: %w", err)
	}
	if err := s.client.SAdd(ctx, AllNotesKey(note.UserID), note.ID).Err(); err != nil {
		return fmt.Errorf("failed to add note to set: %w", err)
	}

	return nil
}

// GetNote retrieves a note by owner and ID. A note belonging to another
// owner is indistinguishable from a missing one.
func (s *Store) GetNote(ctx context.Context, ownerID, noteID string) (*domain.Note, error) {
	data, err := s.client.Get(ctx, NoteKey(ownerID, noteID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("failed to get note: %w", err)
	}

	var note domain.Note
	if err := json.Unmarshal(data, &note); err != nil {
		return nil, fmt.Errorf("failed to unmarshal note: %w", err)
	}

	return &note, nil
}

// DeleteNote removes a note from its owner's keyspace
func (s *Store) DeleteNote(ctx context.Context, ownerID, noteID string) error {
	n, err := s.client.Del(ctx, NoteKey(ownerID, noteID)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	if n == 0 {
		return ErrNoteNotFound
	}
	if err := s.client.SRem(ctx, AllNotesKey(ownerID), noteID).Err(); err != nil {
		return fmt.Errorf("failed to remove note from set: %w", err)
	}
	return nil
}

// ListNotes retrieves all notes belonging to an owner
func (s *Store) ListNotes(ctx context.Context, ownerID string) ([]*domain.Note, error) {
	ids, err := s.client.SMembers(ctx, AllNotesKey(ownerID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get note IDs: %w", err)
	}

	if len(ids) == 0 {
		return []*domain.Note{}, nil
	}

	notes := make([]*domain.Note, 0, len(ids))
	for _, id := range ids {
		note, err := s.GetNote(ctx, ownerID, id)
		if err != nil {
			// Skip notes that couldn't be retrieved
			continue
		}
		notes = append(notes, note)
	}

	return notes, nil
}

// QueryNotes retrieves the owner's notes matching a serialized filter.
// The filter never carries the owner ID; ownership is already enforced
// by the owner-qualified keys.
func (s *Store) QueryNotes(ctx context.Context, ownerID, filter string) ([]*domain.Note, error) {
	expr, err := domain.ParseFilter(filter)
	if err != nil {
		return nil, fmt.Errorf("invalid filter: %w", err)
	}

	notes, err := s.ListNotes(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	matched := make([]*domain.Note, 0, len(notes))
	for _, note := range notes {
		if expr.Match(note) {
			matched = append(matched, note)
		}
	}

	return matched, nil
}

// CountNotes counts the owner's notes matching a serialized filter
func (s *Store) CountNotes(ctx context.Context, ownerID, filter string) (int, error) {
	notes, err := s.QueryNotes(ctx, ownerID, filter)
	if err != nil {
		return 0, err
	}
	return len(notes), nil
}
