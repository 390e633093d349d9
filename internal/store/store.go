// Package store provides the scoring-run storage interface and SQLite implementation.
package store

import (
	"context"

	"github.com/rcliao/breed-vibe/internal/model"
	"github.com/rcliao/breed-vibe/internal/scorer"
)

// SaveParams holds a scored batch to persist as one run.
type SaveParams struct {
	Source   string
	Preset   string
	ZeroMode string
	Result   scorer.Result
}

// ListParams holds filters for listing stored breeds.
type ListParams struct {
	RunID   string // empty means latest run
	Species string // "cat", "dog" or empty
	Size    model.SizeLabel
	Query   string // substring of name or care text
	Limit   int
}

// Store defines the run storage interface.
type Store interface {
	// SaveRun stores a scored batch. Returns the created run.
	SaveRun(ctx context.Context, p SaveParams) (*model.Run, error)

	// GetRun retrieves a run by id, or the latest run when id is empty.
	GetRun(ctx context.Context, id string) (*model.Run, error)

	// ListRuns lists runs, newest first.
	ListRuns(ctx context.Context, limit int) ([]model.Run, error)

	// ListBreeds lists scored breeds of a run matching the filters.
	ListBreeds(ctx context.Context, p ListParams) ([]model.ScoredBreed, error)

	// RmRun deletes a run and its breeds.
	RmRun(ctx context.Context, id string) error

	// Close closes the store.
	Close() error
}
