package store

import (
	"context"

	"github.com/rcliao/breed-vibe/internal/model"
)

// ExportRun returns a run and all of its breeds in sheet order. An empty id
// selects the latest run.
func (s *SQLiteStore) ExportRun(ctx context.Context, id string) (*model.Run, []model.ScoredBreed, error) {
	run, err := s.GetRun(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	breeds, err := s.ListBreeds(ctx, ListParams{RunID: run.ID, Limit: run.Total + 1})
	if err != nil {
		return nil, nil, err
	}
	return run, breeds, nil
}
