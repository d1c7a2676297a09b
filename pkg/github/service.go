package github

import (
	"context"
	"encoding/json"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/teachplan/teachplan/pkg/planner"
)

const commitMessage = "Update lesson planner data"

// SyncService round-trips the whole planner model through the remote
// document store. No conflict detection beyond the revision marker used
// for the upsert: concurrent remote edits between a pull and a later
// push are not merged, the last push wins.
type SyncService interface {
	Push(ctx context.Context) error
	Pull(ctx context.Context) (planner.DataModel, error)
}

type SyncServiceImpl struct {
	client  Client
	planner planner.Service
	loc     Location
}

func NewSyncService(client Client, plannerService planner.Service, loc Location) *SyncServiceImpl {
	return &SyncServiceImpl{
		client:  client,
		planner: plannerService,
		loc:     loc,
	}
}

// Push serializes the current model to pretty-printed JSON and upserts
// it at the configured location, referencing the prior revision marker
// when the file already exists. No retry.
func (s *SyncServiceImpl) Push(ctx context.Context) error {
	if err := s.loc.Validate(); err != nil {
		return err
	}

	model := s.planner.ExportSnapshot(ctx)
	content, err := json.MarshalIndent(model, "", "  ")
	if err != nil {
		return fmt.Errorf("could not serialize planner data: %w", err)
	}

	sha, err := s.client.GetFileSHA(ctx, s.loc)
	if err != nil {
		return fmt.Errorf("could not look up current revision: %w", err)
	}
	if sha == "" {
		log.Infof("remote file %s does not exist yet, creating it", s.loc.Path)
	}

	if err := s.client.PutFile(ctx, s.loc, content, sha, commitMessage); err != nil {
		return fmt.Errorf("push failed: %w", err)
	}
	return nil
}

// Pull fetches and parses the remote model and wholesale-replaces the
// local one. Fails when the file does not exist or its content is not a
// valid model document; the local model is untouched on failure.
func (s *SyncServiceImpl) Pull(ctx context.Context) (planner.DataModel, error) {
	if err := s.loc.Validate(); err != nil {
		return planner.DataModel{}, err
	}

	file, err := s.client.GetFile(ctx, s.loc)
	if err != nil {
		return planner.DataModel{}, fmt.Errorf("pull failed: %w", err)
	}

	var model planner.DataModel
	if err := json.Unmarshal(file.Content, &model); err != nil {
		return planner.DataModel{}, fmt.Errorf("could not parse remote planner data: %w", err)
	}

	if err := s.planner.ReplaceAll(ctx, model); err != nil {
		return planner.DataModel{}, err
	}
	return model, nil
}
