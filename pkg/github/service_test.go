package github

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teachplan/teachplan/internal/event_bus"
	"github.com/teachplan/teachplan/pkg/planner"
)

var ctx = context.Background()

func sequentialIDs() planner.IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func setupSync(t *testing.T, loc Location) (*SyncServiceImpl, *StubClient, planner.Service) {
	newID := sequentialIDs()
	plannerService := planner.NewService(planner.Bootstrap(newID), newID, event_bus.NewEventBus())
	client := NewStubClient()
	return NewSyncService(client, plannerService, loc), client, plannerService
}

func validLocation() Location {
	return Location{Owner: "teacher", Repo: "lesson-planner", Branch: "main", Path: "data/lesson-planner.json"}
}

func TestSyncServiceImpl_Push(t *testing.T) {
	t.Run("should create the remote file when it does not exist", func(t *testing.T) {
		service, client, _ := setupSync(t, validLocation())

		// when
		err := service.Push(ctx)

		// then
		require.NoError(t, err)
		assert.Equal(t, 1, client.PutCalls)

		file := client.Files["data/lesson-planner.json"]
		var model planner.DataModel
		require.NoError(t, json.Unmarshal(file.Content, &model))
		assert.Len(t, model.Subjects, 4)
	})

	t.Run("should reference the prior revision when updating", func(t *testing.T) {
		service, client, _ := setupSync(t, validLocation())
		client.Files["data/lesson-planner.json"] = File{Content: []byte("{}"), SHA: "abc123"}

		err := service.Push(ctx)

		require.NoError(t, err)
		assert.Equal(t, 1, client.PutCalls)
	})

	t.Run("should fail the precondition without any network call when owner is empty", func(t *testing.T) {
		service, client, _ := setupSync(t, Location{Owner: "", Repo: "lesson-planner", Branch: "main", Path: "x.json"})

		err := service.Push(ctx)

		assert.ErrorIs(t, err, ErrLocationIncomplete)
		assert.Zero(t, client.GetCalls)
		assert.Zero(t, client.PutCalls)
	})

	t.Run("should surface a put failure without retry", func(t *testing.T) {
		service, client, _ := setupSync(t, validLocation())
		client.PutErr = fmt.Errorf("boom")

		err := service.Push(ctx)

		assert.Error(t, err)
		assert.Equal(t, 1, client.PutCalls)
	})
}

func TestSyncServiceImpl_Pull(t *testing.T) {
	t.Run("should replace the local model with the remote one", func(t *testing.T) {
		service, client, plannerService := setupSync(t, validLocation())
		remote := planner.DataModel{
			Subjects: []planner.Subject{{ID: "r1", Name: "Remote Subject", Color: "bg-sky-500"}},
			Students: []planner.Student{},
			Lessons:  []planner.Lesson{{ID: "L9", Date: "2024-03-04", SubjectID: "r1", Title: "Synced", StudentIDs: []string{}}},
		}
		content, _ := json.MarshalIndent(remote, "", "  ")
		client.Files["data/lesson-planner.json"] = File{Content: content, SHA: "abc123"}

		// when
		model, err := service.Pull(ctx)

		// then
		require.NoError(t, err)
		assert.Equal(t, "Remote Subject", model.Subjects[0].Name)
		local := plannerService.Snapshot(ctx)
		require.Len(t, local.Lessons, 1)
		assert.Equal(t, "Synced", local.Lessons[0].Title)
	})

	t.Run("should fail with ErrFileNotFound for a missing remote file and leave the model untouched", func(t *testing.T) {
		service, _, plannerService := setupSync(t, validLocation())
		before := plannerService.Snapshot(ctx)

		_, err := service.Pull(ctx)

		assert.ErrorIs(t, err, ErrFileNotFound)
		assert.Equal(t, before, plannerService.Snapshot(ctx))
	})

	t.Run("should fail on unparsable remote content without touching the model", func(t *testing.T) {
		service, client, plannerService := setupSync(t, validLocation())
		client.Files["data/lesson-planner.json"] = File{Content: []byte("not json"), SHA: "abc123"}
		before := plannerService.Snapshot(ctx)

		_, err := service.Pull(ctx)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "could not parse")
		assert.Equal(t, before, plannerService.Snapshot(ctx))
	})

	t.Run("should fail the precondition without any network call when repo is empty", func(t *testing.T) {
		service, client, _ := setupSync(t, Location{Owner: "teacher", Repo: ""})

		_, err := service.Pull(ctx)

		assert.ErrorIs(t, err, ErrLocationIncomplete)
		assert.Zero(t, client.GetCalls)
	})
}
