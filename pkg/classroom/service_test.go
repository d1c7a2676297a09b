package classroom

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teachplan/teachplan/internal/event_bus"
	"github.com/teachplan/teachplan/pkg/planner"
)

var ctx = context.Background()

func setupImport(t *testing.T) (*ServiceImpl, *StubClient, planner.Service) {
	n := 0
	newID := func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	plannerService := planner.NewService(planner.Bootstrap(newID), newID, event_bus.NewEventBus())
	client := NewStubClient()
	return NewService(client, plannerService), client, plannerService
}

func TestServiceImpl_ImportRoster(t *testing.T) {
	t.Run("should add every roster student to the planner", func(t *testing.T) {
		service, client, plannerService := setupImport(t)
		client.Courses["c1"] = []RosterEntry{
			{Name: "Jo March", Email: "jo@example.com"},
			{Name: "Sam Lee", Email: "sam@example.com"},
		}

		// when
		added, err := service.ImportRoster(ctx, "c1")

		// then
		require.NoError(t, err)
		assert.Equal(t, 2, added)
		students := plannerService.Snapshot(ctx).Students
		assert.Len(t, students, 5) // 3 bootstrap defaults + 2 imported
	})

	t.Run("should be idempotent by email", func(t *testing.T) {
		service, client, plannerService := setupImport(t)
		client.Courses["c1"] = []RosterEntry{{Name: "Jo March", Email: "jo@example.com"}}

		first, err := service.ImportRoster(ctx, "c1")
		require.NoError(t, err)
		second, err := service.ImportRoster(ctx, "c1")
		require.NoError(t, err)

		assert.Equal(t, 1, first)
		assert.Equal(t, 0, second)
		assert.Len(t, plannerService.Snapshot(ctx).Students, 4)
	})

	t.Run("should skip roster entries without a name", func(t *testing.T) {
		service, client, _ := setupImport(t)
		client.Courses["c1"] = []RosterEntry{{Name: "", Email: "anon@example.com"}}

		added, err := service.ImportRoster(ctx, "c1")

		require.NoError(t, err)
		assert.Zero(t, added)
	})

	t.Run("should surface client failures", func(t *testing.T) {
		service, client, _ := setupImport(t)
		client.Err = ErrNotConfigured

		_, err := service.ImportRoster(ctx, "c1")

		assert.ErrorIs(t, err, ErrNotConfigured)
	})
}
