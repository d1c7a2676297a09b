package app

import (
	"context"

	"github.com/teachplan/teachplan/internal/config"
	"github.com/teachplan/teachplan/internal/event_bus"
	"github.com/teachplan/teachplan/internal/utils"
	"github.com/teachplan/teachplan/pkg/classroom"
	"github.com/teachplan/teachplan/pkg/github"
	"github.com/teachplan/teachplan/pkg/planner"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Bus   *event_bus.EventBus
	Clock utils.Clock

	PlannerStore   planner.Store
	PlannerService planner.Service
	PlannerHandler *planner.Handler

	GitHubClient  github.Client
	SyncService   github.SyncService
	GitHubHandler *github.Handler

	ClassroomClient  classroom.Client
	ClassroomService classroom.Service
	ClassroomHandler *classroom.Handler
}

// BuildDependencies initializes and wires all application services and
// handlers. The initial model is loaded from the local store, falling
// back to bootstrap defaults, and the autosave subscriber is attached
// before the first mutation can happen.
func BuildDependencies(cfg config.Application) (*Dependencies, error) {
	deps := &Dependencies{}

	deps.Clock = utils.SystemClock{}
	deps.Bus = event_bus.NewEventBus()

	newID := planner.NewUUIDGenerator()
	deps.PlannerStore = planner.NewDiskvStore(cfg.Storage.Path, deps.Clock)
	initial := planner.LoadOrBootstrap(context.Background(), deps.PlannerStore, newID)
	planner.SubscribeAutosave(deps.Bus, deps.PlannerStore)

	deps.PlannerService = planner.NewService(initial, newID, deps.Bus)
	deps.PlannerHandler = planner.NewHandler(deps.PlannerService, deps.Clock)

	deps.GitHubClient = github.NewClient(cfg.GitHub.Token)
	deps.SyncService = github.NewSyncService(deps.GitHubClient, deps.PlannerService, github.Location{
		Owner:  cfg.GitHub.Owner,
		Repo:   cfg.GitHub.Repo,
		Branch: cfg.GitHub.Branch,
		Path:   cfg.GitHub.Path,
	})
	deps.GitHubHandler = github.NewHandler(deps.SyncService)

	deps.ClassroomClient = classroom.NewClient(cfg.Classroom.Token)
	deps.ClassroomService = classroom.NewService(deps.ClassroomClient, deps.PlannerService)
	deps.ClassroomHandler = classroom.NewHandler(deps.ClassroomService)

	return deps, nil
}
