package classroom

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/teachplan/teachplan/pkg/planner"
)

// Service imports Classroom rosters into the planner's student
// collection.
type Service interface {
	ListCourses(ctx context.Context) ([]Course, error)
	ImportRoster(ctx context.Context, courseID string) (int, error)
}

type ServiceImpl struct {
	client  Client
	planner planner.Service
}

func NewService(client Client, plannerService planner.Service) *ServiceImpl {
	return &ServiceImpl{client: client, planner: plannerService}
}

func (s *ServiceImpl) ListCourses(ctx context.Context) ([]Course, error) {
	return s.client.ListCourses(ctx)
}

// ImportRoster adds every student of the course to the planner, skipping
// entries whose email is already present. Returns the number of students
// added.
func (s *ServiceImpl) ImportRoster(ctx context.Context, courseID string) (int, error) {
	entries, err := s.client.ListStudents(ctx, courseID)
	if err != nil {
		return 0, fmt.Errorf("could not load course roster: %w", err)
	}

	existing := map[string]bool{}
	for _, student := range s.planner.Snapshot(ctx).Students {
		if student.Email != "" {
			existing[student.Email] = true
		}
	}

	added := 0
	for _, entry := range entries {
		if entry.Name == "" {
			continue
		}
		if entry.Email != "" && existing[entry.Email] {
			continue
		}
		if _, err := s.planner.AddStudent(ctx, entry.Name, entry.Email); err != nil {
			return added, err
		}
		if entry.Email != "" {
			existing[entry.Email] = true
		}
		added++
	}

	log.Infof("imported %d students from course %s", added, courseID)
	return added, nil
}
