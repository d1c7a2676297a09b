package classroom

import (
	"context"
)

// StubClient is an in-memory Client for tests.
type StubClient struct {
	Courses map[string][]RosterEntry
	Err     error
}

func NewStubClient() *StubClient {
	return &StubClient{Courses: map[string][]RosterEntry{}}
}

func (c *StubClient) ListCourses(ctx context.Context) ([]Course, error) {
	if c.Err != nil {
		return nil, c.Err
	}
	courses := make([]Course, 0, len(c.Courses))
	for id := range c.Courses {
		courses = append(courses, Course{ID: id, Name: "Course " + id})
	}
	return courses, nil
}

func (c *StubClient) ListStudents(ctx context.Context, courseID string) ([]RosterEntry, error) {
	if c.Err != nil {
		return nil, c.Err
	}
	return c.Courses[courseID], nil
}
