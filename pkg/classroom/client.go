package classroom

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"google.golang.org/api/classroom/v1"
	"google.golang.org/api/option"
)

var ErrNotConfigured = fmt.Errorf("google classroom integration is not configured")

type Course struct {
	ID   string
	Name string
}

// RosterEntry is a student on a course roster.
type RosterEntry struct {
	Name  string
	Email string
}

// Client reads courses and rosters from Google Classroom.
type Client interface {
	ListCourses(ctx context.Context) ([]Course, error)
	ListStudents(ctx context.Context, courseID string) ([]RosterEntry, error)
}

type ClientImpl struct {
	token string
}

// NewClient builds a Classroom client around a pre-provisioned access
// token from the deployment environment.
func NewClient(token string) *ClientImpl {
	return &ClientImpl{token: token}
}

func (c *ClientImpl) prepareClassroomService(ctx context.Context) (*classroom.Service, error) {
	if c.token == "" {
		log.Debug("classroom token is not set, integration is disabled")
		return nil, ErrNotConfigured
	}

	tokenSource := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: c.token})
	service, err := classroom.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		err := fmt.Errorf("unable to create Classroom client: %v", err)
		log.Error(err)
		return nil, err
	}
	return service, nil
}

// ListCourses retrieves the courses visible to the configured credential.
func (c *ClientImpl) ListCourses(ctx context.Context) ([]Course, error) {
	service, err := c.prepareClassroomService(ctx)
	if err != nil {
		return nil, err
	}

	response, err := service.Courses.List().Context(ctx).Do()
	if err != nil {
		err := fmt.Errorf("unable to retrieve courses from Google Classroom: %v", err)
		log.Error(err)
		return nil, err
	}

	courses := make([]Course, 0, len(response.Courses))
	for _, course := range response.Courses {
		courses = append(courses, Course{ID: course.Id, Name: course.Name})
	}
	return courses, nil
}

// ListStudents retrieves the roster of a course.
func (c *ClientImpl) ListStudents(ctx context.Context, courseID string) ([]RosterEntry, error) {
	service, err := c.prepareClassroomService(ctx)
	if err != nil {
		return nil, err
	}

	response, err := service.Courses.Students.List(courseID).Context(ctx).Do()
	if err != nil {
		err := fmt.Errorf("unable to retrieve course roster from Google Classroom: %v", err)
		log.Error(err)
		return nil, err
	}

	entries := make([]RosterEntry, 0, len(response.Students))
	for _, student := range response.Students {
		entry := RosterEntry{Email: student.Profile.EmailAddress}
		if student.Profile.Name != nil {
			entry.Name = student.Profile.Name.FullName
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
