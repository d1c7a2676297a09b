package planner

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/teachplan/teachplan/internal/event_bus"
)

// Service owns the authoritative in-memory DataModel and exposes the
// planning operations invoked by the presentation layer. Every mutation
// is side-effect-complete on return: the post-mutation snapshot has been
// published on the bus (and therefore persisted by the autosave
// subscriber) before the call returns.
type Service interface {
	Snapshot(ctx context.Context) DataModel
	ExportSnapshot(ctx context.Context) DataModel
	NewLessonDraft(ctx context.Context, date string) Lesson
	CreateOrUpdateLesson(ctx context.Context, lesson Lesson) (Lesson, error)
	DeleteLesson(ctx context.Context, id string) error
	AssignStudents(ctx context.Context, date string, studentIDs []string) error
	AddSubject(ctx context.Context, name string, color string) (Subject, error)
	RenameSubject(ctx context.Context, id string, name string) (bool, error)
	RecolorSubject(ctx context.Context, id string, color string) (bool, error)
	RemoveSubject(ctx context.Context, id string) (bool, error)
	AddStudent(ctx context.Context, name string, email string) (Student, error)
	RemoveStudent(ctx context.Context, id string) (bool, error)
	ReplaceAll(ctx context.Context, model DataModel) error
}

type ServiceImpl struct {
	mu    sync.Mutex
	model DataModel
	newID IDGenerator
	bus   *event_bus.EventBus
}

// NewService creates the planner service around an initial model,
// typically the one loaded from the local store (or Bootstrap defaults).
func NewService(initial DataModel, newID IDGenerator, bus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{
		model: initial.Clone(),
		newID: newID,
		bus:   bus,
	}
}

// notify publishes the post-mutation snapshot. Must be called with the
// lock held. Subscriber failures never fail the mutation itself.
func (s *ServiceImpl) notify(ctx context.Context) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(event_bus.NewEvent(ctx, event_bus.EventTypeModelChanged, s.model.Clone())); err != nil {
		log.Warnf("model change notification failed: %v", err)
	}
}

// Snapshot returns a deep copy of the current model for read paths.
func (s *ServiceImpl) Snapshot(ctx context.Context) DataModel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model.Clone()
}

// ExportSnapshot returns the current model including lastSavedAt,
// suitable for serialization.
func (s *ServiceImpl) ExportSnapshot(ctx context.Context) DataModel {
	return s.Snapshot(ctx)
}

// NewLessonDraft builds an unsaved lesson for the given date, seeded with
// the first available subject. The draft is not added to the model until
// it is saved via CreateOrUpdateLesson.
func (s *ServiceImpl) NewLessonDraft(ctx context.Context, date string) Lesson {
	s.mu.Lock()
	defer s.mu.Unlock()

	subjectID := ""
	if len(s.model.Subjects) > 0 {
		subjectID = s.model.Subjects[0].ID
	}
	return Lesson{
		ID:         s.newID(),
		Date:       date,
		SubjectID:  subjectID,
		StudentIDs: []string{},
	}
}

// CreateOrUpdateLesson replaces the lesson with the same id in place,
// preserving its position in the collection, or appends when it is new.
// No reference integrity is enforced at write time.
func (s *ServiceImpl) CreateOrUpdateLesson(ctx context.Context, lesson Lesson) (Lesson, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if lesson.ID == "" {
		lesson.ID = s.newID()
	}
	if lesson.StudentIDs == nil {
		lesson.StudentIDs = []string{}
	}

	replaced := false
	for i, existing := range s.model.Lessons {
		if existing.ID == lesson.ID {
			s.model.Lessons[i] = lesson
			replaced = true
			break
		}
	}
	if !replaced {
		s.model.Lessons = append(s.model.Lessons, lesson)
	}

	s.notify(ctx)
	return lesson, nil
}

// DeleteLesson removes the lesson with the given id. Absent ids are a
// no-op.
func (s *ServiceImpl) DeleteLesson(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lessons := make([]Lesson, 0, len(s.model.Lessons))
	for _, lesson := range s.model.Lessons {
		if lesson.ID != id {
			lessons = append(lessons, lesson)
		}
	}
	s.model.Lessons = lessons

	s.notify(ctx)
	return nil
}

// AssignStudents unions the given student ids into every lesson on the
// given date, deduplicating. Lessons on other dates are untouched; when
// no lesson exists on that date nothing is created.
func (s *ServiceImpl) AssignStudents(ctx context.Context, date string, studentIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, lesson := range s.model.Lessons {
		if lesson.Date != date {
			continue
		}
		present := make(map[string]bool, len(lesson.StudentIDs))
		for _, id := range lesson.StudentIDs {
			present[id] = true
		}
		for _, id := range studentIDs {
			if !present[id] {
				lesson.StudentIDs = append(lesson.StudentIDs, id)
				present[id] = true
			}
		}
		s.model.Lessons[i] = lesson
	}

	s.notify(ctx)
	return nil
}

// AddSubject appends a new subject with a fresh id.
func (s *ServiceImpl) AddSubject(ctx context.Context, name string, color string) (Subject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	subject := Subject{ID: s.newID(), Name: name, Color: color}
	s.model.Subjects = append(s.model.Subjects, subject)

	s.notify(ctx)
	return subject, nil
}

func (s *ServiceImpl) RenameSubject(ctx context.Context, id string, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, subject := range s.model.Subjects {
		if subject.ID == id {
			s.model.Subjects[i].Name = name
			s.notify(ctx)
			return true, nil
		}
	}
	log.Warnf("subject not renamed, probably because it does not exist (%s)", id)
	return false, nil
}

func (s *ServiceImpl) RecolorSubject(ctx context.Context, id string, color string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, subject := range s.model.Subjects {
		if subject.ID == id {
			s.model.Subjects[i].Color = color
			s.notify(ctx)
			return true, nil
		}
	}
	log.Warnf("subject not recolored, probably because it does not exist (%s)", id)
	return false, nil
}

// RemoveSubject deletes the subject record only. Lessons referencing it
// keep their subjectId; dangling references are tolerated and resolved
// to a placeholder on display.
func (s *ServiceImpl) RemoveSubject(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	subjects := make([]Subject, 0, len(s.model.Subjects))
	removed := false
	for _, subject := range s.model.Subjects {
		if subject.ID == id {
			removed = true
			continue
		}
		subjects = append(subjects, subject)
	}
	s.model.Subjects = subjects

	s.notify(ctx)
	return removed, nil
}

// AddStudent appends a new student with a fresh id.
func (s *ServiceImpl) AddStudent(ctx context.Context, name string, email string) (Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	student := Student{ID: s.newID(), Name: name, Email: email}
	s.model.Students = append(s.model.Students, student)

	s.notify(ctx)
	return student, nil
}

// RemoveStudent deletes the student record only; lessons keep their
// studentIds entries.
func (s *ServiceImpl) RemoveStudent(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	students := make([]Student, 0, len(s.model.Students))
	removed := false
	for _, student := range s.model.Students {
		if student.ID == id {
			removed = true
			continue
		}
		students = append(students, student)
	}
	s.model.Students = students

	s.notify(ctx)
	return removed, nil
}

// ReplaceAll wholesale-replaces the model. No merge, no diff: last
// writer wins. Used by import and remote pull.
func (s *ServiceImpl) ReplaceAll(ctx context.Context, model DataModel) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.model = model.Clone()
	if s.model.Lessons == nil {
		s.model.Lessons = []Lesson{}
	}

	s.notify(ctx)
	return nil
}
