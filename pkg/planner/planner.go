package planner

import (
	"github.com/google/uuid"
)

// IDGenerator produces opaque unique identifiers for new records.
// Production wiring uses UUIDs; tests substitute a deterministic sequence.
type IDGenerator func() string

// NewUUIDGenerator returns the default random id source.
func NewUUIDGenerator() IDGenerator {
	return uuid.NewString
}

// Subject is a named, color-tagged category lessons can be tied to.
// Color is one of the palette tags and carries no meaning beyond display.
type Subject struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Student is an individual that can be associated with lessons.
type Student struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// Lesson is a dated planning record. SubjectID and StudentIDs may
// reference records that no longer exist; dangling references are
// tolerated everywhere and resolved to a placeholder on display.
type Lesson struct {
	ID         string   `json:"id"`
	Date       string   `json:"date"` // YYYY-MM-DD, no time component
	SubjectID  string   `json:"subjectId"`
	Title      string   `json:"title"`
	Objectives string   `json:"objectives,omitempty"`
	Materials  string   `json:"materials,omitempty"`
	Notes      string   `json:"notes,omitempty"`
	StudentIDs []string `json:"studentIds"`
}

// DataModel is the full aggregate of subjects, students, and lessons,
// persisted and transmitted as one unit. LastSavedAt is informational
// only and never used for conflict detection.
type DataModel struct {
	Subjects    []Subject `json:"subjects"`
	Students    []Student `json:"students"`
	Lessons     []Lesson  `json:"lessons"`
	LastSavedAt string    `json:"lastSavedAt,omitempty"`
}

// Clone returns a deep copy of the model so callers can hold a snapshot
// without observing later mutations.
func (m DataModel) Clone() DataModel {
	out := DataModel{
		Subjects:    make([]Subject, len(m.Subjects)),
		Students:    make([]Student, len(m.Students)),
		Lessons:     make([]Lesson, len(m.Lessons)),
		LastSavedAt: m.LastSavedAt,
	}
	copy(out.Subjects, m.Subjects)
	copy(out.Students, m.Students)
	for i, lesson := range m.Lessons {
		ids := make([]string, len(lesson.StudentIDs))
		copy(ids, lesson.StudentIDs)
		lesson.StudentIDs = ids
		out.Lessons[i] = lesson
	}
	return out
}

// UnknownLabel is the display placeholder for dangling subject or
// student references.
const UnknownLabel = "?"

// SubjectByID looks up a subject. The second return value is false for
// dangling references; callers must degrade to a placeholder, never fail.
func (m DataModel) SubjectByID(id string) (Subject, bool) {
	for _, subject := range m.Subjects {
		if subject.ID == id {
			return subject, true
		}
	}
	return Subject{}, false
}

// StudentByID looks up a student by id.
func (m DataModel) StudentByID(id string) (Student, bool) {
	for _, student := range m.Students {
		if student.ID == id {
			return student, true
		}
	}
	return Student{}, false
}

// SubjectName resolves a subject id for display, tolerating dangling
// references.
func (m DataModel) SubjectName(id string) string {
	if subject, ok := m.SubjectByID(id); ok {
		return subject.Name
	}
	return UnknownLabel
}

// StudentName resolves a student id for display, tolerating dangling
// references.
func (m DataModel) StudentName(id string) string {
	if student, ok := m.StudentByID(id); ok {
		return student.Name
	}
	return UnknownLabel
}

// LessonsOn returns the lessons scheduled on the given YYYY-MM-DD date,
// in collection order.
func (m DataModel) LessonsOn(date string) []Lesson {
	lessons := make([]Lesson, 0)
	for _, lesson := range m.Lessons {
		if lesson.Date == date {
			lessons = append(lessons, lesson)
		}
	}
	return lessons
}

// Bootstrap builds the default starting model: four subjects, three
// students, no lessons. Every call generates fresh records with fresh
// ids so separate planner instances never share state.
func Bootstrap(newID IDGenerator) DataModel {
	return DataModel{
		Subjects: []Subject{
			{ID: newID(), Name: "Math", Color: "bg-blue-500"},
			{ID: newID(), Name: "Science", Color: "bg-emerald-500"},
			{ID: newID(), Name: "ELA", Color: "bg-rose-500"},
			{ID: newID(), Name: "History", Color: "bg-amber-500"},
		},
		Students: []Student{
			{ID: newID(), Name: "Alex Carter"},
			{ID: newID(), Name: "Bri Rivera"},
			{ID: newID(), Name: "Dev Patel"},
		},
		Lessons: []Lesson{},
	}
}
