package app

import (
	"github.com/gorilla/mux"
	"github.com/teachplan/teachplan/internal/config"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Planner model
	r.HandleFunc("/api/planner", deps.PlannerHandler.GetModel).Methods("GET")
	r.HandleFunc("/api/export", deps.PlannerHandler.Export).Methods("GET")
	r.HandleFunc("/api/import", deps.PlannerHandler.Import).Methods("POST")

	// Lessons
	r.HandleFunc("/api/lesson", deps.PlannerHandler.GetLessons).Methods("GET")
	r.HandleFunc("/api/lesson", deps.PlannerHandler.SaveLesson).Methods("PUT")
	r.HandleFunc("/api/lesson/draft", deps.PlannerHandler.NewLessonDraft).Methods("GET")
	r.HandleFunc("/api/lesson/assign", deps.PlannerHandler.AssignStudents).Methods("POST")
	r.HandleFunc("/api/lesson/{id}", deps.PlannerHandler.DeleteLesson).Methods("DELETE")

	// Subjects
	r.HandleFunc("/api/subject", deps.PlannerHandler.AddSubject).Methods("POST")
	r.HandleFunc("/api/subject/{id}/name", deps.PlannerHandler.RenameSubject).Methods("PUT")
	r.HandleFunc("/api/subject/{id}/color", deps.PlannerHandler.RecolorSubject).Methods("PUT")
	r.HandleFunc("/api/subject/{id}", deps.PlannerHandler.RemoveSubject).Methods("DELETE")

	// Students
	r.HandleFunc("/api/student", deps.PlannerHandler.AddStudent).Methods("POST")
	r.HandleFunc("/api/student/{id}", deps.PlannerHandler.RemoveStudent).Methods("DELETE")

	// Calendar
	r.HandleFunc("/api/calendar/month", deps.PlannerHandler.GetMonth).Queries("year", "{year}", "month", "{month}").Methods("GET")

	// GitHub sync
	r.HandleFunc("/api/github/push", deps.GitHubHandler.Push).Methods("POST")
	r.HandleFunc("/api/github/pull", deps.GitHubHandler.Pull).Methods("POST")

	// Google Classroom integration
	r.HandleFunc("/api/integrations/classroom/courses", deps.ClassroomHandler.ListCourses).Methods("GET")
	r.HandleFunc("/api/integrations/classroom/import/{courseId}", deps.ClassroomHandler.ImportRoster).Methods("POST")
}
