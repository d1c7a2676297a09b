package planner

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/teachplan/teachplan/internal/utils"
	"github.com/teachplan/teachplan/pkg/dates"
)

// LessonCardDTO is the display shape of a lesson on the calendar and
// list views, with subject and student references already resolved.
type LessonCardDTO struct {
	ID           string   `json:"id"`
	Date         string   `json:"date"`
	Title        string   `json:"title"`
	SubjectName  string   `json:"subjectName"`
	SubjectColor string   `json:"subjectColor,omitempty"`
	StudentNames []string `json:"studentNames"`
}

type DayCellDTO struct {
	Date    string          `json:"date,omitempty"`
	Today   bool            `json:"today,omitempty"`
	Lessons []LessonCardDTO `json:"lessons,omitempty"`
}

type MonthViewDTO struct {
	Year  int            `json:"year"`
	Month int            `json:"month"`
	Weeks [][]DayCellDTO `json:"weeks"`
}

type Handler struct {
	service Service
	clock   utils.Clock
}

func NewHandler(service Service, clock utils.Clock) *Handler {
	return &Handler{service: service, clock: clock}
}

// GetModel returns the full current model.
func (h *Handler) GetModel(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	model := h.service.Snapshot(r.Context())

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(model); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// GetLessons returns all lessons sorted by date (the list view).
func (h *Handler) GetLessons(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	model := h.service.Snapshot(r.Context())

	lessons := model.Lessons
	sort.SliceStable(lessons, func(i, j int) bool {
		return lessons[i].Date < lessons[j].Date
	})

	cards := make([]LessonCardDTO, 0, len(lessons))
	for _, lesson := range lessons {
		cards = append(cards, lessonCard(model, lesson))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(cards); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// NewLessonDraft returns an unsaved lesson seeded with the first
// available subject for the requested date.
func (h *Handler) NewLessonDraft(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	date := r.URL.Query().Get("date")
	if date == "" {
		date = dates.FormatDate(h.clock.Now())
	}

	draft := h.service.NewLessonDraft(r.Context(), date)

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(draft); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// SaveLesson creates or updates a lesson in place.
func (h *Handler) SaveLesson(w http.ResponseWriter, r *http.Request) {
	log.Debug("Saving lesson")
	w.Header().Set("Content-Type", "application/json")

	var lesson Lesson
	if err := json.NewDecoder(r.Body).Decode(&lesson); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	saved, err := h.service.CreateOrUpdateLesson(r.Context(), lesson)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(saved); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) DeleteLesson(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := h.service.DeleteLesson(r.Context(), vars["id"]); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AssignStudents adds students to all lessons on a given date.
func (h *Handler) AssignStudents(w http.ResponseWriter, r *http.Request) {
	var assignDTO struct {
		Date       string   `json:"date"`
		StudentIDs []string `json:"studentIds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&assignDTO); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if assignDTO.Date == "" {
		http.Error(w, "date is required", http.StatusBadRequest)
		return
	}

	if err := h.service.AssignStudents(r.Context(), assignDTO.Date, assignDTO.StudentIDs); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) AddSubject(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var subjectDTO struct {
		Name  string `json:"name"`
		Color string `json:"color"`
	}
	if err := json.NewDecoder(r.Body).Decode(&subjectDTO); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if subjectDTO.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}
	if subjectDTO.Color == "" {
		subjectDTO.Color = dates.PickColor()
	}

	subject, err := h.service.AddSubject(r.Context(), subjectDTO.Name, subjectDTO.Color)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(subject); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) RenameSubject(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var renameDTO struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&renameDTO); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if renameDTO.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	ok, err := h.service.RenameSubject(r.Context(), vars["id"], renameDTO.Name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Subject not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// RecolorSubject assigns a color to a subject; without an explicit color
// in the body a random palette tag is picked.
func (h *Handler) RecolorSubject(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var recolorDTO struct {
		Color string `json:"color"`
	}
	if r.Body != nil {
		// A missing or empty body means "pick one for me".
		_ = json.NewDecoder(r.Body).Decode(&recolorDTO)
	}
	if recolorDTO.Color == "" {
		recolorDTO.Color = dates.PickColor()
	}

	ok, err := h.service.RecolorSubject(r.Context(), vars["id"], recolorDTO.Color)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Subject not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) RemoveSubject(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	ok, err := h.service.RemoveSubject(r.Context(), vars["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Subject not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AddStudent(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var studentDTO struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&studentDTO); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if studentDTO.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	student, err := h.service.AddStudent(r.Context(), studentDTO.Name, studentDTO.Email)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(student); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) RemoveStudent(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	ok, err := h.service.RemoveStudent(r.Context(), vars["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Student not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetMonth renders the 6x7 calendar grid for a month with the lessons of
// each day, references resolved for display.
func (h *Handler) GetMonth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		http.Error(w, "invalid year", http.StatusBadRequest)
		return
	}
	monthNum, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || monthNum < 1 || monthNum > 12 {
		http.Error(w, "invalid month", http.StatusBadRequest)
		return
	}

	model := h.service.Snapshot(r.Context())
	todayISO := dates.FormatDate(h.clock.Now())

	rows := dates.MonthMatrix(year, time.Month(monthNum))
	weeks := make([][]DayCellDTO, 0, len(rows))
	for _, row := range rows {
		week := make([]DayCellDTO, 0, len(row))
		for _, cell := range row {
			if !cell.Valid {
				week = append(week, DayCellDTO{})
				continue
			}
			iso := dates.FormatDate(cell.Date)
			cards := make([]LessonCardDTO, 0)
			for _, lesson := range model.LessonsOn(iso) {
				cards = append(cards, lessonCard(model, lesson))
			}
			week = append(week, DayCellDTO{Date: iso, Today: iso == todayISO, Lessons: cards})
		}
		weeks = append(weeks, week)
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(MonthViewDTO{Year: year, Month: monthNum, Weeks: weeks}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// Export streams the current model as a downloadable pretty-printed JSON
// file.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	model := h.service.ExportSnapshot(r.Context())

	data, err := json.MarshalIndent(model, "", "  ")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("lesson-planner-export-%s.json", dates.FormatDate(h.clock.Now()))
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Errorf("failed to write export: %v", err)
	}
}

// Import parses an uploaded JSON file and wholesale-replaces the model.
// Malformed JSON is rejected without touching the current state.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	var model DataModel
	if err := json.NewDecoder(r.Body).Decode(&model); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if err := h.service.ReplaceAll(r.Context(), model); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func lessonCard(model DataModel, lesson Lesson) LessonCardDTO {
	title := lesson.Title
	if title == "" {
		title = "Untitled lesson"
	}

	subjectName := model.SubjectName(lesson.SubjectID)
	subjectColor := ""
	if subject, ok := model.SubjectByID(lesson.SubjectID); ok {
		subjectColor = subject.Color
	}

	studentNames := make([]string, 0, len(lesson.StudentIDs))
	for _, id := range lesson.StudentIDs {
		studentNames = append(studentNames, model.StudentName(id))
	}

	return LessonCardDTO{
		ID:           lesson.ID,
		Date:         lesson.Date,
		Title:        title,
		SubjectName:  subjectName,
		SubjectColor: subjectColor,
		StudentNames: studentNames,
	}
}
