package classroom

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
)

type CourseDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) ListCourses(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	courses, err := h.service.ListCourses(r.Context())
	if err != nil {
		if errors.Is(err, ErrNotConfigured) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	coursesDTO := make([]CourseDTO, 0, len(courses))
	for _, course := range courses {
		coursesDTO = append(coursesDTO, CourseDTO{ID: course.ID, Name: course.Name})
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(coursesDTO); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) ImportRoster(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)

	added, err := h.service.ImportRoster(r.Context(), vars["courseId"])
	if err != nil {
		if errors.Is(err, ErrNotConfigured) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]int{"imported": added}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
