package github

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"
)

type Handler struct {
	sync SyncService
}

func NewHandler(sync SyncService) *Handler {
	return &Handler{sync: sync}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// Push uploads the current model to the configured remote location.
func (h *Handler) Push(w http.ResponseWriter, r *http.Request) {
	log.Debug("Pushing planner data to GitHub")

	if err := h.sync.Push(r.Context()); err != nil {
		if errors.Is(err, ErrLocationIncomplete) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	w.WriteHeader(http.StatusOK)
}

// Pull replaces the local model with the remote one and returns it.
func (h *Handler) Pull(w http.ResponseWriter, r *http.Request) {
	log.Debug("Pulling planner data from GitHub")

	model, err := h.sync.Pull(r.Context())
	if err != nil {
		if errors.Is(err, ErrLocationIncomplete) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if errors.Is(err, ErrFileNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(model); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
}
