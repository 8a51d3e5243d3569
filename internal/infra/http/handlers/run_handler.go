package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lesptitsgilets/contacts-sync/internal/infra/database"
	"github.com/lesptitsgilets/contacts-sync/internal/usecase"
)

type RunHandler struct {
	Runs usecase.RunRepositoryInterface
}

func NewRunHandler(runs usecase.RunRepositoryInterface) *RunHandler {
	return &RunHandler{Runs: runs}
}

func (h *RunHandler) HandleGetRun(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "runID")

	run, err := h.Runs.FindByID(r.Context(), runID)
	if errors.Is(err, database.ErrRunNotFound) {
		http.Error(w, "run not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(run)
}
