package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lesptitsgilets/contacts-sync/internal/entity"
	"github.com/lesptitsgilets/contacts-sync/internal/infra/database"
	"github.com/lesptitsgilets/contacts-sync/internal/usecase"
)

// ExportHandler serves the reconciled rows of a finished run as the CSV the
// board imports back into Brevo.
type ExportHandler struct {
	Runs     usecase.RunRepositoryInterface
	RowRepo  usecase.RowRepositoryInterface
	Exporter usecase.Exporter
}

func NewExportHandler(runs usecase.RunRepositoryInterface, rowRepo usecase.RowRepositoryInterface, exporter usecase.Exporter) *ExportHandler {
	return &ExportHandler{Runs: runs, RowRepo: rowRepo, Exporter: exporter}
}

func (h *ExportHandler) HandleDownload(w http.ResponseWriter, r *http.Request) {
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

	if run.Status != entity.RunStatusCompleted {
		http.Error(w, "run is "+run.Status+", export not available", http.StatusConflict)
		return
	}

	rows, err := h.RowRepo.ListByRun(r.Context(), runID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var csvData []byte
	if run.Source == entity.SourceSheet {
		csvData, err = h.Exporter.VolunteersCSV(rows)
	} else {
		csvData, err = h.Exporter.MembersCSV(rows)
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="contacts_export.csv"`)
	w.Write(csvData)
}
