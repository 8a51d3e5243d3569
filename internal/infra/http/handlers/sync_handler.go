package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/lesptitsgilets/contacts-sync/internal/entity"
	"github.com/lesptitsgilets/contacts-sync/internal/infra/queue"
	"github.com/lesptitsgilets/contacts-sync/internal/usecase"
)

// SyncHandler accepts run requests and hands them to the worker via the
// queue. The HTTP call returns immediately with 202.
type SyncHandler struct {
	Runs     usecase.RunRepositoryInterface
	Producer usecase.QueueProducerInterface
}

func NewSyncHandler(runs usecase.RunRepositoryInterface, producer usecase.QueueProducerInterface) *SyncHandler {
	return &SyncHandler{Runs: runs, Producer: producer}
}

func (h *SyncHandler) HandleMembers(w http.ResponseWriter, r *http.Request) {
	h.enqueue(w, r, entity.SourceHelloAsso)
}

func (h *SyncHandler) HandleVolunteers(w http.ResponseWriter, r *http.Request) {
	h.enqueue(w, r, entity.SourceSheet)
}

func (h *SyncHandler) enqueue(w http.ResponseWriter, r *http.Request, source string) {
	run := entity.NewSyncRun(source)

	if err := h.Runs.Create(r.Context(), run); err != nil {
		http.Error(w, "failed to create run: "+err.Error(), http.StatusInternalServerError)
		return
	}

	err := h.Producer.PublishSyncJob(r.Context(), queue.SyncJobPayload{
		RunID:  run.ID,
		Source: source,
	})
	if err != nil {
		log.Printf("⚠️ Failed to enqueue run %s: %v", run.ID, err)
		run.Status = entity.RunStatusFailed
		run.Error = err.Error()
		if uerr := h.Runs.Update(r.Context(), run); uerr != nil {
			log.Printf("⚠️ Failed to mark run %s as failed: %v", run.ID, uerr)
		}
		http.Error(w, "failed to enqueue run: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(run)
}
