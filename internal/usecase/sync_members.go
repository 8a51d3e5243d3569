package usecase

import (
	"context"
	"log"
	"time"

	"github.com/lesptitsgilets/contacts-sync/internal/entity"
	"github.com/lesptitsgilets/contacts-sync/internal/infra/http/middleware"
)

// SyncMembersUseCase reconciles the HelloAsso membership payments against
// the Brevo contact base and checkpoints the deduplicated rows.
type SyncMembersUseCase struct {
	Source          MemberSource
	Directory       ContactDirectory
	Runs            RunRepositoryInterface
	RowRepo         RowRepositoryInterface
	Exporter        Exporter
	EmailService    EmailService
	ExportRecipient string
	LookupDelay     time.Duration
}

func NewSyncMembersUseCase(
	source MemberSource,
	directory ContactDirectory,
	runs RunRepositoryInterface,
	rowRepo RowRepositoryInterface,
	exporter Exporter,
	emailService EmailService,
	exportRecipient string,
) *SyncMembersUseCase {
	return &SyncMembersUseCase{
		Source:          source,
		Directory:       directory,
		Runs:            runs,
		RowRepo:         rowRepo,
		Exporter:        exporter,
		EmailService:    emailService,
		ExportRecipient: exportRecipient,
		LookupDelay:     LookupDelay,
	}
}

func (uc *SyncMembersUseCase) Execute(ctx context.Context, run *entity.SyncRun) error {
	log.Printf("🔄 Starting member sync, run=%s", run.ID)

	run.Status = entity.RunStatusRunning
	if err := uc.Runs.Update(ctx, run); err != nil {
		return &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to mark run running: " + err.Error()}
	}

	rows, err := uc.buildRows(ctx)
	if err != nil {
		return failRun(ctx, uc.Runs, run, err)
	}

	for _, row := range rows {
		run.CountRow(row)
	}

	if err := uc.RowRepo.ReplaceForRun(ctx, run.ID, rows); err != nil {
		return failRun(ctx, uc.Runs, run, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "failed to checkpoint rows: " + err.Error(),
		})
	}

	run.Status = entity.RunStatusCompleted
	if err := uc.Runs.Update(ctx, run); err != nil {
		return &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to mark run completed: " + err.Error()}
	}

	middleware.RecordRun(run.Source, run.Status)
	middleware.RecordRowsExported(len(rows))

	if uc.EmailService != nil && uc.ExportRecipient != "" {
		go uc.emailExport(run, rows)
	}

	log.Printf("✅ Member sync done, run=%s: %d rows (%d matched, %d multiple, %d unmatched)",
		run.ID, run.TotalRows, run.Matched, run.Multiple, run.Unmatched)
	return nil
}

func (uc *SyncMembersUseCase) buildRows(ctx context.Context) ([]entity.Row, error) {
	members, err := uc.Source.FetchMembers(ctx)
	if err != nil {
		return nil, &TechnicalError{
			Code:    "SOURCE_FETCH_FAILED",
			Message: "failed to fetch HelloAsso members: " + err.Error(),
		}
	}
	log.Printf("Retrieved %d HelloAsso members", len(members))

	// A partial dump would silently under-match every record, so a failed
	// snapshot fetch aborts the run.
	snapshot, err := uc.Directory.ListContacts(ctx)
	if err != nil {
		return nil, &TechnicalError{
			Code:    "SNAPSHOT_FETCH_FAILED",
			Message: "failed to download Brevo contacts: " + err.Error(),
		}
	}

	matcher := NewMatcher(uc.Directory, NewContactIndex(snapshot))
	matcher.Delay = uc.LookupDelay

	reconciler := NewReconciler()
	for i, member := range members {
		log.Printf("Processing member %d: %s %s, email=%s, date=%s",
			i+1, member.FirstName, member.LastName, member.Email, member.MembershipDate)

		result := matcher.Match(ctx, member)
		if result.Status() == entity.MatchMultiple {
			log.Printf("⚠️ Multiple contacts found for %s %s: %v", member.FirstName, member.LastName, result.IDs)
		}
		middleware.RecordMatch(string(result.Status()))

		reconciler.Add(entity.Row{
			ContactID:      result.ContactIDField(),
			Email:          member.Email,
			FirstName:      member.FirstName,
			LastName:       member.LastName,
			MembershipDate: member.MembershipDate,
		})
	}

	return reconciler.Rows(), nil
}

func (uc *SyncMembersUseCase) emailExport(run *entity.SyncRun, rows []entity.Row) {
	csvData, err := uc.Exporter.MembersCSV(rows)
	if err != nil {
		log.Printf("⚠️ Failed to render export for run %s: %v", run.ID, err)
		return
	}
	if err := uc.EmailService.SendExport(uc.ExportRecipient, run.Source, "contacts_export.csv", csvData); err != nil {
		log.Printf("⚠️ Failed to email export for run %s: %v", run.ID, err)
	}
}

// failRun records the failure on the run before bubbling the error up to the
// worker, which will Nack the message.
func failRun(ctx context.Context, runs RunRepositoryInterface, run *entity.SyncRun, cause error) error {
	run.Status = entity.RunStatusFailed
	run.Error = cause.Error()
	if err := runs.Update(ctx, run); err != nil {
		log.Printf("⚠️ Failed to mark run %s as failed: %v", run.ID, err)
	}
	middleware.RecordRun(run.Source, run.Status)
	return cause
}
