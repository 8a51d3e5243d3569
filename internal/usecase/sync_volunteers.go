package usecase

import (
	"context"
	"log"
	"time"

	"github.com/lesptitsgilets/contacts-sync/internal/entity"
	"github.com/lesptitsgilets/contacts-sync/internal/infra/http/middleware"
)

// SyncVolunteersUseCase matches the volunteer sheet against Brevo. One
// output row per sheet row: volunteers carry no membership date, so there is
// nothing to fold.
type SyncVolunteersUseCase struct {
	Source          MemberSource
	Directory       ContactDirectory
	Runs            RunRepositoryInterface
	RowRepo         RowRepositoryInterface
	Exporter        Exporter
	EmailService    EmailService
	ExportRecipient string
	LookupDelay     time.Duration
}

func NewSyncVolunteersUseCase(
	source MemberSource,
	directory ContactDirectory,
	runs RunRepositoryInterface,
	rowRepo RowRepositoryInterface,
	exporter Exporter,
	emailService EmailService,
	exportRecipient string,
) *SyncVolunteersUseCase {
	return &SyncVolunteersUseCase{
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

func (uc *SyncVolunteersUseCase) Execute(ctx context.Context, run *entity.SyncRun) error {
	log.Printf("🔄 Starting volunteer sync, run=%s", run.ID)

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

	log.Printf("✅ Volunteer sync done, run=%s: %d rows (%d matched, %d multiple, %d unmatched)",
		run.ID, run.TotalRows, run.Matched, run.Multiple, run.Unmatched)
	return nil
}

func (uc *SyncVolunteersUseCase) buildRows(ctx context.Context) ([]entity.Row, error) {
	volunteers, err := uc.Source.FetchMembers(ctx)
	if err != nil {
		return nil, &TechnicalError{
			Code:    "SOURCE_FETCH_FAILED",
			Message: "failed to fetch volunteer sheet: " + err.Error(),
		}
	}
	log.Printf("Retrieved %d volunteer rows", len(volunteers))

	snapshot, err := uc.Directory.ListContacts(ctx)
	if err != nil {
		return nil, &TechnicalError{
			Code:    "SNAPSHOT_FETCH_FAILED",
			Message: "failed to download Brevo contacts: " + err.Error(),
		}
	}

	matcher := NewMatcher(uc.Directory, NewContactIndex(snapshot))
	matcher.Delay = uc.LookupDelay

	rows := make([]entity.Row, 0, len(volunteers))
	for i, volunteer := range volunteers {
		log.Printf("Processing volunteer %d: %s %s, email=%s, sms=%s",
			i+1, volunteer.FirstName, volunteer.LastName, volunteer.Email, volunteer.Phone)

		result := matcher.Match(ctx, volunteer)
		if result.Status() == entity.MatchMultiple {
			log.Printf("⚠️ Multiple contacts found for %s %s: %v", volunteer.FirstName, volunteer.LastName, result.IDs)
		}
		middleware.RecordMatch(string(result.Status()))

		rows = append(rows, entity.Row{
			ContactID: result.ContactIDField(),
			Email:     volunteer.Email,
			FirstName: volunteer.FirstName,
			LastName:  volunteer.LastName,
			Phone:     volunteer.Phone,
		})
	}

	return rows, nil
}

func (uc *SyncVolunteersUseCase) emailExport(run *entity.SyncRun, rows []entity.Row) {
	csvData, err := uc.Exporter.VolunteersCSV(rows)
	if err != nil {
		log.Printf("⚠️ Failed to render export for run %s: %v", run.ID, err)
		return
	}
	if err := uc.EmailService.SendExport(uc.ExportRecipient, run.Source, "contacts_export.csv", csvData); err != nil {
		log.Printf("⚠️ Failed to email export for run %s: %v", run.ID, err)
	}
}
