package usecase

import (
	"context"

	"github.com/lesptitsgilets/contacts-sync/internal/entity"
	"github.com/lesptitsgilets/contacts-sync/internal/infra/queue"
)

// ContactDirectory is the Brevo surface the core consumes.
type ContactDirectory interface {
	FindByEmail(ctx context.Context, email string) (*entity.Contact, error)
	ListContacts(ctx context.Context) ([]entity.Contact, error)
}

// MemberSource yields the incoming records of one run (HelloAsso payments or
// volunteer sheet rows).
type MemberSource interface {
	FetchMembers(ctx context.Context) ([]entity.Member, error)
}

type RunRepositoryInterface interface {
	Create(ctx context.Context, run *entity.SyncRun) error
	Update(ctx context.Context, run *entity.SyncRun) error
	FindByID(ctx context.Context, id string) (*entity.SyncRun, error)
}

type RowRepositoryInterface interface {
	ReplaceForRun(ctx context.Context, runID string, rows []entity.Row) error
	ListByRun(ctx context.Context, runID string) ([]entity.Row, error)
}

type QueueProducerInterface interface {
	PublishSyncJob(ctx context.Context, payload queue.SyncJobPayload) error
}

type EmailService interface {
	SendExport(to, source, filename string, csvData []byte) error
}

type Exporter interface {
	MembersCSV(rows []entity.Row) ([]byte, error)
	VolunteersCSV(rows []entity.Row) ([]byte, error)
}
