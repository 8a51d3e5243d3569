package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/lesptitsgilets/contacts-sync/internal/entity"
	"github.com/lesptitsgilets/contacts-sync/internal/infra/http/middleware"
	"github.com/lesptitsgilets/contacts-sync/internal/infra/integration/brevo"
)

// LookupDelay spaces out Brevo point lookups to stay under the API rate
// limit. Throughput knob, not a correctness mechanism.
const LookupDelay = 200 * time.Millisecond

type Matcher struct {
	Directory ContactDirectory
	Index     *ContactIndex
	Delay     time.Duration
}

func NewMatcher(directory ContactDirectory, index *ContactIndex) *Matcher {
	return &Matcher{
		Directory: directory,
		Index:     index,
		Delay:     LookupDelay,
	}
}

// Match resolves one member against Brevo: a point lookup by email when the
// address looks sane, plus a scan of the cached dump by name. The two id
// sets are unioned, so the same contact found by both paths stays UNIQUE.
func (m *Matcher) Match(ctx context.Context, member entity.Member) entity.MatchResult {
	var emailIDs []int64

	if IsValidEmail(member.Email) {
		contact, err := m.Directory.FindByEmail(ctx, member.Email)
		switch {
		case err == nil:
			log.Printf("Found contact by email: id=%d", contact.ID)
			emailIDs = append(emailIDs, contact.ID)
		case errors.Is(err, brevo.ErrContactNotFound):
			log.Printf("No contact found by email: %s", member.Email)
		default:
			// Fail open: a flaky lookup must not sink the whole run.
			log.Printf("⚠️ Error searching by email %s: %v", member.Email, err)
			middleware.RecordIntegrationError("brevo")
		}

		if m.Delay > 0 {
			time.Sleep(m.Delay)
		}
	} else {
		log.Printf("⚠️ Invalid email '%s' for %s %s, skipping email lookup",
			member.Email, member.FirstName, member.LastName)
	}

	nameIDs := m.Index.FindByName(member.FirstName, member.LastName)

	return entity.NewMatchResult(emailIDs, nameIDs)
}
