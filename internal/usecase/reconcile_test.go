package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lesptitsgilets/contacts-sync/internal/entity"
)

var testNow = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func newTestReconciler() *Reconciler {
	r := NewReconciler()
	r.Now = func() time.Time { return testNow }
	return r
}

func row(contactID, email, date string) entity.Row {
	return entity.Row{
		ContactID:      contactID,
		Email:          email,
		FirstName:      "Jo",
		LastName:       "Dupont",
		MembershipDate: date,
	}
}

func TestReconcileLatestDateWins(t *testing.T) {
	for _, order := range [][]string{
		{"01/01/2023", "01/06/2024"},
		{"01/06/2024", "01/01/2023"},
	} {
		r := newTestReconciler()
		r.Add(row("5", "jo@x.com", order[0]))
		r.Add(row("5", "jo@x.com", order[1]))

		rows := r.Rows()
		assert.Len(t, rows, 1)
		assert.Equal(t, "01/06/2024", rows[0].MembershipDate, "order %v", order)
	}
}

func TestReconcileEqualOrEarlierDateDoesNotReplace(t *testing.T) {
	r := newTestReconciler()
	r.Add(row("5", "jo@x.com", "10/01/2024"))
	r.Add(row("9", "jo@x.com", "10/01/2024"))
	r.Add(row("9", "jo@x.com", "01/01/2020"))

	rows := r.Rows()
	assert.Len(t, rows, 1)
	// Idempotent under re-runs: the original row survives untouched.
	assert.Equal(t, "5", rows[0].ContactID)
	assert.Equal(t, "10/01/2024", rows[0].MembershipDate)
}

func TestReconcileUnparsableSeedIsSuperseded(t *testing.T) {
	r := newTestReconciler()
	r.Add(row("", "e@x.com", "n/a"))
	r.Add(row("5", "e@x.com", "10/01/2024"))

	rows := r.Rows()
	assert.Len(t, rows, 1)
	assert.Equal(t, "10/01/2024", rows[0].MembershipDate)
	assert.Equal(t, "5", rows[0].ContactID)
}

func TestReconcileUnparsableNeverWins(t *testing.T) {
	r := newTestReconciler()
	r.Add(row("5", "e@x.com", "10/01/2024"))
	r.Add(row("9", "e@x.com", "n/a"))

	rows := r.Rows()
	assert.Len(t, rows, 1)
	assert.Equal(t, "10/01/2024", rows[0].MembershipDate)
	assert.Equal(t, "5", rows[0].ContactID)
}

func TestReconcileKeyIsCaseInsensitive(t *testing.T) {
	r := newTestReconciler()
	r.Add(entity.Row{Email: "Jo@X.com", FirstName: "Jo", LastName: "Dupont", MembershipDate: "01/01/2023"})
	r.Add(entity.Row{Email: "jo@x.com", FirstName: "JO", LastName: "DUPONT", MembershipDate: "01/06/2024"})

	assert.Len(t, r.Rows(), 1)
}

func TestReconcileCurrentWindowBoundary(t *testing.T) {
	boundary := testNow.AddDate(0, 0, -365)

	r := newTestReconciler()
	r.Add(row("1", "a@x.com", boundary.Format(entity.DateLayout)))                   // exactly 365 days ago
	r.Add(row("2", "b@x.com", boundary.AddDate(0, 0, 1).Format(entity.DateLayout))) // 364 days ago
	r.Add(row("3", "c@x.com", "n/a"))
	r.Add(row("4", "d@x.com", ""))

	rows := r.Rows()
	assert.Len(t, rows, 4)
	assert.False(t, rows[0].Current, "a membership paid exactly one year ago is due again")
	assert.True(t, rows[1].Current)
	assert.False(t, rows[2].Current, "unparsable dates are never current")
	assert.False(t, rows[3].Current)
}

func TestReconcilePreservesFirstSeenOrder(t *testing.T) {
	r := newTestReconciler()
	r.Add(row("1", "c@x.com", "01/01/2024"))
	r.Add(row("2", "a@x.com", "01/01/2024"))
	r.Add(row("3", "b@x.com", "01/01/2024"))
	r.Add(row("4", "a@x.com", "01/02/2024")) // merges into the second row

	rows := r.Rows()
	assert.Len(t, rows, 3)
	assert.Equal(t, "c@x.com", rows[0].Email)
	assert.Equal(t, "a@x.com", rows[1].Email)
	assert.Equal(t, "b@x.com", rows[2].Email)
	assert.Equal(t, "01/02/2024", rows[1].MembershipDate)
}
