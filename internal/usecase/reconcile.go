package usecase

import (
	"time"

	"github.com/lesptitsgilets/contacts-sync/internal/entity"
)

// Reconciler folds repeated observations of the same person (several
// payments over the years) into a single row, latest valid membership date
// winning.
type Reconciler struct {
	rows  map[string]entity.Row
	order []string

	// Now is injectable so the 365-day window is testable.
	Now func() time.Time
}

func NewReconciler() *Reconciler {
	return &Reconciler{
		rows: make(map[string]entity.Row),
		Now:  time.Now,
	}
}

// Add inserts the row, or replaces the existing row for the same identity
// key when the newcomer carries a strictly later valid date. The first row
// for a key is never dropped, even with an unparsable date.
func (r *Reconciler) Add(row entity.Row) {
	key := row.Key()

	existing, ok := r.rows[key]
	if !ok {
		r.rows[key] = row
		r.order = append(r.order, key)
		return
	}

	date, valid := row.Date()
	if !valid {
		return
	}

	existingDate, existingValid := existing.Date()
	if !existingValid || date.After(existingDate) {
		r.rows[key] = row
	}
}

// Rows finalizes the fold. ADHESION_OK is true iff the date parsed and falls
// strictly inside the trailing 365-day window: a membership paid exactly one
// year ago is due again. Output keeps first-seen order.
func (r *Reconciler) Rows() []entity.Row {
	oneYearAgo := r.Now().AddDate(0, 0, -365)

	out := make([]entity.Row, 0, len(r.order))
	for _, key := range r.order {
		row := r.rows[key]
		date, valid := row.Date()
		row.Current = valid && date.After(oneYearAgo)
		out = append(out, row)
	}

	return out
}
