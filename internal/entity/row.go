package entity

import (
	"strings"
	"time"
)

// DateLayout is the date format of the export columns. Source adapters
// normalize their ISO-8601 dates to this layout before the core sees them.
const DateLayout = "02/01/2006"

// Row is one line of the reconciled export.
type Row struct {
	ContactID string `json:"contact_id"`
	Email     string `json:"email"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`

	// MembershipDate keeps the raw text even when it does not parse, so the
	// operator can spot and fix the source value.
	MembershipDate string `json:"date_adhesion"`
	Current        bool   `json:"adhesion_ok"`

	Phone string `json:"phone"`
}

// Key is the case-insensitive identity merging repeated observations of the
// same person across payments.
func (r Row) Key() string {
	return strings.ToLower(strings.TrimSpace(r.Email)) + "|" +
		strings.ToLower(strings.TrimSpace(r.FirstName)) + "|" +
		strings.ToLower(strings.TrimSpace(r.LastName))
}

// Date parses the membership date. Unparsable dates report ok=false and
// never win a merge nor mark the row current.
func (r Row) Date() (time.Time, bool) {
	if r.MembershipDate == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, r.MembershipDate)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
