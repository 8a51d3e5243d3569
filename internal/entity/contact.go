package entity

import "strings"

// Contact is one entry of the Brevo contact dump. Depending on how the
// contact was created, the name lives either under the marketing attributes
// (FIRSTNAME/LASTNAME) or in flat firstName/lastName fields.
type Contact struct {
	ID         int64             `json:"id"`
	Email      string            `json:"email"`
	Attributes map[string]string `json:"attributes"`
	FirstName  string            `json:"firstName"`
	LastName   string            `json:"lastName"`
}

// Name resolves the contact's first and last name through the fallback
// chain: attributes first, then the flat fields. First non-empty value wins.
func (c Contact) Name() (string, string) {
	first := strings.TrimSpace(c.Attributes["FIRSTNAME"])
	last := strings.TrimSpace(c.Attributes["LASTNAME"])

	if first == "" {
		first = strings.TrimSpace(c.FirstName)
	}
	if last == "" {
		last = strings.TrimSpace(c.LastName)
	}

	return first, last
}

// HasName reports whether both name parts could be extracted.
func (c Contact) HasName() bool {
	first, last := c.Name()
	return first != "" && last != ""
}
