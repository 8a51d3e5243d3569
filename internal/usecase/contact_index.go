package usecase

import (
	"log"
	"strings"

	"github.com/lesptitsgilets/contacts-sync/internal/entity"
)

// ContactIndex holds the Brevo dump in memory for the duration of one run.
// Name lookups scan it instead of hitting the API once per record.
type ContactIndex struct {
	contacts []entity.Contact
}

func NewContactIndex(contacts []entity.Contact) *ContactIndex {
	return &ContactIndex{contacts: contacts}
}

// FindByName returns the id of every contact whose normalized name equals
// both query fields. No early exit: two distinct contacts sharing a name
// must both match, that is how MULTIPLE arises from the name path alone.
func (idx *ContactIndex) FindByName(firstname, lastname string) []int64 {
	wantFirst := normalizeName(firstname)
	wantLast := normalizeName(lastname)

	var ids []int64
	for _, c := range idx.contacts {
		if !c.HasName() {
			log.Printf("⚠️ Contact id=%d email=%s has no name info, skipping", c.ID, c.Email)
			continue
		}

		first, last := c.Name()
		if normalizeName(first) == wantFirst && normalizeName(last) == wantLast {
			ids = append(ids, c.ID)
		}
	}

	return ids
}

func (idx *ContactIndex) Size() int {
	return len(idx.contacts)
}

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
