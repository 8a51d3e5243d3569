package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lesptitsgilets/contacts-sync/internal/entity"
)

func snapshot() []entity.Contact {
	return []entity.Contact{
		{ID: 1, Email: "alice@example.com", Attributes: map[string]string{"FIRSTNAME": "alice", "LASTNAME": "dupont"}},
		{ID: 2, Email: "bob@example.com", FirstName: "Bob", LastName: "Martin"},
		{ID: 3, Email: "no-name@example.com"},
		{ID: 4, Email: "alice2@example.com", Attributes: map[string]string{"FIRSTNAME": "ALICE", "LASTNAME": "Dupont"}},
	}
}

func TestFindByNameIsCaseAndWhitespaceInsensitive(t *testing.T) {
	idx := NewContactIndex(snapshot())

	ids := idx.FindByName("  ALICE ", "Dupont")

	// Both structurally distinct entries with the same normalized name must
	// match, no early exit.
	assert.Equal(t, []int64{1, 4}, ids)
}

func TestFindByNameMatchesFlatFields(t *testing.T) {
	idx := NewContactIndex(snapshot())

	ids := idx.FindByName("bob", "martin")
	assert.Equal(t, []int64{2}, ids)
}

func TestFindByNameRequiresBothFields(t *testing.T) {
	idx := NewContactIndex(snapshot())

	// AND semantics: a matching first name with a different last name is no
	// match.
	assert.Empty(t, idx.FindByName("alice", "martin"))
	assert.Empty(t, idx.FindByName("bob", "dupont"))
}

func TestFindByNameSkipsEntriesWithoutName(t *testing.T) {
	idx := NewContactIndex(snapshot())

	assert.Empty(t, idx.FindByName("", ""))
	assert.Equal(t, 4, idx.Size())
}
