package brevo

import (
	"github.com/lesptitsgilets/contacts-sync/internal/entity"
)

// contactResponse covers both shapes Brevo serves: marketing contacts carry
// the name under attributes, transactional ones in flat fields.
type contactResponse struct {
	ID         int64                  `json:"id"`
	Email      string                 `json:"email"`
	Attributes map[string]interface{} `json:"attributes"`
	FirstName  string                 `json:"firstName"`
	LastName   string                 `json:"lastName"`
}

type contactsPageResponse struct {
	Contacts []contactResponse `json:"contacts"`
	Count    int64             `json:"count"`
}

func (r contactResponse) toEntity() entity.Contact {
	// Attribute values are not always strings (booleans, numbers); only
	// string attributes are usable as names.
	attrs := make(map[string]string, len(r.Attributes))
	for k, v := range r.Attributes {
		if s, ok := v.(string); ok {
			attrs[k] = s
		}
	}

	return entity.Contact{
		ID:         r.ID,
		Email:      r.Email,
		Attributes: attrs,
		FirstName:  r.FirstName,
		LastName:   r.LastName,
	}
}
