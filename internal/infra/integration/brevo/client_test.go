package brevo

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindByEmailSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/contacts/jo@x.com", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("api-key"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id": 5, "email": "jo@x.com", "attributes": {"FIRSTNAME": "Jo", "LASTNAME": "Dupont", "SMS_OK": true}}`)
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL)

	contact, err := client.FindByEmail(context.Background(), "jo@x.com")
	assert.NoError(t, err)
	assert.Equal(t, int64(5), contact.ID)

	first, last := contact.Name()
	assert.Equal(t, "Jo", first)
	assert.Equal(t, "Dupont", last)
	// Non-string attributes must not break decoding.
	assert.NotContains(t, contact.Attributes, "SMS_OK")
}

func TestFindByEmailNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"code":"document_not_found"}`, http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL)

	_, err := client.FindByEmail(context.Background(), "nobody@x.com")
	assert.ErrorIs(t, err, ErrContactNotFound)
}

func TestFindByEmailTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL)

	_, err := client.FindByEmail(context.Background(), "jo@x.com")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrContactNotFound)
}

func TestListContactsPaginates(t *testing.T) {
	var offsets []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		offset := r.URL.Query().Get("offset")
		offsets = append(offsets, offset)
		w.Header().Set("Content-Type", "application/json")

		if offset == "0" {
			// A full page: the client must come back for more.
			fmt.Fprint(w, `{"contacts": [`)
			for i := 0; i < 50; i++ {
				if i > 0 {
					fmt.Fprint(w, ",")
				}
				fmt.Fprintf(w, `{"id": %d, "email": "c%d@x.com"}`, i+1, i+1)
			}
			fmt.Fprint(w, `], "count": 52}`)
			return
		}

		fmt.Fprint(w, `{"contacts": [{"id": 51, "email": "c51@x.com"}, {"id": 52, "email": "c52@x.com"}], "count": 52}`)
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL)

	contacts, err := client.ListContacts(context.Background())
	assert.NoError(t, err)
	assert.Len(t, contacts, 52)
	assert.Equal(t, []string{"0", "50"}, offsets)
	assert.Equal(t, int64(52), contacts[51].ID)
}
