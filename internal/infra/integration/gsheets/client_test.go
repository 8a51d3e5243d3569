package gsheets

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFetchMembersSkipsHeaderRows(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v4/spreadsheets/sheet-1/values/Benevoles", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"range": "Benevoles!A1:D5",
			"values": [
				["LISTE DES BENEVOLES"],
				["NOM", "PRENOM", "EMAIL", "SMS"],
				["Dupont", "Jo", "jo@x.com", "0601020304"],
				["Petit", "Ana", "ana@x.com"]
			]
		}`)
	}))
	defer server.Close()

	client := NewClient("test-key", "sheet-1", "Benevoles", 2).WithBaseURL(server.URL)

	members, err := client.FetchMembers(context.Background())
	assert.NoError(t, err)
	assert.Len(t, members, 2)

	assert.Equal(t, "Dupont", members[0].LastName)
	assert.Equal(t, "Jo", members[0].FirstName)
	assert.Equal(t, "jo@x.com", members[0].Email)
	assert.Equal(t, "0601020304", members[0].Phone)

	// Short rows yield empty cells, not a panic.
	assert.Equal(t, "", members[1].Phone)
}

func TestFetchMembersSheetTooShort(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"range": "Benevoles!A1:D2", "values": [["LISTE"], ["NOM", "PRENOM"]]}`)
	}))
	defer server.Close()

	client := NewClient("test-key", "sheet-1", "Benevoles", 7).WithBaseURL(server.URL)

	members, err := client.FetchMembers(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, members)
}

func TestFetchMembersAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"code": 403, "status": "PERMISSION_DENIED"}}`, http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient("bad-key", "sheet-1", "Benevoles", 7).WithBaseURL(server.URL)

	_, err := client.FetchMembers(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}
