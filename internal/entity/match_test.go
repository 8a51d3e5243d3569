package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchResultUnionDeduplicates(t *testing.T) {
	// Same contact found by email and by name stays UNIQUE.
	result := NewMatchResult([]int64{5}, []int64{5})

	assert.Equal(t, []int64{5}, result.IDs)
	assert.Equal(t, MatchUnique, result.Status())
	assert.Equal(t, "5", result.ContactIDField())
}

func TestMatchResultStatusFromCardinality(t *testing.T) {
	assert.Equal(t, MatchNone, NewMatchResult(nil, nil).Status())
	assert.Equal(t, MatchUnique, NewMatchResult([]int64{5}, nil).Status())
	assert.Equal(t, MatchMultiple, NewMatchResult([]int64{5}, []int64{7}).Status())
}

func TestMatchResultContactIDField(t *testing.T) {
	assert.Equal(t, "", NewMatchResult(nil, nil).ContactIDField())
	assert.Equal(t, "42", NewMatchResult(nil, []int64{42}).ContactIDField())
	assert.Equal(t, "MULTIPLE", NewMatchResult([]int64{7}, []int64{9}).ContactIDField())
}

func TestRowKeyIsCaseInsensitive(t *testing.T) {
	a := Row{Email: "Jo@Example.com", FirstName: "Jo", LastName: "Dupont"}
	b := Row{Email: "jo@example.com", FirstName: "JO", LastName: "dupont"}

	assert.Equal(t, a.Key(), b.Key())
}

func TestRowDateParsing(t *testing.T) {
	row := Row{MembershipDate: "10/01/2024"}
	date, ok := row.Date()
	assert.True(t, ok)
	assert.Equal(t, "2024-01-10", date.Format("2006-01-02"))

	_, ok = Row{MembershipDate: "n/a"}.Date()
	assert.False(t, ok)

	_, ok = Row{}.Date()
	assert.False(t, ok)
}

func TestSyncRunCountRow(t *testing.T) {
	run := NewSyncRun(SourceHelloAsso)

	run.CountRow(Row{ContactID: "5"})
	run.CountRow(Row{ContactID: MultipleSentinel})
	run.CountRow(Row{ContactID: ""})
	run.CountRow(Row{ContactID: "9"})

	assert.Equal(t, 4, run.TotalRows)
	assert.Equal(t, 2, run.Matched)
	assert.Equal(t, 1, run.Multiple)
	assert.Equal(t, 1, run.Unmatched)
}
