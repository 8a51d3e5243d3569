package entity

import "strconv"

type MatchStatus string

const (
	MatchNone     MatchStatus = "NONE"
	MatchUnique   MatchStatus = "UNIQUE"
	MatchMultiple MatchStatus = "MULTIPLE"
)

// MultipleSentinel goes into the CONTACT ID column when more than one Brevo
// contact matched the same person.
const MultipleSentinel = "MULTIPLE"

// MatchResult holds the deduplicated union of the contact ids found by the
// email lookup and by the name scan for one incoming record.
type MatchResult struct {
	IDs []int64
}

// NewMatchResult unions the two lookup paths. Set semantics: the same
// contact found by both email and name counts once.
func NewMatchResult(emailIDs, nameIDs []int64) MatchResult {
	seen := make(map[int64]bool)
	var ids []int64

	for _, id := range append(append([]int64{}, emailIDs...), nameIDs...) {
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}

	return MatchResult{IDs: ids}
}

// Status is a pure function of the id-set cardinality.
func (r MatchResult) Status() MatchStatus {
	switch len(r.IDs) {
	case 0:
		return MatchNone
	case 1:
		return MatchUnique
	default:
		return MatchMultiple
	}
}

// ContactIDField renders the CONTACT ID export column: empty for no match,
// the id itself for a unique match, the MULTIPLE sentinel otherwise.
func (r MatchResult) ContactIDField() string {
	switch r.Status() {
	case MatchUnique:
		return strconv.FormatInt(r.IDs[0], 10)
	case MatchMultiple:
		return MultipleSentinel
	default:
		return ""
	}
}
