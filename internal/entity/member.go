package entity

// Member is one incoming person record from an external source: a HelloAsso
// membership payment or a volunteer row from the Google Sheet.
type Member struct {
	LastName  string `json:"lastname"`
	FirstName string `json:"firstname"`
	Email     string `json:"email"`

	// MembershipDate is already normalized to dd/MM/yyyy by the source
	// adapter. Unparsable source dates pass through as raw text. Empty for
	// volunteers.
	MembershipDate string `json:"date_adhesion"`

	// Phone is the SMS column of the volunteer sheet. Empty for members.
	Phone string `json:"phone"`
}
