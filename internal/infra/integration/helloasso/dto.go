package helloasso

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type itemsResponse struct {
	Data       []formItem `json:"data"`
	Pagination pagination `json:"pagination"`
}

type pagination struct {
	PageSize          int    `json:"pageSize"`
	TotalCount        int    `json:"totalCount"`
	ContinuationToken string `json:"continuationToken"`
}

type formItem struct {
	Payer payer `json:"payer"`
	Order order `json:"order"`
}

type payer struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

type order struct {
	Date string `json:"date"`
}
