// Package api is the HTTP gateway to the backoffice customer service.
// Three request groups: auth, duplicates, resolved. Each call is a single
// attempt; failures map to the named errors in errors.go and are handled
// by the page that triggered them.
package api

// Customer is the wire shape of a customer record. Children is only
// populated by the resolved listing, where merged child records are
// embedded for display.
type Customer struct {
	CustCode       string     `json:"custCode"`
	Name           string     `json:"name"`
	Add01          string     `json:"add01"`
	Add02          string     `json:"add02"`
	PostCode       string     `json:"postCode"`
	Country        string     `json:"country"`
	GroupKey       string     `json:"groupKey"`
	IsParent       bool       `json:"isParent"`
	ParentCustCode string     `json:"parentCustCode,omitempty"`
	Children       []Customer `json:"children,omitempty"`
}

// DuplicatesPage is one page of unresolved duplicate records, pre-clustered
// by the server via GroupKey. The optional banner fields carry an
// operator-facing status message from the server.
type DuplicatesPage struct {
	Records       []Customer `json:"data"`
	TotalPages    int        `json:"totalPages"`
	BannerMessage string     `json:"bannerMessage,omitempty"`
	BannerType    string     `json:"bannerType,omitempty"`
}

// ResolvedPage is one page of merged parent records.
type ResolvedPage struct {
	Records    []Customer `json:"data"`
	TotalPages int        `json:"totalPages"`
}

// MergeResult is the server's acknowledgment of a group merge.
type MergeResult struct {
	BannerMessage string `json:"bannerMessage,omitempty"`
	BannerType    string `json:"bannerType,omitempty"`
}

// LoginResult carries the credential issued by POST /Auth/login. The
// server may answer 2xx without a token; deciding what that means is left
// to the caller, matching the login screen's contract.
type LoginResult struct {
	Token string `json:"token"`
}

// mergeRequest is the body of POST /customer/merge.
type mergeRequest struct {
	GroupKey       string   `json:"groupKey"`
	ParentCustCode string   `json:"parentCustCode"`
	ParentCustomer Customer `json:"parentCustomer"`
}

// loginRequest is the body of POST /Auth/login.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
