package model

// Session status strings shown in place of the address while no active
// session is available.
const (
	StatusGenerating = "generating"
	StatusError      = "error"
)

// Session is the locally held mailbox identity used to authenticate
// against the remote mail API.
type Session struct {
	// Address is the full mailbox address (local-part@domain).
	Address string `json:"address"`

	// AuthToken is the bearer token issued by POST /token.
	AuthToken string `json:"token"`

	// AccountID is the remote account identifier returned by POST /accounts.
	AccountID string `json:"id"`
}

// Valid reports whether all three fields are present. Partial sessions
// are treated as no session at all.
func (s Session) Valid() bool {
	return s.Address != "" && s.AuthToken != "" && s.AccountID != ""
}
