package mailtm

// collection is the hydra envelope used by every list endpoint.
type collection[T any] struct {
	Members    []T `json:"hydra:member"`
	TotalItems int `json:"hydra:totalItems"`
}

// Domain is a mail domain accepting new accounts.
type Domain struct {
	ID       string `json:"id"`
	Domain   string `json:"domain"`
	IsActive bool   `json:"isActive"`
}

// Credentials is the body of POST /accounts and POST /token.
type Credentials struct {
	Address  string `json:"address"`
	Password string `json:"password"`
}

// Account is returned by POST /accounts and GET /me.
type Account struct {
	ID        string `json:"id"`
	Address   string `json:"address"`
	Quota     int64  `json:"quota"`
	Used      int64  `json:"used"`
	CreatedAt string `json:"createdAt"`
}

// Token is returned by POST /token.
type Token struct {
	ID    string `json:"id"`
	Token string `json:"token"`
}

// Addressee is a sender or recipient.
type Addressee struct {
	Address string `json:"address"`
	Name    string `json:"name"`
}

// Message is a single entry of GET /messages.
type Message struct {
	ID        string    `json:"id"`
	From      Addressee `json:"from"`
	Subject   string    `json:"subject"`
	Intro     string    `json:"intro"`
	Seen      bool      `json:"seen"`
	CreatedAt string    `json:"createdAt"`
}

// MessageDetail is returned by GET /messages/{id}. HTML is a list because
// the API splits long HTML bodies into chunks.
type MessageDetail struct {
	ID        string      `json:"id"`
	From      Addressee   `json:"from"`
	To        []Addressee `json:"to"`
	Subject   string      `json:"subject"`
	Intro     string      `json:"intro"`
	Text      string      `json:"text"`
	HTML      []string    `json:"html"`
	Seen      bool        `json:"seen"`
	CreatedAt string      `json:"createdAt"`
}

// Source is returned by GET /sources/{id}; Data holds the raw RFC 5322
// message.
type Source struct {
	ID          string `json:"id"`
	DownloadURL string `json:"downloadUrl"`
	Data        string `json:"data"`
}

// errorResponse is the problem+json body mail.tm returns on failures.
type errorResponse struct {
	Title       string `json:"hydra:title"`
	Description string `json:"hydra:description"`
	Detail      string `json:"detail"`
	Message     string `json:"message"`
}
