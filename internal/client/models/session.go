package models

// Session is the client's record of an authenticated actor. A session is
// either fully absent (anonymous) or fully populated; partial sessions
// are never constructed.
type Session struct {
	Username     string
	AccessToken  string
	RefreshToken string
}

// TokenPair is the credential pair returned by a successful login.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}
