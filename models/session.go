package models

// Session is the result of a successful authentication: the resolved user
// account together with the freshly issued token pair.
type Session struct {
	User         User
	AccessToken  Token
	RefreshToken Token
}
