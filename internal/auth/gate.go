package auth

// Session is the slice of the session manager the gate needs.
type Session interface {
	IsAuthenticated() bool
	CurrentUser() *User
}

// Decision is the outcome of a gated navigation attempt. When not allowed,
// RedirectTo names the area to send the caller to; ReturnTo preserves the
// originally requested destination for post-login continuation.
type Decision struct {
	Allowed    bool
	RedirectTo string
	ReturnTo   string
}

// Authorize gates access to a destination requiring one of the given
// roles. It is a pure function of the session: unauthenticated callers go
// to login, authenticated callers with the wrong role go to their own
// default area. The backend re-enforces every rule; this only steers
// navigation.
func Authorize(required []Role, session Session, requested string) Decision {
	if !session.IsAuthenticated() {
		return Decision{RedirectTo: PathLogin, ReturnTo: requested}
	}

	user := session.CurrentUser()
	if user != nil {
		for _, role := range required {
			if user.Role == role {
				return Decision{Allowed: true}
			}
		}
	}
	return Decision{RedirectTo: RedirectPath(user)}
}
