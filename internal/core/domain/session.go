package domain

// Session is the authenticated identity held on behalf of a visitor.
//
// Token and User travel together: a Session either has both or does not
// exist at all. The session store is the only writer; everything else reads.
type Session struct {
	// Token is the opaque bearer credential issued by the case API.
	Token string
	// User is the profile returned alongside the token at login.
	User *User
}

// Authenticated reports whether s carries a usable identity.
func (s *Session) Authenticated() bool {
	return s != nil && s.Token != "" && s.User != nil
}
