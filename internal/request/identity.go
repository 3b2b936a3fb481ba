package request

// Identity is the authenticated caller of a request. The zero value is
// an anonymous caller.
type Identity struct {
	UserID uint64
	Email  string
}

// Authenticated reports whether the identity belongs to a user.
func (i Identity) Authenticated() bool { return i.UserID != 0 }

// Authorize reports whether id may create a terrain: any authenticated
// user may.
func Authorize(id Identity) bool { return id.Authenticated() }
