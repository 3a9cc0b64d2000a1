package models

// Identity is the display name kept in local storage while logged in.
type Identity struct {
	FirstName string
	LastName  string
}

// FullName joins the first and last name, skipping empty parts.
func (i Identity) FullName() string {
	switch {
	case i.FirstName == "":
		return i.LastName
	case i.LastName == "":
		return i.FirstName
	default:
		return i.FirstName + " " + i.LastName
	}
}

// LoginResult is what a successful login hands back to the caller after the
// session has been persisted.
type LoginResult struct {
	Token       string
	Identity    Identity
	ProgressMap ProgressMap
	SolvedIndex SolvedIndex
}
