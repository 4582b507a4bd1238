package model

type RosterErrorKind int

const (
	// RosterNotFound means the referenced activity does not exist.
	RosterNotFound RosterErrorKind = iota + 1
	// RosterConflict means the change contradicts the current roster membership.
	RosterConflict
)

func (k RosterErrorKind) String() string {
	switch k {
	case RosterNotFound:
		return "not_found"
	case RosterConflict:
		return "conflict"
	default:
		return "unknown"
	}
}

// RosterError is the failure outcome of a roster operation. Message is safe to show to clients.
type RosterError struct {
	Kind    RosterErrorKind
	Message string
}

func (e *RosterError) Error() string {
	return e.Message
}

var (
	ErrActivityNotFound = &RosterError{Kind: RosterNotFound, Message: "Activity not found"}
	ErrAlreadySignedUp  = &RosterError{Kind: RosterConflict, Message: "Student is already signed up"}
	ErrNotSignedUp      = &RosterError{Kind: RosterConflict, Message: "Student is not signed up for this activity"}
)
