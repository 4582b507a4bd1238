package v1

// Activity is the public view of one catalog entry, keyed by name in the listing.
type Activity struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

type RosterMessage struct {
	Message string `json:"message"`
}
