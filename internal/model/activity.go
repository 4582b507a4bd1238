package model

import (
	"github.com/uptrace/bun"
)

type Activity struct {
	bun.BaseModel `bun:"table:activities,alias:a"`

	ActivityID      int64  `bun:"id,pk,autoincrement"`
	Name            string `bun:"name,notnull,unique"`
	Description     string `bun:"description"`
	Schedule        string `bun:"schedule"`
	MaxParticipants int    `bun:"max_participants,notnull,default:0"`

	Enrollments []*Enrollment `bun:"rel:has-many,join:id=activity_id"`
}

// Participants returns the roster emails in the order the enrollments were loaded.
func (a *Activity) Participants() []string {
	emails := make([]string, 0, len(a.Enrollments))
	for _, e := range a.Enrollments {
		emails = append(emails, e.Email)
	}
	return emails
}
