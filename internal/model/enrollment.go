package model

import (
	"github.com/uptrace/bun"
)

// Enrollment is one student's place on an activity roster.
type Enrollment struct {
	bun.BaseModel `bun:"table:participants,alias:p"`

	EnrollmentID int64  `bun:"id,pk,autoincrement"`
	Email        string `bun:"email,notnull"`
	ActivityID   int64  `bun:"activity_id,notnull"`

	Activity *Activity `bun:"rel:belongs-to,join:activity_id=id"`
}
