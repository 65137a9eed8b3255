package entity

import (
	"database/sql"
	"time"
)

// CourseList is the shared shape of a learner's cart and wishlist.
type CourseList struct {
	ID        string
	LearnerID string
	CourseIDs []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Contains reports whether courseID is already in the list.
func (l *CourseList) Contains(courseID string) bool {
	for _, id := range l.CourseIDs {
		if id == courseID {
			return true
		}
	}
	return false
}

// Remove drops courseID and reports whether it was present.
func (l *CourseList) Remove(courseID string) bool {
	for i, id := range l.CourseIDs {
		if id == courseID {
			l.CourseIDs = append(l.CourseIDs[:i], l.CourseIDs[i+1:]...)
			return true
		}
	}
	return false
}

type Subscription struct {
	ID         string
	LearnerID  string
	CourseID   string
	IsApproved bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Review struct {
	ID        string
	CourseID  string
	LearnerID string
	Rating    int
	Review    sql.NullString
	CreatedAt time.Time
	UpdatedAt time.Time
}
