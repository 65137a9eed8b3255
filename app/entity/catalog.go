package entity

import (
	"database/sql"
	"time"
)

type Category struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Course struct {
	ID           string
	InstructorID string
	CategoryID   string
	Title        string
	Description  string
	Language     string
	IsApproved   bool
	Thumbnail    sql.NullString
	PromoVideo   sql.NullString
	SectionIDs   []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Section struct {
	ID         string
	CourseID   string
	Title      string
	LectureIDs []string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Lecture struct {
	ID          string
	SectionID   string
	Title       string
	Description sql.NullString
	VideoURL    sql.NullString
	ReadingURL  sql.NullString
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Quiz struct {
	ID         string
	SectionID  string
	Title      string
	TotalMarks int
	PassMarks  int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// QuizQuestion is a multiple choice question; Answer is expected to be one of Options.
type QuizQuestion struct {
	ID        string
	QuizID    string
	Question  string
	Options   []string
	Answer    string
	Marks     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Assignment struct {
	ID          string
	SectionID   string
	Title       string
	Description string
	TotalMarks  int
	PassMarks   int
	FileURL     sql.NullString
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
