package models

import "time"

// AcademicYear is a read-only reference entity used to target conversions.
type AcademicYear struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	IsCurrent bool      `db:"is_current" json:"is_current"`
	StartDate time.Time `db:"start_date" json:"start_date"`
	EndDate   time.Time `db:"end_date" json:"end_date"`
}

// Class represents an academic class or section students are admitted into.
type Class struct {
	ID         int64  `db:"id" json:"id"`
	Name       string `db:"name" json:"name"`
	GradeLevel int    `db:"grade_level" json:"grade_level"`
	Capacity   int    `db:"capacity" json:"capacity"`
}
