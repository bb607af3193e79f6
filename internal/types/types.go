// Package types holds the shared data structures used across the
// application. Keeping them in one place prevents import cycles:
// handlers, storage, validation and export all import types without
// depending on each other.
package types

import "strings"

// Student is one stored student record.
//
// Every field is kept as the raw string the user typed. Numeric-looking
// values (ID "007", Age "09") must round-trip unchanged, so nothing is
// parsed into an int.
//
// The validate:"..." tags name custom rules registered by the validate
// package; Name and Course are free-form and carry no rule.
type Student struct {
	ID     string `json:"id"     validate:"student_id"`
	Name   string `json:"name"`
	Age    string `json:"age"    validate:"student_age"`
	Gender string `json:"gender" validate:"student_gender"`
	Course string `json:"course"`
	Grade  string `json:"grade"  validate:"student_grade"`
}

// Column names, in the fixed order used by listings and exports.
const (
	ColumnID     = "ID"
	ColumnName   = "Name"
	ColumnAge    = "Age"
	ColumnGender = "Gender"
	ColumnCourse = "Course"
	ColumnGrade  = "Grade"
)

// Columns is the export schema: header row order for CSV and XLSX.
var Columns = []string{ColumnID, ColumnName, ColumnAge, ColumnGender, ColumnCourse, ColumnGrade}

// Row returns the record's values in Columns order.
func (s Student) Row() []string {
	return []string{s.ID, s.Name, s.Age, s.Gender, s.Course, s.Grade}
}

// CanonicalColumn maps a case-insensitive field name ("course", "COURSE")
// to its entry in Columns. ok is false for names outside the schema.
func CanonicalColumn(field string) (column string, ok bool) {
	for _, c := range Columns {
		if strings.EqualFold(c, strings.TrimSpace(field)) {
			return c, true
		}
	}
	return "", false
}

// FieldValue returns the value stored under the named column.
func (s Student) FieldValue(field string) (string, bool) {
	column, ok := CanonicalColumn(field)
	if !ok {
		return "", false
	}
	return s.Row()[columnIndex(column)], true
}

func columnIndex(column string) int {
	for i, c := range Columns {
		if c == column {
			return i
		}
	}
	return -1
}

// Filter restricts a listing to records whose Field equals Value,
// ignoring case. Value is compared as given, surrounding spaces included.
// The zero Filter, or any Filter with an empty Value, selects every
// record.
type Filter struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// IsZero reports whether the filter selects every record.
func (f Filter) IsZero() bool {
	return f.Value == ""
}

// Matches reports whether s passes the filter. Callers are expected to
// have checked the field name with CanonicalColumn first; an unknown
// field never matches.
func (f Filter) Matches(s Student) bool {
	if f.IsZero() {
		return true
	}
	v, ok := s.FieldValue(f.Field)
	if !ok {
		return false
	}
	return strings.EqualFold(v, f.Value)
}
