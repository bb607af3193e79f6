// Package storage defines the Storage interface: the contract any student
// record store must satisfy to work with this application.
//
// Handlers and exporters depend only on this interface. The default
// backend (storage/memory) keeps records in process memory for the life
// of the process; storage/sqlite satisfies the same contract on disk.
//
// Stores carry no locks of their own. A caller that shares one store
// between goroutines wraps it with Serialize.
package storage

import (
	"errors"

	"github.com/aanand-mishra/student-records/internal/types"
)

// Errors returned by every backend. Check them with errors.Is.
var (
	// ErrDuplicateID is returned by CreateStudent when the id is taken.
	ErrDuplicateID = errors.New("student ID already exists")

	// ErrNotFound is returned when no record has the requested id.
	ErrNotFound = errors.New("student not found")

	// ErrUnknownField is returned by GetStudents for a filter naming a
	// column outside types.Columns.
	ErrUnknownField = errors.New("unknown filter field")
)

// Storage is the record store contract.
//
// Every write validates its input first (validate.Record) and returns a
// *validate.FieldError without touching the store when a field is bad.
// Store-level failures (ErrDuplicateID, ErrNotFound) also leave the store
// unchanged.
type Storage interface {
	// CreateStudent appends a new record. Fails with ErrDuplicateID if a
	// record with the same id exists.
	CreateStudent(student types.Student) error

	// GetStudentByID returns the record with the given id or ErrNotFound.
	GetStudentByID(id string) (types.Student, error)

	// GetStudents returns the records selected by filter in insertion
	// order. Returns an empty slice (not nil) if nothing matches.
	GetStudents(filter types.Filter) ([]types.Student, error)

	// UpdateStudentByID overwrites every field but the id of an existing
	// record and returns the stored result. The id in student is ignored.
	UpdateStudentByID(id string, student types.Student) (types.Student, error)

	// DeleteStudentByID removes a record, or returns ErrNotFound.
	DeleteStudentByID(id string) error
}

// CheckFilter returns ErrUnknownField for a non-empty filter on a column
// outside the schema, and the filter with its field name canonicalised
// otherwise.
func CheckFilter(filter types.Filter) (types.Filter, error) {
	if filter.IsZero() {
		return types.Filter{}, nil
	}
	column, ok := types.CanonicalColumn(filter.Field)
	if !ok {
		return types.Filter{}, ErrUnknownField
	}
	filter.Field = column
	return filter, nil
}
