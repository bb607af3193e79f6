// Package memory provides the default storage.Storage implementation: an
// ordered slice of records held in process memory. Nothing survives a
// restart.
//
// Every operation is a linear scan. The store has no lock; wrap it with
// storage.Serialize before sharing it between goroutines.
package memory

import (
	"fmt"

	"github.com/aanand-mishra/student-records/internal/storage"
	"github.com/aanand-mishra/student-records/internal/types"
	"github.com/aanand-mishra/student-records/internal/validate"
)

// Memory is the in-memory record store. The zero value is an empty,
// ready-to-use store.
type Memory struct {
	students []types.Student
}

// New returns an empty store.
func New() *Memory {
	return &Memory{}
}

// CreateStudent validates student and appends it after the last record.
func (m *Memory) CreateStudent(student types.Student) error {
	if err := validate.Record(student); err != nil {
		return err
	}

	if m.indexOf(student.ID) >= 0 {
		return fmt.Errorf("CreateStudent: %s: %w", student.ID, storage.ErrDuplicateID)
	}

	m.students = append(m.students, validate.Normalize(student))
	return nil
}

// GetStudentByID returns the first (and only) record with the given id.
func (m *Memory) GetStudentByID(id string) (types.Student, error) {
	i := m.indexOf(id)
	if i < 0 {
		return types.Student{}, fmt.Errorf("GetStudentByID: %s: %w", id, storage.ErrNotFound)
	}
	return m.students[i], nil
}

// GetStudents returns a copy of the records selected by filter, in
// insertion order.
func (m *Memory) GetStudents(filter types.Filter) ([]types.Student, error) {
	f, err := storage.CheckFilter(filter)
	if err != nil {
		return nil, fmt.Errorf("GetStudents: %q: %w", filter.Field, err)
	}

	students := make([]types.Student, 0, len(m.students))
	for _, s := range m.students {
		if f.Matches(s) {
			students = append(students, s)
		}
	}
	return students, nil
}

// UpdateStudentByID replaces the mutable fields of the record with the
// given id. The record keeps its id and its position.
func (m *Memory) UpdateStudentByID(id string, student types.Student) (types.Student, error) {
	i := m.indexOf(id)
	if i < 0 {
		return types.Student{}, fmt.Errorf("UpdateStudentByID: %s: %w", id, storage.ErrNotFound)
	}

	student.ID = m.students[i].ID
	if err := validate.Record(student); err != nil {
		return types.Student{}, err
	}

	m.students[i] = validate.Normalize(student)
	return m.students[i], nil
}

// DeleteStudentByID removes the record with the given id.
func (m *Memory) DeleteStudentByID(id string) error {
	i := m.indexOf(id)
	if i < 0 {
		return fmt.Errorf("DeleteStudentByID: %s: %w", id, storage.ErrNotFound)
	}

	m.students = append(m.students[:i], m.students[i+1:]...)
	return nil
}

func (m *Memory) indexOf(id string) int {
	for i, s := range m.students {
		if s.ID == id {
			return i
		}
	}
	return -1
}
