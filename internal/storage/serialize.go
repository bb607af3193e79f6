package storage

import (
	"sync"

	"github.com/aanand-mishra/student-records/internal/types"
)

// Serialize wraps s so that at most one call runs at a time. The HTTP
// server uses it because net/http runs handlers concurrently while the
// stores themselves have no mutual exclusion.
func Serialize(s Storage) Storage {
	return &serialized{next: s}
}

type serialized struct {
	mu   sync.Mutex
	next Storage
}

func (s *serialized) CreateStudent(student types.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next.CreateStudent(student)
}

func (s *serialized) GetStudentByID(id string) (types.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next.GetStudentByID(id)
}

func (s *serialized) GetStudents(filter types.Filter) ([]types.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next.GetStudents(filter)
}

func (s *serialized) UpdateStudentByID(id string, student types.Student) (types.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next.UpdateStudentByID(id, student)
}

func (s *serialized) DeleteStudentByID(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next.DeleteStudentByID(id)
}
