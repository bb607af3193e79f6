// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// It is the opt-in durable backend (storage.driver: sqlite). Records are
// returned in insertion order, which SQLite tracks for us as the rowid.
//
// Importing the driver registers it with database/sql and gives access to
// its error codes.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/aanand-mishra/student-records/internal/config"
	"github.com/aanand-mishra/student-records/internal/storage"
	"github.com/aanand-mishra/student-records/internal/types"
	"github.com/aanand-mishra/student-records/internal/validate"
	"github.com/mattn/go-sqlite3"
)

// SQLite is the concrete implementation of storage.Storage.
// It holds a *sql.DB which is a connection pool managed by database/sql.
type SQLite struct {
	Db *sql.DB
}

// New opens the SQLite database at cfg.Storage.Path, creates the students
// table if it does not already exist, and returns a ready-to-use *SQLite.
func New(cfg *config.Config) (*SQLite, error) {
	return Open(cfg.Storage.Path)
}

// Open is New for callers that only have a path.
func Open(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS students (
			id     TEXT PRIMARY KEY,
			name   TEXT NOT NULL,
			age    TEXT NOT NULL,
			gender TEXT NOT NULL,
			course TEXT NOT NULL,
			grade  TEXT NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: create table: %w", err)
	}

	return &SQLite{Db: db}, nil
}

// Close releases the connection pool.
func (s *SQLite) Close() error {
	return s.Db.Close()
}

// CreateStudent inserts a new row. A primary key violation is reported as
// storage.ErrDuplicateID.
func (s *SQLite) CreateStudent(student types.Student) error {
	if err := validate.Record(student); err != nil {
		return err
	}
	student = validate.Normalize(student)

	stmt, err := s.Db.Prepare(
		"INSERT INTO students (id, name, age, gender, course, grade) VALUES (?, ?, ?, ?, ?, ?)",
	)
	if err != nil {
		return fmt.Errorf("CreateStudent: prepare: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.Exec(student.ID, student.Name, student.Age, student.Gender, student.Course, student.Grade)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey {
			return fmt.Errorf("CreateStudent: %s: %w", student.ID, storage.ErrDuplicateID)
		}
		return fmt.Errorf("CreateStudent: exec: %w", err)
	}

	return nil
}

// GetStudentByID fetches exactly one row matched by primary key.
func (s *SQLite) GetStudentByID(id string) (types.Student, error) {
	stmt, err := s.Db.Prepare(
		"SELECT id, name, age, gender, course, grade FROM students WHERE id = ? LIMIT 1",
	)
	if err != nil {
		return types.Student{}, fmt.Errorf("GetStudentByID: prepare: %w", err)
	}
	defer stmt.Close()

	var student types.Student
	err = stmt.QueryRow(id).Scan(
		&student.ID,
		&student.Name,
		&student.Age,
		&student.Gender,
		&student.Course,
		&student.Grade,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Student{}, fmt.Errorf("GetStudentByID: %s: %w", id, storage.ErrNotFound)
		}
		return types.Student{}, fmt.Errorf("GetStudentByID: scan: %w", err)
	}

	return student, nil
}

// GetStudents returns the rows selected by filter in rowid order.
//
// Rows are matched with types.Filter.Matches after the scan, so case
// folding is the same full-Unicode EqualFold the memory store uses.
func (s *SQLite) GetStudents(filter types.Filter) ([]types.Student, error) {
	f, err := storage.CheckFilter(filter)
	if err != nil {
		return nil, fmt.Errorf("GetStudents: %q: %w", filter.Field, err)
	}

	stmt, err := s.Db.Prepare(
		"SELECT id, name, age, gender, course, grade FROM students ORDER BY rowid",
	)
	if err != nil {
		return nil, fmt.Errorf("GetStudents: prepare: %w", err)
	}
	defer stmt.Close()

	rows, err := stmt.Query()
	if err != nil {
		return nil, fmt.Errorf("GetStudents: query: %w", err)
	}
	defer rows.Close()

	students := make([]types.Student, 0)

	for rows.Next() {
		var student types.Student

		if err := rows.Scan(
			&student.ID,
			&student.Name,
			&student.Age,
			&student.Gender,
			&student.Course,
			&student.Grade,
		); err != nil {
			return nil, fmt.Errorf("GetStudents: scan row: %w", err)
		}

		if f.Matches(student) {
			students = append(students, student)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetStudents: rows iteration: %w", err)
	}

	return students, nil
}

// UpdateStudentByID replaces every column but id and returns the stored
// row.
func (s *SQLite) UpdateStudentByID(id string, student types.Student) (types.Student, error) {
	if _, err := s.GetStudentByID(id); err != nil {
		return types.Student{}, err
	}

	student.ID = id
	if err := validate.Record(student); err != nil {
		return types.Student{}, err
	}
	student = validate.Normalize(student)

	stmt, err := s.Db.Prepare(
		"UPDATE students SET name = ?, age = ?, gender = ?, course = ?, grade = ? WHERE id = ?",
	)
	if err != nil {
		return types.Student{}, fmt.Errorf("UpdateStudentByID: prepare: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.Exec(student.Name, student.Age, student.Gender, student.Course, student.Grade, id)
	if err != nil {
		return types.Student{}, fmt.Errorf("UpdateStudentByID: exec: %w", err)
	}

	return s.GetStudentByID(id)
}

// DeleteStudentByID removes a row by primary key.
func (s *SQLite) DeleteStudentByID(id string) error {
	stmt, err := s.Db.Prepare("DELETE FROM students WHERE id = ?")
	if err != nil {
		return fmt.Errorf("DeleteStudentByID: prepare: %w", err)
	}
	defer stmt.Close()

	res, err := stmt.Exec(id)
	if err != nil {
		return fmt.Errorf("DeleteStudentByID: exec: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("DeleteStudentByID: rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("DeleteStudentByID: %s: %w", id, storage.ErrNotFound)
	}

	return nil
}
