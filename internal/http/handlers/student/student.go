// Package student contains all HTTP handlers related to the Student resource.
//
// Each exported function is a factory: it receives the store once at
// startup and returns the handler the router calls on every request.
//
//	router.HandleFunc("POST /api/students", student.New(storage))
//
// The store given to these factories must be safe for concurrent use
// (see storage.Serialize); net/http runs handlers in parallel.
package student

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/student-records/internal/export"
	"github.com/aanand-mishra/student-records/internal/storage"
	"github.com/aanand-mishra/student-records/internal/types"
	"github.com/aanand-mishra/student-records/internal/utils/response"
	"github.com/aanand-mishra/student-records/internal/validate"
	"github.com/go-playground/validator/v10"
)

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /api/students
// Creates a new student from the JSON request body.
//
// Request body (JSON):
//
//	{ "id": "101", "name": "Ravi", "age": "20", "gender": "Male", "course": "Math", "grade": "A" }
//
// Success response (201 Created):
//
//	{ "id": "101" }
//
// Error responses:
//
//	400 Bad Request  — empty body, malformed JSON, or failed validation
//	409 Conflict     — a student with this id already exists
//	500 Internal     — storage error
//
// ─────────────────────────────────────────────────────────────────────────────
func New(storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a student")

		student, ok := decodeStudent(w, r)
		if !ok {
			return
		}

		if !validStudent(w, student) {
			return
		}

		if err := storage.CreateStudent(student); err != nil {
			slog.Error("error creating student",
				slog.String("id", student.ID),
				slog.String("error", err.Error()))
			response.StoreError(w, err)
			return
		}

		slog.Info("student created", slog.String("id", student.ID))
		response.WriteJSON(w, http.StatusCreated, map[string]string{"id": student.ID})
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetByID handles GET /api/students/{id}
//
// Error responses:
//
//	400 Bad Request  — id is not 3 digits
//	404 Not Found    — no student with this id
//
// ─────────────────────────────────────────────────────────────────────────────
func GetByID(storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("getting a student", slog.String("id", id))

		if !validPathID(w, id) {
			return
		}

		student, err := storage.GetStudentByID(id)
		if err != nil {
			slog.Error("error getting student",
				slog.String("id", id),
				slog.String("error", err.Error()))
			response.StoreError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, student)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetList handles GET /api/students?field=Course&value=math
// Returns a JSON array of students in insertion order, optionally
// filtered by a case-insensitive exact match on one column.
//
// Returns an empty array [] (not null) when nothing matches.
// An unknown field gives 400.
// ─────────────────────────────────────────────────────────────────────────────
func GetList(storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := filterFrom(r)
		slog.Info("getting students",
			slog.String("field", filter.Field),
			slog.String("value", filter.Value))

		students, err := storage.GetStudents(filter)
		if err != nil {
			slog.Error("error getting students", slog.String("error", err.Error()))
			response.StoreError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, students)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Update handles PUT /api/students/{id}
// Replaces every field except the id. An id in the body is ignored.
// The store checks the id before the body, so an unknown id is 404 even
// when the body is also invalid.
//
// Request body (JSON):
//
//	{ "name": "Ravi K", "age": "21", "gender": "Male", "course": "Physics", "grade": "B" }
//
// Success response (200 OK) — the updated student.
//
// Error responses:
//
//	400 Bad Request  — invalid id, empty body, or the first failed field
//	404 Not Found    — no student with this id
//
// ─────────────────────────────────────────────────────────────────────────────
func Update(storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("updating a student", slog.String("id", id))

		if !validPathID(w, id) {
			return
		}

		student, ok := decodeStudent(w, r)
		if !ok {
			return
		}

		updated, err := storage.UpdateStudentByID(id, student)
		if err != nil {
			slog.Error("error updating student",
				slog.String("id", id),
				slog.String("error", err.Error()))
			response.StoreError(w, err)
			return
		}

		slog.Info("student updated", slog.String("id", id))
		response.WriteJSON(w, http.StatusOK, updated)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Delete handles DELETE /api/students/{id}
//
// Success response (200 OK):
//
//	{ "status": "deleted" }
//
// Error responses:
//
//	400 Bad Request  — invalid id
//	404 Not Found    — no student with this id
//
// ─────────────────────────────────────────────────────────────────────────────
func Delete(storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("deleting a student", slog.String("id", id))

		if !validPathID(w, id) {
			return
		}

		if err := storage.DeleteStudentByID(id); err != nil {
			slog.Error("error deleting student",
				slog.String("id", id),
				slog.String("error", err.Error()))
			response.StoreError(w, err)
			return
		}

		slog.Info("student deleted", slog.String("id", id))
		response.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Export handles GET /api/students/export?format=csv|xlsx&field=&value=
// Downloads the (optionally filtered) listing as CSV (default) or XLSX.
// ─────────────────────────────────────────────────────────────────────────────
func Export(storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		format, err := export.ParseFormat(r.URL.Query().Get("format"))
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		filter := filterFrom(r)
		slog.Info("exporting students",
			slog.String("format", string(format)),
			slog.String("field", filter.Field),
			slog.String("value", filter.Value))

		students, err := storage.GetStudents(filter)
		if err != nil {
			slog.Error("error getting students", slog.String("error", err.Error()))
			response.StoreError(w, err)
			return
		}

		w.Header().Set("Content-Type", format.ContentType())
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=%q", format.Filename()))

		// Headers and status are committed by the first body write; a
		// failure after that can only be logged.
		if err := format.Write(w, students); err != nil {
			slog.Error("error writing export",
				slog.String("format", string(format)),
				slog.String("error", err.Error()))
		}
	}
}

func filterFrom(r *http.Request) types.Filter {
	q := r.URL.Query()
	return types.Filter{Field: q.Get("field"), Value: q.Get("value")}
}

func decodeStudent(w http.ResponseWriter, r *http.Request) (types.Student, bool) {
	var student types.Student

	err := json.NewDecoder(r.Body).Decode(&student)
	if errors.Is(err, io.EOF) {
		response.WriteJSON(w, http.StatusBadRequest,
			response.GeneralError(errors.New("request body is empty")))
		return student, false
	}
	if err != nil {
		response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
		return student, false
	}

	return student, true
}

func validStudent(w http.ResponseWriter, student types.Student) bool {
	err := validate.Struct(student)
	if err == nil {
		return true
	}

	var validateErrs validator.ValidationErrors
	if errors.As(err, &validateErrs) {
		response.WriteJSON(w, http.StatusBadRequest, response.ValidationError(validateErrs))
	} else {
		response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
	}
	return false
}

func validPathID(w http.ResponseWriter, id string) bool {
	if validate.ID(id) {
		return true
	}
	response.WriteJSON(w, http.StatusBadRequest,
		response.GeneralError(errors.New(validate.Message(types.ColumnID))))
	return false
}
