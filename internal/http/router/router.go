// Package router wires the student handlers and middleware into one
// http.Handler.
package router

import (
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/student-records/internal/http/handlers/student"
	"github.com/aanand-mishra/student-records/internal/http/middleware"
	"github.com/aanand-mishra/student-records/internal/storage"
)

// New returns the API handler. The store is wrapped with
// storage.Serialize, so callers may pass an unsynchronised one.
//
// Route table:
//
//	POST   /api/students          create a student
//	GET    /api/students          list students (?field=&value=)
//	GET    /api/students/export   download csv or xlsx (?format=&field=&value=)
//	GET    /api/students/{id}     get one student
//	PUT    /api/students/{id}     update a student
//	DELETE /api/students/{id}     delete a student
func New(store storage.Storage, log *slog.Logger) http.Handler {
	store = storage.Serialize(store)

	router := http.NewServeMux()

	router.HandleFunc("POST /api/students", student.New(store))
	router.HandleFunc("GET /api/students", student.GetList(store))
	router.HandleFunc("GET /api/students/export", student.Export(store))
	router.HandleFunc("GET /api/students/{id}", student.GetByID(store))
	router.HandleFunc("PUT /api/students/{id}", student.Update(store))
	router.HandleFunc("DELETE /api/students/{id}", student.Delete(store))

	return middleware.Chain(router,
		middleware.RequestID,
		middleware.Logger(log),
		middleware.Recover(log),
	)
}
