package wire

import (
	"net/http"

	"teach-trade/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireCourse(r chi.Router, courseHandler *adaptor.CourseHandler, auth func(http.Handler) http.Handler) {
	r.Route("/api/courses", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		r.Get("/", courseHandler.GetCourses)
		r.Get("/search", courseHandler.SearchCourses)
		r.Get("/{id}", courseHandler.GetCourseByID)

		// ==================== PROTECTED ROUTES ====================
		// the caller becomes the course trainer
		r.With(auth).Post("/", courseHandler.CreateCourse)
	})
}
