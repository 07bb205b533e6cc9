package adaptor

import (
	"encoding/json"
	"net/http"

	"teach-trade/internal/dto/request"
	"teach-trade/internal/usecase"
	"teach-trade/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CourseHandler struct {
	service usecase.CourseService
	log     *zap.Logger
}

func NewCourseHandler(service usecase.CourseService, log *zap.Logger) *CourseHandler {
	return &CourseHandler{
		service: service,
		log:     log.With(zap.String("handler", "course")),
	}
}

// GetCourses handles GET /api/courses
func (h *CourseHandler) GetCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.service.GetCourses(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get courses")
		return
	}

	utils.ResponseSuccess(w, courses)
}

// SearchCourses handles GET /api/courses/search?q=
func (h *CourseHandler) SearchCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.service.SearchCourses(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		handleServiceError(w, h.log, err, "search courses")
		return
	}

	utils.ResponseSuccess(w, courses)
}

// GetCourseByID handles GET /api/courses/{id}
func (h *CourseHandler) GetCourseByID(w http.ResponseWriter, r *http.Request) {
	courseID := chi.URLParam(r, "id")
	if courseID == "" {
		utils.ResponseBadRequest(w, "Course ID is required", nil)
		return
	}

	course, err := h.service.GetCourseByID(r.Context(), courseID)
	if err != nil {
		handleServiceError(w, h.log, err, "get course")
		return
	}

	utils.ResponseSuccess(w, course)
}

// CreateCourse handles POST /api/courses (protected)
func (h *CourseHandler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	trainerID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	course, err := h.service.CreateCourse(r.Context(), trainerID.String(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create course")
		return
	}

	utils.ResponseCreated(w, course)
}
