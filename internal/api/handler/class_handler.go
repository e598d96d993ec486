package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/evolfitness/booking-system/internal/api/metrics"
	"github.com/evolfitness/booking-system/internal/core/ports"
)

// ClassHandler handles class management, enrollment, and roster queries.
type ClassHandler struct {
	classes     ports.ClassService
	enrollments ports.EnrollmentService
}

func NewClassHandler(classes ports.ClassService, enrollments ports.EnrollmentService) *ClassHandler {
	return &ClassHandler{classes: classes, enrollments: enrollments}
}

// List returns every class ascending by scheduled time.
//
// @Summary      List all classes
// @Tags         clases
// @Produce      json
// @Success      200  {object}  listClassesResponse
// @Failure      503  {object}  map[string]any
// @Router       /clases [get]
func (h *ClassHandler) List(c echo.Context) error {
	classes, err := h.classes.ListClasses(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listClassesResponse{OK: true, Clases: toClassResponses(classes)})
}

// ListToday returns the classes scheduled on a single calendar day. The
// optional fecha query parameter (YYYY-MM-DD) defaults to the server's
// local date.
//
// @Summary      List a day's classes
// @Tags         clases
// @Produce      json
// @Param        fecha  query     string  false  "Day in YYYY-MM-DD format"
// @Success      200    {object}  listClassesResponse
// @Failure      400    {object}  map[string]any
// @Router       /clases/hoy [get]
func (h *ClassHandler) ListToday(c echo.Context) error {
	day := time.Now()
	if raw := c.QueryParam("fecha"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "La fecha no es valida")
		}
		day = parsed
	}

	classes, err := h.classes.ListClassesOn(c.Request().Context(), day)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listClassesResponse{OK: true, Clases: toClassResponses(classes)})
}

// Create publishes a new class with its image. Admin only.
//
// @Summary      Create a class
// @Tags         clases
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createClassRequest  true  "Class details with base64 image"
// @Success      201   {object}  createClassResponse
// @Failure      400   {object}  map[string]any
// @Failure      403   {object}  map[string]any
// @Router       /clases [post]
func (h *ClassHandler) Create(c echo.Context) error {
	var req createClassRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Peticion invalida")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	scheduledAt, err := time.Parse(time.RFC3339Nano, req.FechaHora)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "La fechaHora no es valida")
	}

	class, err := h.classes.CreateClass(c.Request().Context(), ports.CreateClassInput{
		Name:         req.Nombre,
		Description:  req.Descripcion,
		ScheduledAt:  scheduledAt,
		Capacity:     req.PlazasMaximas,
		ImageName:    req.Imagen,
		ImageContent: req.ImagenContenido,
	})
	if err != nil {
		return err
	}

	metrics.ClassesCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, createClassResponse{OK: true, ID: class.ID, Clase: toClassResponse(class)})
}

// Enroll adds a user to a class roster.
//
// @Summary      Enroll in a class
// @Tags         clases
// @Accept       json
// @Produce      json
// @Param        idClase  path      string         true  "Class id"
// @Param        body     body      enrollRequest  true  "User id"
// @Success      200      {object}  enrollResponse
// @Failure      400      {object}  map[string]any
// @Failure      404      {object}  map[string]any
// @Router       /clases/{idClase}/inscribirse [post]
func (h *ClassHandler) Enroll(c echo.Context) error {
	classID := c.Param("idClase")
	if !isHexID(classID) {
		return echo.NewHTTPError(http.StatusBadRequest, "idClase invalido")
	}

	var req enrollRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Peticion invalida")
	}
	if !isHexID(req.UsuarioID) {
		return echo.NewHTTPError(http.StatusBadRequest, "usuarioId invalido")
	}

	already, err := h.enrollments.Enroll(c.Request().Context(), classID, req.UsuarioID)
	if err != nil {
		return err
	}

	if already {
		metrics.EnrollmentsTotal.WithLabelValues("repeat").Inc()
	} else {
		metrics.EnrollmentsTotal.WithLabelValues("new").Inc()
	}
	return c.JSON(http.StatusOK, enrollResponse{OK: true, YaInscrito: already})
}

// Roster returns the usernames enrolled in a class, in stored order.
//
// @Summary      Class roster
// @Tags         clases
// @Produce      json
// @Param        idClase  path      string  true  "Class id"
// @Success      200      {object}  rosterResponse
// @Failure      400      {object}  map[string]any
// @Failure      404      {object}  map[string]any
// @Router       /clases/{idClase}/inscritos [get]
func (h *ClassHandler) Roster(c echo.Context) error {
	classID := c.Param("idClase")
	if !isHexID(classID) {
		return echo.NewHTTPError(http.StatusBadRequest, "idClase invalido")
	}

	usernames, err := h.classes.ListEnrolledUsernames(c.Request().Context(), classID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rosterResponse{OK: true, Usuarios: usernames})
}

// ForUser returns the classes a user is enrolled in.
//
// @Summary      Classes for a user
// @Tags         clases
// @Produce      json
// @Param        usuarioId  path      string  true  "User id"
// @Success      200        {object}  listClassesResponse
// @Failure      400        {object}  map[string]any
// @Router       /clases/usuario/{usuarioId} [get]
func (h *ClassHandler) ForUser(c echo.Context) error {
	userID := c.Param("usuarioId")
	if !isHexID(userID) {
		return echo.NewHTTPError(http.StatusBadRequest, "usuarioId invalido")
	}

	classes, err := h.classes.ListClassesForUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listClassesResponse{OK: true, Clases: toClassResponses(classes)})
}

// Cancel records a cancellation, late or on-time.
//
// @Summary      Cancel an enrollment
// @Tags         clases
// @Accept       json
// @Produce      json
// @Param        idClase  path      string         true  "Class id"
// @Param        body     body      cancelRequest  true  "User id and optional late flag"
// @Success      200      {object}  cancelResponse
// @Failure      400      {object}  map[string]any
// @Failure      404      {object}  map[string]any
// @Router       /clases/{idClase}/cancelar-inscripcion [post]
func (h *ClassHandler) Cancel(c echo.Context) error {
	classID := c.Param("idClase")
	if !isHexID(classID) {
		return echo.NewHTTPError(http.StatusBadRequest, "idClase invalido")
	}

	var req cancelRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Peticion invalida")
	}
	if !isHexID(req.UsuarioID) {
		return echo.NewHTTPError(http.StatusBadRequest, "usuarioId invalido")
	}

	result, err := h.enrollments.Cancel(c.Request().Context(), ports.CancelInput{
		ClassID: classID,
		UserID:  req.UsuarioID,
		Late:    req.CancelacionFueraDePlazo,
	})
	if err != nil {
		return err
	}

	if result.Late {
		metrics.CancellationsTotal.WithLabelValues("late").Inc()
	} else {
		metrics.CancellationsTotal.WithLabelValues("on_time").Inc()
	}
	return c.JSON(http.StatusOK, cancelResponse{
		OK:                      true,
		Cancelada:               result.Cancelled,
		CancelacionFueraDePlazo: result.Late,
	})
}

// isHexID reports whether s looks like a 24-character hex object id. The
// repositories re-validate; this check exists to answer 400 with the precise
// parameter name before any store round-trip.
func isHexID(s string) bool {
	if len(s) != 24 {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
