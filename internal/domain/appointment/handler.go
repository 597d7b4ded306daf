package appointment

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/smartclinic/clinic/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	patientGroup := api.Group("", auth.RequireRole(auth.RolePatient))
	patientGroup.POST("/appointments", h.Book)
	patientGroup.PUT("/appointments/:id", h.Update)
	patientGroup.DELETE("/appointments/:id", h.Cancel)
	patientGroup.GET("/patient/me/appointments", h.MyAppointments)

	doctorGroup := api.Group("", auth.RequireRole(auth.RoleDoctor))
	doctorGroup.GET("/appointments", h.DoctorDay)
	doctorGroup.PATCH("/appointments/:id/status", h.ChangeStatus)
}

func requesterID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(auth.UserIDFromContext(c.Request().Context()))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token subject")
	}
	return id, nil
}

type bookRequest struct {
	DoctorID uuid.UUID `json:"doctor_id"`
	Time     time.Time `json:"time"`
}

func (h *Handler) Book(c echo.Context) error {
	patientID, err := requesterID(c)
	if err != nil {
		return err
	}
	var req bookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Time.IsZero() {
		return echo.NewHTTPError(http.StatusBadRequest, "time is required")
	}
	a := &Appointment{DoctorID: req.DoctorID, PatientID: patientID, Time: req.Time}
	if err := h.svc.Book(c.Request().Context(), a); err != nil {
		switch {
		case errors.Is(err, ErrDoctorNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "doctor not found")
		case errors.Is(err, ErrSlotUnavailable):
			return echo.NewHTTPError(http.StatusConflict, "doctor is not available at the requested time")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, a)
}

type updateRequest struct {
	DoctorID uuid.UUID `json:"doctor_id"`
	Time     time.Time `json:"time"`
	Status   int       `json:"status"`
}

func (h *Handler) Update(c echo.Context) error {
	patientID, err := requesterID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req updateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	a := &Appointment{ID: id, DoctorID: req.DoctorID, Time: req.Time, Status: req.Status}
	if err := h.svc.Update(c.Request().Context(), patientID, a); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
		case errors.Is(err, ErrForbidden):
			return echo.NewHTTPError(http.StatusForbidden, "appointment belongs to another patient")
		case errors.Is(err, ErrDoctorNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "doctor not found")
		case errors.Is(err, ErrTimeConflict):
			return echo.NewHTTPError(http.StatusConflict, "another appointment occupies the requested time")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "appointment updated"})
}

func (h *Handler) Cancel(c echo.Context) error {
	patientID, err := requesterID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.Cancel(c.Request().Context(), patientID, id); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
		case errors.Is(err, ErrForbidden):
			return echo.NewHTTPError(http.StatusForbidden, "appointment belongs to another patient")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// DoctorDay lists the calling doctor's appointments for the `date` query
// parameter (today when absent), optionally narrowed by `patient_name`. The
// doctor id always comes from the token.
func (h *Handler) DoctorDay(c echo.Context) error {
	doctorID, err := requesterID(c)
	if err != nil {
		return err
	}
	date := time.Now()
	if d := c.QueryParam("date"); d != "" {
		date, err = time.Parse("2006-01-02", d)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid date, want YYYY-MM-DD")
		}
	}
	items, err := h.svc.DoctorDay(c.Request().Context(), doctorID, date, c.QueryParam("patient_name"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"appointments": items, "total": len(items)})
}

type statusRequest struct {
	Status int `json:"status"`
}

func (h *Handler) ChangeStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Status != StatusCompleted {
		return echo.NewHTTPError(http.StatusBadRequest, "only the completed status can be set")
	}
	if err := h.svc.MarkCompleted(c.Request().Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "status updated"})
}

// MyAppointments lists the calling patient's appointments, optionally
// filtered by `condition` (past/future) and `doctor` (name substring).
func (h *Handler) MyAppointments(c echo.Context) error {
	patientID, err := requesterID(c)
	if err != nil {
		return err
	}
	items, err := h.svc.FilterForPatient(c.Request().Context(), patientID,
		c.QueryParam("condition"), c.QueryParam("doctor"))
	if err != nil {
		if errors.Is(err, ErrInvalidCondition) {
			return echo.NewHTTPError(http.StatusBadRequest, "condition must be past or future")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"appointments": items, "total": len(items)})
}
