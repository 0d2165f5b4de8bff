package scheduling

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/patientdesk/patientdesk/internal/platform/apperr"
	"github.com/patientdesk/patientdesk/internal/platform/auth"
	"github.com/patientdesk/patientdesk/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/appointments", h.Request, auth.RequireRole(auth.RoleAdmin, auth.RolePatient))
	api.GET("/appointments", h.List, auth.RequireRole(auth.RoleAdmin, auth.RoleDoctor, auth.RolePatient))
	api.GET("/appointments/:id", h.Get, auth.RequireRole(auth.RoleAdmin, auth.RoleDoctor, auth.RolePatient))
	api.PUT("/appointments/:id", h.Update, auth.RequireRole(auth.RoleAdmin, auth.RoleDoctor, auth.RolePatient))
	api.DELETE("/appointments/:id", h.Delete, auth.RequireRole(auth.RoleAdmin, auth.RolePatient))
}

func identity(c echo.Context) (auth.Identity, error) {
	ident, ok := auth.IdentityFromContext(c.Request().Context())
	if !ok {
		return auth.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authorization")
	}
	return ident, nil
}

type requestBody struct {
	DoctorID  uuid.UUID `json:"doctor_id"`
	PatientID uuid.UUID `json:"patient_id"`
	Date      string    `json:"date"`
	Notes     *string   `json:"notes"`
}

// Request returns 201 when a new appointment is inserted and 200 when an
// existing one for the same slot is reset to pending.
func (h *Handler) Request(c echo.Context) error {
	ident, err := identity(c)
	if err != nil {
		return err
	}

	var body requestBody
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	appt, created, err := h.svc.Request(c.Request().Context(), ident, RequestParams{
		DoctorID:  body.DoctorID,
		PatientID: body.PatientID,
		Date:      body.Date,
		Notes:     body.Notes,
	})
	if err != nil {
		return apperr.HTTP(err)
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return c.JSON(status, appt)
}

func (h *Handler) List(c echo.Context) error {
	ident, err := identity(c)
	if err != nil {
		return err
	}

	var f Filter
	if raw := c.QueryParam("doctor_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid doctor_id")
		}
		f.DoctorID = id
	}
	if raw := c.QueryParam("patient_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid patient_id")
		}
		f.PatientID = id
	}
	f.Date = c.QueryParam("date")

	pg := pagination.FromContext(c)
	items, total, err := h.svc.List(c.Request().Context(), ident, f, pg.Limit, pg.Offset)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) Get(c echo.Context) error {
	ident, err := identity(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	appt, err := h.svc.Get(c.Request().Context(), ident, id)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, appt)
}

func (h *Handler) Update(c echo.Context) error {
	ident, err := identity(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var upd Update
	if err := c.Bind(&upd); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	appt, err := h.svc.Update(c.Request().Context(), ident, id, upd)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, appt)
}

func (h *Handler) Delete(c echo.Context) error {
	ident, err := identity(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.svc.Delete(c.Request().Context(), ident, id); err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "appointment deleted successfully"})
}
