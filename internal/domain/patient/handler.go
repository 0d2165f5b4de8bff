package patient

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
	api.POST("/patients", h.Create, auth.RequireRole(auth.RoleAdmin, auth.RoleDoctor))
	api.GET("/patients", h.List, auth.RequireRole(auth.RoleAdmin, auth.RoleDoctor, auth.RolePatient))
	api.GET("/patients/:id", h.Get, auth.RequireRole(auth.RoleAdmin, auth.RoleDoctor, auth.RolePatient))
	api.PUT("/patients/:id", h.Update, auth.RequireRole(auth.RoleAdmin, auth.RoleDoctor))
	api.DELETE("/patients/:id", h.Delete, auth.RequireRole(auth.RoleAdmin))
}

func identity(c echo.Context) (auth.Identity, error) {
	ident, ok := auth.IdentityFromContext(c.Request().Context())
	if !ok {
		return auth.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authorization")
	}
	return ident, nil
}

// Create accepts the core fields plus arbitrary extra keys, which are kept
// as extensions rather than trusted columns.
func (h *Handler) Create(c echo.Context) error {
	ident, err := identity(c)
	if err != nil {
		return err
	}

	var body map[string]interface{}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	p := CreateParams{Extensions: map[string]interface{}{}}
	for k, v := range body {
		switch k {
		case "name":
			p.Name, _ = v.(string)
		case "age":
			if f, ok := v.(float64); ok {
				p.Age = int(f)
			}
		case "condition":
			p.Condition, _ = v.(string)
		default:
			p.Extensions[k] = v
		}
	}

	rec, err := h.svc.Create(c.Request().Context(), ident, p)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusCreated, rec)
}

func (h *Handler) List(c echo.Context) error {
	ident, err := identity(c)
	if err != nil {
		return err
	}

	var f Filter
	if rawID := c.QueryParam("id"); rawID != "" {
		id, err := uuid.Parse(rawID)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
		}
		f.ID = id
	}
	f.Name = c.QueryParam("name")

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

	rec, err := h.svc.Get(c.Request().Context(), ident, id)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, rec)
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

	rec, err := h.svc.Update(c.Request().Context(), ident, id, upd)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, rec)
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
	return c.JSON(http.StatusOK, map[string]string{"message": "patient deleted successfully"})
}
