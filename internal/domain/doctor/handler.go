package doctor

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clinicdash/clinicdash/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/doctors", h.Upsert)
	api.GET("/doctors", h.List)
	api.GET("/doctors/:id", h.Get)
	api.GET("/doctors/:id/availability", h.GetAvailability)
	api.DELETE("/doctors/:id", h.Delete)
}

func (h *Handler) Upsert(c echo.Context) error {
	clinicID, err := auth.ClinicID(c)
	if err != nil {
		return err
	}
	var in UpsertInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	d, err := h.svc.Upsert(c.Request().Context(), clinicID, in)
	if err != nil {
		var verr validator.ValidationErrors
		if errors.As(err, &verr) || errors.Is(err, ErrTimeOrder) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	status := http.StatusCreated
	if in.ID != nil {
		status = http.StatusOK
	}
	return c.JSON(status, d)
}

func (h *Handler) List(c echo.Context) error {
	clinicID, err := auth.ClinicID(c)
	if err != nil {
		return err
	}
	items, err := h.svc.List(c.Request().Context(), clinicID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) Get(c echo.Context) error {
	clinicID, err := auth.ClinicID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	d, err := h.svc.Get(c.Request().Context(), clinicID, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, d)
}

// GetAvailability renders the nearest concrete occurrence of the
// doctor's availability window.
func (h *Handler) GetAvailability(c echo.Context) error {
	clinicID, err := auth.ClinicID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	d, window, err := h.svc.Availability(c.Request().Context(), clinicID, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	occ := window.Resolve(time.Now())
	return c.JSON(http.StatusOK, map[string]interface{}{
		"doctor_id": d.ID,
		"start":     occ.Start,
		"end":       occ.End,
	})
}

func (h *Handler) Delete(c echo.Context) error {
	clinicID, err := auth.ClinicID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.Delete(c.Request().Context(), clinicID, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
