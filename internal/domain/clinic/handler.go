package clinic

import (
	"errors"
	"net/http"

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
	api.POST("/clinics", h.Create)
	api.GET("/clinic", h.GetOwn)
}

type createRequest struct {
	Name string `json:"name"`
}

func (h *Handler) Create(c echo.Context) error {
	var req createRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	cl, err := h.svc.Create(c.Request().Context(), req.Name)
	if err != nil {
		if errors.Is(err, ErrNameTooShort) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, cl)
}

// GetOwn returns the clinic the caller is scoped to.
func (h *Handler) GetOwn(c echo.Context) error {
	clinicID, err := auth.ClinicID(c)
	if err != nil {
		return err
	}
	cl, err := h.svc.Get(c.Request().Context(), clinicID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, cl)
}
