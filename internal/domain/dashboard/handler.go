package dashboard

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/clinicdash/clinicdash/internal/platform/auth"
)

const dateOnly = "2006-01-02"

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/dashboard", h.Snapshot)
}

// Snapshot reads the reporting window from the from/to query params.
// Absent params default to the month starting today. The to day is
// extended to its last instant so the range stays inclusive.
func (h *Handler) Snapshot(c echo.Context) error {
	clinicID, err := auth.ClinicID(c)
	if err != nil {
		return err
	}

	now := time.Now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	if raw := c.QueryParam("from"); raw != "" {
		from, err = time.Parse(dateOnly, raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid from date")
		}
	}
	if raw := c.QueryParam("to"); raw != "" {
		to, err = time.Parse(dateOnly, raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid to date")
		}
	}
	to = to.Add(24*time.Hour - time.Nanosecond)

	snap, err := h.svc.Snapshot(c.Request().Context(), Query{
		ClinicID: clinicID,
		From:     from,
		To:       to,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, snap)
}
