package laws

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"verdicto-api/internal/shared/server/respond"
	"verdicto-api/internal/shared/telemetry"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches catalog routes to the router group.
func (h *Handler) RegisterRoutes(rg gin.IRoutes) {
	rg.GET("/laws", h.list)
	rg.GET("/laws/:id", h.get)
}

func (h *Handler) list(c *gin.Context) {
	f := Filter{
		State:     c.Query("state"),
		Act:       c.Query("act"),
		RiskLevel: c.Query("risk_level"),
		Tag:       c.Query("tag"),
	}
	units, err := h.Svc.ListUnits(c.Request.Context(), f)
	if err != nil {
		telemetry.Error("laws.list_failed", map[string]any{"error": err})
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list laws", nil)
		return
	}
	respond.OK(c, toResponses(units))
}

func (h *Handler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "id must be an integer", nil)
		return
	}
	c.Set("lawId", id)

	u, err := h.Svc.GetUnit(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "Law not found", nil)
		default:
			telemetry.Error("laws.get_failed", map[string]any{"law_id": id, "error": err})
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load law", nil)
		}
		return
	}
	respond.OK(c, toResponse(u))
}
