package consultations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"methodology-advisor/internal/expert"
	"methodology-advisor/internal/shared/server/middleware"
	"methodology-advisor/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the versioned API routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/recommendations", h.recommend)
	rg.GET("/consultations", h.list)
	rg.GET("/consultations/:id", h.get)
	rg.GET("/rules", h.rules)
}

// RegisterLegacyRoutes attaches the unversioned form endpoint used by the
// web page. It answers with the bare recommendation list.
func (h *Handler) RegisterLegacyRoutes(r gin.IRoutes) {
	r.POST("/get_recommendation", h.recommendLegacy)
}

func (h *Handler) recommend(c *gin.Context) {
	consultation, ok := h.run(c)
	if !ok {
		return
	}
	respond.OK(c, NewConsultationResponse(consultation))
}

func (h *Handler) recommendLegacy(c *gin.Context) {
	consultation, ok := h.run(c)
	if !ok {
		return
	}
	respond.OK(c, NewRecommendationResponses(consultation.Recommendations))
}

func (h *Handler) run(c *gin.Context) (Consultation, bool) {
	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "invalid request body", nil)
		return Consultation{}, false
	}

	fact, err := ParseAttributes(raw)
	if err != nil {
		if errors.Is(err, expert.ErrInvalidFact) {
			respond.Error(c, http.StatusBadRequest, respond.CodeValidation, err.Error(), nil)
			return Consultation{}, false
		}
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to read project attributes", nil)
		return Consultation{}, false
	}

	consultation := h.Svc.Recommend(c.Request.Context(), fact, middleware.RequestIDFromContext(c))
	c.Set(middleware.ConsultationIDKey, consultation.ID)
	c.Set(middleware.MatchCountKey, consultation.MatchCount())
	c.Set(middleware.FiredRulesKey, consultation.FiredRules)
	return consultation, true
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.ConsultationIDKey, id)

	consultation, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		h.historyError(c, err, "failed to fetch consultation")
		return
	}
	respond.OK(c, NewConsultationResponse(consultation))
}

func (h *Handler) list(c *gin.Context) {
	limit := 20
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}

	items, err := h.Svc.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.historyError(c, err, "failed to list consultations")
		return
	}

	resp := make([]gin.H, 0, len(items))
	for _, item := range items {
		resp = append(resp, gin.H{
			"consultationId": item.ID,
			"topApproach":    item.TopApproach(),
			"matchCount":     item.MatchCount(),
			"createdAt":      item.CreatedAt,
		})
	}
	respond.OK(c, resp)
}

func (h *Handler) rules(c *gin.Context) {
	respond.OK(c, h.Svc.RuleSummaries())
}

func (h *Handler) historyError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, respond.CodeNotFound, "consultation not found", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, err.Error(), nil)
	case errors.Is(err, ErrHistoryDisabled):
		respond.Error(c, http.StatusServiceUnavailable, respond.CodeUnavailable, "consultation history is disabled", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, fallback, nil)
	}
}
