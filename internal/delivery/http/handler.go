package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/greencart/backend/internal/domain"
	"github.com/greencart/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	checkout  *usecase.CheckoutService
	explainer domain.ExplanationGenerator
	logger    *zap.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(checkout *usecase.CheckoutService, explainer domain.ExplanationGenerator, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		checkout:  checkout,
		explainer: explainer,
		logger:    logger,
	}
}

// analyzeRequest is the wire form of a basket analysis request
type analyzeRequest struct {
	BasketID    string              `json:"basket_id"`
	UserID      string              `json:"user_id"`
	Items       []domain.Product    `json:"items"`
	Constraints *domain.Constraints `json:"constraints"`
	UserContext *domain.UserContext `json:"user_context"`
}

// analyzeResponse wraps the analysis result with its explanation
type analyzeResponse struct {
	*domain.Result
	Explanation string `json:"explanation,omitempty"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "greencart-backend",
		"version": "1.0.0",
	})
}

// AnalyzeBasket scores a basket, searches for lower-emission swaps and
// returns the decision metrics alongside a shopper-facing explanation.
func (h *Handler) AnalyzeBasket(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid request body: " + err.Error(),
		})
		return
	}

	basket := domain.Basket{
		ID:     req.BasketID,
		UserID: req.UserID,
		Items:  req.Items,
	}

	var constraints domain.Constraints
	if req.Constraints != nil {
		constraints = *req.Constraints
	}

	user := domain.DefaultUserContext()
	if req.UserContext != nil {
		user = *req.UserContext
	}

	result, err := h.checkout.Analyze(c.Request.Context(), basket, constraints, user)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidBasket) || errors.Is(err, domain.ErrInvalidRequest) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("basket analysis failed", zap.String("basketID", req.BasketID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "analysis failed"})
		return
	}

	resp := analyzeResponse{Result: result}
	if h.explainer != nil {
		explanation, err := h.explainer.Generate(c.Request.Context(), basket, result)
		if err != nil {
			// The metrics are the contract; a missing explanation is not
			// worth failing the request over.
			h.logger.Warn("explanation generation failed", zap.Error(err))
		} else {
			resp.Explanation = explanation
		}
	}

	c.JSON(http.StatusOK, resp)
}
