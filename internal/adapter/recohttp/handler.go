package recohttp

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"reco-orchestrator/internal/domain"
	"reco-orchestrator/internal/infra/config"
	"reco-orchestrator/internal/infra/logger"
	"reco-orchestrator/internal/usecase"
)

type Handler struct {
	hybridUsecase        usecase.HybridRecommendUsecase
	collaborativeUsecase usecase.CollaborativeRankUsecase
	similarUsecase       usecase.SimilarItemsUsecase
	defaults             config.RecoConfig
}

func NewHandler(
	hybridUsecase usecase.HybridRecommendUsecase,
	collaborativeUsecase usecase.CollaborativeRankUsecase,
	similarUsecase usecase.SimilarItemsUsecase,
	defaults config.RecoConfig,
) *Handler {
	return &Handler{
		hybridUsecase:        hybridUsecase,
		collaborativeUsecase: collaborativeUsecase,
		similarUsecase:       similarUsecase,
		defaults:             defaults,
	}
}

// RegisterRoutes mounts all recommendation endpoints on the echo instance.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/v1/recommendations/hybrid", h.HybridRecommend)
	e.GET("/v1/recommendations/collaborative/:userID", h.CollaborativeRank)
	e.GET("/v1/items/similar", h.SimilarItems)
	e.GET("/healthz", h.Health)
}

type hybridRequest struct {
	UserID      string   `json:"user_id"`
	Alpha       *float64 `json:"alpha,omitempty"`
	K           *int     `json:"k,omitempty"`
	ExpansionK  *int     `json:"expansion_k,omitempty"`
	Diversify   bool     `json:"diversify,omitempty"`
	MMRLambda   *float64 `json:"mmr_lambda,omitempty"`
	MMRPoolSize *int     `json:"mmr_pool_size,omitempty"`
}

type scoredItemPayload struct {
	ItemID string  `json:"item_id"`
	Title  string  `json:"title"`
	Score  float64 `json:"score"`
}

type hybridResponse struct {
	RequestID    string              `json:"request_id,omitempty"`
	UserID       string              `json:"user_id"`
	Items        []scoredItemPayload `json:"items"`
	SkippedSeeds int                 `json:"skipped_seeds,omitempty"`
	Fallback     bool                `json:"fallback"`
	Reason       string              `json:"reason,omitempty"`
}

// Blended collaborative+content recommendations for a user
// (POST /v1/recommendations/hybrid)
func (h *Handler) HybridRecommend(ctx echo.Context) error {
	var req hybridRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}
	if req.UserID == "" {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "missing user_id"})
	}

	input := usecase.HybridRecommendInput{
		UserID:      req.UserID,
		Alpha:       h.defaults.Alpha,
		K:           h.defaults.TopK,
		ExpansionK:  h.defaults.ExpansionK,
		Diversify:   req.Diversify,
		MMRLambda:   h.defaults.MMRLambda,
		MMRPoolSize: h.defaults.MMRPoolSize,
	}
	if req.Alpha != nil {
		input.Alpha = *req.Alpha
	}
	if req.K != nil {
		input.K = *req.K
	}
	if req.ExpansionK != nil {
		input.ExpansionK = *req.ExpansionK
	}
	if req.MMRLambda != nil {
		input.MMRLambda = *req.MMRLambda
	}
	if req.MMRPoolSize != nil {
		input.MMRPoolSize = *req.MMRPoolSize
	}

	if input.Alpha < 0 || input.Alpha > 1 {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "alpha must be in [0,1]"})
	}
	if input.K <= 0 {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "k must be positive"})
	}

	reqCtx := logger.WithUserID(ctx.Request().Context(), req.UserID)
	output, err := h.hybridUsecase.Execute(reqCtx, input)
	if err != nil {
		// Cold start is an expected state, not a failure: the caller is told
		// to fall back to a non-personalized list.
		if errors.Is(err, domain.ErrNoSeeds) {
			return ctx.JSON(http.StatusOK, hybridResponse{
				UserID:   req.UserID,
				Items:    []scoredItemPayload{},
				Fallback: true,
				Reason:   "no_seeds",
			})
		}
		return ctx.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	items := make([]scoredItemPayload, 0, len(output.Items))
	for _, item := range output.Items {
		items = append(items, scoredItemPayload{
			ItemID: item.ItemID,
			Title:  item.Title,
			Score:  item.Score,
		})
	}

	return ctx.JSON(http.StatusOK, hybridResponse{
		RequestID:    output.RequestID,
		UserID:       req.UserID,
		Items:        items,
		SkippedSeeds: output.SkippedSeeds,
		Fallback:     false,
	})
}

type rankedResponse struct {
	UserID string              `json:"user_id"`
	Items  []scoredItemPayload `json:"items"`
}

// Pure collaborative top-k for a user
// (GET /v1/recommendations/collaborative/:userID)
func (h *Handler) CollaborativeRank(ctx echo.Context) error {
	userID := ctx.Param("userID")
	if userID == "" {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "missing user id"})
	}

	k := h.defaults.TopK
	if err := echo.QueryParamsBinder(ctx).Int("k", &k).BindError(); err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "invalid k"})
	}
	if k <= 0 {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "k must be positive"})
	}

	output, err := h.collaborativeUsecase.Execute(ctx.Request().Context(), usecase.CollaborativeRankInput{
		UserID: userID,
		K:      k,
	})
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	items := make([]scoredItemPayload, 0, len(output.Items))
	for _, item := range output.Items {
		items = append(items, scoredItemPayload{
			ItemID: item.ItemID,
			Title:  item.Title,
			Score:  item.Score,
		})
	}

	return ctx.JSON(http.StatusOK, rankedResponse{UserID: userID, Items: items})
}

type similarResponse struct {
	Query string              `json:"query"`
	Items []scoredItemPayload `json:"items"`
}

// Content-similar items for a title or free-text query
// (GET /v1/items/similar)
func (h *Handler) SimilarItems(ctx echo.Context) error {
	query := ctx.QueryParam("q")
	if query == "" {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "missing q"})
	}

	k := h.defaults.TopK
	if err := echo.QueryParamsBinder(ctx).Int("k", &k).BindError(); err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "invalid k"})
	}
	if k <= 0 {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "k must be positive"})
	}

	output, err := h.similarUsecase.Execute(ctx.Request().Context(), usecase.SimilarItemsInput{
		Query: query,
		K:     k,
	})
	if err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			return ctx.JSON(http.StatusNotFound, map[string]string{"error": "item not found"})
		}
		return ctx.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	items := make([]scoredItemPayload, 0, len(output.Items))
	for _, item := range output.Items {
		items = append(items, scoredItemPayload{
			ItemID: item.ItemID,
			Title:  item.Title,
			Score:  item.Score,
		})
	}

	return ctx.JSON(http.StatusOK, similarResponse{Query: query, Items: items})
}

// Liveness probe
// (GET /healthz)
func (h *Handler) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
