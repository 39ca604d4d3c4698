package chi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	chiv5 "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/cureat-cloud/matseek/internal/domain"
	logpkg "github.com/cureat-cloud/matseek/internal/logger"
	healthuc "github.com/cureat-cloud/matseek/internal/usecase/health"
)

// Error codes returned in error response bodies.
const (
	codeBadRequest       = "bad_request"
	codeValidationFailed = "validation_failed"
	codeInvalidLanguage  = "invalid_language"
)

// Recommender answers a free-text restaurant request.
type Recommender interface {
	Recommend(ctx context.Context, prompt string, lang domain.Language) domain.RecommendationResult
}

// Server exposes the recommendation pipeline over HTTP.
type Server struct {
	recommend Recommender
	health    *healthuc.Service
	logger    *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(recommend Recommender, health *healthuc.Service, logger *zap.Logger) *Server {
	return &Server{recommend: recommend, health: health, logger: logger}
}

// Routes mounts all API routes on the given router.
func (s *Server) Routes(r chiv5.Router) {
	r.Post("/api/v1/recommendations", s.CreateRecommendation)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

type recommendationRequest struct {
	Prompt   string `json:"prompt"`
	Language string `json:"language"`
}

type restaurantResponse struct {
	Name            string   `json:"name"`
	Address         string   `json:"address"`
	Summary         string   `json:"summary"`
	SummaryPros     []string `json:"summary_pros"`
	SummaryCons     []string `json:"summary_cons"`
	IsAdFiltered    bool     `json:"is_ad_filtered"`
	FilteredAdCount int      `json:"filtered_ad_count"`
	MapX            string   `json:"mapx"`
	MapY            string   `json:"mapy"`
	Keywords        []string `json:"keywords"`
}

type recommendationResponse struct {
	Answer      string               `json:"answer"`
	Restaurants []restaurantResponse `json:"restaurants"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CreateRecommendation handles POST /api/v1/recommendations.
// Rejections are logged with the request-scoped logger so they carry the
// request_id from the wide-event middleware.
func (s *Server) CreateRecommendation(w http.ResponseWriter, r *http.Request) {
	reqLogger := logpkg.FromContext(r.Context())

	var req recommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		reqLogger.Warn("rejected recommendation request", zap.Error(err))
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if strings.TrimSpace(req.Prompt) == "" {
		reqLogger.Warn("rejected recommendation request", zap.String("reason", "empty prompt"))
		writeError(w, http.StatusBadRequest, codeValidationFailed, "prompt is required")
		return
	}

	lang, err := domain.ParseLanguage(req.Language)
	if err != nil {
		reqLogger.Warn("rejected recommendation request", zap.Error(err))
		writeError(w, http.StatusBadRequest, codeInvalidLanguage, err.Error())
		return
	}

	result := s.recommend.Recommend(r.Context(), req.Prompt, lang)

	writeJSON(w, http.StatusOK, resultToResponse(result))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func resultToResponse(res domain.RecommendationResult) recommendationResponse {
	restaurants := make([]restaurantResponse, len(res.Items))
	for i, it := range res.Items {
		restaurants[i] = restaurantResponse{
			Name:            it.Name,
			Address:         it.Address,
			Summary:         it.Summary.Overview,
			SummaryPros:     nonNil(it.Summary.Pros),
			SummaryCons:     nonNil(it.Summary.Cons),
			IsAdFiltered:    it.AdFiltered,
			FilteredAdCount: it.FilteredAdCount,
			MapX:            it.MapX,
			MapY:            it.MapY,
			Keywords:        nonNil(it.Keywords),
		}
	}
	return recommendationResponse{
		Answer:      res.Answer,
		Restaurants: restaurants,
	}
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}
