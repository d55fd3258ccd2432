package api

import (
	"errors"
	"net/http"

	"github.com/BerylCAtieno/admissions-predictor/internal/metrics"
	"github.com/BerylCAtieno/admissions-predictor/internal/models"
	"github.com/BerylCAtieno/admissions-predictor/internal/predictor"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	MissingInputMessage  = "Missing student profile or college list."
	InternalErrorMessage = "An error occurred while getting predictions."
)

type PredictionHandler struct {
	predictor *predictor.Predictor
	logger    *zap.Logger
}

func NewPredictionHandler(p *predictor.Predictor, log *zap.Logger) *PredictionHandler {
	return &PredictionHandler{
		predictor: p,
		logger:    log.Named("api"),
	}
}

// HandlePredictions serves POST /get-predictions. Only missing input gets a
// 400; every other failure is a generic 500.
func (h *PredictionHandler) HandlePredictions(c *gin.Context) {
	log := h.logger.With(zap.String("request_id", c.GetString(requestIDKey)))

	var req models.PredictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("invalid request body", zap.Error(err))
		h.fail(c, log, predictor.ErrMissingInput)
		return
	}

	profile, colleges, err := predictor.ParseRequest(req)
	if err != nil {
		h.fail(c, log, err)
		return
	}

	predictions, err := h.predictor.Predict(c.Request.Context(), profile, colleges)
	if err != nil {
		h.fail(c, log, err)
		return
	}

	log.Info("predictions generated",
		zap.Int("colleges", len(colleges)),
		zap.Int("predictions", len(predictions)),
	)
	metrics.PredictionRequests.WithLabelValues(metrics.OutcomeOK).Inc()
	c.JSON(http.StatusOK, models.PredictionResponse{Predictions: predictions})
}

func (h *PredictionHandler) fail(c *gin.Context, log *zap.Logger, err error) {
	code := predictor.ErrorCode(err)
	metrics.PredictionRequests.WithLabelValues(code).Inc()

	if errors.Is(err, predictor.ErrMissingInput) {
		log.Warn("missing prediction input", zap.String("error_code", code))
		c.String(http.StatusBadRequest, MissingInputMessage)
		return
	}

	log.Error("failed to get predictions", zap.String("error_code", code), zap.Error(err))
	c.String(http.StatusInternalServerError, InternalErrorMessage)
}
