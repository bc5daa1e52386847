// Package transport exposes the rating service over HTTP.
package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"go-performative-rater/internal/config"
	apperrors "go-performative-rater/internal/errors"
	"go-performative-rater/internal/logger"
	"go-performative-rater/internal/service"
	"go-performative-rater/pkg/models"
)

// NewHandler builds the HTTP routing tree over the rating service.
func NewHandler(svc service.RatingService, cfg *config.Config) http.Handler {
	r := gin.Default()

	r.Use(requestSizeLimiter(cfg.MaxRequestBodySize))

	r.GET("/health", healthCheck(svc))
	r.POST("/rate", rateImage(svc, cfg))
	r.PUT("/dictionary", updateDictionary(svc))

	return r
}

// rateImage accepts either a multipart upload (field "image") or a JSON
// body carrying an image URL, and responds with the rating result.
func rateImage(svc service.RatingService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
		defer cancel()

		logger.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"user_agent": c.Request.UserAgent(),
			"ip":         c.ClientIP(),
		}).Info("Processing rating request")

		var result *models.RatingResult
		var err error

		if isMultipart(c) {
			var image []byte
			image, err = readUploadedImage(c)
			if err == nil {
				result, err = svc.Rate(ctx, image)
			}
		} else {
			var req models.RateRequest
			if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
				respondError(c, http.StatusBadRequest, "invalid request format", bindErr)
				return
			}
			result, err = svc.RateURL(ctx, req.URL)
		}

		if err != nil {
			respondError(c, apperrors.GetStatusCode(err), "rating failed", err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.GetHeader("Content-Type"), "multipart/form-data")
}

func readUploadedImage(c *gin.Context) ([]byte, error) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return nil, apperrors.NewInvalidInputError(`multipart field "image" is required`, err)
	}
	file, err := fileHeader.Open()
	if err != nil {
		return nil, apperrors.NewInvalidInputError("could not open uploaded image", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, apperrors.NewInvalidInputError("could not read uploaded image", err)
	}
	return data, nil
}

func healthCheck(svc service.RatingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, svc.HealthStatus())
	}
}

// updateDictionary merges new keyword weights at runtime. The whole batch
// is applied atomically or not at all.
func updateDictionary(svc service.RatingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.DictionaryUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "invalid request format", err)
			return
		}
		if len(req.Entries) == 0 {
			respondError(c, http.StatusBadRequest, "dictionary update is empty",
				apperrors.NewInvalidInputError("entries are required", nil))
			return
		}
		if err := svc.UpdateKeywords(req.Entries); err != nil {
			respondError(c, apperrors.GetStatusCode(err), "dictionary update rejected", err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func requestSizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

func respondError(c *gin.Context, code int, message string, err error) {
	logger.WithError(err).WithFields(logrus.Fields{
		"status_code": code,
		"message":     message,
		"path":        c.Request.URL.Path,
		"method":      c.Request.Method,
		"ip":          c.ClientIP(),
	}).Error("Request failed")

	if errors.Is(err, context.DeadlineExceeded) {
		code = http.StatusGatewayTimeout
	}

	c.AbortWithStatusJSON(code, models.ErrorResponse{
		Error:   http.StatusText(code),
		Message: fmt.Sprintf("%s: %v", message, err),
	})
}
