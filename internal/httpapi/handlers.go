package httpapi

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lushai-labs/mizodict/internal/dictionary"
	"github.com/lushai-labs/mizodict/internal/schema"
)

const (
	// batchLimit caps how many items one batch request may translate; excess
	// items are silently ignored.
	batchLimit = 20

	modelName    = "Google Cloud Translate"
	modelVersion = "v2"
)

type translateRequest struct {
	Word string `json:"word"`
}

type translationResponse struct {
	Mizo      string `json:"mizo"`
	English   string `json:"english"`
	Direction string `json:"direction"`
	Detected  string `json:"detected,omitempty"`
	Model     string `json:"model"`
	Cached    bool   `json:"cached"`
	Success   bool   `json:"success"`
}

type batchItem struct {
	Input     string `json:"input"`
	Output    string `json:"output"`
	Direction string `json:"direction"`
}

type batchResponse struct {
	Translations []batchItem `json:"translations"`
	Count        int         `json:"count"`
	Model        string      `json:"model"`
	Success      bool        `json:"success"`
}

func (s *Server) handleTranslateMizo(c echo.Context) error {
	return s.handleSingleTranslate(c, dictionary.MizoToEnglish, "")
}

func (s *Server) handleTranslateEnglish(c echo.Context) error {
	return s.handleSingleTranslate(c, dictionary.EnglishToMizo, "")
}

// handleTranslateAuto routes to whichever direction the input looks like.
// Mizo has no detector model, so anything that does not read as English is
// treated as Mizo.
func (s *Server) handleTranslateAuto(c echo.Context) error {
	var req translateRequest
	if err := c.Bind(&req); err != nil {
		return apiError(c, http.StatusBadRequest, "Invalid request body")
	}

	word := strings.TrimSpace(req.Word)
	if word == "" {
		return apiError(c, http.StatusBadRequest, "No word provided")
	}

	direction := dictionary.MizoToEnglish
	detected := "mizo"
	if s.detectEnglish != nil && s.detectEnglish(word) {
		direction = dictionary.EnglishToMizo
		detected = "english"
	}

	return s.translateAndRespond(c, word, direction, detected)
}

func (s *Server) handleSingleTranslate(c echo.Context, direction dictionary.Direction, detected string) error {
	var req translateRequest
	if err := c.Bind(&req); err != nil {
		return apiError(c, http.StatusBadRequest, "Invalid request body")
	}

	word := strings.TrimSpace(req.Word)
	if word == "" {
		return apiError(c, http.StatusBadRequest, "No word provided")
	}

	return s.translateAndRespond(c, word, direction, detected)
}

func (s *Server) translateAndRespond(c echo.Context, word string, direction dictionary.Direction, detected string) error {
	result, err := s.dict.Translate(c.Request().Context(), word, direction)
	if err != nil {
		return apiError(c, http.StatusInternalServerError, "Translation failed")
	}

	resp := translationResponse{
		Direction: direction.Label(),
		Detected:  detected,
		Model:     modelName,
		Cached:    result.Cached,
		Success:   true,
	}
	if direction == dictionary.EnglishToMizo {
		resp.English = result.Input
		resp.Mizo = result.Output
	} else {
		resp.Mizo = result.Input
		resp.English = result.Output
	}

	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleBatchTranslate(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return apiError(c, http.StatusBadRequest, "Invalid request body")
	}

	req, err := schema.ValidateBatchRequest(body)
	if err != nil {
		return apiError(c, http.StatusBadRequest, "Invalid words list")
	}

	requestedDirection := strings.TrimSpace(req.Direction)
	if requestedDirection == "" {
		requestedDirection = dictionary.MizoToEnglish.String()
	}
	direction, err := dictionary.ParseDirection(requestedDirection)
	if err != nil {
		return apiError(c, http.StatusBadRequest, "Invalid direction")
	}

	words := req.Words
	if len(words) > batchLimit {
		words = words[:batchLimit]
	}

	results := make([]batchItem, 0, len(words))
	for _, word := range words {
		result, translateErr := s.dict.Translate(c.Request().Context(), word, direction)
		if translateErr != nil {
			// Partial failure: drop the item, keep the batch going.
			continue
		}
		results = append(results, batchItem{
			Input:     result.Input,
			Output:    result.Output,
			Direction: requestedDirection,
		})
	}

	return c.JSON(http.StatusOK, batchResponse{
		Translations: results,
		Count:        len(results),
		Model:        modelName,
		Success:      true,
	})
}

func (s *Server) handleStatus(c echo.Context) error {
	cache := s.dict.Cache()
	return c.JSON(http.StatusOK, map[string]any{
		"model_loaded":  true,
		"model_name":    modelName + " API",
		"model_version": modelVersion,
		"cache_size": map[string]int{
			"mizo_to_english": cache.Size(dictionary.MizoToEnglish),
			"english_to_mizo": cache.Size(dictionary.EnglishToMizo),
		},
		"api_key_configured": s.opts.APIKeyConfigured,
		"uptime_seconds":     int(time.Since(s.startedAt).Seconds()),
		"status":             "online",
	})
}

func (s *Server) handleClearCache(c echo.Context) error {
	s.dict.Cache().Clear()
	s.logger.Info().Msg("translation cache cleared")
	return c.JSON(http.StatusOK, map[string]any{
		"message": "Cache cleared",
		"success": true,
	})
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"service": "mizodict",
		"time":    time.Now().UTC(),
		"success": true,
	})
}
