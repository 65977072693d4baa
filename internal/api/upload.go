package api

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bjo163/pairlink/pkg/metrics"
)

// dataURIPattern matches base64 image data URIs from canvas.toDataURL and
// FileReader.readAsDataURL.
var dataURIPattern = regexp.MustCompile(`^data:image/(\w+);base64,(.+)$`)

type uploadImageRequest struct {
	PairId    interface{} `json:"pairId"`
	ImageData string      `json:"imageData"`
	Kind      string      `json:"type"`
}

func (h *Handler) uploadImage(c echo.Context) error {
	var req uploadImageRequest
	if err := c.Bind(&req); err != nil {
		return errJSON(c, http.StatusBadRequest, "Invalid request body")
	}

	pairID := parsePairID(req.PairId)
	if pairID == 0 || req.ImageData == "" {
		return errJSON(c, http.StatusBadRequest, "Missing pairId or imageData")
	}

	m := dataURIPattern.FindStringSubmatch(req.ImageData)
	if m == nil {
		return errJSON(c, http.StatusBadRequest, "Invalid image data format")
	}
	ext := m[1]
	if ext == "jpeg" {
		ext = "jpg"
	}

	data, err := base64.StdEncoding.DecodeString(m[2])
	if err != nil {
		return errJSON(c, http.StatusBadRequest, "Invalid image data format")
	}

	prefix := "messages"
	if req.Kind == "background" {
		prefix = "backgrounds"
	}
	key := fmt.Sprintf("%s/%d/%d.%s", prefix, pairID, time.Now().UnixMilli(), ext)

	url, err := h.blobs.Put(c.Request().Context(), key, "image/"+m[1], data)
	if err != nil {
		return writeError(c, err)
	}

	metrics.IncrCounter(metrics.UploadBytes, int64(len(data)))
	return c.JSON(http.StatusOK, map[string]interface{}{"url": url, "success": true})
}
