package api

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/singleflight"

	apperrors "github.com/youruser/hashprint/internal/errors"
	"github.com/youruser/hashprint/internal/history"
	imagepkg "github.com/youruser/hashprint/internal/image"
	"github.com/youruser/hashprint/internal/pipeline"
	"github.com/youruser/hashprint/internal/util"
)

type Runner interface {
	Run(ctx context.Context) (*pipeline.Result, error)
	OutputPath() string
}

type HistoryLister interface {
	List(ctx context.Context, limit int) ([]history.Run, error)
}

type Handler struct {
	runner    Runner
	history   HistoryLister
	publicURL string
	logger    *slog.Logger
	flight    singleflight.Group
}

// NewHandler builds the API handlers. history may be nil.
func NewHandler(runner Runner, history HistoryLister, publicURL string, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		runner:    runner,
		history:   history,
		publicURL: publicURL,
		logger:    logger,
	}
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// triggerRun starts a pipeline run. Requests arriving while a run is in
// flight wait for it and share its result.
func (h *Handler) triggerRun(c *gin.Context) {
	ctx := context.WithoutCancel(c.Request.Context())
	v, err, shared := h.flight.Do("run", func() (interface{}, error) {
		return h.runner.Run(ctx)
	})
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error(), "kind": apperrors.KindOf(err)})
		return
	}

	res := v.(*pipeline.Result)
	if res.Skipped {
		c.JSON(http.StatusPreconditionFailed, gin.H{"error": "overlay image not found", "result": res})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"result": res, "shared": shared})
}

func (h *Handler) listRuns(c *gin.Context) {
	if h.history == nil {
		c.JSON(http.StatusOK, gin.H{"count": 0, "runs": []history.Run{}})
		return
	}
	limit := 20
	if s := c.Query("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = v
	}
	runs, err := h.history.List(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("listing runs failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(runs), "runs": runs})
}

func (h *Handler) latest(c *gin.Context) {
	path := h.runner.OutputPath()
	if !util.FileExists(path) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no composite yet"})
		return
	}
	c.File(path)
}

// qr returns a PNG QR code for "text", defaulting to the latest composite's URL.
func (h *Handler) qr(c *gin.Context) {
	text := c.Query("text")
	if text == "" {
		text = h.publicURL + "/api/latest"
	}
	size := 400
	if sizeStr := c.Query("size"); sizeStr != "" {
		if v, err := strconv.Atoi(sizeStr); err == nil {
			size = v
		}
	}
	b, err := imagepkg.QRCodePNG(text, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}

func statusFor(err error) int {
	switch apperrors.KindOf(err) {
	case apperrors.KindNetwork, apperrors.KindInvalidResponse, apperrors.KindMissingField, apperrors.KindDecode:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
