// Package handler はパフォーマンスチャートのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"finbar/internal/api"
	"finbar/internal/feature/performance/domain/entity"
	"finbar/internal/feature/performance/transport/http/dto"
)

// PerformanceUsecase はチャート生成のユースケースです。
type PerformanceUsecase interface {
	Chart(ctx context.Context, w entity.Window) (*entity.Chart, error)
}

type PerformanceHandler struct {
	uc PerformanceUsecase
}

func NewPerformanceHandler(uc PerformanceUsecase) *PerformanceHandler {
	return &PerformanceHandler{uc: uc}
}

// GetPerformance は GET /performance?range=1M を処理します。
// - range 未指定は 1M
// - 不明な range は 400 "invalid range"
func (h *PerformanceHandler) GetPerformance(c *gin.Context) {
	w := entity.DefaultWindow
	if raw, ok := c.GetQuery("range"); ok {
		parsed, err := entity.ParseWindow(raw)
		if err != nil {
			slog.Warn("invalid range", "range", raw, "remote_addr", c.ClientIP())
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid range"})
			return
		}
		w = parsed
	}

	chart, err := h.uc.Chart(c.Request.Context(), w)
	if err != nil {
		if errors.Is(err, entity.ErrInvalidWindow) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid range"})
			return
		}
		slog.Error("failed to build performance chart", "error", err, "range", w)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		return
	}
	c.JSON(http.StatusOK, dto.FromChart(chart))
}
