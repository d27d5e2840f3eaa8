// Package handler はactionフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"finbar/internal/api"
	"finbar/internal/feature/action/domain/entity"
	"finbar/internal/feature/action/transport/http/dto"
	"finbar/internal/feature/action/usecase"
	jwtmw "finbar/internal/platform/jwt"
)

// ActionUsecase はハンドラーが必要とするアクション操作です。
type ActionUsecase interface {
	Record(ctx context.Context, userID uint, in usecase.Input) (*entity.Action, error)
	List(ctx context.Context, userID uint, portfolioID string) ([]entity.Action, error)
}

// ActionHandler handles /actions.
type ActionHandler struct {
	uc ActionUsecase
}

// NewActionHandler はActionHandlerを生成します。
func NewActionHandler(uc ActionUsecase) *ActionHandler {
	return &ActionHandler{uc: uc}
}

// Create は POST /actions を処理します。
// - JSONが不正な場合は400
// - 入力検証エラーは400でメッセージをそのまま返却
// - ポートフォリオが呼び出し元のものでなければ404
func (h *ActionHandler) Create(c *gin.Context) {
	userID, ok := jwtmw.UserIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}
	var req dto.CreateActionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("action request malformed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	a, err := h.uc.Record(c.Request.Context(), userID, req.ToInput())
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidAction):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		case errors.Is(err, usecase.ErrPortfolioNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "portfolio not found"})
		default:
			slog.Error("record action failed", "error", err, "user_id", userID)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		}
		return
	}
	slog.Info("action recorded", "user_id", userID, "action_id", a.ID, "type", a.Type)
	c.JSON(http.StatusCreated, dto.FromEntity(*a))
}

// List は GET /actions?portfolio_id= を処理します。
func (h *ActionHandler) List(c *gin.Context) {
	userID, ok := jwtmw.UserIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}
	list, err := h.uc.List(c.Request.Context(), userID, c.Query("portfolio_id"))
	if err != nil {
		slog.Error("list actions failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		return
	}
	c.JSON(http.StatusOK, dto.FromEntities(list))
}
