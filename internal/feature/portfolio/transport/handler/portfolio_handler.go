// Package handler はportfolioフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"finbar/internal/api"
	"finbar/internal/feature/portfolio/domain/entity"
	"finbar/internal/feature/portfolio/transport/http/dto"
	"finbar/internal/feature/portfolio/usecase"
	jwtmw "finbar/internal/platform/jwt"
)

// PortfolioUsecase はハンドラーが必要とするポートフォリオ操作です。
type PortfolioUsecase interface {
	List(ctx context.Context, userID uint) ([]entity.Portfolio, error)
	Create(ctx context.Context, userID uint, in usecase.Input) (*entity.Portfolio, error)
	Update(ctx context.Context, userID uint, id string, in usecase.Input) (*entity.Portfolio, error)
	Delete(ctx context.Context, userID uint, id string) error
}

// PortfolioHandler handles /portfolios.
type PortfolioHandler struct {
	uc PortfolioUsecase
}

// NewPortfolioHandler はPortfolioHandlerを生成します。
func NewPortfolioHandler(uc PortfolioUsecase) *PortfolioHandler {
	return &PortfolioHandler{uc: uc}
}

// List は GET /portfolios を処理します。
func (h *PortfolioHandler) List(c *gin.Context) {
	userID, ok := jwtmw.UserIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}
	list, err := h.uc.List(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err, userID)
		return
	}
	c.JSON(http.StatusOK, dto.FromEntities(list))
}

// Create は POST /portfolios を処理します。
func (h *PortfolioHandler) Create(c *gin.Context) {
	userID, ok := jwtmw.UserIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}
	in, ok := bindInput(c)
	if !ok {
		return
	}
	p, err := h.uc.Create(c.Request.Context(), userID, in)
	if err != nil {
		h.fail(c, err, userID)
		return
	}
	slog.Info("portfolio created", "user_id", userID, "portfolio_id", p.ID)
	c.JSON(http.StatusCreated, dto.FromEntity(*p))
}

// Update は PUT /portfolios/:id を処理します。
func (h *PortfolioHandler) Update(c *gin.Context) {
	userID, ok := jwtmw.UserIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}
	in, ok := bindInput(c)
	if !ok {
		return
	}
	p, err := h.uc.Update(c.Request.Context(), userID, c.Param("id"), in)
	if err != nil {
		h.fail(c, err, userID)
		return
	}
	c.JSON(http.StatusOK, dto.FromEntity(*p))
}

// Delete は DELETE /portfolios/:id を処理します。
func (h *PortfolioHandler) Delete(c *gin.Context) {
	userID, ok := jwtmw.UserIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}
	if err := h.uc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.fail(c, err, userID)
		return
	}
	slog.Info("portfolio deleted", "user_id", userID, "portfolio_id", c.Param("id"))
	c.Status(http.StatusNoContent)
}

func bindInput(c *gin.Context) (usecase.Input, bool) {
	var req dto.PortfolioReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("portfolio validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return usecase.Input{}, false
	}
	return usecase.Input{Name: req.Name, AccountNumber: req.AccountNumber, Fee: req.Fee}, true
}

func (h *PortfolioHandler) fail(c *gin.Context, err error, userID uint) {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, usecase.ErrNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "portfolio not found"})
	default:
		slog.Error("portfolio request failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
	}
}
