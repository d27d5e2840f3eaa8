package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finbar/internal/feature/portfolio/domain/entity"
	"finbar/internal/feature/portfolio/usecase"
	jwtmw "finbar/internal/platform/jwt"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type mockPortfolioUsecase struct {
	ListFunc   func(userID uint) ([]entity.Portfolio, error)
	CreateFunc func(userID uint, in usecase.Input) (*entity.Portfolio, error)
	UpdateFunc func(userID uint, id string, in usecase.Input) (*entity.Portfolio, error)
	DeleteFunc func(userID uint, id string) error
}

func (m *mockPortfolioUsecase) List(_ context.Context, userID uint) ([]entity.Portfolio, error) {
	if m.ListFunc != nil {
		return m.ListFunc(userID)
	}
	return nil, nil
}

func (m *mockPortfolioUsecase) Create(_ context.Context, userID uint, in usecase.Input) (*entity.Portfolio, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(userID, in)
	}
	return &entity.Portfolio{ID: "new", UserID: userID, Name: in.Name, AccountNumber: in.AccountNumber, Fee: in.Fee}, nil
}

func (m *mockPortfolioUsecase) Update(_ context.Context, userID uint, id string, in usecase.Input) (*entity.Portfolio, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(userID, id, in)
	}
	return &entity.Portfolio{ID: id, UserID: userID, Name: in.Name}, nil
}

func (m *mockPortfolioUsecase) Delete(_ context.Context, userID uint, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(userID, id)
	}
	return nil
}

func newRouter(uc PortfolioUsecase) *gin.Engine {
	h := NewPortfolioHandler(uc)
	r := gin.New()
	g := r.Group("/portfolios", func(c *gin.Context) {
		c.Set(jwtmw.ContextUserID, uint(7))
		c.Next()
	})
	g.GET("", h.List)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPortfolioHandler_List(t *testing.T) {
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	uc := &mockPortfolioUsecase{ListFunc: func(userID uint) ([]entity.Portfolio, error) {
		assert.Equal(t, uint(7), userID)
		return []entity.Portfolio{{ID: "a", Name: "Main", AccountNumber: "1", Fee: decimal.RequireFromString("4.5"), CreatedAt: created}}, nil
	}}

	w := do(newRouter(uc), http.MethodGet, "/portfolios", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, "a", body[0]["id"])
	assert.Equal(t, 4.5, body[0]["fee"])
	assert.Equal(t, "1", body[0]["account_number"])
}

func TestPortfolioHandler_List_EmptyIsArray(t *testing.T) {
	w := do(newRouter(&mockPortfolioUsecase{}), http.MethodGet, "/portfolios", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestPortfolioHandler_Create(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		createFunc     func(userID uint, in usecase.Input) (*entity.Portfolio, error)
		expectedStatus int
	}{
		{"success with numeric fee", `{"name":"Main","account_number":"123","fee":4.9}`, nil, http.StatusCreated},
		{"success with string fee", `{"name":"Main","account_number":"123","fee":"4.9"}`, nil, http.StatusCreated},
		{"missing name", `{"account_number":"123","fee":1}`, nil, http.StatusBadRequest},
		{"malformed fee", `{"name":"Main","account_number":"123","fee":"abc"}`, nil, http.StatusBadRequest},
		{
			"usecase validation",
			`{"name":"Main","account_number":"123","fee":-1}`,
			func(uint, usecase.Input) (*entity.Portfolio, error) {
				return nil, errors.Join(usecase.ErrInvalidInput, errors.New("fee must not be negative"))
			},
			http.StatusBadRequest,
		},
		{
			"backend failure",
			`{"name":"Main","account_number":"123"}`,
			func(uint, usecase.Input) (*entity.Portfolio, error) { return nil, errors.New("db down") },
			http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(newRouter(&mockPortfolioUsecase{CreateFunc: tt.createFunc}), http.MethodPost, "/portfolios", tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			if tt.expectedStatus == http.StatusCreated {
				var body map[string]any
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, 4.9, body["fee"])
			}
		})
	}
}

func TestPortfolioHandler_UpdateAndDelete_NotFound(t *testing.T) {
	uc := &mockPortfolioUsecase{
		UpdateFunc: func(uint, string, usecase.Input) (*entity.Portfolio, error) { return nil, usecase.ErrNotFound },
		DeleteFunc: func(_ uint, id string) error {
			if id == "mine" {
				return nil
			}
			return usecase.ErrNotFound
		},
	}
	r := newRouter(uc)

	w := do(r, http.MethodPut, "/portfolios/other", `{"name":"x","account_number":"1"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodDelete, "/portfolios/mine", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(r, http.MethodDelete, "/portfolios/other", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
