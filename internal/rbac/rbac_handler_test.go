package rbac_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"leavedesk/internal/domain"
	"leavedesk/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type mockService struct{}

func (m *mockService) LoadPolicy() error {
	return nil
}

func (m *mockService) Enforce(req domain.EnforceRequest) (bool, error) {
	if req.Resource == "leave" && req.Action == "read" {
		return true, nil
	}
	return false, nil
}

func TestHandler_Enforce(t *testing.T) {
	gin.SetMode(gin.TestMode)

	handler := rbac.NewHandler(&mockService{})

	router := gin.New()
	router.POST("/rbac/enforce", handler.Enforce)

	t.Run("allowed", func(t *testing.T) {
		body, _ := json.Marshal(rbac.EnforceRequest{
			EmployeeID: "emp-1",
			Resource:   "leave",
			Action:     "read",
		})

		req, _ := http.NewRequest(http.MethodPost, "/rbac/enforce", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var env struct {
			Ok   bool                 `json:"ok"`
			Data rbac.EnforceResponse `json:"data"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.True(t, env.Ok)
		assert.True(t, env.Data.Allowed)
	})

	t.Run("missing fields rejected", func(t *testing.T) {
		body, _ := json.Marshal(rbac.EnforceRequest{Resource: "leave"})

		req, _ := http.NewRequest(http.MethodPost, "/rbac/enforce", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
