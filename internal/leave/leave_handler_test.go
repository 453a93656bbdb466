package leave_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"leavedesk/internal/leave"
	leaveerrors "leavedesk/internal/leave/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeLeaveService struct {
	createFn           func(ctx context.Context, actorUserID string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error)
	getAllFn           func(ctx context.Context) ([]leave.LeaveResponse, error)
	getAllByEmployeeFn func(ctx context.Context, employeeID string) ([]leave.LeaveResponse, error)
	getByIDFn          func(ctx context.Context, id string) (leave.LeaveResponse, error)
	updateFn           func(ctx context.Context, actorEmployeeID, id string, req leave.UpdateLeaveRequest) (leave.LeaveResponse, error)
	decideFn           func(ctx context.Context, approverID, id string, req leave.DecideLeaveRequest) (leave.LeaveResponse, error)
	cancelFn           func(ctx context.Context, actorEmployeeID, id string) (leave.LeaveResponse, error)
	balanceFn          func(ctx context.Context, employeeID string, year int) (leave.BalanceResponse, error)
}

func (f *fakeLeaveService) Create(ctx context.Context, actorUserID string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
	return f.createFn(ctx, actorUserID, req)
}
func (f *fakeLeaveService) GetAll(ctx context.Context) ([]leave.LeaveResponse, error) {
	return f.getAllFn(ctx)
}
func (f *fakeLeaveService) GetAllByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveResponse, error) {
	return f.getAllByEmployeeFn(ctx, employeeID)
}
func (f *fakeLeaveService) GetByID(ctx context.Context, id string) (leave.LeaveResponse, error) {
	return f.getByIDFn(ctx, id)
}
func (f *fakeLeaveService) Update(ctx context.Context, actorEmployeeID, id string, req leave.UpdateLeaveRequest) (leave.LeaveResponse, error) {
	return f.updateFn(ctx, actorEmployeeID, id, req)
}
func (f *fakeLeaveService) Decide(ctx context.Context, approverID, id string, req leave.DecideLeaveRequest) (leave.LeaveResponse, error) {
	return f.decideFn(ctx, approverID, id, req)
}
func (f *fakeLeaveService) Cancel(ctx context.Context, actorEmployeeID, id string) (leave.LeaveResponse, error) {
	return f.cancelFn(ctx, actorEmployeeID, id)
}
func (f *fakeLeaveService) Balance(ctx context.Context, employeeID string, year int) (leave.BalanceResponse, error) {
	return f.balanceFn(ctx, employeeID, year)
}

func newLeaveRouter(service leave.Service, userID, employeeID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := leave.NewHandler(service)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("employee_id", employeeID)
		c.Next()
	})

	router.POST("/leaves", handler.Create)
	router.GET("/leaves", handler.GetAll)
	router.GET("/leaves/:id", handler.GetById)
	router.PUT("/leaves/:id", handler.Update)
	router.PATCH("/leaves/:id/decision", handler.Decide)
	router.POST("/leaves/:id/cancel", handler.Cancel)
	router.GET("/leaves/balance/:employeeId", handler.GetEmployeeLeaveBalance)
	return router
}

func TestLeaveHandler_Create(t *testing.T) {
	userID := uuid.New().String()
	employeeID := uuid.New().String()

	t.Run("created", func(t *testing.T) {
		service := &fakeLeaveService{
			createFn: func(ctx context.Context, actorUserID string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
				assert.Equal(t, userID, actorUserID)
				assert.Equal(t, "ANNUAL", req.Type)
				return leave.LeaveResponse{ID: uuid.New().String(), Status: "PENDING"}, nil
			},
		}
		router := newLeaveRouter(service, userID, employeeID)

		body := `{"employee_id":"` + employeeID + `","type":"ANNUAL","start_date":"2030-03-04","end_date":"2030-03-06","total_days":3,"reason":"trip"}`
		req := httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
	})

	t.Run("binding failure is a 400", func(t *testing.T) {
		service := &fakeLeaveService{
			createFn: func(ctx context.Context, actorUserID string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
				t.Fatal("service must not be reached on invalid input")
				return leave.LeaveResponse{}, nil
			},
		}
		router := newLeaveRouter(service, userID, employeeID)

		body := `{"employee_id":"not-a-uuid","type":"ANNUAL"}`
		req := httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	})

	t.Run("overlap maps to 409 with code", func(t *testing.T) {
		service := &fakeLeaveService{
			createFn: func(ctx context.Context, actorUserID string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrLeaveOverlap
			},
		}
		router := newLeaveRouter(service, userID, employeeID)

		body := `{"employee_id":"` + employeeID + `","type":"ANNUAL","start_date":"2030-03-04","end_date":"2030-03-06","total_days":3}`
		req := httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "OVERLAP", env.Error.Code)
	})
}

func TestLeaveHandler_GetAll(t *testing.T) {
	userID := uuid.New().String()
	employeeID := uuid.New().String()

	t.Run("filters by employee when the query param is set", func(t *testing.T) {
		service := &fakeLeaveService{
			getAllByEmployeeFn: func(ctx context.Context, eid string) ([]leave.LeaveResponse, error) {
				assert.Equal(t, employeeID, eid)
				return []leave.LeaveResponse{{ID: uuid.New().String()}}, nil
			},
		}
		router := newLeaveRouter(service, userID, employeeID)

		req := httptest.NewRequest(http.MethodGet, "/leaves?employee_id="+employeeID, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)

		var items []leave.LeaveResponse
		assert.NoError(t, json.Unmarshal(env.Data, &items))
		assert.Len(t, items, 1)
	})

	t.Run("paginates the full listing", func(t *testing.T) {
		service := &fakeLeaveService{
			getAllFn: func(ctx context.Context) ([]leave.LeaveResponse, error) {
				items := make([]leave.LeaveResponse, 15)
				for i := range items {
					items[i] = leave.LeaveResponse{ID: uuid.New().String()}
				}
				return items, nil
			},
		}
		router := newLeaveRouter(service, userID, employeeID)

		req := httptest.NewRequest(http.MethodGet, "/leaves?page=2&page_size=10", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		var items []leave.LeaveResponse
		assert.NoError(t, json.Unmarshal(env.Data, &items))
		assert.Len(t, items, 5)
	})
}

func TestLeaveHandler_Decide(t *testing.T) {
	userID := uuid.New().String()
	employeeID := uuid.New().String()

	t.Run("approver comes from the token context", func(t *testing.T) {
		leaveID := uuid.New().String()
		service := &fakeLeaveService{
			decideFn: func(ctx context.Context, approverID, id string, req leave.DecideLeaveRequest) (leave.LeaveResponse, error) {
				assert.Equal(t, userID, approverID)
				assert.Equal(t, leaveID, id)
				assert.Equal(t, "APPROVED", req.Status)
				return leave.LeaveResponse{ID: id, Status: "APPROVED"}, nil
			},
		}
		router := newLeaveRouter(service, userID, employeeID)

		req := httptest.NewRequest(http.MethodPatch, "/leaves/"+leaveID+"/decision", strings.NewReader(`{"status":"APPROVED"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("invalid status rejected by binding", func(t *testing.T) {
		service := &fakeLeaveService{
			decideFn: func(ctx context.Context, approverID, id string, req leave.DecideLeaveRequest) (leave.LeaveResponse, error) {
				t.Fatal("service must not be reached")
				return leave.LeaveResponse{}, nil
			},
		}
		router := newLeaveRouter(service, userID, employeeID)

		req := httptest.NewRequest(http.MethodPatch, "/leaves/"+uuid.New().String()+"/decision", strings.NewReader(`{"status":"CANCELLED"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("not pending maps to 409", func(t *testing.T) {
		service := &fakeLeaveService{
			decideFn: func(ctx context.Context, approverID, id string, req leave.DecideLeaveRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrLeaveNotPending
			},
		}
		router := newLeaveRouter(service, userID, employeeID)

		req := httptest.NewRequest(http.MethodPatch, "/leaves/"+uuid.New().String()+"/decision", strings.NewReader(`{"status":"APPROVED"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "NOT_PENDING", env.Error.Code)
	})
}

func TestLeaveHandler_Cancel(t *testing.T) {
	userID := uuid.New().String()
	employeeID := uuid.New().String()

	t.Run("actor is the employee from the token", func(t *testing.T) {
		leaveID := uuid.New().String()
		service := &fakeLeaveService{
			cancelFn: func(ctx context.Context, actorEmployeeID, id string) (leave.LeaveResponse, error) {
				assert.Equal(t, employeeID, actorEmployeeID)
				assert.Equal(t, leaveID, id)
				return leave.LeaveResponse{ID: id, Status: "CANCELLED"}, nil
			},
		}
		router := newLeaveRouter(service, userID, employeeID)

		req := httptest.NewRequest(http.MethodPost, "/leaves/"+leaveID+"/cancel", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("forbidden for non-owner", func(t *testing.T) {
		service := &fakeLeaveService{
			cancelFn: func(ctx context.Context, actorEmployeeID, id string) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrNotRequestOwner
			},
		}
		router := newLeaveRouter(service, userID, employeeID)

		req := httptest.NewRequest(http.MethodPost, "/leaves/"+uuid.New().String()+"/cancel", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestLeaveHandler_Balance(t *testing.T) {
	userID := uuid.New().String()
	employeeID := uuid.New().String()

	t.Run("year defaults to zero when absent", func(t *testing.T) {
		service := &fakeLeaveService{
			balanceFn: func(ctx context.Context, eid string, year int) (leave.BalanceResponse, error) {
				assert.Equal(t, employeeID, eid)
				assert.Equal(t, 0, year)
				return leave.BalanceResponse{Year: 2026, TotalAllowance: 20, Used: 5, Remaining: 15}, nil
			},
		}
		router := newLeaveRouter(service, userID, employeeID)

		req := httptest.NewRequest(http.MethodGet, "/leaves/balance/"+employeeID, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		var balance leave.BalanceResponse
		assert.NoError(t, json.Unmarshal(env.Data, &balance))
		assert.Equal(t, 15, balance.Remaining)
	})

	t.Run("non-numeric year is a 400", func(t *testing.T) {
		service := &fakeLeaveService{
			balanceFn: func(ctx context.Context, eid string, year int) (leave.BalanceResponse, error) {
				t.Fatal("service must not be reached")
				return leave.BalanceResponse{}, nil
			},
		}
		router := newLeaveRouter(service, userID, employeeID)

		req := httptest.NewRequest(http.MethodGet, "/leaves/balance/"+employeeID+"?year=abc", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
