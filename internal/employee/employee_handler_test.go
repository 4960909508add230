package employee_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"go-attendance/internal/employee"
	employeeerrors "go-attendance/internal/employee/errors"
	"go-attendance/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	apperror.Init()
	os.Exit(m.Run())
}

type fakeEmployeeService struct {
	registerFn func(ctx context.Context, req employee.RegisterEmployeeRequest) (employee.EmployeeResponse, error)
	listFn     func(ctx context.Context) ([]employee.EmployeeResponse, error)
	getByIDFn  func(ctx context.Context, id string) (employee.EmployeeResponse, error)
	deleteFn   func(ctx context.Context, id string) error
}

func (f *fakeEmployeeService) Register(ctx context.Context, req employee.RegisterEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.registerFn(ctx, req)
}

func (f *fakeEmployeeService) List(ctx context.Context) ([]employee.EmployeeResponse, error) {
	return f.listFn(ctx)
}

func (f *fakeEmployeeService) GetByID(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakeEmployeeService) Delete(ctx context.Context, id string) error {
	return f.deleteFn(ctx, id)
}

func setupEmployeeRouter(svc employee.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := employee.NewHandler(svc)
	grp := router.Group("/api/employees")
	grp.GET("/", h.List)
	grp.POST("/", h.Register)
	grp.DELETE("/:id/", h.Delete)
	return router
}

func TestEmployeeHandler_Register(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := &fakeEmployeeService{
			registerFn: func(ctx context.Context, req employee.RegisterEmployeeRequest) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{
					ID:           "4e4d3f2a-0000-0000-0000-000000000001",
					EmployeeCode: req.EmployeeCode,
					FullName:     req.FullName,
					Email:        req.Email,
					Department:   req.Department,
				}, nil
			},
		}
		router := setupEmployeeRouter(svc)

		body, _ := json.Marshal(gin.H{
			"employee_id": "EMP001",
			"full_name":   "Jane Doe",
			"email":       "jane@x.com",
			"department":  "Engineering",
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/employees/", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp map[string]any
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "EMP001", resp["employee_id"])
		assert.Equal(t, "Jane Doe", resp["full_name"])
	})

	t.Run("missing fields gets field-keyed body", func(t *testing.T) {
		router := setupEmployeeRouter(&fakeEmployeeService{})

		body, _ := json.Marshal(gin.H{"full_name": "Jane Doe"})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/employees/", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp map[string][]string
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Contains(t, resp, "employee_id")
		assert.Contains(t, resp, "email")
		assert.NotContains(t, resp, "full_name")
	})

	t.Run("malformed email gets field-keyed body", func(t *testing.T) {
		router := setupEmployeeRouter(&fakeEmployeeService{})

		body, _ := json.Marshal(gin.H{
			"employee_id": "EMP001",
			"full_name":   "Jane Doe",
			"email":       "not-an-email",
			"department":  "Engineering",
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/employees/", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp map[string][]string
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, []string{"Enter a valid email address."}, resp["email"])
	})

	t.Run("duplicate code conflict", func(t *testing.T) {
		svc := &fakeEmployeeService{
			registerFn: func(ctx context.Context, req employee.RegisterEmployeeRequest) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, employeeerrors.ErrEmployeeCodeExists
			},
		}
		router := setupEmployeeRouter(svc)

		body, _ := json.Marshal(gin.H{
			"employee_id": "EMP001",
			"full_name":   "Jane Doe",
			"email":       "jane@x.com",
			"department":  "Engineering",
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/employees/", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)

		var resp map[string][]string
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, []string{"Employee with this ID already exists."}, resp["employee_id"])
	})
}

func TestEmployeeHandler_List(t *testing.T) {
	t.Run("bare array", func(t *testing.T) {
		svc := &fakeEmployeeService{
			listFn: func(ctx context.Context) ([]employee.EmployeeResponse, error) {
				return []employee.EmployeeResponse{
					{ID: "a", EmployeeCode: "EMP001"},
					{ID: "b", EmployeeCode: "EMP002"},
				}, nil
			},
		}
		router := setupEmployeeRouter(svc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/employees/", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp []map[string]any
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp, 2)
		assert.Equal(t, "EMP001", resp[0]["employee_id"])
	})

	t.Run("empty roster is an empty array", func(t *testing.T) {
		svc := &fakeEmployeeService{
			listFn: func(ctx context.Context) ([]employee.EmployeeResponse, error) {
				return []employee.EmployeeResponse{}, nil
			},
		}
		router := setupEmployeeRouter(svc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/employees/", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "[]", w.Body.String())
	})
}

func TestEmployeeHandler_Delete(t *testing.T) {
	t.Run("no content", func(t *testing.T) {
		var gotID string
		svc := &fakeEmployeeService{
			deleteFn: func(ctx context.Context, id string) error {
				gotID = id
				return nil
			},
		}
		router := setupEmployeeRouter(svc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/api/employees/4e4d3f2a-0000-0000-0000-000000000001/", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
		assert.Equal(t, "4e4d3f2a-0000-0000-0000-000000000001", gotID)
	})

	t.Run("not found", func(t *testing.T) {
		svc := &fakeEmployeeService{
			deleteFn: func(ctx context.Context, id string) error {
				return employeeerrors.ErrEmployeeNotFound
			},
		}
		router := setupEmployeeRouter(svc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/api/employees/4e4d3f2a-0000-0000-0000-000000000009/", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)

		var resp map[string]string
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Employee not found.", resp["error"])
	})

	t.Run("attendance still on file", func(t *testing.T) {
		svc := &fakeEmployeeService{
			deleteFn: func(ctx context.Context, id string) error {
				return employeeerrors.ErrEmployeeHasAttendance
			},
		}
		router := setupEmployeeRouter(svc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/api/employees/4e4d3f2a-0000-0000-0000-000000000001/", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}
