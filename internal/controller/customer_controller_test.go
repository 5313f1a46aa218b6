package controller_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/unclebandit/customer-service/internal/controller"
	appErrors "github.com/unclebandit/customer-service/internal/errors"
	"github.com/unclebandit/customer-service/internal/handler"
	"github.com/unclebandit/customer-service/internal/logger"
	"github.com/unclebandit/customer-service/internal/model"
	"github.com/unclebandit/customer-service/internal/service/mocks"
)

func newMockedRouter(t *testing.T) (http.Handler, *mocks.MockCustomerServiceInterface) {
	t.Helper()
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockCustomerServiceInterface(ctrl)
	return handler.NewRouter(logger.Nop(), nil, controller.NewCustomerController(svc)), svc
}

func do(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func errorMessage(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body handler.ErrorBody
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body.Message
}

func TestListCustomers(t *testing.T) {
	t.Run("returns array", func(t *testing.T) {
		router, svc := newMockedRouter(t)
		svc.EXPECT().List(gomock.Any()).Return([]model.Customer{
			{ID: "1", Name: "Ana", Contact: "ana@example.com", Status: model.StatusActive},
		}, nil)

		rr := do(t, router, http.MethodGet, "/customers", "")

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
		assert.JSONEq(t, `[{"id":"1","name":"Ana","contact":"ana@example.com","status":"ACTIVE"}]`, rr.Body.String())
	})

	t.Run("empty is [] not null", func(t *testing.T) {
		router, svc := newMockedRouter(t)
		svc.EXPECT().List(gomock.Any()).Return([]model.Customer{}, nil)

		rr := do(t, router, http.MethodGet, "/customers", "")

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `[]`, rr.Body.String())
	})

	t.Run("store failure is a generic 500", func(t *testing.T) {
		router, svc := newMockedRouter(t)
		svc.EXPECT().List(gomock.Any()).Return(nil, errors.New("unexpected DB error: conn refused"))

		rr := do(t, router, http.MethodGet, "/customers", "")

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.NotContains(t, rr.Body.String(), "conn refused")
	})
}

func TestGetCustomer(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		router, svc := newMockedRouter(t)
		svc.EXPECT().GetByID(gomock.Any(), "abc").
			Return(&model.Customer{ID: "abc", Name: "Ana", Status: model.StatusCanceled}, nil)

		rr := do(t, router, http.MethodGet, "/customers/abc", "")

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"id":"abc","name":"Ana","contact":"","status":"CANCELED"}`, rr.Body.String())
	})

	t.Run("not found", func(t *testing.T) {
		router, svc := newMockedRouter(t)
		svc.EXPECT().GetByID(gomock.Any(), "missing").Return(nil, appErrors.NewNotFound("customer not found"))

		rr := do(t, router, http.MethodGet, "/customers/missing", "")

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "customer not found", errorMessage(t, rr))
	})
}

func TestCreateCustomer(t *testing.T) {
	t.Run("created with location", func(t *testing.T) {
		router, svc := newMockedRouter(t)
		svc.EXPECT().
			Create(gomock.Any(), model.CustomerRequest{Name: "Maria Oliveira", Contact: "maria@example.com", Status: model.StatusActive}).
			Return(&model.Customer{ID: "new-1", Name: "Maria Oliveira", Contact: "maria@example.com", Status: model.StatusActive}, nil)

		rr := do(t, router, http.MethodPost, "/customers",
			`{"name":"Maria Oliveira","contact":"maria@example.com","status":"ativo"}`)

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, "/customers/new-1", rr.Header().Get("Location"))
		assert.JSONEq(t, `{"id":"new-1","name":"Maria Oliveira","contact":"maria@example.com","status":"ACTIVE"}`, rr.Body.String())
	})

	t.Run("unknown fields are ignored", func(t *testing.T) {
		router, svc := newMockedRouter(t)
		svc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(&model.Customer{ID: "n", Status: model.StatusInactive}, nil)

		rr := do(t, router, http.MethodPost, "/customers", `{"status":"inactive","nickname":"x"}`)

		assert.Equal(t, http.StatusCreated, rr.Code)
	})

	t.Run("conflict", func(t *testing.T) {
		router, svc := newMockedRouter(t)
		svc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, appErrors.NewConflict("identifier already exists: %s", "x"))

		rr := do(t, router, http.MethodPost, "/customers", `{"id":"x","status":"ACTIVE"}`)

		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Equal(t, "identifier already exists: x", errorMessage(t, rr))
	})

	tests := []struct {
		name string
		body string
	}{
		{name: "invalid status", body: `{"name":"A","status":"PENDING"}`},
		{name: "status of wrong type", body: `{"name":"A","status":3}`},
		{name: "malformed json", body: `{"name":`},
		{name: "empty body", body: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := newMockedRouter(t)

			rr := do(t, router, http.MethodPost, "/customers", tt.body)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.NotEmpty(t, errorMessage(t, rr))
		})
	}
}

func TestUpdateCustomer(t *testing.T) {
	t.Run("updated", func(t *testing.T) {
		router, svc := newMockedRouter(t)
		svc.EXPECT().
			Update(gomock.Any(), "42", model.CustomerRequest{Name: "B", Contact: "b@example.com", Status: model.StatusInactive}).
			Return(&model.Customer{ID: "42", Name: "B", Contact: "b@example.com", Status: model.StatusInactive}, nil)

		rr := do(t, router, http.MethodPut, "/customers/42", `{"name":"B","contact":"b@example.com","status":"Inativo"}`)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"id":"42","name":"B","contact":"b@example.com","status":"INACTIVE"}`, rr.Body.String())
	})

	t.Run("not found", func(t *testing.T) {
		router, svc := newMockedRouter(t)
		svc.EXPECT().Update(gomock.Any(), "42", gomock.Any()).
			Return(nil, appErrors.NewNotFound("customer identifier not found: %s", "42"))

		rr := do(t, router, http.MethodPut, "/customers/42", `{"status":"ACTIVE"}`)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "customer identifier not found: 42", errorMessage(t, rr))
	})

	t.Run("validation", func(t *testing.T) {
		router, svc := newMockedRouter(t)
		svc.EXPECT().Update(gomock.Any(), "42", gomock.Any()).Return(nil, appErrors.NewValidation("status is required"))

		rr := do(t, router, http.MethodPut, "/customers/42", `{"name":"B"}`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestDeleteCustomer(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "deleted", wantStatus: http.StatusNoContent},
		{name: "missing", err: appErrors.NewNotFound("customer not found"), wantStatus: http.StatusNotFound},
		{name: "referenced", err: appErrors.NewIntegrityViolation("integrity violation"), wantStatus: http.StatusConflict},
		{name: "unexpected", err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, svc := newMockedRouter(t)
			svc.EXPECT().Delete(gomock.Any(), "7").Return(tt.err)

			rr := do(t, router, http.MethodDelete, "/customers/7", "")

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.err == nil {
				assert.Empty(t, rr.Body.String())
			}
		})
	}
}
