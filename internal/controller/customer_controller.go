// internal/controller/customer_controller.go
package controller

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	appErrors "github.com/unclebandit/customer-service/internal/errors"
	"github.com/unclebandit/customer-service/internal/handler"
	"github.com/unclebandit/customer-service/internal/model"
	"github.com/unclebandit/customer-service/internal/service"
)

type CustomerController struct {
	CustomerService service.CustomerServiceInterface
}

func NewCustomerController(svc service.CustomerServiceInterface) *CustomerController {
	return &CustomerController{CustomerService: svc}
}

func (c *CustomerController) Routes(r chi.Router) {
	r.Route("/customers", func(r chi.Router) {
		r.Get("/", c.ListCustomers)
		r.Post("/", c.CreateCustomer)
		r.Get("/{id}", c.GetCustomer)
		r.Put("/{id}", c.UpdateCustomer)
		r.Delete("/{id}", c.DeleteCustomer)
	})
}

func (c *CustomerController) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := c.CustomerService.List(r.Context())
	if err != nil {
		handler.WriteError(w, r, err)
		return
	}
	handler.WriteJSON(w, r, http.StatusOK, customers)
}

func (c *CustomerController) GetCustomer(w http.ResponseWriter, r *http.Request) {
	customer, err := c.CustomerService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handler.WriteError(w, r, err)
		return
	}
	handler.WriteJSON(w, r, http.StatusOK, customer)
}

func (c *CustomerController) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	req, err := decodeCustomer(r)
	if err != nil {
		handler.WriteError(w, r, err)
		return
	}

	customer, err := c.CustomerService.Create(r.Context(), req)
	if err != nil {
		handler.WriteError(w, r, err)
		return
	}

	w.Header().Set("Location", "/customers/"+url.PathEscape(customer.ID))
	handler.WriteJSON(w, r, http.StatusCreated, customer)
}

func (c *CustomerController) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	req, err := decodeCustomer(r)
	if err != nil {
		handler.WriteError(w, r, err)
		return
	}

	customer, err := c.CustomerService.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		handler.WriteError(w, r, err)
		return
	}
	handler.WriteJSON(w, r, http.StatusOK, customer)
}

func (c *CustomerController) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	if err := c.CustomerService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		handler.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodeCustomer reports every body problem as a validation error.
func decodeCustomer(r *http.Request) (model.CustomerRequest, error) {
	var req model.CustomerRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	switch {
	case err == nil:
		return req, nil
	case errors.Is(err, io.EOF):
		return req, appErrors.NewValidation("request body is required")
	case errors.Is(err, appErrors.ErrValidation):
		return req, err
	default:
		return req, appErrors.NewValidation("malformed request body: %v", err)
	}
}
