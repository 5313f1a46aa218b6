// internal/model/customer.go
package model

type Customer struct {
	ID      string `db:"id" json:"id"`
	Name    string `db:"name" json:"name"`
	Contact string `db:"contact" json:"contact"`
	Status  Status `db:"status" json:"status"`
}

// CustomerRequest is the payload accepted on create and update.
// ID is only consulted by the duplicate check on create.
type CustomerRequest struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name" validate:"max=255"`
	Contact string `json:"contact" validate:"max=255"`
	Status  Status `json:"status" validate:"required"`
}

// CustomerEvent is published after a successful write.
type CustomerEvent struct {
	Type     string    `json:"type"`
	Customer *Customer `json:"customer,omitempty"`
	ID       string    `json:"id"`
}

const (
	CustomerCreated = "customer.created"
	CustomerUpdated = "customer.updated"
	CustomerDeleted = "customer.deleted"
)
