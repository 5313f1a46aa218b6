package repository

//go:generate mockgen -source=customer_repository.go -destination=mocks/customer_repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/unclebandit/customer-service/internal/logger"
	"github.com/unclebandit/customer-service/internal/model"
)

// CustomerRepositoryInterface defines methods used by service
type CustomerRepositoryInterface interface {
	FindAll(ctx context.Context) ([]model.Customer, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	// FindByID returns nil, nil when no customer has that id.
	FindByID(ctx context.Context, id string) (*model.Customer, error)
	// Save inserts c under a freshly generated id when c.ID is empty, and
	// otherwise overwrites name, contact and status of the row with that id.
	// An insert that hits an existing id returns ErrDuplicate; an update that
	// matches no row returns ErrNotFound.
	Save(ctx context.Context, c *model.Customer) (*model.Customer, error)
	// DeleteByID returns ErrNotFound or ErrIntegrityViolation on the two
	// expected failures.
	DeleteByID(ctx context.Context, id string) error
}

const (
	customersTable    = "customers"
	returningCustomer = "RETURNING id, name, contact, status"
)

var (
	customerColumns = []string{"id", "name", "contact", "status"}

	psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
)

// CustomerRepository is the concrete implementation
type CustomerRepository struct {
	DB    *sql.DB
	newID func() string
}

func NewCustomerRepository(db *sql.DB) *CustomerRepository {
	return &CustomerRepository{
		DB:    db,
		newID: newUUID,
	}
}

// newUUID prefers time-ordered v7 ids and falls back to random v4.
func newUUID() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return v7.String()
}

// FindAll fetches all customers in storage order
func (r *CustomerRepository) FindAll(ctx context.Context) ([]model.Customer, error) {
	query, args, err := psql.Select(customerColumns...).From(customersTable).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building sql query: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Msg("list customers query failed")
		return nil, classifyError(err)
	}
	defer rows.Close()

	customers := []model.Customer{}
	for rows.Next() {
		var c model.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Contact, &c.Status); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyError(err)
	}
	return customers, nil
}

func (r *CustomerRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	query, args, err := psql.Select("1").From(customersTable).Where(sq.Eq{"id": id}).Limit(1).ToSql()
	if err != nil {
		return false, fmt.Errorf("error building sql query: %w", err)
	}

	var one int
	if err := r.DB.QueryRowContext(ctx, query, args...).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		logger.FromContext(ctx).Err(err).Str("id", id).Msg("exists query failed")
		return false, classifyError(err)
	}
	return true, nil
}

// FindByID fetches a customer by ID
func (r *CustomerRepository) FindByID(ctx context.Context, id string) (*model.Customer, error) {
	query, args, err := psql.Select(customerColumns...).From(customersTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building sql query: %w", err)
	}

	var c model.Customer
	err = r.DB.QueryRowContext(ctx, query, args...).Scan(&c.ID, &c.Name, &c.Contact, &c.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // not found
		}
		logger.FromContext(ctx).Err(err).Str("id", id).Msg("find customer query failed")
		return nil, classifyError(err)
	}
	return &c, nil
}

func (r *CustomerRepository) Save(ctx context.Context, c *model.Customer) (*model.Customer, error) {
	if c.ID == "" {
		return r.insert(ctx, c)
	}
	return r.update(ctx, c)
}

func (r *CustomerRepository) insert(ctx context.Context, c *model.Customer) (*model.Customer, error) {
	id := r.newID()

	query, args, err := psql.Insert(customersTable).
		Columns(customerColumns...).
		Values(id, c.Name, c.Contact, c.Status).
		Suffix(returningCustomer).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building sql query: %w", err)
	}

	var saved model.Customer
	err = r.DB.QueryRowContext(ctx, query, args...).Scan(&saved.ID, &saved.Name, &saved.Contact, &saved.Status)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("id", id).Msg("insert customer failed")
		return nil, classifyError(err)
	}
	return &saved, nil
}

func (r *CustomerRepository) update(ctx context.Context, c *model.Customer) (*model.Customer, error) {
	query, args, err := psql.Update(customersTable).
		Set("name", c.Name).
		Set("contact", c.Contact).
		Set("status", c.Status).
		Where(sq.Eq{"id": c.ID}).
		Suffix(returningCustomer).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building sql query: %w", err)
	}

	var saved model.Customer
	err = r.DB.QueryRowContext(ctx, query, args...).Scan(&saved.ID, &saved.Name, &saved.Contact, &saved.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.FromContext(ctx).Err(err).Str("id", c.ID).Msg("update customer failed")
		return nil, classifyError(err)
	}
	return &saved, nil
}

func (r *CustomerRepository) DeleteByID(ctx context.Context, id string) error {
	query, args, err := psql.Delete(customersTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("error building sql query: %w", err)
	}

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("id", id).Msg("delete customer failed")
		return classifyError(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return classifyError(err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

var _ CustomerRepositoryInterface = (*CustomerRepository)(nil)
