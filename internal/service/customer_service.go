// internal/service/customer_service.go
package service

//go:generate mockgen -source=customer_service.go -destination=mocks/customer_service_mock.go -package=mocks

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	appErrors "github.com/unclebandit/customer-service/internal/errors"
	"github.com/unclebandit/customer-service/internal/logger"
	"github.com/unclebandit/customer-service/internal/model"
	"github.com/unclebandit/customer-service/internal/queue"
	"github.com/unclebandit/customer-service/internal/repository"
)

// CustomerEventsTopic is the queue change notifications are published to.
const CustomerEventsTopic = "customer_events"

// CustomerServiceInterface is what the HTTP layer depends on.
type CustomerServiceInterface interface {
	List(ctx context.Context) ([]model.Customer, error)
	Create(ctx context.Context, req model.CustomerRequest) (*model.Customer, error)
	GetByID(ctx context.Context, id string) (*model.Customer, error)
	Update(ctx context.Context, id string, req model.CustomerRequest) (*model.Customer, error)
	Delete(ctx context.Context, id string) error
}

type CustomerService struct {
	CustomerRepo repository.CustomerRepositoryInterface
	Publisher    queue.Publisher
	validator    *requestValidator
	log          *logger.Logger
}

// NewCustomerService wires the service. publisher may be nil, in which case
// no change notifications are sent.
func NewCustomerService(repo repository.CustomerRepositoryInterface, publisher queue.Publisher, log *logger.Logger) *CustomerService {
	return &CustomerService{
		CustomerRepo: repo,
		Publisher:    publisher,
		validator:    newRequestValidator(),
		log:          log,
	}
}

func (s *CustomerService) List(ctx context.Context) ([]model.Customer, error) {
	customers, err := s.CustomerRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if customers == nil {
		customers = []model.Customer{}
	}
	return customers, nil
}

// Create stores a new customer under a generated id. A caller-supplied id is
// never reused; it only triggers a conflict when it names an existing customer.
func (s *CustomerService) Create(ctx context.Context, req model.CustomerRequest) (*model.Customer, error) {
	if err := s.validator.validate(ctx, req); err != nil {
		return nil, err
	}

	if req.ID != "" {
		exists, err := s.CustomerRepo.ExistsByID(ctx, req.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, appErrors.NewConflict("identifier already exists: %s", req.ID)
		}
	}

	entity := &model.Customer{
		Name:    req.Name,
		Contact: req.Contact,
		Status:  req.Status,
	}

	saved, err := s.CustomerRepo.Save(ctx, entity)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, appErrors.NewConflict("customer already exists")
		}
		return nil, err
	}

	s.publish(ctx, model.CustomerCreated, saved.ID, saved)
	return saved, nil
}

func (s *CustomerService) GetByID(ctx context.Context, id string) (*model.Customer, error) {
	customer, err := s.CustomerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, appErrors.NewNotFound("customer not found")
	}
	return customer, nil
}

// Update overwrites name, contact and status. The id never changes.
func (s *CustomerService) Update(ctx context.Context, id string, req model.CustomerRequest) (*model.Customer, error) {
	if err := s.validator.validate(ctx, req); err != nil {
		return nil, err
	}

	entity, err := s.CustomerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, appErrors.NewNotFound("customer identifier not found: %s", id)
	}

	entity.Name = req.Name
	entity.Contact = req.Contact
	entity.Status = req.Status

	saved, err := s.CustomerRepo.Save(ctx, entity)
	if err != nil {
		// deleted after the lookup
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.NewNotFound("customer identifier not found: %s", id)
		}
		return nil, err
	}

	s.publish(ctx, model.CustomerUpdated, saved.ID, saved)
	return saved, nil
}

func (s *CustomerService) Delete(ctx context.Context, id string) error {
	err := s.CustomerRepo.DeleteByID(ctx, id)
	switch {
	case err == nil:
	case errors.Is(err, repository.ErrNotFound):
		return appErrors.NewNotFound("customer not found")
	case errors.Is(err, repository.ErrIntegrityViolation):
		return appErrors.NewIntegrityViolation("integrity violation")
	default:
		return err
	}

	s.publish(ctx, model.CustomerDeleted, id, nil)
	return nil
}

// publish is best effort: a failed notification never fails the write.
func (s *CustomerService) publish(ctx context.Context, eventType, id string, c *model.Customer) {
	if s.Publisher == nil {
		return
	}

	event := model.CustomerEvent{Type: eventType, ID: id, Customer: c}
	if err := s.Publisher.Publish(ctx, CustomerEventsTopic, event); err != nil {
		s.eventLogger(ctx).Warn().Err(err).Str("event", eventType).Str("id", id).Msg("failed to publish customer event")
	}
}

func (s *CustomerService) eventLogger(ctx context.Context) *logger.Logger {
	l := logger.FromContext(ctx)
	if l.GetLevel() == zerolog.Disabled && s.log != nil {
		return s.log
	}
	return l
}

var _ CustomerServiceInterface = (*CustomerService)(nil)
