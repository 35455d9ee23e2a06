package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/makishop/storefront/internal/backend"
	"github.com/makishop/storefront/internal/domain"
)

// BuyerDirectory is the slice of the users backend the orchestrator needs.
type BuyerDirectory interface {
	List(ctx context.Context) ([]domain.User, error)
	Create(ctx context.Context, user domain.NewUser) (int64, error)
}

// OrderCreator is the slice of the orders backend the orchestrator needs.
type OrderCreator interface {
	Create(ctx context.Context, order domain.NewOrder) (*domain.Order, error)
}

// Cart is the view the orchestrator has of the shopper's cart.
type Cart interface {
	Items() []domain.CartLineItem
	Clear(ctx context.Context) error
}

// Recorder receives the audit trail of a checkout attempt. Recorder failures
// never abort a checkout, they are only logged.
type Recorder interface {
	AttemptStarted(ctx context.Context, attemptID, buyerEmail string, lineCount int) error
	BuyerResolved(ctx context.Context, attemptID string, buyerID int64, source string) error
	LineResult(ctx context.Context, attemptID string, productID, orderID int64, lineErr error) error
	AttemptFinished(ctx context.Context, attemptID, status string) error
}

// NopRecorder discards the audit trail.
type NopRecorder struct{}

func (NopRecorder) AttemptStarted(context.Context, string, string, int) error    { return nil }
func (NopRecorder) BuyerResolved(context.Context, string, int64, string) error   { return nil }
func (NopRecorder) LineResult(context.Context, string, int64, int64, error) error { return nil }
func (NopRecorder) AttemptFinished(context.Context, string, string) error        { return nil }

// Buyer resolution sources recorded in the audit trail.
const (
	buyerSourceCreated   = "created"
	buyerSourceDirectory = "directory_match"
	buyerSourceLastEntry = "last_directory_entry"
	buyerSourceDefault   = "default"
)

// Attempt statuses recorded in the audit trail.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

type Config struct {
	// DefaultBuyerID is adopted when buyer creation fails for a reason
	// other than a duplicate email.
	DefaultBuyerID int64
	// StrictBuyerResolution turns that silent fallback into an abort.
	StrictBuyerResolution bool
	// CallTimeout bounds each backend call.
	CallTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		DefaultBuyerID: 1,
		CallTimeout:    10 * time.Second,
	}
}

// Request is one checkout attempt: the filled form plus the shopper's
// terms acceptance.
type Request struct {
	Form          domain.BuyerForm
	TermsAccepted bool
}

// Result reports a fully successful checkout.
type Result struct {
	AttemptID string
	BuyerID   int64
	Orders    []domain.Order
}

// Service turns a cart plus a buyer form into backend order records.
type Service struct {
	users    BuyerDirectory
	orders   OrderCreator
	cart     Cart
	recorder Recorder
	cfg      Config
}

func NewService(users BuyerDirectory, orders OrderCreator, cart Cart, recorder Recorder, cfg Config) *Service {
	if recorder == nil {
		recorder = NopRecorder{}
	}
	return &Service{users: users, orders: orders, cart: cart, recorder: recorder, cfg: cfg}
}

// Checkout runs the full sequence: preconditions, buyer resolution, one order
// per cart line in cart order, cart clearing on success.
//
// A directory-fetch failure aborts the whole attempt. A failure on any order
// creation aborts the remaining lines without rolling back the ones already
// created; the backend is the system of record and partial order sets are
// reconciled by an administrator. Retrying is therefore not idempotent.
func (s *Service) Checkout(ctx context.Context, req Request) (*Result, error) {
	if !req.TermsAccepted {
		return nil, ErrTermsNotAccepted
	}
	if fieldErrs := Validate(req.Form); len(fieldErrs) > 0 {
		return nil, &ValidationError{Fields: fieldErrs}
	}
	items := s.cart.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	attemptID := uuid.NewString()
	s.record(func() error {
		return s.recorder.AttemptStarted(ctx, attemptID, req.Form.Email, len(items))
	})

	directory, err := s.listDirectory(ctx)
	if err != nil {
		s.record(func() error { return s.recorder.AttemptFinished(ctx, attemptID, StatusFailed) })
		return nil, fmt.Errorf("failed to fetch buyer directory: %w", err)
	}

	buyerID, source, err := s.resolveBuyer(ctx, directory, req.Form)
	if err != nil {
		s.record(func() error { return s.recorder.AttemptFinished(ctx, attemptID, StatusFailed) })
		return nil, err
	}
	log.Printf("checkout %s: buyer %d resolved via %s", attemptID, buyerID, source)
	s.record(func() error { return s.recorder.BuyerResolved(ctx, attemptID, buyerID, source) })

	orders, err := s.createOrders(ctx, attemptID, buyerID, items, req.Form)
	if err != nil {
		s.record(func() error { return s.recorder.AttemptFinished(ctx, attemptID, StatusFailed) })
		return nil, err
	}

	if err := s.cart.Clear(ctx); err != nil {
		// Orders exist on the backend, the stale local cart is the lesser problem
		log.Printf("checkout %s: failed to clear cart after success: %v", attemptID, err)
	}
	s.record(func() error { return s.recorder.AttemptFinished(ctx, attemptID, StatusCompleted) })

	return &Result{AttemptID: attemptID, BuyerID: buyerID, Orders: orders}, nil
}

func (s *Service) listDirectory(ctx context.Context) ([]domain.User, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.cfg.CallTimeout)
	defer cancel()
	return s.users.List(callCtx)
}

// resolveBuyer creates a buyer from the form, falling back on a duplicate
// email to a directory scan, then to the last directory entry. Any other
// creation failure adopts the configured default buyer id unless strict
// resolution is on. The fallback chain mirrors long-standing storefront
// behavior and is logged whenever it engages.
func (s *Service) resolveBuyer(ctx context.Context, directory []domain.User, form domain.BuyerForm) (int64, string, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.cfg.CallTimeout)
	defer cancel()

	newBuyer := domain.NewUser{
		Name:        form.FirstNames + " " + form.LastNames,
		Email:       form.Email,
		PhoneNumber: stripSeparators(form.Phone),
		Address:     form.RecipientName,
	}

	id, err := s.users.Create(callCtx, newBuyer)
	if err == nil {
		if id == 0 {
			id = s.cfg.DefaultBuyerID
		}
		return id, buyerSourceCreated, nil
	}

	if errors.Is(err, backend.ErrDuplicateEmail) {
		target := strings.ToLower(form.Email)
		for _, user := range directory {
			if strings.ToLower(user.Email) == target {
				return user.ID, buyerSourceDirectory, nil
			}
		}
		if len(directory) > 0 {
			// Heuristic, not a correctness guarantee: assume the most recent
			// directory entry is the buyer
			last := directory[len(directory)-1]
			log.Printf("duplicate email %s not found in directory, using last entry %d", form.Email, last.ID)
			return last.ID, buyerSourceLastEntry, nil
		}
		log.Printf("duplicate email %s with empty directory, using default buyer %d", form.Email, s.cfg.DefaultBuyerID)
		return s.cfg.DefaultBuyerID, buyerSourceDefault, nil
	}

	if s.cfg.StrictBuyerResolution {
		return 0, "", fmt.Errorf("failed to create buyer: %w", err)
	}
	log.Printf("buyer creation failed (%v), falling back to default buyer %d", err, s.cfg.DefaultBuyerID)
	return s.cfg.DefaultBuyerID, buyerSourceDefault, nil
}

// createOrders issues one order per cart line, strictly in cart order, one at
// a time. The first failure aborts the remainder.
func (s *Service) createOrders(ctx context.Context, attemptID string, buyerID int64, items []domain.CartLineItem, form domain.BuyerForm) ([]domain.Order, error) {
	paymentMethod := form.PaymentMethod()
	orders := make([]domain.Order, 0, len(items))

	for _, item := range items {
		created, err := s.createOrder(ctx, domain.NewOrder{
			UserID:        buyerID,
			ProductID:     item.ProductID,
			Status:        domain.OrderStatusPending,
			TotalPrice:    item.Subtotal(),
			PaymentMethod: paymentMethod,
		})

		var orderID int64
		if created != nil {
			orderID = created.ID
		}
		s.record(func() error {
			return s.recorder.LineResult(ctx, attemptID, item.ProductID, orderID, err)
		})

		if err != nil {
			return nil, fmt.Errorf("failed to create order for product %d: %w", item.ProductID, err)
		}
		orders = append(orders, *created)
	}

	return orders, nil
}

func (s *Service) createOrder(ctx context.Context, order domain.NewOrder) (*domain.Order, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.cfg.CallTimeout)
	defer cancel()
	return s.orders.Create(callCtx, order)
}

func (s *Service) record(fn func() error) {
	if err := fn(); err != nil {
		log.Printf("checkout journal write failed: %v", err)
	}
}
