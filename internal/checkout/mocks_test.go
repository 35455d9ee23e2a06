package checkout

import (
	"context"

	"github.com/makishop/storefront/internal/domain"
)

// MockDirectory implements BuyerDirectory for testing
type MockDirectory struct {
	Users     []domain.User
	ListErr   error
	CreatedID int64
	CreateErr error

	ListCalls   int
	CreateCalls int
	Created     *domain.NewUser // captures the payload passed to Create
}

func (m *MockDirectory) List(context.Context) ([]domain.User, error) {
	m.ListCalls++
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.Users, nil
}

func (m *MockDirectory) Create(_ context.Context, user domain.NewUser) (int64, error) {
	m.CreateCalls++
	m.Created = &user
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	return m.CreatedID, nil
}

// MockOrders implements OrderCreator for testing. FailAt makes the n-th call
// (1-based) fail.
type MockOrders struct {
	FailAt  int
	FailErr error

	NextID  int64
	Created []domain.NewOrder
}

func (m *MockOrders) Create(_ context.Context, order domain.NewOrder) (*domain.Order, error) {
	call := len(m.Created) + 1
	if m.FailAt != 0 && call >= m.FailAt {
		return nil, m.FailErr
	}
	m.Created = append(m.Created, order)
	m.NextID++
	return &domain.Order{
		ID:            m.NextID,
		UserID:        order.UserID,
		ProductID:     order.ProductID,
		Status:        order.Status,
		TotalPrice:    order.TotalPrice,
		PaymentMethod: order.PaymentMethod,
	}, nil
}

// MockCart implements Cart for testing
type MockCart struct {
	Lines    []domain.CartLineItem
	Cleared  bool
	ClearErr error
}

func (m *MockCart) Items() []domain.CartLineItem {
	return m.Lines
}

func (m *MockCart) Clear(context.Context) error {
	if m.ClearErr != nil {
		return m.ClearErr
	}
	m.Cleared = true
	m.Lines = nil
	return nil
}

// MockRecorder captures the audit trail
type MockRecorder struct {
	StartedID    string
	BuyerID      int64
	BuyerSource  string
	LineResults  []recordedLine
	FinishStatus string
}

type recordedLine struct {
	ProductID int64
	OrderID   int64
	Err       error
}

func (m *MockRecorder) AttemptStarted(_ context.Context, attemptID, _ string, _ int) error {
	m.StartedID = attemptID
	return nil
}

func (m *MockRecorder) BuyerResolved(_ context.Context, _ string, buyerID int64, source string) error {
	m.BuyerID = buyerID
	m.BuyerSource = source
	return nil
}

func (m *MockRecorder) LineResult(_ context.Context, _ string, productID, orderID int64, lineErr error) error {
	m.LineResults = append(m.LineResults, recordedLine{ProductID: productID, OrderID: orderID, Err: lineErr})
	return nil
}

func (m *MockRecorder) AttemptFinished(_ context.Context, _ string, status string) error {
	m.FinishStatus = status
	return nil
}
