package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"techstore/ledger"
	"techstore/models"
	apperrors "techstore/pkg/errors"
	"techstore/repositories"
)

type recordingNotifier struct {
	mu     sync.Mutex
	orders []*models.Order
	err    error
}

func (n *recordingNotifier) SendOrderConfirmation(order *models.Order) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.orders = append(n.orders, order)
	return n.err
}

type CheckoutServiceSuite struct {
	suite.Suite
	repo     *repositories.MemoryOrderRepository
	notifier *recordingNotifier
	svc      *CheckoutService
	ledger   *ledger.Ledger
}

func (s *CheckoutServiceSuite) SetupTest() {
	s.repo = repositories.NewMemoryOrderRepository()
	s.notifier = &recordingNotifier{}
	s.svc = NewCheckoutService(s.repo, s.notifier, 20*time.Millisecond, zap.NewNop())
	s.ledger = ledger.New(ledger.DefaultPricing())
	s.Require().NoError(s.ledger.AddItem(models.Product{ID: "1", Name: "iPhone 15 Pro Max", Price: 29990000}, 1))
	s.Require().NoError(s.ledger.AddItem(models.Product{ID: "2", Name: "MacBook Air M3", Price: 27990000}, 1))
}

func validCheckoutRequest() models.CheckoutRequest {
	return models.CheckoutRequest{
		Shipping: models.ShippingInfo{
			FullName: " Nguyễn Văn A ",
			Email:    "a@example.com",
			Phone:    "0900000000",
			Address:  "1 Lê Lợi",
			City:     "Hà Nội",
			ZipCode:  "100000",
		},
		Payment: models.PaymentInfo{
			CardNumber:     "4111 1111 1111 1234",
			ExpiryDate:     "12/30",
			CVV:            "123",
			CardholderName: "NGUYEN VAN A",
		},
	}
}

func (s *CheckoutServiceSuite) TestCheckoutPlacesOrder() {
	order, err := s.svc.Checkout(context.Background(), "sess-1", s.ledger, validCheckoutRequest())
	s.Require().NoError(err)

	s.Equal(int64(57980000), order.Totals.Subtotal)
	s.Equal(int64(0), order.Totals.ShippingFee)
	s.Equal(int64(5798000), order.Totals.Tax)
	s.Equal(int64(63778000), order.Totals.Total)
	s.Len(order.Items, 2)
	s.Equal("1234", order.CardLast4)
	s.Equal("Nguyễn Văn A", order.Shipping.FullName)
	s.Contains(order.OrderNumber, "ORD-")

	s.Empty(s.ledger.Items())
	s.False(s.ledger.Locked())
	s.False(s.svc.Pending("sess-1"))

	stored, err := s.repo.GetByNumber(context.Background(), order.OrderNumber)
	s.Require().NoError(err)
	s.Equal(order.ID, stored.ID)
	s.Len(s.notifier.orders, 1)
}

func (s *CheckoutServiceSuite) TestCheckoutValidationLeavesCartAlone() {
	req := validCheckoutRequest()
	req.Shipping.City = "   "
	req.Payment.CVV = ""

	_, err := s.svc.Checkout(context.Background(), "sess-1", s.ledger, req)

	var verr *apperrors.ErrValidation
	s.Require().True(errors.As(err, &verr))
	s.Equal("city is required", verr.Fields["city"])
	s.Equal("cvv is required", verr.Fields["cvv"])
	s.Len(verr.Fields, 2)
	s.Len(s.ledger.Items(), 2)
	s.False(s.ledger.Locked())
}

func (s *CheckoutServiceSuite) TestCheckoutEmptyCart() {
	s.Require().NoError(s.ledger.Clear())

	_, err := s.svc.Checkout(context.Background(), "sess-1", s.ledger, validCheckoutRequest())
	s.ErrorIs(err, ErrEmptyCart)
	s.False(s.ledger.Locked())
}

func (s *CheckoutServiceSuite) TestCheckoutCancelledByContext() {
	s.svc.delay = time.Minute
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		_, err := s.svc.Checkout(ctx, "sess-1", s.ledger, validCheckoutRequest())
		done <- err
	}()

	s.Eventually(func() bool { return s.svc.Pending("sess-1") }, time.Second, time.Millisecond)
	s.True(s.ledger.Locked())
	s.ErrorIs(s.ledger.AddItem(models.Product{ID: "9", Price: 1}, 1), ledger.ErrCheckoutPending)

	cancel()
	err := <-done
	s.ErrorIs(err, ErrCheckoutCancelled)
	s.Len(s.ledger.Items(), 2)
	s.False(s.ledger.Locked())

	orders, total, _ := s.repo.List(context.Background(), 10, 0)
	s.Zero(total)
	s.Empty(orders)
}

func (s *CheckoutServiceSuite) TestCancelPendingCheckout() {
	s.svc.delay = time.Minute

	done := make(chan error, 1)
	go func() {
		_, err := s.svc.Checkout(context.Background(), "sess-1", s.ledger, validCheckoutRequest())
		done <- err
	}()

	s.Eventually(func() bool { return s.svc.Pending("sess-1") }, time.Second, time.Millisecond)
	s.False(s.svc.Cancel("other"))
	s.True(s.svc.Cancel("sess-1"))

	s.ErrorIs(<-done, ErrCheckoutCancelled)
	s.Len(s.ledger.Items(), 2)
	s.False(s.svc.Pending("sess-1"))
}

func (s *CheckoutServiceSuite) TestSecondCheckoutWhilePending() {
	s.svc.delay = time.Minute

	done := make(chan error, 1)
	go func() {
		_, err := s.svc.Checkout(context.Background(), "sess-1", s.ledger, validCheckoutRequest())
		done <- err
	}()
	s.Eventually(func() bool { return s.svc.Pending("sess-1") }, time.Second, time.Millisecond)

	_, err := s.svc.Checkout(context.Background(), "sess-1", s.ledger, validCheckoutRequest())
	s.ErrorIs(err, ledger.ErrCheckoutPending)

	s.svc.Cancel("sess-1")
	<-done
}

func (s *CheckoutServiceSuite) TestNotifierFailureKeepsOrder() {
	s.notifier.err = errors.New("smtp down")

	order, err := s.svc.Checkout(context.Background(), "sess-1", s.ledger, validCheckoutRequest())
	s.Require().NoError(err)
	s.Empty(s.ledger.Items())

	_, err = s.repo.GetByNumber(context.Background(), order.OrderNumber)
	s.NoError(err)
}

func (s *CheckoutServiceSuite) TestCancelAsTheCartLocks() {
	var cancelled bool
	unsubscribe := s.ledger.Subscribe(func(snap ledger.Snapshot) {
		if snap.Locked {
			cancelled = s.svc.Cancel("sess-1")
		}
	})
	defer unsubscribe()

	_, err := s.svc.Checkout(context.Background(), "sess-1", s.ledger, validCheckoutRequest())

	s.True(cancelled)
	s.ErrorIs(err, ErrCheckoutCancelled)
	s.Len(s.ledger.Items(), 2)
	s.False(s.ledger.Locked())
}

func (s *CheckoutServiceSuite) TestConcurrentCheckoutsGetDistinctOrderNumbers() {
	const shoppers = 20
	s.svc.delay = 0

	var wg sync.WaitGroup
	numbers := make(chan string, shoppers)
	for i := 0; i < shoppers; i++ {
		l := ledger.New(ledger.DefaultPricing())
		s.Require().NoError(l.AddItem(models.Product{ID: "3", Name: "AirPods Pro", Price: 6490000}, 1))

		wg.Add(1)
		go func(sessionID string) {
			defer wg.Done()
			order, err := s.svc.Checkout(context.Background(), sessionID, l, validCheckoutRequest())
			if s.NoError(err) {
				numbers <- order.OrderNumber
			}
		}(fmt.Sprintf("sess-%d", i))
	}
	wg.Wait()
	close(numbers)

	unique := map[string]bool{}
	for n := range numbers {
		unique[n] = true
		_, err := s.repo.GetByNumber(context.Background(), n)
		s.NoError(err)
	}
	s.Len(unique, shoppers)

	_, total, err := s.repo.List(context.Background(), shoppers, 0)
	s.Require().NoError(err)
	s.Equal(shoppers, total)
}

func TestOrderNumber(t *testing.T) {
	id := uuid.MustParse("0a1b2c3d-0000-4000-8000-000000000000")
	at := time.UnixMilli(1700000000123)
	assert.Equal(t, "ORD-1700000000123-0A1B2C3D", orderNumber(at, id))
}

func TestCheckoutServiceSuite(t *testing.T) {
	suite.Run(t, new(CheckoutServiceSuite))
}
