package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"techstore/ledger"
	"techstore/models"
	apperrors "techstore/pkg/errors"
	"techstore/repositories"
	"techstore/utils"
)

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrCheckoutCancelled = errors.New("checkout was cancelled")
)

// OrderNotifier tells the customer about a placed order.
type OrderNotifier interface {
	SendOrderConfirmation(order *models.Order) error
}

type CheckoutService struct {
	orders   repositories.OrderRepository
	notifier OrderNotifier
	validate *validator.Validate
	delay    time.Duration
	now      func() time.Time
	logger   *zap.Logger

	mu      sync.Mutex
	pending map[string]context.CancelFunc
}

// NewCheckoutService accepts a nil notifier, in which case no email is sent.
func NewCheckoutService(orders repositories.OrderRepository, notifier OrderNotifier, delay time.Duration, logger *zap.Logger) *CheckoutService {
	return &CheckoutService{
		orders:   orders,
		notifier: notifier,
		validate: utils.NewValidator(),
		delay:    delay,
		now:      time.Now,
		logger:   logger,
		pending:  make(map[string]context.CancelFunc),
	}
}

// Checkout validates the form, locks the cart for the simulated payment and
// then places the order and empties the cart. If ctx ends or Cancel is called
// before the payment completes, the cart is unlocked unchanged.
func (s *CheckoutService) Checkout(ctx context.Context, sessionID string, l *ledger.Ledger, req models.CheckoutRequest) (*models.Order, error) {
	req = trimCheckoutRequest(req)
	if err := s.validate.Struct(req); err != nil {
		return nil, &apperrors.ErrValidation{
			Message: "Vui lòng điền đầy đủ thông tin",
			Fields:  utils.FormatValidationError(err),
		}
	}

	if len(l.Items()) == 0 {
		return nil, ErrEmptyCart
	}

	// Registered before the hold so a cancel can never fall between the two.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	s.mu.Lock()
	if _, busy := s.pending[sessionID]; busy {
		s.mu.Unlock()
		return nil, ledger.ErrCheckoutPending
	}
	s.pending[sessionID] = cancel
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.pending, sessionID)
		s.mu.Unlock()
	}()

	hold, err := l.BeginCheckout()
	if err != nil {
		return nil, err
	}
	snap := hold.Snapshot()
	if len(snap.Items) == 0 {
		hold.Release()
		return nil, ErrEmptyCart
	}

	s.logger.Info("Checkout started",
		zap.String("session_id", sessionID),
		zap.Int64("total", snap.Totals.Total),
	)

	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		hold.Release()
		s.logger.Info("Checkout cancelled", zap.String("session_id", sessionID), zap.Error(ctx.Err()))
		return nil, fmt.Errorf("%w: %v", ErrCheckoutCancelled, ctx.Err())
	case <-timer.C:
	}

	now := s.now()
	id := uuid.New()
	order := &models.Order{
		ID:          id,
		OrderNumber: orderNumber(now, id),
		SessionID:   sessionID,
		Items:       snap.Items,
		Totals:      snap.Totals,
		Shipping:    req.Shipping,
		CardLast4:   cardLast4(req.Payment.CardNumber),
		CreatedAt:   now,
	}
	hold.Commit()

	s.logger.Info("Order placed",
		zap.String("order_number", order.OrderNumber),
		zap.String("session_id", sessionID),
		zap.Int64("total", order.Totals.Total),
	)

	// The order exists once the cart is committed; the steps below only log.
	archiveCtx, archiveCancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer archiveCancel()
	if err := s.orders.Create(archiveCtx, order); err != nil {
		s.logger.Error("Failed to archive order", zap.String("order_number", order.OrderNumber), zap.Error(err))
	}
	if s.notifier != nil {
		if err := s.notifier.SendOrderConfirmation(order); err != nil {
			s.logger.Warn("Failed to send order confirmation", zap.String("order_number", order.OrderNumber), zap.Error(err))
		}
	}

	return order, nil
}

func (s *CheckoutService) Pending(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.pending[sessionID]
	return ok
}

// Cancel aborts the session's pending checkout and reports whether one existed.
func (s *CheckoutService) Cancel(sessionID string) bool {
	s.mu.Lock()
	cancel, ok := s.pending[sessionID]
	s.mu.Unlock()
	if ok {
		cancel()
	}
	return ok
}

// orderNumber is ORD-<unix ms>-<first 8 hex digits of the order id>.
func orderNumber(at time.Time, id uuid.UUID) string {
	return fmt.Sprintf("ORD-%d-%s", at.UnixMilli(), strings.ToUpper(id.String()[:8]))
}

func trimCheckoutRequest(req models.CheckoutRequest) models.CheckoutRequest {
	sh := &req.Shipping
	for _, f := range []*string{&sh.FullName, &sh.Email, &sh.Phone, &sh.Address, &sh.City, &sh.ZipCode} {
		*f = strings.TrimSpace(*f)
	}
	p := &req.Payment
	for _, f := range []*string{&p.CardNumber, &p.ExpiryDate, &p.CVV, &p.CardholderName} {
		*f = strings.TrimSpace(*f)
	}
	return req
}

func cardLast4(number string) string {
	digits := make([]rune, 0, len(number))
	for _, r := range number {
		if unicode.IsDigit(r) {
			digits = append(digits, r)
		}
	}
	if len(digits) > 4 {
		digits = digits[len(digits)-4:]
	}
	return string(digits)
}
