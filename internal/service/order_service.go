package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/cryptobloom/backend/internal/domain"
	"github.com/cryptobloom/backend/internal/events"
	"github.com/cryptobloom/backend/internal/repository"
	apperrors "github.com/cryptobloom/backend/pkg/util"
)

// OrderService handles flower checkout and fulfillment.
type OrderService struct {
	orders     repository.OrderRepository
	flowers    repository.FlowerRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// NewOrderService builds the service.
func NewOrderService(orders repository.OrderRepository, flowers repository.FlowerRepository, users repository.UserRepository, dispatcher events.Dispatcher) *OrderService {
	return &OrderService{orders: orders, flowers: flowers, users: users, dispatcher: dispatcher}
}

// CheckoutItem is one requested line item.
type CheckoutItem struct {
	FlowerID string
	Quantity int
}

// CheckoutInput carries order placement fields.
type CheckoutInput struct {
	Items           []CheckoutItem
	ShippingAddress domain.ShippingAddress
	PaymentMethod   domain.PaymentMethod
}

// Checkout places an order. Line items are priced from the current
// catalog records, stock is decremented, and wallet payments debit the
// user's balance. Name and price are snapshotted onto the order.
func (s *OrderService) Checkout(ctx context.Context, userID string, in CheckoutInput) (*domain.Order, error) {
	if len(in.Items) == 0 {
		return nil, apperrors.NewValidationError("order must contain at least one item", nil)
	}
	addr := in.ShippingAddress
	if addr.Street == "" || addr.City == "" || addr.State == "" || addr.ZipCode == "" {
		return nil, apperrors.NewValidationError("shipping address incomplete", nil)
	}
	if addr.Country == "" {
		addr.Country = "USA"
	}
	method := in.PaymentMethod
	if method == "" {
		method = domain.PaymentWallet
	}
	if !method.Valid() {
		return nil, apperrors.NewValidationError("unknown payment method", nil)
	}

	var (
		items []domain.OrderItem
		total float64
	)
	for _, req := range in.Items {
		if req.Quantity < 1 {
			return nil, apperrors.NewValidationError("quantity must be at least 1", nil)
		}
		flower, err := s.flowers.GetByID(ctx, req.FlowerID)
		if err != nil {
			return nil, err
		}
		if !flower.IsActive {
			return nil, apperrors.NewValidationError("flower not available", map[string]any{"flower_id": req.FlowerID})
		}
		if flower.Stock < req.Quantity {
			return nil, apperrors.NewConflict("insufficient stock", map[string]any{
				"flower_id": req.FlowerID,
				"available": flower.Stock,
			})
		}
		items = append(items, domain.OrderItem{
			FlowerID: flower.ID,
			Name:     flower.Name,
			Price:    flower.Price,
			Quantity: req.Quantity,
		})
		total += flower.Price * float64(req.Quantity)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if method == domain.PaymentWallet {
		if user.Wallet < total {
			return nil, apperrors.NewValidationError("insufficient wallet balance", map[string]any{
				"required":  total,
				"available": user.Wallet,
			})
		}
	}

	// Settle before the order becomes durable: stock first, then the
	// wallet, compensating on failure so an error branch never leaves a
	// confirmed order behind a half-applied settlement.
	var reserved []domain.OrderItem
	releaseStock := func() {
		for _, item := range reserved {
			_ = s.flowers.AdjustStock(ctx, item.FlowerID, item.Quantity)
		}
	}
	for _, item := range items {
		if err := s.flowers.AdjustStock(ctx, item.FlowerID, -item.Quantity); err != nil {
			releaseStock()
			return nil, apperrors.NewConflict("insufficient stock", map[string]any{
				"flower_id": item.FlowerID,
			})
		}
		reserved = append(reserved, item)
	}
	if method == domain.PaymentWallet {
		if err := s.users.UpdateWallet(ctx, userID, user.Wallet-total); err != nil {
			releaseStock()
			return nil, err
		}
	}

	order := &domain.Order{
		UserID:          userID,
		Items:           items,
		Total:           total,
		Status:          domain.OrderStatusPending,
		ShippingAddress: addr,
		PaymentMethod:   method,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		if method == domain.PaymentWallet {
			_ = s.users.UpdateWallet(ctx, userID, user.Wallet)
		}
		releaseStock()
		return nil, err
	}

	s.publish(ctx, events.EventOrderPlaced, userID, events.OrderPlacedPayload{
		OrderID:       order.ID,
		Total:         order.Total,
		PaymentMethod: order.PaymentMethod,
		ItemCount:     len(order.Items),
		Email:         user.Email,
	})
	return order, nil
}

// ListForUser returns the user's orders, newest first.
func (s *OrderService) ListForUser(ctx context.Context, userID string, limit, offset int) ([]domain.Order, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.orders.ListByUser(ctx, userID, limit, offset)
}

// GetForUser returns an order if it belongs to the user.
func (s *OrderService) GetForUser(ctx context.Context, userID, orderID string) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, apperrors.NewNotFound("order", nil)
	}
	return order, nil
}

// validStatusTransitions describes allowed fulfillment moves.
var validStatusTransitions = map[domain.OrderStatus][]domain.OrderStatus{
	domain.OrderStatusPending:    {domain.OrderStatusProcessing, domain.OrderStatusCancelled},
	domain.OrderStatusProcessing: {domain.OrderStatusShipped, domain.OrderStatusCancelled},
	domain.OrderStatusShipped:    {domain.OrderStatusDelivered},
}

// UpdateStatus moves an order along the fulfillment pipeline (admin
// surface). Entering shipped assigns a tracking number; cancelling
// restores stock and refunds wallet payments.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID string, next domain.OrderStatus) (*domain.Order, error) {
	if !next.Valid() {
		return nil, apperrors.NewValidationError("unknown order status", nil)
	}

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	allowed := false
	for _, status := range validStatusTransitions[order.Status] {
		if status == next {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, apperrors.NewConflict("invalid status transition", map[string]any{
			"from": order.Status,
			"to":   next,
		})
	}

	var tracking *string
	if next == domain.OrderStatusShipped && order.TrackingNumber == nil {
		tn := "CB-" + uuid.NewString()
		tracking = &tn
	}

	if next == domain.OrderStatusCancelled {
		for _, item := range order.Items {
			if err := s.flowers.AdjustStock(ctx, item.FlowerID, item.Quantity); err != nil {
				return nil, err
			}
		}
		if order.PaymentMethod == domain.PaymentWallet {
			user, err := s.users.GetByID(ctx, order.UserID)
			if err != nil {
				return nil, err
			}
			if err := s.users.UpdateWallet(ctx, order.UserID, user.Wallet+order.Total); err != nil {
				return nil, err
			}
		}
	}

	if err := s.orders.UpdateStatus(ctx, orderID, next, tracking); err != nil {
		return nil, err
	}

	old := order.Status
	order.Status = next
	if tracking != nil {
		order.TrackingNumber = tracking
	}

	s.publish(ctx, events.EventOrderStatusChanged, order.UserID, events.OrderStatusChangedPayload{
		OrderID:        order.ID,
		OldStatus:      old,
		NewStatus:      next,
		TrackingNumber: order.TrackingNumber,
	})
	return order, nil
}

func (s *OrderService) publish(ctx context.Context, eventType events.EventType, userID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		UserID:    userID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
