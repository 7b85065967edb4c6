package order

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopora/backend/internal/domain/order"
	"github.com/shopora/backend/internal/domain/shared"
	"github.com/shopora/backend/internal/domain/shared/valueobject"
)

// orderNumberAttempts bounds the retries when a generated order number
// collides with an existing one
const orderNumberAttempts = 5

// OrderService handles checkout and order lifecycle operations
type OrderService struct {
	orderRepo order.OrderRepository
	txScope   TransactionScope
	logger    *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(orderRepo order.OrderRepository, txScope TransactionScope, logger *zap.Logger) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		txScope:   txScope,
		logger:    logger,
	}
}

// Checkout converts the user's active cart into an order. The cart is marked
// converted, the applied coupon's usage counter is incremented, and the order
// snapshot is written, all in one transaction. Stock was already reserved
// when items were added to the cart.
func (s *OrderService) Checkout(ctx context.Context, input CheckoutInput) (*OrderResult, error) {
	opts := []valueobject.AddressOption{}
	if input.Line2 != "" {
		opts = append(opts, valueobject.WithLine2(input.Line2))
	}
	if input.Phone != "" {
		opts = append(opts, valueobject.WithPhone(input.Phone))
	}
	address, err := valueobject.NewAddress(
		input.FullName, input.Line1, input.City,
		input.State, input.PostalCode, input.Country, opts...)
	if err != nil {
		return nil, err
	}

	var result *OrderResult
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		c, err := repos.CartRepo().FindActiveByUser(ctx, input.UserID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("CART_EMPTY", "Nothing to check out")
			}
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to load cart")
		}
		if c.IsEmpty() {
			return shared.NewDomainError("CART_EMPTY", "Nothing to check out")
		}

		orderNumber, err := s.uniqueOrderNumber(ctx, repos)
		if err != nil {
			return err
		}

		o, err := order.NewOrderFromCart(c, orderNumber, address)
		if err != nil {
			return err
		}

		if c.HasCoupon() && c.CouponID != nil {
			coupon, err := repos.CouponRepo().FindByID(ctx, *c.CouponID)
			switch {
			case err == nil:
				if err := coupon.IncrementUsage(); err != nil {
					return err
				}
				if err := repos.CouponRepo().Save(ctx, coupon); err != nil {
					return shared.NewDomainError("INTERNAL_ERROR", "Failed to record coupon usage")
				}
				publishEvents(s.logger, coupon)
			case errors.Is(err, shared.ErrNotFound):
				// Coupon deleted after it was applied; the discount stands
			default:
				return shared.NewDomainError("INTERNAL_ERROR", "Failed to record coupon usage")
			}
		}

		if err := c.MarkConverted(); err != nil {
			return err
		}
		if err := repos.CartRepo().Save(ctx, c); err != nil {
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to close cart")
		}
		if err := repos.OrderRepo().Save(ctx, o); err != nil {
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to create order")
		}
		publishEvents(s.logger, c, o)

		s.logger.Info("Order placed",
			zap.String("order_id", o.ID.String()),
			zap.String("order_number", o.OrderNumber),
			zap.String("user_id", input.UserID.String()),
			zap.String("total", o.Total.String()))

		result = toOrderResult(o)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Get returns one of the user's orders. Orders belonging to other users are
// reported as not found.
func (s *OrderService) Get(ctx context.Context, userID, orderID uuid.UUID) (*OrderResult, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Order not found")
	}
	if o.UserID != userID {
		return nil, shared.NewDomainError("NOT_FOUND", "Order not found")
	}
	return toOrderResult(o), nil
}

// List returns a filtered, paginated page of orders
func (s *OrderService) List(ctx context.Context, input ListOrdersInput) (*OrderListResult, error) {
	filter := order.OrderFilter{
		UserID:   input.UserID,
		Page:     input.Page,
		PageSize: input.PageSize,
	}
	if input.Status != "" {
		status := order.OrderStatus(input.Status)
		filter.Status = &status
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}

	orders, total, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list orders", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list orders")
	}

	results := make([]OrderResult, 0, len(orders))
	for _, o := range orders {
		results = append(results, *toOrderResult(o))
	}
	return &OrderListResult{
		Orders:   results,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

// Cancel cancels one of the user's orders and returns the reserved stock.
// Only pending and paid orders can be cancelled.
func (s *OrderService) Cancel(ctx context.Context, userID, orderID uuid.UUID) (*OrderResult, error) {
	var result *OrderResult
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		o, err := repos.OrderRepo().FindByID(ctx, orderID)
		if err != nil {
			return shared.NewDomainError("NOT_FOUND", "Order not found")
		}
		if o.UserID != userID {
			return shared.NewDomainError("NOT_FOUND", "Order not found")
		}

		if err := o.Cancel(); err != nil {
			return err
		}

		for i := range o.Items {
			item := &o.Items[i]
			product, variant, err := repos.ProductRepo().FindVariantByID(ctx, item.VariantID)
			if err != nil {
				// Variant removed from the catalog since the order was placed
				if errors.Is(err, shared.ErrNotFound) {
					continue
				}
				return shared.NewDomainError("INTERNAL_ERROR", "Failed to return stock")
			}
			if err := variant.Release(item.Quantity); err != nil {
				return err
			}
			if err := repos.ProductRepo().Save(ctx, product); err != nil {
				return shared.NewDomainError("INTERNAL_ERROR", "Failed to return stock")
			}
		}

		if err := repos.OrderRepo().Save(ctx, o); err != nil {
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to cancel order")
		}
		publishEvents(s.logger, o)

		s.logger.Info("Order cancelled",
			zap.String("order_id", o.ID.String()),
			zap.String("order_number", o.OrderNumber))

		result = toOrderResult(o)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateStatus advances an order through its lifecycle. Admin operation;
// the allowed transitions are enforced by the aggregate.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) (*OrderResult, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Order not found")
	}

	switch order.OrderStatus(status) {
	case order.OrderStatusPaid:
		err = o.MarkPaid()
	case order.OrderStatusShipped:
		err = o.MarkShipped()
	case order.OrderStatusDelivered:
		err = o.MarkDelivered()
	default:
		return nil, shared.NewDomainError("INVALID_STATUS", "Unknown order status")
	}
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update order")
	}
	publishEvents(s.logger, o)

	s.logger.Info("Order status updated",
		zap.String("order_id", o.ID.String()),
		zap.String("status", string(o.Status)))

	return toOrderResult(o), nil
}

func (s *OrderService) uniqueOrderNumber(ctx context.Context, repos TransactionalRepositories) (string, error) {
	for i := 0; i < orderNumberAttempts; i++ {
		candidate := order.GenerateOrderNumber(time.Now())
		exists, err := repos.OrderRepo().ExistsByNumber(ctx, candidate)
		if err != nil {
			return "", shared.NewDomainError("INTERNAL_ERROR", "Failed to generate order number")
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", shared.NewDomainError("INTERNAL_ERROR", "Failed to generate a unique order number")
}
