package order

import (
	"context"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/noir-essentials/storefront-backend/internal/modules/cart"
	"github.com/noir-essentials/storefront-backend/internal/modules/discount"
)

// CartSource supplies the server-side cart snapshot for a session when
// the create request carries no item override.
type CartSource interface {
	Get(ctx context.Context, key string) ([]*cart.Item, error)
}

// Service defines the order ledger business logic.
type Service interface {
	// Create validates contact info, prices the cart, and appends a new
	// pending order to the ledger.
	Create(ctx context.Context, sessionKey string, req CreateOrderRequest) (*Order, error)

	// GetByID retrieves an order. ErrNotFound is expected after restarts.
	GetByID(ctx context.Context, id string) (*Order, error)

	// UpdateStatus moves an order along its lifecycle, rejecting illegal
	// transitions. Setting the current status again is a no-op.
	UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*Order, error)

	// Reconcile re-inserts an order from a client-held snapshot after the
	// ledger lost it, forcing the status to processing. This is the
	// recovery contract behind payment confirmation.
	Reconcile(ctx context.Context, snapshot *Order) (*Order, error)

	// MarkProcessing and MarkCancelled are the payment flow's direct
	// status writes. They check existence only, not transitions.
	MarkProcessing(ctx context.Context, id string) (*Order, error)
	MarkCancelled(ctx context.Context, id string) (*Order, error)
}

// requiredContactFields are checked non-empty after trimming, in the
// order they are reported back to the client.
var requiredContactFields = []string{"fullName", "email", "phone", "address", "accountDetails"}

type service struct {
	repo     Repository
	carts    CartSource
	resolver discount.Resolver
	validate *validator.Validate
}

// NewService creates a new order service.
func NewService(repo Repository, carts CartSource, resolver discount.Resolver) Service {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &service{repo: repo, carts: carts, resolver: resolver, validate: v}
}

func (s *service) Create(ctx context.Context, sessionKey string, req CreateOrderRequest) (*Order, error) {
	if req.ContactInfo == nil {
		return nil, &MissingFieldsError{Fields: requiredContactFields}
	}

	contact := trimContact(*req.ContactInfo)
	if err := s.validate.Struct(contact); err != nil {
		var verr validator.ValidationErrors
		if errors.As(err, &verr) {
			missing := make([]string, 0, len(verr))
			for _, fe := range verr {
				missing = append(missing, fe.Field())
			}
			return nil, &MissingFieldsError{Fields: missing}
		}
		return nil, errors.Wrap(err, "validate contact info")
	}

	items := req.CartItems
	if len(items) == 0 {
		snapshot, err := s.carts.Get(ctx, sessionKey)
		if err != nil {
			return nil, errors.Wrap(err, "read cart")
		}
		items = make([]cart.Item, 0, len(snapshot))
		for _, it := range snapshot {
			items = append(items, *it)
		}
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	var subtotal float64
	for _, it := range items {
		subtotal += it.Product.Price * float64(it.Quantity)
	}

	// An unknown or invalid code degrades silently to zero discount so a
	// typo never blocks checkout. The review page surfaces validation
	// failures separately through GET /discount/{code}.
	var discountAmount float64
	if req.DiscountCode != "" {
		code, err := s.resolver.Validate(ctx, req.DiscountCode)
		if err == nil {
			discountAmount = subtotal * code.Discount / 100
		} else {
			log.WithFields(log.Fields{
				"discountCode": req.DiscountCode,
			}).Warn("discount code did not resolve, creating order without discount")
		}
	}

	o := &Order{
		ID:           "order-" + uuid.NewString(),
		Items:        items,
		ContactInfo:  contact,
		Subtotal:     subtotal,
		Discount:     discountAmount,
		Total:        subtotal - discountAmount,
		DiscountCode: req.DiscountCode,
		Status:       StatusPending,
	}

	if err := s.repo.Insert(ctx, o); err != nil {
		return nil, errors.Wrap(err, "insert order")
	}

	total, _ := s.repo.Count(ctx)
	log.WithFields(log.Fields{
		"orderId":     o.ID,
		"items":       len(o.Items),
		"total":       o.Total,
		"totalOrders": total,
	}).Info("order created")
	return o, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Order, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*Order, error) {
	status, err := ParseStatus(req.Status)
	if err != nil {
		return nil, err
	}

	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.Status == status {
		return o, nil
	}
	if !CanTransition(o.Status, status) {
		return nil, errors.Wrapf(ErrInvalidTransition, "cannot move order from %s to %s", o.Status, status)
	}
	return s.repo.SetStatus(ctx, id, status)
}

func (s *service) Reconcile(ctx context.Context, snapshot *Order) (*Order, error) {
	if snapshot == nil || snapshot.ID == "" || len(snapshot.Items) == 0 {
		return nil, ErrInvalidSnapshot
	}

	recreated := *snapshot
	recreated.Status = StatusProcessing
	if err := s.repo.Insert(ctx, &recreated); err != nil {
		return nil, errors.Wrap(err, "insert reconciled order")
	}
	log.WithFields(log.Fields{
		"orderId": recreated.ID,
	}).Info("order recreated from client snapshot")
	return &recreated, nil
}

func (s *service) MarkProcessing(ctx context.Context, id string) (*Order, error) {
	return s.repo.SetStatus(ctx, id, StatusProcessing)
}

func (s *service) MarkCancelled(ctx context.Context, id string) (*Order, error) {
	return s.repo.SetStatus(ctx, id, StatusCancelled)
}

func trimContact(c ContactInfo) ContactInfo {
	c.FullName = strings.TrimSpace(c.FullName)
	c.Email = strings.TrimSpace(c.Email)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Address = strings.TrimSpace(c.Address)
	c.AccountDetails = strings.TrimSpace(c.AccountDetails)
	c.Note = strings.TrimSpace(c.Note)
	c.DeliveryAddress = strings.TrimSpace(c.DeliveryAddress)
	c.BankName = strings.TrimSpace(c.BankName)
	return c
}
