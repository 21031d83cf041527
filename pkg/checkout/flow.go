// Package checkout drives the multi-page checkout flow against the
// storefront API: contact entry, review, bank transfer, and the timed
// processing step that ends in success.
package checkout

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/noir-essentials/storefront-backend/internal/modules/cart"
	"github.com/noir-essentials/storefront-backend/internal/modules/order"
	"github.com/noir-essentials/storefront-backend/internal/modules/payment"
	"github.com/noir-essentials/storefront-backend/pkg/client"
)

// Stage is a page in the checkout flow.
type Stage string

const (
	StageCart       Stage = "cart"
	StageContact    Stage = "contact-entry"
	StageReview     Stage = "review"
	StageTransfer   Stage = "transfer"
	StageProcessing Stage = "processing"
	StageSuccess    Stage = "success"
)

var (
	// ErrWrongStage is returned when an action is invoked from a page it
	// does not belong to.
	ErrWrongStage = errors.New("action not available in current stage")
	// ErrEmptyCart blocks checkout with nothing in the cart.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrNoOrder is returned when the flow has no order to act on.
	ErrNoOrder = errors.New("no order in progress")
	// ErrOrderLost is returned when the server lost the order and no
	// cached snapshot is available to fall back on.
	ErrOrderLost = errors.New("order not found and no cached copy available")
)

// API is the slice of the storefront client the flow depends on.
type API interface {
	GetCart(ctx context.Context) ([]cart.Item, error)
	ClearCart(ctx context.Context) error
	CreateOrder(ctx context.Context, contactInfo order.ContactInfo, discountCode string, cartItems []cart.Item) (*order.Order, error)
	GetOrder(ctx context.Context, id string) (*order.Order, error)
	GetPaymentAccount(ctx context.Context, orderID string) (*payment.Account, error)
	ConfirmPayment(ctx context.Context, orderID string, orderData *order.Order) (*order.Order, error)
	CancelPayment(ctx context.Context, orderID string) error
}

// Config carries the flow timers.
type Config struct {
	// TransferTimeout is how long the transfer page waits for the
	// customer before backing out to review.
	TransferTimeout time.Duration
	// ProcessingDelay is the simulated payment-verification wait before
	// the flow lands on success.
	ProcessingDelay time.Duration
}

// DefaultConfig mirrors the storefront's page timers: a 10 minute
// transfer countdown and a 10 second processing screen.
func DefaultConfig() Config {
	return Config{TransferTimeout: 10 * time.Minute, ProcessingDelay: 10 * time.Second}
}

// Flow is one customer's walk through checkout. All methods are safe for
// use from timer callbacks and callers alike.
type Flow struct {
	mu    sync.Mutex
	api   API
	cfg   Config
	cache *Cache
	stage Stage

	// gen invalidates timer callbacks armed before a stage change or
	// Close, so a stale timer can never fire a transition.
	gen           int
	transferTimer *time.Timer
	processTimer  *time.Timer

	validate *validator.Validate
}

// NewFlow starts a flow at the cart stage.
func NewFlow(api API, cfg Config) *Flow {
	if cfg.TransferTimeout <= 0 {
		cfg.TransferTimeout = DefaultConfig().TransferTimeout
	}
	if cfg.ProcessingDelay <= 0 {
		cfg.ProcessingDelay = DefaultConfig().ProcessingDelay
	}
	return &Flow{
		api:      api,
		cfg:      cfg,
		cache:    NewCache(),
		stage:    StageCart,
		validate: validator.New(),
	}
}

// Stage returns the flow's current page.
func (f *Flow) Stage() Stage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stage
}

// Cache exposes the session cache, e.g. to pre-fill the contact form.
func (f *Flow) Cache() *Cache { return f.cache }

// BeginCheckout moves from the cart page to contact entry. Requires a
// non-empty cart.
func (f *Flow) BeginCheckout(ctx context.Context) error {
	if err := f.requireStage(StageCart); err != nil {
		return err
	}
	items, err := f.api.GetCart(ctx)
	if err != nil {
		return errors.Wrap(err, "fetch cart")
	}
	if len(items) == 0 {
		return ErrEmptyCart
	}
	f.setStage(StageContact)
	return nil
}

// SubmitContact validates the contact form and moves to review. The
// info is cached so it survives navigation back and forth.
func (f *Flow) SubmitContact(info order.ContactInfo) error {
	if err := f.requireStage(StageContact); err != nil {
		return err
	}

	missing := missingContactFields(info)
	if len(missing) > 0 {
		return &order.MissingFieldsError{Fields: missing}
	}
	if err := f.validate.Var(info.Email, "email"); err != nil {
		return errors.New("email address is not valid")
	}

	f.cache.SetContact(info)
	f.setStage(StageReview)
	return nil
}

// PlaceOrder creates the order (carrying the optional discount code
// applied on the review page) and moves to the transfer page, arming the
// abandonment countdown.
func (f *Flow) PlaceOrder(ctx context.Context, discountCode string) (*order.Order, error) {
	if err := f.requireStage(StageReview); err != nil {
		return nil, err
	}
	contact := f.cache.Contact()
	if contact == nil {
		return nil, errors.New("contact info has not been submitted")
	}

	// Send the cart along with the request so the order survives even if
	// the server-side cart was lost between pages.
	items, err := f.api.GetCart(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "fetch cart")
	}

	o, err := f.api.CreateOrder(ctx, *contact, discountCode, items)
	if err != nil {
		return nil, errors.Wrap(err, "create order")
	}
	f.cache.SetOrder(o)

	f.mu.Lock()
	f.stage = StageTransfer
	f.gen++
	gen := f.gen
	f.transferTimer = time.AfterFunc(f.cfg.TransferTimeout, func() { f.transferExpired(gen) })
	f.mu.Unlock()

	log.WithFields(log.Fields{"orderId": o.ID}).Info("order placed, awaiting transfer")
	return o, nil
}

// Account fetches the escrow account shown on the transfer page.
func (f *Flow) Account(ctx context.Context) (*payment.Account, error) {
	if err := f.requireStage(StageTransfer); err != nil {
		return nil, err
	}
	return f.api.GetPaymentAccount(ctx, f.cache.OrderID())
}

// ConfirmPayment is the customer's "I have sent the money" action. It
// clears the abandonment countdown, confirms the payment (falling back
// to the cached order snapshot when the server lost the ledger entry),
// and enters the timed processing stage.
func (f *Flow) ConfirmPayment(ctx context.Context) (*order.Order, error) {
	if err := f.requireStage(StageTransfer); err != nil {
		return nil, err
	}
	orderID := f.cache.OrderID()
	if orderID == "" {
		return nil, ErrNoOrder
	}

	fallback := f.cache.Order()
	if _, err := f.api.GetOrder(ctx, orderID); err != nil {
		if !client.IsNotFound(err) {
			return nil, errors.Wrap(err, "verify order")
		}
		log.WithFields(log.Fields{"orderId": orderID}).Warn("order not found on server, using cached snapshot")
		if fallback == nil {
			return nil, ErrOrderLost
		}
	}

	confirmed, err := f.api.ConfirmPayment(ctx, orderID, fallback)
	if err != nil {
		return nil, errors.Wrap(err, "confirm payment")
	}
	f.cache.SetOrder(confirmed)

	if err := f.api.ClearCart(ctx); err != nil {
		log.WithError(err).Warn("failed to clear cart after confirmation")
	}

	f.mu.Lock()
	f.stopTimersLocked()
	f.stage = StageProcessing
	f.gen++
	gen := f.gen
	f.processTimer = time.AfterFunc(f.cfg.ProcessingDelay, func() { f.processingDone(gen) })
	f.mu.Unlock()

	log.WithFields(log.Fields{"orderId": orderID}).Info("payment confirmed, processing")
	return confirmed, nil
}

// CancelTransfer abandons the transfer, cancelling the order and
// returning the customer to the catalog.
func (f *Flow) CancelTransfer(ctx context.Context) error {
	if err := f.requireStage(StageTransfer); err != nil {
		return err
	}
	orderID := f.cache.OrderID()
	if orderID == "" {
		return ErrNoOrder
	}
	if err := f.api.CancelPayment(ctx, orderID); err != nil {
		return errors.Wrap(err, "cancel payment")
	}
	f.cache.SetOrder(nil)
	f.setStage(StageCart)
	log.WithFields(log.Fields{"orderId": orderID}).Info("transfer cancelled")
	return nil
}

// Close tears the flow down, stopping any armed timers so nothing fires
// after the owning view is gone.
func (f *Flow) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gen++
	f.stopTimersLocked()
}

// transferExpired fires when the customer sat on the transfer page for
// the full countdown: back to the review page.
func (f *Flow) transferExpired(gen int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.gen != gen || f.stage != StageTransfer {
		return
	}
	f.stage = StageReview
	f.gen++
	log.WithFields(log.Fields{"orderId": f.cache.OrderID()}).Info("transfer countdown expired, returning to review")
}

// processingDone fires after the simulated verification wait.
func (f *Flow) processingDone(gen int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.gen != gen || f.stage != StageProcessing {
		return
	}
	f.stage = StageSuccess
	f.gen++
	log.WithFields(log.Fields{"orderId": f.cache.OrderID()}).Info("processing finished")
}

func (f *Flow) requireStage(want Stage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stage != want {
		return errors.Wrapf(ErrWrongStage, "in stage %s, need %s", f.stage, want)
	}
	return nil
}

func (f *Flow) setStage(s Stage) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stage = s
	f.gen++
	f.stopTimersLocked()
}

func (f *Flow) stopTimersLocked() {
	if f.transferTimer != nil {
		f.transferTimer.Stop()
		f.transferTimer = nil
	}
	if f.processTimer != nil {
		f.processTimer.Stop()
		f.processTimer = nil
	}
}

func missingContactFields(info order.ContactInfo) []string {
	var missing []string
	for _, field := range []struct{ name, value string }{
		{"fullName", info.FullName},
		{"email", info.Email},
		{"phone", info.Phone},
		{"address", info.Address},
		{"accountDetails", info.AccountDetails},
	} {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}
	return missing
}
