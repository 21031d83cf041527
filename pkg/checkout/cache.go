package checkout

import (
	"sync"

	"github.com/noir-essentials/storefront-backend/internal/modules/order"
)

// Cache is the client-held, short-lived state that survives page
// navigation within one checkout: the contact info entered at the
// contact step and the last created order. The cached order is the
// fallback snapshot for payment confirmation when the server-side ledger
// has lost the order.
type Cache struct {
	mu      sync.Mutex
	contact *order.ContactInfo
	order   *order.Order
	orderID string
}

// NewCache creates an empty cache.
func NewCache() *Cache { return &Cache{} }

func (c *Cache) SetContact(info order.ContactInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	copied := info
	c.contact = &copied
}

func (c *Cache) Contact() *order.ContactInfo {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.contact == nil {
		return nil
	}
	copied := *c.contact
	return &copied
}

func (c *Cache) SetOrder(o *order.Order) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if o == nil {
		c.order = nil
		c.orderID = ""
		return
	}
	copied := *o
	copied.Items = append(copied.Items[:0:0], o.Items...)
	c.order = &copied
	c.orderID = o.ID
}

func (c *Cache) Order() *order.Order {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.order == nil {
		return nil
	}
	copied := *c.order
	copied.Items = append(copied.Items[:0:0], c.order.Items...)
	return &copied
}

func (c *Cache) OrderID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.orderID
}

// Clear drops everything, as closing the browser session would.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.contact = nil
	c.order = nil
	c.orderID = ""
}
