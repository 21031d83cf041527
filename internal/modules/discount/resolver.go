package discount

import (
	"context"
	"errors"
	"strings"
)

// ErrNotFound is returned when a code is unknown or marked invalid.
var ErrNotFound = errors.New("invalid discount code")

// Code is a promotional code and its percentage discount.
type Code struct {
	Code     string  `json:"code"`
	Discount float64 `json:"discount"` // percentage, 0-100
	Valid    bool    `json:"valid"`
}

// Resolver validates promotional codes.
type Resolver interface {
	Validate(ctx context.Context, code string) (*Code, error)
}

type staticResolver struct {
	codes map[string]*Code
}

// NewStaticResolver returns a resolver backed by the demo code table.
func NewStaticResolver() Resolver {
	return &staticResolver{codes: map[string]*Code{
		"SAVE10":    {Code: "SAVE10", Discount: 10, Valid: true},
		"WELCOME20": {Code: "WELCOME20", Discount: 20, Valid: true},
		"NOIR15":    {Code: "NOIR15", Discount: 15, Valid: true},
	}}
}

// Validate matches codes case-insensitively against the uppercase table.
func (r *staticResolver) Validate(ctx context.Context, code string) (*Code, error) {
	c, ok := r.codes[strings.ToUpper(code)]
	if !ok || !c.Valid {
		return nil, ErrNotFound
	}
	return c, nil
}
