// Package billingsvc is the tiered-discount calculator. It is stateless:
// a quote is a pure function of (gender, age, subtotal).
//
// Discount structure:
// - Male >= 65:   20% (2L-3L), 30% (3L-5L), 35% (>5L)
// - Male < 65:    10% (2L-3L), 20% (3L-5L), 25% (>5L)
// - Female >= 65: 25% (2L-3L), 35% (3L-5L), 40% (>5L)
// - Female < 65:  15% (2L-3L), 25% (3L-5L), 35% (>5L)
package billingsvc

import (
	"errors"
)

type ErrCode string

const ErrBadInput ErrCode = "BAD_INPUT"

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

const seniorAge = 65

// band covers (Min, Max]; Min itself is included only when FromInclusive is
// set (the bottom band). Max < 0 means open-ended upward.
type band struct {
	Min           int64
	Max           int64
	FromInclusive bool
	Percent       int64
}

// Authoritative boundaries: [200000,300000] -> tier1, (300000,500000] -> tier2,
// (500000,inf) -> tier3. Bands are scanned in order, first match wins; below
// 200000 nothing matches and the discount is 0.
var discountRules = map[Gender]map[bool][]band{
	Male: {
		true: { // senior
			{Min: 200000, Max: 300000, FromInclusive: true, Percent: 20},
			{Min: 300000, Max: 500000, Percent: 30},
			{Min: 500000, Max: -1, Percent: 35},
		},
		false: {
			{Min: 200000, Max: 300000, FromInclusive: true, Percent: 10},
			{Min: 300000, Max: 500000, Percent: 20},
			{Min: 500000, Max: -1, Percent: 25},
		},
	},
	Female: {
		true: {
			{Min: 200000, Max: 300000, FromInclusive: true, Percent: 25},
			{Min: 300000, Max: 500000, Percent: 35},
			{Min: 500000, Max: -1, Percent: 40},
		},
		false: {
			{Min: 200000, Max: 300000, FromInclusive: true, Percent: 15},
			{Min: 300000, Max: 500000, Percent: 25},
			{Min: 500000, Max: -1, Percent: 35},
		},
	},
}

func (b band) contains(amount int64) bool {
	if b.FromInclusive {
		if amount < b.Min {
			return false
		}
	} else if amount <= b.Min {
		return false
	}
	return b.Max < 0 || amount <= b.Max
}

// Discount returns the applicable percent for the profile and subtotal.
func Discount(gender Gender, age int64, subtotal int64) int64 {
	for _, b := range discountRules[gender][age >= seniorAge] {
		if b.contains(subtotal) {
			return b.Percent
		}
	}
	return 0
}

type Quote struct {
	Subtotal       int64 `json:"subtotal"`
	Percent        int64 `json:"percent"`
	DiscountAmount int64 `json:"discount_amount"`
	NetPayable     int64 `json:"net_payable"`
}

type Service interface {
	Quote(gender string, age int64, subtotal int64) (*Quote, error)
}

type service struct{}

func New() Service { return service{} }

func (service) Quote(gender string, age int64, subtotal int64) (*Quote, error) {
	g := Gender(gender)
	if g != Male && g != Female {
		return nil, makeErr(ErrBadInput)
	}
	if age <= 0 || subtotal < 0 {
		return nil, makeErr(ErrBadInput)
	}
	pct := Discount(g, age, subtotal)
	amount := subtotal * pct / 100
	return &Quote{
		Subtotal:       subtotal,
		Percent:        pct,
		DiscountAmount: amount,
		NetPayable:     subtotal - amount,
	}, nil
}
