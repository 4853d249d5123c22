// Package confirm models mobile-authenticator confirmations and the
// filtering applied before accepting or denying them. It is pure data
// manipulation over already-fetched confirmations; transport lives with
// the caller.
package confirm

import (
	"fmt"
	"strconv"
)

// Kind is the type of a pending confirmation.
type Kind int

const (
	KindUnknown Kind = 0
	KindGeneric Kind = 1
	KindTrade   Kind = 2
	KindMarket  Kind = 3
	// 4 is not publicly documented.
	KindPhoneNumberChange Kind = 5
	KindAccountRecovery   Kind = 6
)

// ParseKind parses the numeric kind string the confirmation page carries.
func ParseKind(s string) (Kind, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return KindUnknown, fmt.Errorf("confirmation kind %q is not numeric: %w", s, err)
	}
	switch k := Kind(n); k {
	case KindUnknown, KindGeneric, KindTrade, KindMarket, KindPhoneNumberChange, KindAccountRecovery:
		return k, nil
	default:
		return KindUnknown, fmt.Errorf("unknown confirmation kind %d", n)
	}
}

func (k Kind) String() string {
	switch k {
	case KindGeneric:
		return "generic"
	case KindTrade:
		return "trade"
	case KindMarket:
		return "market"
	case KindPhoneNumberChange:
		return "phone number change"
	case KindAccountRecovery:
		return "account recovery"
	default:
		return "unknown"
	}
}

// Details is the optional JSON payload attached to a confirmation.
type Details struct {
	// TradeOfferID is set when Kind is KindTrade.
	TradeOfferID *int64 `json:"trade_offer_id,omitempty"`
}

// Confirmation is one pending confirmation scraped from the mobile
// confirmations page.
type Confirmation struct {
	ID      string   `json:"id"`
	Key     string   `json:"key"`
	Kind    Kind     `json:"kind"`
	Details *Details `json:"details,omitempty"`
}

// Confirmations is a filterable batch of confirmations.
type Confirmations []Confirmation

// FilterByKind keeps, in place, only confirmations of the given kind.
func (c *Confirmations) FilterByKind(kind Kind) {
	kept := (*c)[:0]
	for _, conf := range *c {
		if conf.Kind == kind {
			kept = append(kept, conf)
		}
	}
	*c = kept
}

// FilterByTradeOfferIDs keeps, in place, only confirmations whose trade
// offer ID appears in ids. Confirmations without details are dropped.
func (c *Confirmations) FilterByTradeOfferIDs(ids []int64) {
	kept := (*c)[:0]
	for _, conf := range *c {
		if conf.Details == nil || conf.Details.TradeOfferID == nil {
			continue
		}
		for _, id := range ids {
			if *conf.Details.TradeOfferID == id {
				kept = append(kept, conf)
				break
			}
		}
	}
	*c = kept
}

// HasTradeOfferID reports whether any confirmation references the given
// trade offer.
func (c Confirmations) HasTradeOfferID(id int64) bool {
	for _, conf := range c {
		if conf.Details != nil && conf.Details.TradeOfferID != nil && *conf.Details.TradeOfferID == id {
			return true
		}
	}
	return false
}

// Method is the action taken on a confirmation batch.
type Method int

const (
	Accept Method = iota
	Deny
)

// Value returns the parameter value the confirmation endpoint expects.
func (m Method) Value() string {
	if m == Deny {
		return "cancel"
	}
	return "allow"
}
