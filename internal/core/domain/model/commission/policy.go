package commission

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Policy holds the commission rates for one order category. All rates are
// fractions of one, so a 15% agent commission is 0.15.
//
// The platform fee and the agent commission both apply to the order's gross
// value. The referral commission applies to the platform fee, not to gross:
// referrers share the platform's margin, never the seller's or the agent's.
type Policy struct {
	PlatformFeeRate decimal.Decimal
	AgentRate       decimal.Decimal
	ReferralRate    decimal.Decimal
}

// Validate checks every rate lies in [0, 1] and that the platform fee plus
// the agent commission leave something for the seller.
func (p Policy) Validate() error {
	one := decimal.NewFromInt(1)
	for _, rate := range []struct {
		name  string
		value decimal.Decimal
	}{
		{"platform fee rate", p.PlatformFeeRate},
		{"agent rate", p.AgentRate},
		{"referral rate", p.ReferralRate},
	} {
		if rate.value.IsNegative() || rate.value.GreaterThan(one) {
			return errs.NewValueIsInvalidErrorWithCause("rate is invalid",
				fmt.Errorf("%s %s is not between 0 and 1", rate.name, rate.value))
		}
	}

	if p.PlatformFeeRate.Add(p.AgentRate).GreaterThan(one) {
		return errs.NewValueIsInvalidError("platform fee and agent rate together exceed gross")
	}
	return nil
}

// Breakdown is the money split of one order under a Policy. All amounts are
// rounded to two decimal places; the seller payout absorbs the remainder so
// the four parts always sum back to gross minus the referral, which is paid
// out of the platform fee.
type Breakdown struct {
	Gross              kernel.Money
	PlatformFee        kernel.Money
	AgentCommission    kernel.Money
	ReferralCommission kernel.Money
	SellerPayout       kernel.Money
}

// Calculate splits an order's gross value into the platform fee, the agent
// commission, the referral commission and the seller payout.
func (p Policy) Calculate(gross kernel.Money) (Breakdown, error) {
	if err := p.Validate(); err != nil {
		return Breakdown{}, err
	}

	fee := gross.MulRate(p.PlatformFeeRate)
	agent := gross.MulRate(p.AgentRate)
	referral := fee.MulRate(p.ReferralRate)
	payout := gross.Sub(fee).Sub(agent)

	return Breakdown{
		Gross:              gross,
		PlatformFee:        fee,
		AgentCommission:    agent,
		ReferralCommission: referral,
		SellerPayout:       payout,
	}, nil
}

// ErrPolicyNotFound is returned when a category has no policy and no default
// policy is configured.
var ErrPolicyNotFound = errors.New("no commission policy for category")

// PolicyTable maps order categories to commission policies, with a default
// used for categories without a dedicated row. Rates live here and only
// here, so changing a rate is a configuration change rather than a hunt
// through call sites.
type PolicyTable struct {
	policies map[order.Category]Policy
	fallback Policy
}

// NewPolicyTable builds a table from per-category policies plus a default.
// Every policy is validated up front.
func NewPolicyTable(policies map[order.Category]Policy, fallback Policy) (PolicyTable, error) {
	if err := fallback.Validate(); err != nil {
		return PolicyTable{}, err
	}
	for category, policy := range policies {
		if err := policy.Validate(); err != nil {
			return PolicyTable{}, fmt.Errorf("policy for %q: %w", category, err)
		}
	}

	table := PolicyTable{
		policies: make(map[order.Category]Policy, len(policies)),
		fallback: fallback,
	}
	for category, policy := range policies {
		table.policies[category] = policy
	}
	return table, nil
}

// DefaultPolicyTable returns the production rate table: a 21% platform fee
// and 15% agent commission on every category, a 30% referral share of the
// fee, and a slightly higher agent rate for express orders.
func DefaultPolicyTable() PolicyTable {
	standard := Policy{
		PlatformFeeRate: decimal.NewFromFloat(0.21),
		AgentRate:       decimal.NewFromFloat(0.15),
		ReferralRate:    decimal.NewFromFloat(0.30),
	}
	express := Policy{
		PlatformFeeRate: decimal.NewFromFloat(0.21),
		AgentRate:       decimal.NewFromFloat(0.18),
		ReferralRate:    decimal.NewFromFloat(0.30),
	}

	table, err := NewPolicyTable(map[order.Category]Policy{
		order.CategoryStandard: standard,
		order.CategoryExpress:  express,
	}, standard)
	if err != nil {
		panic(err)
	}
	return table
}

// PolicyFor returns the policy for a category, falling back to the default.
func (t PolicyTable) PolicyFor(category order.Category) Policy {
	if policy, ok := t.policies[category]; ok {
		return policy
	}
	return t.fallback
}
