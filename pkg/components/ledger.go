package components

import (
	"github.com/gonewx/bastion/pkg/config"
	"github.com/gonewx/bastion/pkg/types"
)

// Ledger holds a player's independent, never-negative resource counters.
type Ledger struct {
	amounts [len(resourceSlots)]int
}

var resourceSlots = [...]types.ResourceType{types.ResourceGold, types.ResourceWood, types.ResourceStone}

// NewLedger creates a ledger with the starting amounts.
func NewLedger(start config.ResourceAmounts) *Ledger {
	l := &Ledger{}
	for _, r := range types.AllResources {
		l.amounts[r] = max(0, start.Get(r))
	}
	return l
}

// Get returns the current amount of r.
func (l *Ledger) Get(r types.ResourceType) int {
	if !validResource(r) {
		return 0
	}
	return l.amounts[r]
}

// Add credits amount of r. Non-positive amounts are ignored.
func (l *Ledger) Add(r types.ResourceType, amount int) {
	if !validResource(r) || amount <= 0 {
		return
	}
	l.amounts[r] += amount
}

// CanAfford reports whether every cost can be paid.
func (l *Ledger) CanAfford(costs []config.ResourceCost) bool {
	need := l.totals(costs)
	for r, n := range need {
		if l.amounts[r] < n {
			return false
		}
	}
	return true
}

// Spend pays every cost or none of them. It returns false when any counter
// would go negative.
func (l *Ledger) Spend(costs []config.ResourceCost) bool {
	if !l.CanAfford(costs) {
		return false
	}
	for r, n := range l.totals(costs) {
		l.amounts[r] -= n
	}
	return true
}

// Amounts returns a copy of the counters.
func (l *Ledger) Amounts() config.ResourceAmounts {
	return config.ResourceAmounts{
		Gold:  l.amounts[types.ResourceGold],
		Wood:  l.amounts[types.ResourceWood],
		Stone: l.amounts[types.ResourceStone],
	}
}

// totals merges duplicate cost entries of the same type.
func (l *Ledger) totals(costs []config.ResourceCost) [len(resourceSlots)]int {
	var need [len(resourceSlots)]int
	for _, c := range costs {
		if validResource(c.Type) && c.Amount > 0 {
			need[c.Type] += c.Amount
		}
	}
	return need
}

func validResource(r types.ResourceType) bool {
	return r >= 0 && int(r) < len(resourceSlots)
}
