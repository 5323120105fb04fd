package dive

// Budget is the number of taps a dive tolerates before it ends.
type Budget struct {
	quota     int
	remaining int
}

// NewBudget creates a full budget. A non-positive quota yields an already
// exhausted budget.
func NewBudget(quota int) *Budget {
	if quota < 0 {
		quota = 0
	}
	return &Budget{quota: quota, remaining: quota}
}

// Consume spends one tap. It reports false when nothing was left.
func (b *Budget) Consume() bool {
	if b.remaining <= 0 {
		return false
	}
	b.remaining--
	return true
}

// Remaining is the number of taps left; never negative.
func (b *Budget) Remaining() int { return b.remaining }

// Quota is the starting allowance.
func (b *Budget) Quota() int { return b.quota }

// Exhausted reports whether the budget has run out.
func (b *Budget) Exhausted() bool { return b.remaining <= 0 }
