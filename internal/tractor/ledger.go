// internal/tractor/ledger.go
package tractor

// CooldownLedger tracks remaining cooldown ticks per attachment, keyed by the
// attachment's index in the configured list. Only attachments whose rate
// limit exceeds the base action interval ever hold a nonzero entry; everything
// else is always ready.
type CooldownLedger struct {
	ticksPerAction uint
	remaining      []uint
}

func NewCooldownLedger(attachments int, ticksPerAction uint) *CooldownLedger {
	return &CooldownLedger{
		ticksPerAction: ticksPerAction,
		remaining:      make([]uint, attachments),
	}
}

// Ready advances the cooldown for one attachment by one action cycle and
// reports whether it may fire. When the attachment is still cooling down, the
// remaining count is decremented by the action interval; when ready, the
// count is left alone so that only a successful apply re-arms it.
func (l *CooldownLedger) Ready(index int, rateLimit uint) bool {
	if rateLimit <= l.ticksPerAction {
		return true
	}
	if l.remaining[index] > l.ticksPerAction {
		l.remaining[index] -= l.ticksPerAction
		return false
	}
	return true
}

// Reset re-arms the cooldown after a successful apply. Rate limit zero keeps
// the attachment permanently ready.
func (l *CooldownLedger) Reset(index int, rateLimit uint) {
	if rateLimit > 0 {
		l.remaining[index] = rateLimit
	}
}

// Remaining returns the ticks left before the attachment is eligible again.
func (l *CooldownLedger) Remaining(index int) uint {
	return l.remaining[index]
}
