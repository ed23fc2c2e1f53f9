// internal/tractor/selector.go
package tractor

import "github.com/karlo195/StardewMods/internal/game"

// candidate pairs an eligible attachment with its configured index, which the
// dispatch loop needs to reset the right ledger slot on success.
type candidate struct {
	index      int
	attachment Attachment
}

// Selector filters the configured attachment list down to those currently
// eligible. Configuration order is priority order and is preserved.
type Selector struct {
	attachments []Attachment
	ledger      *CooldownLedger
}

func NewSelector(attachments []Attachment, ticksPerAction uint) *Selector {
	return &Selector{
		attachments: attachments,
		ledger:      NewCooldownLedger(len(attachments), ticksPerAction),
	}
}

// ResolveEligible advances every attachment's cooldown by one action cycle
// and returns the attachments that are both off cooldown and enabled for the
// rider's current tool, item, and location.
func (s *Selector) ResolveEligible(rider *game.Farmer, tool *game.Tool, item *game.Item, loc game.Location) []candidate {
	var eligible []candidate
	for i, a := range s.attachments {
		if !s.ledger.Ready(i, a.RateLimit()) {
			continue
		}
		if !a.IsEnabled(rider, tool, item, loc) {
			continue
		}
		eligible = append(eligible, candidate{index: i, attachment: a})
	}
	return eligible
}

// Ledger exposes the cooldown state for the dispatch loop and tests.
func (s *Selector) Ledger() *CooldownLedger {
	return s.ledger
}
