// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package core

import (
	"errors"
	"fmt"
	"io"

	"github.com/luxfi/payments/core/types"
)

// hit is one stream record matching the (client, tx) reference of a
// lifecycle event, located during a lookup scan.
type hit struct {
	pos    int
	kind   types.TxKind
	amount types.Amount
}

// applyLifecycle runs the dispute-lookup protocol for the event at position
// endPos and, when the collected lifecycle validates, applies the matching
// account operation with the originating deposit's amount. Invalid events
// are dropped silently; overflow from dispute or resolve is fatal.
func (e *Engine) applyLifecycle(src Source, ev types.Transaction, endPos int) error {
	// Lifecycle events never create accounts: a reference to an unknown
	// client must not leave a zero-balance account behind.
	acct, ok := e.accounts.Get(ev.Client)
	if !ok {
		dropTx(ev, endPos, "unknown client")
		return nil
	}

	hits, err := e.collectHits(src, ev.Client, ev.Tx, endPos)
	if err != nil {
		return err
	}
	deposit, ok := validateLifecycle(ev.Kind, hits, endPos)
	if !ok {
		dropTx(ev, endPos, "lifecycle validation failed")
		return nil
	}

	switch ev.Kind {
	case types.TxDispute:
		if err := acct.Dispute(deposit); err != nil {
			return fmt.Errorf("dispute for client %d: %w", ev.Client, err)
		}
	case types.TxResolve:
		if err := acct.Resolve(deposit); err != nil {
			return fmt.Errorf("resolve for client %d: %w", ev.Client, err)
		}
	case types.TxChargeback:
		acct.Chargeback(deposit)
	}
	return nil
}

// collectHits re-reads the source from the beginning and gathers the records
// matching (client, tx), keeping the first occurrence of each kind. The scan
// halts once three hits are collected or the record at endPos has been
// consumed, whichever comes first.
func (e *Engine) collectHits(src Source, client uint16, txID uint32, endPos int) ([]hit, error) {
	lookupScanCounter.Inc(1)

	cur, err := src.Open()
	if err != nil {
		return nil, fmt.Errorf("reopening transaction source: %w", err)
	}
	defer cur.Close()

	var hits []hit
	for {
		tx, pos, err := cur.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if tx.Client == client && tx.Tx == txID && !hasKind(hits, tx.Kind) {
			hits = append(hits, hit{pos: pos, kind: tx.Kind, amount: tx.Amount})
			if len(hits) == 3 {
				break
			}
		}
		if pos == endPos {
			break
		}
	}
	return hits, nil
}

func hasKind(hits []hit, kind types.TxKind) bool {
	for _, h := range hits {
		if h.kind == kind {
			return true
		}
	}
	return false
}

// validateLifecycle checks the collected hits against the event kind and
// returns the originating deposit's amount when the event may be applied.
//
// Slot 0 must always be the originating deposit. A dispute must itself be
// the second hit; a resolve or chargeback must be the third, preceded by the
// dispute it settles. An event that is not the hit at endPos is a duplicate
// or out-of-order step and is rejected: a second dispute on the same tx
// finds slot 1 already taken by the first one, and a resolve or chargeback
// after a prior resolve or chargeback finds all three slots filled before
// the scan reaches it.
func validateLifecycle(kind types.TxKind, hits []hit, endPos int) (types.Amount, bool) {
	switch kind {
	case types.TxDispute:
		if len(hits) != 2 || hits[0].kind != types.TxDeposit || hits[1].pos != endPos {
			return 0, false
		}
	case types.TxResolve, types.TxChargeback:
		if len(hits) != 3 || hits[0].kind != types.TxDeposit ||
			hits[1].kind != types.TxDispute || hits[2].pos != endPos {
			return 0, false
		}
	default:
		return 0, false
	}
	return hits[0].amount, true
}
