// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package state tracks per-client account balances as they are mutated by
// the payment engine.
package state

import (
	"github.com/luxfi/payments/core/types"
	"github.com/luxfi/payments/utils/math"
)

// Account is the mutable balance state of a single client. Available holds
// the funds the client can spend, Held the funds immobilized by open
// disputes. Locked is set by a chargeback and is terminal: once set, every
// subsequent mutation on the account is a successful no-op.
//
// Available and Held may legitimately go negative. A disputed deposit that
// was already spent debits Available below zero until the dispute settles.
type Account struct {
	Available types.Amount
	Held      types.Amount
	Locked    bool
}

// NewAccount returns an empty, unlocked account.
func NewAccount() *Account {
	return &Account{}
}

// Total returns the total funds, available plus held.
func (a *Account) Total() types.Amount {
	return a.Available + a.Held
}

// Deposit increases the available funds. Returns ErrDepositOverflow when the
// addition would leave the representable range, leaving the account
// unchanged. On a locked account the deposit is dropped without error.
func (a *Account) Deposit(amount types.Amount) error {
	if a.Locked {
		return nil
	}
	available, overflow := math.SafeAdd(int64(a.Available), int64(amount))
	if overflow {
		return ErrDepositOverflow
	}
	a.Available = types.Amount(available)
	return nil
}

// Withdraw decreases the available funds. The withdrawal is dropped when the
// account is locked, the available funds do not cover the amount, or the
// subtraction would leave the representable range; it never drives the
// available balance negative.
func (a *Account) Withdraw(amount types.Amount) {
	if a.Locked || a.Available < amount {
		return
	}
	available, overflow := math.SafeSub(int64(a.Available), int64(amount))
	if overflow {
		return
	}
	a.Available = types.Amount(available)
}

// Dispute moves funds from available to held, opening a dispute. The
// available side may go negative. Returns ErrDisputeOverflow when either
// checked operation would leave the representable range, leaving the account
// unchanged. On a locked account the dispute is dropped without error.
func (a *Account) Dispute(amount types.Amount) error {
	if a.Locked {
		return nil
	}
	available, subOverflow := math.SafeSub(int64(a.Available), int64(amount))
	held, addOverflow := math.SafeAdd(int64(a.Held), int64(amount))
	if subOverflow || addOverflow {
		return ErrDisputeOverflow
	}
	a.Available = types.Amount(available)
	a.Held = types.Amount(held)
	return nil
}

// Resolve moves funds from held back to available, settling a dispute in the
// client's favor. Returns ErrResolveOverflow when either checked operation
// would leave the representable range, leaving the account unchanged. On a
// locked account the resolve is dropped without error.
func (a *Account) Resolve(amount types.Amount) error {
	if a.Locked {
		return nil
	}
	held, subOverflow := math.SafeSub(int64(a.Held), int64(amount))
	available, addOverflow := math.SafeAdd(int64(a.Available), int64(amount))
	if subOverflow || addOverflow {
		return ErrResolveOverflow
	}
	a.Available = types.Amount(available)
	a.Held = types.Amount(held)
	return nil
}

// Chargeback withdraws the held funds and locks the account. The subtraction
// is unchecked and may wrap; the lock makes the account terminal either way.
// On an already locked account the chargeback is dropped.
func (a *Account) Chargeback(amount types.Amount) {
	if a.Locked {
		return
	}
	a.Held -= amount
	a.Locked = true
}
