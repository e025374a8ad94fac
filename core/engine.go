// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package core implements the payment-transaction engine: a single ordered
// pass over a record stream that applies deposits, withdrawals and
// dispute-lifecycle events to per-client accounts.
package core

import (
	"errors"
	"fmt"
	"io"

	"github.com/luxfi/geth/log"
	"github.com/luxfi/geth/metrics"

	"github.com/luxfi/payments/core/state"
	"github.com/luxfi/payments/core/types"
)

var (
	txProcessedCounter = metrics.NewRegisteredCounter("engine/txs/processed", nil)
	txDroppedCounter   = metrics.NewRegisteredCounter("engine/txs/dropped", nil)
	lookupScanCounter  = metrics.NewRegisteredCounter("engine/lookup/scans", nil)
)

// Engine applies a transaction stream to a set of client accounts. Effects
// are applied in exactly the order the stream yields records; there is no
// reordering across clients, so every dispute lookup sees precisely the
// stream prefix up to its own position.
type Engine struct {
	accounts state.AccountSet
}

// NewEngine returns an engine with an empty account set.
func NewEngine() *Engine {
	return &Engine{accounts: state.NewAccountSet()}
}

// Process walks the source once end-to-end, applies every record and, on
// success, emits all accounts to the sink. Processing aborts on the first
// fatal error (carrier I/O, malformed record, or arithmetic overflow on
// deposit, dispute or resolve); nothing is emitted in that case. Business
// drops (insufficient funds, locked accounts, lifecycle events that fail
// validation) are not errors.
func (e *Engine) Process(src Source, sink AccountSink) error {
	cur, err := src.Open()
	if err != nil {
		return fmt.Errorf("opening transaction source: %w", err)
	}
	defer cur.Close()

	for {
		tx, pos, err := cur.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		switch tx.Kind {
		case types.TxDeposit:
			if err := e.accounts.GetOrCreate(tx.Client).Deposit(tx.Amount); err != nil {
				return fmt.Errorf("deposit for client %d: %w", tx.Client, err)
			}
		case types.TxWithdrawal:
			e.accounts.GetOrCreate(tx.Client).Withdraw(tx.Amount)
		default:
			if err := e.applyLifecycle(src, tx, pos); err != nil {
				return err
			}
		}
		txProcessedCounter.Inc(1)
	}

	for client, acct := range e.accounts {
		if err := sink.WriteAccount(client, acct); err != nil {
			return fmt.Errorf("emitting account %d: %w", client, err)
		}
	}
	return nil
}

// Accounts exposes the engine's account set. Mutating it outside Process is
// the caller's responsibility; it is intended for inspection in tests.
func (e *Engine) Accounts() state.AccountSet {
	return e.accounts
}

func dropTx(tx types.Transaction, pos int, reason string) {
	txDroppedCounter.Inc(1)
	log.Debug("transaction dropped", "kind", tx.Kind, "client", tx.Client, "tx", tx.Tx, "pos", pos, "reason", reason)
}
