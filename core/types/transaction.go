// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package types holds the wire-level record types consumed by the payment
// engine: the fixed-point Amount scalar and the Transaction record.
package types

import "fmt"

// TxKind identifies the kind of a transaction record.
type TxKind uint8

const (
	TxDeposit TxKind = iota
	TxWithdrawal
	TxDispute
	TxResolve
	TxChargeback
)

// ParseTxKind parses the lowercase wire literal of a transaction kind.
func ParseTxKind(s string) (TxKind, error) {
	switch s {
	case "deposit":
		return TxDeposit, nil
	case "withdrawal":
		return TxWithdrawal, nil
	case "dispute":
		return TxDispute, nil
	case "resolve":
		return TxResolve, nil
	case "chargeback":
		return TxChargeback, nil
	default:
		return 0, fmt.Errorf("unknown transaction type %q", s)
	}
}

func (k TxKind) String() string {
	switch k {
	case TxDeposit:
		return "deposit"
	case TxWithdrawal:
		return "withdrawal"
	case TxDispute:
		return "dispute"
	case TxResolve:
		return "resolve"
	case TxChargeback:
		return "chargeback"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// IsLifecycle reports whether the kind is a dispute-lifecycle event, i.e.
// one that references a prior transaction instead of carrying an amount.
func (k TxKind) IsLifecycle() bool {
	return k == TxDispute || k == TxResolve || k == TxChargeback
}

// Transaction is one record of the input stream. The Tx id is unique among
// deposits and withdrawals; dispute-lifecycle records reference the id of
// the deposit they act on and carry no meaningful amount of their own.
type Transaction struct {
	Kind   TxKind
	Client uint16
	Tx     uint32
	Amount Amount
}
