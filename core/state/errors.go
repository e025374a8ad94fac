// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import "errors"

// Balance mutation errors. Each one signals that the checked arithmetic
// behind the corresponding account operation would leave the 64-bit
// fixed-point range; the account is left unchanged when they are returned.
var (
	ErrDepositOverflow = errors.New("deposit exceeds maximum funds")
	ErrDisputeOverflow = errors.New("dispute exceeds maximum held funds or maximum debit")
	ErrResolveOverflow = errors.New("resolve exceeds maximum available funds")
)
