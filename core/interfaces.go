// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package core

import (
	"github.com/luxfi/payments/core/state"
	"github.com/luxfi/payments/core/types"
)

// Cursor yields the transactions of one traversal of a record carrier, in
// stream order, together with each record's 0-based position. Next returns
// io.EOF once the stream is exhausted; any other error is fatal to
// processing.
type Cursor interface {
	Next() (types.Transaction, int, error)
	Close() error
}

// Source is a reopenable record carrier. Open starts a fresh traversal from
// the beginning; over byte-identical input it must yield the same records in
// the same order on every call. The engine opens the source once for the
// forward pass and once more for each dispute-lifecycle lookup.
type Source interface {
	Open() (Cursor, error)
}

// AccountSink receives the final account snapshots once processing
// completes. The order of calls is unspecified.
type AccountSink interface {
	WriteAccount(client uint16, acct *state.Account) error
}
