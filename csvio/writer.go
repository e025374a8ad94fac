// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package csvio

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/luxfi/payments/core/state"
)

var outputHeader = []string{"client", "available", "held", "total", "locked"}

// Writer emits account snapshots as headered CSV with the columns
// client, available, held, total, locked. It implements core.AccountSink.
type Writer struct {
	csv         *csv.Writer
	wroteHeader bool
}

// NewWriter returns a writer emitting to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteAccount emits one account snapshot, materializing the total column
// as available plus held. The header row is written before the first
// record.
func (w *Writer) WriteAccount(client uint16, acct *state.Account) error {
	if !w.wroteHeader {
		if err := w.csv.Write(outputHeader); err != nil {
			return err
		}
		w.wroteHeader = true
	}
	return w.csv.Write([]string{
		strconv.FormatUint(uint64(client), 10),
		acct.Available.String(),
		acct.Held.String(),
		acct.Total().String(),
		strconv.FormatBool(acct.Locked),
	})
}

// Flush writes any buffered rows to the underlying writer and reports
// errors from earlier writes.
func (w *Writer) Flush() error {
	w.csv.Flush()
	return w.csv.Error()
}
