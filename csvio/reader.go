// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package csvio carries transaction records and account snapshots as
// headered CSV, the concrete wire format behind the engine's source and
// sink interfaces.
package csvio

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/luxfi/payments/core"
	"github.com/luxfi/payments/core/types"
)

// The input header columns. Fields are matched by header name, so column
// order in the file is free.
const (
	columnType   = "type"
	columnClient = "client"
	columnTx     = "tx"
	columnAmount = "amount"
)

// FileSource is a reopenable record source over a CSV file on disk. Every
// Open re-reads the file from the start, so traversals are deterministic as
// long as the file is not rewritten underneath a run.
type FileSource struct {
	path string
}

// NewFileSource returns a source reading the CSV file at path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Open implements core.Source.
func (s *FileSource) Open() (core.Cursor, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	cur, err := newCursor(f, f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return cur, nil
}

// BytesSource is a reopenable record source over an in-memory CSV document.
type BytesSource struct {
	data []byte
}

// NewBytesSource returns a source reading the given CSV document.
func NewBytesSource(data []byte) *BytesSource {
	return &BytesSource{data: data}
}

// Open implements core.Source.
func (s *BytesSource) Open() (core.Cursor, error) {
	return newCursor(bytes.NewReader(s.data), nil)
}

// cursor decodes one traversal of a CSV transaction stream.
type cursor struct {
	csv    *csv.Reader
	closer io.Closer

	// column index per field, resolved from the header row
	typeIdx, clientIdx, txIdx, amountIdx int

	pos int
}

func newCursor(r io.Reader, closer io.Closer) (*cursor, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("missing header row")
		}
		return nil, fmt.Errorf("reading header row: %w", err)
	}

	c := &cursor{csv: cr, closer: closer}
	c.typeIdx, err = columnIndex(header, columnType)
	if err == nil {
		c.clientIdx, err = columnIndex(header, columnClient)
	}
	if err == nil {
		c.txIdx, err = columnIndex(header, columnTx)
	}
	if err == nil {
		c.amountIdx, err = columnIndex(header, columnAmount)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func columnIndex(header []string, name string) (int, error) {
	for i, col := range header {
		if strings.TrimSpace(col) == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("missing %q column in header %v", name, header)
}

// Next implements core.Cursor. It returns io.EOF at the end of the stream;
// any malformed record is an error carrying the record's position and
// content.
func (c *cursor) Next() (types.Transaction, int, error) {
	row, err := c.csv.Read()
	if err != nil {
		if err == io.EOF {
			return types.Transaction{}, 0, io.EOF
		}
		return types.Transaction{}, 0, fmt.Errorf("record %d: %w", c.pos, err)
	}
	pos := c.pos
	c.pos++

	tx, err := c.decode(row)
	if err != nil {
		return types.Transaction{}, 0, fmt.Errorf("record %d (%s): %w", pos, strings.Join(row, ","), err)
	}
	return tx, pos, nil
}

func (c *cursor) decode(row []string) (types.Transaction, error) {
	kind, err := types.ParseTxKind(field(row, c.typeIdx))
	if err != nil {
		return types.Transaction{}, err
	}
	client, err := strconv.ParseUint(field(row, c.clientIdx), 10, 16)
	if err != nil {
		return types.Transaction{}, fmt.Errorf("invalid client id: %w", err)
	}
	txID, err := strconv.ParseUint(field(row, c.txIdx), 10, 32)
	if err != nil {
		return types.Transaction{}, fmt.Errorf("invalid tx id: %w", err)
	}
	amount, err := types.ParseAmount(field(row, c.amountIdx))
	if err != nil {
		return types.Transaction{}, err
	}
	return types.Transaction{
		Kind:   kind,
		Client: uint16(client),
		Tx:     uint32(txID),
		Amount: amount,
	}, nil
}

// field returns the trimmed cell at index i, or the empty string when the
// row is short. Lifecycle rows legitimately omit the trailing amount cell.
func field(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// Close implements core.Cursor.
func (c *cursor) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer.Close()
}
