// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package csvio

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/payments/core"
	"github.com/luxfi/payments/core/types"
)

func readAll(t *testing.T, src core.Source) []types.Transaction {
	t.Helper()
	cur, err := src.Open()
	require.NoError(t, err)
	defer cur.Close()

	var txs []types.Transaction
	for i := 0; ; i++ {
		tx, pos, err := cur.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		require.Equal(t, i, pos)
		txs = append(txs, tx)
	}
	return txs
}

func TestReaderRecords(t *testing.T) {
	data := "type,\tclient\t,\ttx,\tamount\n" +
		"deposit,\t1,\t1,\t1.0\n" +
		"withdrawal,\t2,\t2,\t2.1000\n" +
		"dispute,\t3,\t3,\t2.01\n" +
		"resolve,\t4,\t4,\t3.003\n" +
		"chargeback,\t5,\t5,\t0"

	require.Equal(t, []types.Transaction{
		{Kind: types.TxDeposit, Client: 1, Tx: 1, Amount: 10000},
		{Kind: types.TxWithdrawal, Client: 2, Tx: 2, Amount: 21000},
		{Kind: types.TxDispute, Client: 3, Tx: 3, Amount: 20100},
		{Kind: types.TxResolve, Client: 4, Tx: 4, Amount: 30030},
		{Kind: types.TxChargeback, Client: 5, Tx: 5, Amount: 0},
	}, readAll(t, NewBytesSource([]byte(data))))
}

func TestReaderShortLifecycleRows(t *testing.T) {
	// Lifecycle rows may carry an empty amount cell or none at all.
	data := "type,client,tx,amount\n" +
		"deposit,1,1,10.0\n" +
		"dispute,1,1,\n" +
		"resolve,1,1"

	require.Equal(t, []types.Transaction{
		{Kind: types.TxDeposit, Client: 1, Tx: 1, Amount: 100000},
		{Kind: types.TxDispute, Client: 1, Tx: 1},
		{Kind: types.TxResolve, Client: 1, Tx: 1},
	}, readAll(t, NewBytesSource([]byte(data))))
}

func TestReaderHeaderOrder(t *testing.T) {
	// Fields are matched by header name, not by position.
	data := "amount,tx,client,type\n" +
		"2.5,7,3,deposit\n"

	require.Equal(t, []types.Transaction{
		{Kind: types.TxDeposit, Client: 3, Tx: 7, Amount: 25000},
	}, readAll(t, NewBytesSource([]byte(data))))
}

func TestReaderErrors(t *testing.T) {
	for _, tt := range []struct {
		name string
		data string
	}{
		{"empty input", ""},
		{"missing column", "type,client,tx\ndeposit,1,1\n"},
		{"unknown kind", "type,client,tx,amount\ntransfer,1,1,1.0\n"},
		{"bad amount", "type,client,tx,amount\ndeposit,1,1,.5\n"},
		{"excess fraction", "type,client,tx,amount\ndeposit,1,1,1.23456\n"},
		{"client out of range", "type,client,tx,amount\ndeposit,65536,1,1.0\n"},
		{"tx out of range", "type,client,tx,amount\ndeposit,1,4294967296,1.0\n"},
		{"non-numeric client", "type,client,tx,amount\ndeposit,a,1,1.0\n"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			cur, err := NewBytesSource([]byte(tt.data)).Open()
			if err != nil {
				return // header-level failure
			}
			defer cur.Close()
			for {
				_, _, err := cur.Next()
				require.NotEqual(t, io.EOF, err, "expected a record error before EOF")
				if err != nil {
					return
				}
			}
		})
	}
}

func TestFileSourceReopens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "txs.csv")
	require.NoError(t, os.WriteFile(path, []byte(
		"type,client,tx,amount\ndeposit,1,1,1.0\n"), 0o644))

	src := NewFileSource(path)
	first := readAll(t, src)
	second := readAll(t, src)
	require.Equal(t, first, second)

	_, err := NewFileSource(filepath.Join(t.TempDir(), "missing.csv")).Open()
	require.Error(t, err)
}
