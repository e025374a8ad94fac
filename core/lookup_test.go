// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package core

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/payments/core/types"
)

func TestCollectHits(t *testing.T) {
	// Positions 0-5; position 1 is another client on the same tx id and
	// position 3 is a duplicate dispute, which is never collected.
	src := &sliceSource{txs: []types.Transaction{
		deposit(1, 1, 100),
		deposit(2, 1, 200),
		lifecycle(types.TxDispute, 1, 1),
		lifecycle(types.TxDispute, 1, 1),
		lifecycle(types.TxResolve, 1, 1),
		deposit(1, 9, 900),
	}}
	engine := NewEngine()

	// The scan matches on (client, tx) and keeps the first hit per kind.
	hits, err := engine.collectHits(src, 1, 1, 4)
	require.NoError(t, err)
	require.Equal(t, []hit{
		{pos: 0, kind: types.TxDeposit, amount: 100},
		{pos: 2, kind: types.TxDispute},
		{pos: 4, kind: types.TxResolve},
	}, hits)

	// The scan halts at the event's own position.
	hits, err = engine.collectHits(src, 1, 1, 2)
	require.NoError(t, err)
	require.Equal(t, []hit{
		{pos: 0, kind: types.TxDeposit, amount: 100},
		{pos: 2, kind: types.TxDispute},
	}, hits)

	// No matches before the reference position.
	hits, err = engine.collectHits(src, 1, 9, 5)
	require.NoError(t, err)
	require.Equal(t, []hit{{pos: 5, kind: types.TxDeposit, amount: 900}}, hits)
}

func TestValidateLifecycle(t *testing.T) {
	dep := hit{pos: 0, kind: types.TxDeposit, amount: 420}
	disp := hit{pos: 3, kind: types.TxDispute}

	for _, tt := range []struct {
		name   string
		kind   types.TxKind
		hits   []hit
		endPos int
		amount types.Amount
		ok     bool
	}{
		{
			name: "dispute valid",
			kind: types.TxDispute, hits: []hit{dep, disp}, endPos: 3,
			amount: 420, ok: true,
		},
		{
			name: "dispute wrong count",
			kind: types.TxDispute, hits: []hit{disp}, endPos: 3,
		},
		{
			name: "dispute of withdrawal",
			kind: types.TxDispute,
			hits: []hit{{pos: 0, kind: types.TxWithdrawal, amount: 420}, disp}, endPos: 3,
		},
		{
			name: "duplicate dispute sees the first one in slot 1",
			kind: types.TxDispute, hits: []hit{dep, disp}, endPos: 7,
		},
		{
			name: "resolve valid",
			kind: types.TxResolve,
			hits: []hit{dep, disp, {pos: 5, kind: types.TxResolve}}, endPos: 5,
			amount: 420, ok: true,
		},
		{
			name: "chargeback valid",
			kind: types.TxChargeback,
			hits: []hit{dep, disp, {pos: 5, kind: types.TxChargeback}}, endPos: 5,
			amount: 420, ok: true,
		},
		{
			name: "resolve without dispute",
			kind: types.TxResolve,
			hits: []hit{dep, {pos: 5, kind: types.TxResolve}}, endPos: 5,
		},
		{
			name: "resolve after settlement is not the third hit",
			kind: types.TxResolve,
			hits: []hit{dep, disp, {pos: 5, kind: types.TxResolve}}, endPos: 9,
		},
		{
			name: "chargeback with resolve in slot 1",
			kind: types.TxChargeback,
			hits: []hit{dep, {pos: 3, kind: types.TxResolve}, {pos: 5, kind: types.TxChargeback}}, endPos: 5,
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			amount, ok := validateLifecycle(tt.kind, tt.hits, tt.endPos)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.amount, amount)
		})
	}
}
