// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

// AccountSet maps client ids to their accounts. The population is bounded by
// the 16-bit client id space; iteration order is unspecified.
type AccountSet map[uint16]*Account

// NewAccountSet returns an empty account set.
func NewAccountSet() AccountSet {
	return make(AccountSet)
}

// Get returns the account for the client, or nil and false when the client
// has never been seen.
func (s AccountSet) Get(client uint16) (*Account, bool) {
	acct, ok := s[client]
	return acct, ok
}

// GetOrCreate returns the account for the client, lazily creating an empty
// one on first reference.
func (s AccountSet) GetOrCreate(client uint16) *Account {
	if acct, ok := s[client]; ok {
		return acct
	}
	acct := NewAccount()
	s[client] = acct
	return acct
}
