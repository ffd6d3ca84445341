package models

import (
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/common"
)

// Account is a named account resolved from configuration
type Account struct {
	Name    string
	Address common.Address
	Key     *ecdsa.PrivateKey // nil for read-only accounts
}

// CanSign reports whether the account holds a private key
func (a *Account) CanSign() bool {
	return a != nil && a.Key != nil
}
