package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for domain operations
var (
	// ErrNotFound is returned when a requested resource doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidAddress is returned when an Ethereum address is invalid
	ErrInvalidAddress = errors.New("invalid address")

	// ErrInvalidDeployment is returned when deployment data is invalid
	ErrInvalidDeployment = errors.New("invalid deployment")

	// ErrNetworkMismatch is returned when network configurations don't match
	ErrNetworkMismatch = errors.New("network mismatch")

	// ErrContractNotFound is returned when a contract can't be found
	ErrContractNotFound = errors.New("contract not found")

	// ErrAccountNotFound is returned when a named account isn't configured
	ErrAccountNotFound = errors.New("account not found")

	// ErrAccountCannotSign is returned when a read-only account is asked to sign
	ErrAccountCannotSign = errors.New("account cannot sign transactions")

	// ErrTransactionReverted is returned when a mined transaction has a failed status
	ErrTransactionReverted = errors.New("transaction reverted")

	// ErrUnlinkedLibraries is returned when bytecode still has library placeholders
	ErrUnlinkedLibraries = errors.New("bytecode has unlinked libraries")

	// ErrNoScripts is returned when no deploy script matches the requested tags
	ErrNoScripts = errors.New("no deploy scripts selected")

	// ErrAborted is returned when the user declines a confirmation prompt
	ErrAborted = errors.New("aborted by user")
)

// ContractNotFoundErr carries the closest artifact names for an unknown contract
type ContractNotFoundErr struct {
	Name        string
	Suggestions []string
}

func (e *ContractNotFoundErr) Error() string {
	msg := fmt.Sprintf("no artifact for contract %q", e.Name)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

func (e *ContractNotFoundErr) Unwrap() error {
	return ErrContractNotFound
}

// AmbiguousContractErr is returned when a bare contract name matches several sources
type AmbiguousContractErr struct {
	Name    string
	Sources []string
}

func (e *AmbiguousContractErr) Error() string {
	var suggestions []string
	for _, source := range e.Sources {
		suggestions = append(suggestions, fmt.Sprintf("  - %s:%s", source, e.Name))
	}
	return fmt.Sprintf("multiple artifacts named %s - use source:contract format to disambiguate:\n%s",
		e.Name, strings.Join(suggestions, "\n"))
}
