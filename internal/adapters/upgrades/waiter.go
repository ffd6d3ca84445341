package upgrades

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/artspark/sparkdeploy/internal/domain"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/sethvargo/go-retry"
)

// DefaultPollInterval is used when the network sets no poll_interval
const DefaultPollInterval = time.Second

var errNotConfirmed = errors.New("not enough confirmations")

// ReceiptBackend is what the waiter needs from a chain client
type ReceiptBackend interface {
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	BlockNumber(ctx context.Context) (uint64, error)
}

// Waiter polls for a mined receipt and then for the required number of
// confirmations. Only the context bounds how long it waits.
type Waiter struct {
	backend       ReceiptBackend
	confirmations uint64
	interval      time.Duration
	log           *slog.Logger
}

// NewWaiter creates a waiter. Zero confirmations means one, a zero interval
// means DefaultPollInterval.
func NewWaiter(backend ReceiptBackend, confirmations uint64, interval time.Duration, log *slog.Logger) *Waiter {
	if confirmations == 0 {
		confirmations = 1
	}
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Waiter{
		backend:       backend,
		confirmations: confirmations,
		interval:      interval,
		log:           log,
	}
}

// Wait blocks until the transaction has the configured confirmations. A
// reverted receipt is returned together with ErrTransactionReverted.
func (w *Waiter) Wait(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	var receipt *types.Receipt

	err := retry.Do(ctx, retry.NewConstant(w.interval), func(ctx context.Context) error {
		// Nodes report "not found" or "indexing in progress" until the
		// receipt is available, so every fetch error is retried.
		r, err := w.backend.TransactionReceipt(ctx, tx.Hash())
		if err != nil {
			if !errors.Is(err, ethereum.NotFound) {
				w.log.Debug("receipt not available yet", "tx", tx.Hash().Hex(), "error", err)
			}
			return retry.RetryableError(err)
		}
		if r.Status != types.ReceiptStatusSuccessful {
			receipt = r
			return nil
		}

		if w.confirmations > 1 {
			head, err := w.backend.BlockNumber(ctx)
			if err != nil {
				w.log.Debug("failed to get block number", "error", err)
				return retry.RetryableError(err)
			}
			mined := r.BlockNumber.Uint64()
			if head+1 < mined+w.confirmations {
				w.log.Debug("waiting for confirmations", "tx", tx.Hash().Hex(), "head", head, "mined", mined, "want", w.confirmations)
				return retry.RetryableError(errNotConfirmed)
			}
		}

		receipt = r
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("waiting for %s: %w", tx.Hash().Hex(), err)
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		return receipt, fmt.Errorf("%w: %s in block %s", domain.ErrTransactionReverted, tx.Hash().Hex(), receipt.BlockNumber)
	}
	return receipt, nil
}
