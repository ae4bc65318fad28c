package tb

import (
	"context"
	"fmt"
	"time"

	"rowpost/internal/tbutil"
	tbtypes "github.com/tigerbeetle/tigerbeetle-go/pkg/types"
)

// Reserve blocks until a slot is granted, retrying denied attempts
// after the configured delay plus jitter.
func (b *Backend) Reserve(ctx context.Context) (func(ctx context.Context) error, error) {
	for {
		leaseID := b.newLeaseID()
		granted, err := b.tryReserve(ctx, leaseID)
		if err != nil {
			return nil, err
		}
		if granted {
			return b.releaseFunc(leaseID), nil
		}
		delay := b.retryAfter + b.jitter(b.retryAfter/4)
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

// tryReserve creates one pending transfer debiting the slot account.
// The transfer timeout reclaims the slot if the holder dies.
func (b *Backend) tryReserve(ctx context.Context, leaseID string) (bool, error) {
	transfer := tbtypes.Transfer{
		ID:              tbutil.ReserveTransferID(leaseID, b.jobKey),
		DebitAccountID:  tbutil.SlotAccountID(b.jobKey),
		CreditAccountID: tbutil.OperatorAccountID(),
		Amount:          tbutil.Uint128FromUint64(1),
		Ledger:          ledgerSlots,
		Code:            codeSlot,
		Flags:           tbtypes.TransferFlags{Pending: true}.ToUint16(),
		Timeout:         uint32(b.timeoutSec),
	}
	result, err := b.submitTransfers(ctx, []tbtypes.Transfer{transfer})
	if err != nil {
		return false, err
	}
	return evaluateReserveErrors(result.Errors)
}

// evaluateReserveErrors converts TB transfer errors into a grant decision.
func evaluateReserveErrors(errors map[int]tbtypes.CreateTransferResult) (bool, error) {
	if len(errors) == 0 {
		return true, nil
	}
	for _, result := range errors {
		switch result {
		case tbtypes.TransferExceedsCredits, tbtypes.TransferIDAlreadyFailed:
			return false, nil
		case tbtypes.TransferExists:
			return true, nil
		default:
			return false, fmt.Errorf("reserve transfer error: %s", result)
		}
	}
	return false, fmt.Errorf("reserve transfer error")
}
