package tb

import (
	"context"
	"fmt"

	"rowpost/internal/tbutil"
	tbtypes "github.com/tigerbeetle/tigerbeetle-go/pkg/types"
)

// releaseFunc returns a closure that voids the lease's pending transfer.
func (b *Backend) releaseFunc(leaseID string) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		transfer := tbtypes.Transfer{
			ID:              tbutil.VoidTransferID(leaseID, b.jobKey),
			DebitAccountID:  tbutil.SlotAccountID(b.jobKey),
			CreditAccountID: tbutil.OperatorAccountID(),
			Amount:          tbutil.Uint128FromUint64(1),
			Ledger:          ledgerSlots,
			Code:            codeSlot,
			Flags:           tbtypes.TransferFlags{VoidPendingTransfer: true}.ToUint16(),
			PendingID:       tbutil.ReserveTransferID(leaseID, b.jobKey),
		}
		result, err := b.submitTransfers(ctx, []tbtypes.Transfer{transfer})
		if err != nil {
			return err
		}
		return firstVoidError(result.Errors)
	}
}

// firstVoidError ignores results caused by expiry or duplicate voids.
func firstVoidError(errors map[int]tbtypes.CreateTransferResult) error {
	for _, result := range errors {
		switch result {
		case tbtypes.TransferExists,
			tbtypes.TransferPendingTransferExpired,
			tbtypes.TransferPendingTransferAlreadyVoided:
		default:
			return fmt.Errorf("void transfer error: %s", result)
		}
	}
	return nil
}
