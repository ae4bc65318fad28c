package tbutil

import (
	"crypto/sha256"
	"strconv"

	tbtypes "github.com/tigerbeetle/tigerbeetle-go/pkg/types"
)

const (
	operatorAccountLabel = "acct:operator"
	slotAccountPrefix    = "acct:slots:"
	reserveTransferPref  = "xfer:reserve:"
	voidTransferPref     = "xfer:void:"
	capacityTransferPref = "xfer:capacity:"
)

// ID128 deterministically maps a string label to a TigerBeetle Uint128.
func ID128(label string) tbtypes.Uint128 {
	sum := sha256.Sum256([]byte(label))
	var raw [16]byte
	copy(raw[:], sum[:16])
	if isZero(raw) || isMax(raw) {
		raw[0] ^= 0x01
	}
	return tbtypes.BytesToUint128(raw)
}

// OperatorAccountID returns the operator account ID.
func OperatorAccountID() tbtypes.Uint128 {
	return ID128(operatorAccountLabel)
}

// SlotAccountID returns the slot account ID for a job key.
func SlotAccountID(jobKey string) tbtypes.Uint128 {
	return ID128(slotAccountPrefix + jobKey)
}

// ReserveTransferID returns the transfer ID for a slot reservation.
func ReserveTransferID(leaseID, jobKey string) tbtypes.Uint128 {
	return ID128(reserveTransferPref + leaseID + ":" + jobKey)
}

// VoidTransferID returns the transfer ID used to void a pending reservation.
func VoidTransferID(leaseID, jobKey string) tbtypes.Uint128 {
	return ID128(voidTransferPref + leaseID + ":" + jobKey)
}

// CapacityTransferID returns the transfer ID for funding slot capacity.
func CapacityTransferID(jobKey string, capacity uint64) tbtypes.Uint128 {
	return ID128(capacityTransferPref + jobKey + ":" + formatUint(capacity))
}

// formatUint renders a numeric suffix for ID labels.
func formatUint(value uint64) string {
	return strconv.FormatUint(value, 10)
}

// isZero reports whether the 16-byte array is all zeros.
func isZero(raw [16]byte) bool {
	for _, b := range raw[:] {
		if b != 0 {
			return false
		}
	}
	return true
}

// isMax reports whether the 16-byte array is all 0xFF.
func isMax(raw [16]byte) bool {
	for _, b := range raw[:] {
		if b != 0xFF {
			return false
		}
	}
	return true
}
