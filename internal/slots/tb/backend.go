// Package tb implements slot accounting on a TigerBeetle cluster so
// several rowpost processes can share one in-flight bound.
package tb

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"rowpost/internal/tbutil"
	tbtypes "github.com/tigerbeetle/tigerbeetle-go/pkg/types"
)

const (
	ledgerSlots uint32 = 1
	codeSlot    uint16 = 1
)

// Config defines dependencies and tuning for the TB slot backend.
type Config struct {
	ClusterID      uint32
	Addresses      []string
	Sessions       int
	MaxBatchEvents int
	FlushInterval  time.Duration
	JobKey         string
	Capacity       uint64
	TimeoutSec     int
	RetryAfter     time.Duration
	NewLeaseID     func() string
}

// Backend reserves slots as pending transfers against a capacity account.
type Backend struct {
	pool       *tbutil.ClientPool
	submitter  *tbutil.Submitter
	cancel     context.CancelFunc
	jobKey     string
	timeoutSec int
	retryAfter time.Duration
	newLeaseID func() string

	mu   sync.Mutex
	rand *rand.Rand
}

// New provisions the slot accounts and starts the batch submitter.
func New(cfg Config) (*Backend, error) {
	if cfg.JobKey == "" {
		return nil, fmt.Errorf("job key required")
	}
	if cfg.Capacity == 0 {
		return nil, fmt.Errorf("slot capacity must be positive")
	}
	if cfg.MaxBatchEvents <= 0 {
		cfg.MaxBatchEvents = 8000
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = 200 * time.Microsecond
	}
	if cfg.Sessions <= 0 {
		cfg.Sessions = 1
	}
	if cfg.TimeoutSec <= 0 {
		cfg.TimeoutSec = 60
	}
	if cfg.RetryAfter <= 0 {
		cfg.RetryAfter = 250 * time.Millisecond
	}
	if cfg.NewLeaseID == nil {
		return nil, fmt.Errorf("lease ID generator required")
	}

	pool, err := tbutil.NewClientPool(cfg.ClusterID, cfg.Addresses, cfg.Sessions)
	if err != nil {
		return nil, err
	}
	submitter := &tbutil.Submitter{
		In:         make(chan tbutil.WorkItem, cfg.MaxBatchEvents),
		FlushEvery: cfg.FlushInterval,
		MaxEvents:  cfg.MaxBatchEvents,
		Pool:       pool,
	}
	ctx, cancel := context.WithCancel(context.Background())
	backend := &Backend{
		pool:       pool,
		submitter:  submitter,
		cancel:     cancel,
		jobKey:     cfg.JobKey,
		timeoutSec: cfg.TimeoutSec,
		retryAfter: cfg.RetryAfter,
		newLeaseID: cfg.NewLeaseID,
		rand:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	go submitter.Run(ctx)
	if err := backend.ensureAccounts(context.Background()); err != nil {
		backend.cancel()
		_ = pool.Close()
		return nil, err
	}
	if err := backend.ensureCapacity(context.Background(), cfg.Capacity); err != nil {
		backend.cancel()
		_ = pool.Close()
		return nil, err
	}
	return backend, nil
}

// Close stops the submitter and closes TB clients.
func (b *Backend) Close() error {
	b.cancel()
	return b.pool.Close()
}

// ensureAccounts creates the operator and slot accounts as needed.
func (b *Backend) ensureAccounts(ctx context.Context) error {
	accounts := []tbtypes.Account{
		{
			ID:     tbutil.OperatorAccountID(),
			Ledger: ledgerSlots,
			Code:   codeSlot,
		},
		{
			ID:     tbutil.SlotAccountID(b.jobKey),
			Ledger: ledgerSlots,
			Code:   codeSlot,
			Flags:  tbtypes.AccountFlags{DebitsMustNotExceedCredits: true}.ToUint16(),
		},
	}
	results, err := b.createAccounts(ctx, accounts)
	if err != nil {
		return err
	}
	for _, result := range results {
		if result.Result == tbtypes.AccountExists {
			continue
		}
		return fmt.Errorf("create account error: %s", result.Result)
	}
	return nil
}

// ensureCapacity funds the slot account up to the configured capacity.
func (b *Backend) ensureCapacity(ctx context.Context, capacity uint64) error {
	account, err := b.lookupAccount(ctx, tbutil.SlotAccountID(b.jobKey))
	if err != nil {
		return err
	}
	balance := accountBalance(account)
	if capacity <= balance {
		return nil
	}
	delta := capacity - balance
	transfer := tbtypes.Transfer{
		ID:              tbutil.CapacityTransferID(b.jobKey, capacity),
		DebitAccountID:  tbutil.OperatorAccountID(),
		CreditAccountID: tbutil.SlotAccountID(b.jobKey),
		Ledger:          ledgerSlots,
		Code:            codeSlot,
		Amount:          tbutil.Uint128FromUint64(delta),
	}
	result, err := b.submitTransfers(ctx, []tbtypes.Transfer{transfer})
	if err != nil {
		return err
	}
	return firstTransferError(result.Errors)
}

// submitTransfers sends transfers through the submitter and waits for results.
func (b *Backend) submitTransfers(ctx context.Context, transfers []tbtypes.Transfer) (tbutil.WorkResult, error) {
	if len(transfers) == 0 {
		return tbutil.WorkResult{}, nil
	}
	item := tbutil.WorkItem{
		Transfers: transfers,
		Done:      make(chan tbutil.WorkResult, 1),
	}
	select {
	case <-ctx.Done():
		return tbutil.WorkResult{}, ctx.Err()
	case b.submitter.In <- item:
	}
	select {
	case <-ctx.Done():
		return tbutil.WorkResult{}, ctx.Err()
	case result := <-item.Done:
		if result.Err != nil {
			return result, result.Err
		}
		return result, nil
	}
}

// createAccounts issues a CreateAccounts call through the client pool.
func (b *Backend) createAccounts(ctx context.Context, accounts []tbtypes.Account) ([]tbtypes.AccountEventResult, error) {
	client, err := b.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer b.pool.Release(client)
	return tbutil.CreateAccounts(ctx, client, accounts)
}

// lookupAccount fetches a single account by ID.
func (b *Backend) lookupAccount(ctx context.Context, id tbtypes.Uint128) (tbtypes.Account, error) {
	client, err := b.pool.Acquire(ctx)
	if err != nil {
		return tbtypes.Account{}, err
	}
	defer b.pool.Release(client)
	accounts, err := tbutil.LookupAccounts(ctx, client, []tbtypes.Uint128{id})
	if err != nil {
		return tbtypes.Account{}, err
	}
	if len(accounts) == 0 {
		return tbtypes.Account{}, fmt.Errorf("account not found")
	}
	return accounts[0], nil
}

// jitter returns a random delay in [0, max].
func (b *Backend) jitter(max time.Duration) time.Duration {
	if max <= 0 {
		return 0
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return time.Duration(b.rand.Int63n(int64(max) + 1))
}

// accountBalance returns the posted balance for an account.
func accountBalance(account tbtypes.Account) uint64 {
	credits := tbutil.Uint128ToUint64(account.CreditsPosted)
	debits := tbutil.Uint128ToUint64(account.DebitsPosted)
	if credits < debits {
		return 0
	}
	return credits - debits
}

// firstTransferError returns the first unexpected transfer error.
func firstTransferError(errors map[int]tbtypes.CreateTransferResult) error {
	for _, result := range errors {
		if result == tbtypes.TransferExists {
			continue
		}
		return fmt.Errorf("transfer error: %s", result)
	}
	return nil
}
