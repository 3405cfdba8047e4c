package integration

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"brokerwallet/internal/core/domain"
	"brokerwallet/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// --- In-Memory Wallet Repo ---

type inMemoryWalletRepo struct {
	mu      sync.Mutex
	wallets map[uuid.UUID]*domain.Wallet
}

func newInMemoryWalletRepo() *inMemoryWalletRepo {
	return &inMemoryWalletRepo{wallets: make(map[uuid.UUID]*domain.Wallet)}
}

func (r *inMemoryWalletRepo) Create(ctx context.Context, w *domain.Wallet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *w
	r.wallets[w.UserID] = &cp
	return nil
}

func (r *inMemoryWalletRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Wallet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wallets[userID]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (r *inMemoryWalletRepo) GetByUserIDForUpdate(ctx context.Context, tx pgx.Tx, userID uuid.UUID) (*domain.Wallet, error) {
	return r.GetByUserID(ctx, userID)
}

// ApplyDelta mirrors the SQL primitive: a single guarded read-modify-write
// under one lock, rejecting any delta that would drive the balance negative.
func (r *inMemoryWalletRepo) ApplyDelta(ctx context.Context, tx pgx.Tx, userID uuid.UUID, delta decimal.Decimal) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wallets[userID]
	if !ok {
		return decimal.Zero, ports.ErrInsufficientBalance
	}
	next := w.Balance.Add(delta)
	if next.IsNegative() {
		return decimal.Zero, ports.ErrInsufficientBalance
	}
	w.Balance = next
	w.UpdatedAt = time.Now().UTC()
	return next, nil
}

// --- In-Memory Withdrawal Repo ---

type inMemoryWithdrawalRepo struct {
	mu          sync.Mutex
	withdrawals map[uuid.UUID]*domain.WithdrawalRequest
	seq         map[uuid.UUID]int
	nextSeq     int
}

func newInMemoryWithdrawalRepo() *inMemoryWithdrawalRepo {
	return &inMemoryWithdrawalRepo{
		withdrawals: make(map[uuid.UUID]*domain.WithdrawalRequest),
		seq:         make(map[uuid.UUID]int),
	}
}

func (r *inMemoryWithdrawalRepo) Create(ctx context.Context, tx pgx.Tx, w *domain.WithdrawalRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *w
	r.withdrawals[w.ID] = &cp
	r.nextSeq++
	r.seq[w.ID] = r.nextSeq
	return nil
}

func (r *inMemoryWithdrawalRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.WithdrawalRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.withdrawals[id]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (r *inMemoryWithdrawalRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.WithdrawalRequest, error) {
	return r.GetByID(ctx, id)
}

func (r *inMemoryWithdrawalRepo) Update(ctx context.Context, tx pgx.Tx, w *domain.WithdrawalRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.withdrawals[w.ID]; !ok {
		return fmt.Errorf("withdrawal not found")
	}
	cp := *w
	cp.UpdatedAt = time.Now().UTC()
	r.withdrawals[w.ID] = &cp
	return nil
}

func (r *inMemoryWithdrawalRepo) GetLatestByUser(ctx context.Context, userID uuid.UUID) (*domain.WithdrawalRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *domain.WithdrawalRequest
	latestSeq := -1
	for id, w := range r.withdrawals {
		if w.UserID != userID {
			continue
		}
		if r.seq[id] > latestSeq {
			latestSeq = r.seq[id]
			latest = w
		}
	}
	if latest == nil {
		return nil, nil
	}
	cp := *latest
	return &cp, nil
}

func (r *inMemoryWithdrawalRepo) List(ctx context.Context, params ports.WithdrawalListParams) ([]domain.WithdrawalRequest, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.WithdrawalRequest
	for _, w := range r.withdrawals {
		if params.UserID != nil && w.UserID != *params.UserID {
			continue
		}
		if params.Status != nil && w.Status != *params.Status {
			continue
		}
		result = append(result, *w)
	}
	sort.Slice(result, func(i, j int) bool {
		return r.seq[result[i].ID] > r.seq[result[j].ID]
	})
	total := int64(len(result))

	start := (params.Page - 1) * params.PageSize
	if start >= len(result) {
		return []domain.WithdrawalRequest{}, total, nil
	}
	end := start + params.PageSize
	if end > len(result) {
		end = len(result)
	}
	return result[start:end], total, nil
}

func (r *inMemoryWithdrawalRepo) CountFailedByUser(ctx context.Context, tx pgx.Tx, userID uuid.UUID, exclude uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, w := range r.withdrawals {
		if w.UserID == userID && w.Status == domain.WithdrawalStatusFailed && w.ID != exclude {
			count++
		}
	}
	return count, nil
}

// --- In-Memory Unhold Repo ---

type inMemoryUnholdRepo struct {
	mu       sync.Mutex
	requests map[uuid.UUID]*domain.UnholdRequest
	seq      map[uuid.UUID]int
	nextSeq  int
}

func newInMemoryUnholdRepo() *inMemoryUnholdRepo {
	return &inMemoryUnholdRepo{
		requests: make(map[uuid.UUID]*domain.UnholdRequest),
		seq:      make(map[uuid.UUID]int),
	}
}

func (r *inMemoryUnholdRepo) Create(ctx context.Context, tx pgx.Tx, u *domain.UnholdRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *u
	r.requests[u.ID] = &cp
	r.nextSeq++
	r.seq[u.ID] = r.nextSeq
	return nil
}

func (r *inMemoryUnholdRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.UnholdRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.requests[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *inMemoryUnholdRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.UnholdRequest, error) {
	return r.GetByID(ctx, id)
}

func (r *inMemoryUnholdRepo) Update(ctx context.Context, tx pgx.Tx, u *domain.UnholdRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.requests[u.ID]; !ok {
		return fmt.Errorf("unhold request not found")
	}
	cp := *u
	cp.UpdatedAt = time.Now().UTC()
	r.requests[u.ID] = &cp
	return nil
}

func (r *inMemoryUnholdRepo) GetLatestByUser(ctx context.Context, userID uuid.UUID) (*domain.UnholdRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *domain.UnholdRequest
	latestSeq := -1
	for id, u := range r.requests {
		if u.UserID != userID {
			continue
		}
		if r.seq[id] > latestSeq {
			latestSeq = r.seq[id]
			latest = u
		}
	}
	if latest == nil {
		return nil, nil
	}
	cp := *latest
	return &cp, nil
}

// --- In-Memory Account Repo ---

type inMemoryAccountRepo struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]*domain.Account
}

func newInMemoryAccountRepo() *inMemoryAccountRepo {
	return &inMemoryAccountRepo{accounts: make(map[uuid.UUID]*domain.Account)}
}

func (r *inMemoryAccountRepo) Get(ctx context.Context, userID uuid.UUID) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[userID]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *inMemoryAccountRepo) upsert(userID uuid.UUID) *domain.Account {
	a, ok := r.accounts[userID]
	if !ok {
		a = &domain.Account{UserID: userID}
		r.accounts[userID] = a
	}
	return a
}

func (r *inMemoryAccountRepo) SetWithdrawalBlocked(ctx context.Context, tx pgx.Tx, userID uuid.UUID, blocked bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a := r.upsert(userID)
	a.WithdrawalBlocked = blocked
	a.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *inMemoryAccountRepo) SetOnHold(ctx context.Context, tx pgx.Tx, userID uuid.UUID, onHold bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a := r.upsert(userID)
	a.OnHold = onHold
	a.UpdatedAt = time.Now().UTC()
	return nil
}

// --- In-Memory Transaction Repo ---

type inMemoryTransactionRepo struct {
	mu      sync.Mutex
	entries []*domain.Transaction
}

func newInMemoryTransactionRepo() *inMemoryTransactionRepo {
	return &inMemoryTransactionRepo{}
}

func (r *inMemoryTransactionRepo) Create(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *t
	r.entries = append(r.entries, &cp)
	return nil
}

func (r *inMemoryTransactionRepo) ListByUser(ctx context.Context, params ports.TransactionListParams) ([]domain.Transaction, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Transaction
	for i := len(r.entries) - 1; i >= 0; i-- {
		t := r.entries[i]
		if t.UserID != params.UserID {
			continue
		}
		if params.Type != nil && t.Type != *params.Type {
			continue
		}
		if params.Status != nil && t.Status != *params.Status {
			continue
		}
		result = append(result, *t)
	}
	total := int64(len(result))

	start := (params.Page - 1) * params.PageSize
	if start >= len(result) {
		return []domain.Transaction{}, total, nil
	}
	end := start + params.PageSize
	if end > len(result) {
		end = len(result)
	}
	return result[start:end], total, nil
}

func (r *inMemoryTransactionRepo) UpdateStatusByReference(ctx context.Context, tx pgx.Tx, reference uuid.UUID, status domain.TransactionStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.entries {
		if t.Reference == reference {
			t.Status = status
		}
	}
	return nil
}

func (r *inMemoryTransactionRepo) UpdateStatusByUser(ctx context.Context, tx pgx.Tx, userID uuid.UUID, from, to domain.TransactionStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.entries {
		if t.UserID == userID && t.Status == from {
			t.Status = to
		}
	}
	return nil
}

// byReference returns all ledger entries linked to a request id.
func (r *inMemoryTransactionRepo) byReference(reference uuid.UUID) []domain.Transaction {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Transaction
	for _, t := range r.entries {
		if t.Reference == reference {
			result = append(result, *t)
		}
	}
	return result
}

// --- In-Memory Transactor (no-op tx) ---

type inMemoryTransactor struct{}

func newInMemoryTransactor() *inMemoryTransactor {
	return &inMemoryTransactor{}
}

func (t *inMemoryTransactor) Begin(ctx context.Context) (pgx.Tx, error) {
	return &noopTx{}, nil
}

// noopTx is a no-op pgx.Tx implementation for in-memory testing.
type noopTx struct{}

func (t *noopTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *noopTx) Commit(ctx context.Context) error          { return nil }
func (t *noopTx) Rollback(ctx context.Context) error        { return nil }
func (t *noopTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *noopTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *noopTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *noopTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *noopTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag(""), nil
}
func (t *noopTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *noopTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}
func (t *noopTx) Conn() *pgx.Conn { return nil }

// --- Manual Scheduler ---

type armedTimer struct {
	Delay time.Duration
	Kind  ports.TimerKind
}

// manualScheduler records armed timers instead of running them, so tests
// fire them deterministically through the service callback.
type manualScheduler struct {
	mu     sync.Mutex
	timers map[uuid.UUID]map[ports.TimerKind]armedTimer
}

func newManualScheduler() *manualScheduler {
	return &manualScheduler{timers: make(map[uuid.UUID]map[ports.TimerKind]armedTimer)}
}

func (s *manualScheduler) Arm(delay time.Duration, withdrawalID uuid.UUID, kind ports.TimerKind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timers[withdrawalID] == nil {
		s.timers[withdrawalID] = make(map[ports.TimerKind]armedTimer)
	}
	s.timers[withdrawalID][kind] = armedTimer{Delay: delay, Kind: kind}
}

func (s *manualScheduler) Cancel(withdrawalID uuid.UUID, kind ports.TimerKind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.timers[withdrawalID], kind)
}

func (s *manualScheduler) CancelAll(withdrawalID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.timers, withdrawalID)
}

func (s *manualScheduler) armed(withdrawalID uuid.UUID, kind ports.TimerKind) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.timers[withdrawalID][kind]
	return ok
}

// --- Recording Notifier ---

type recordingNotifier struct {
	mu               sync.Mutex
	withdrawalEvents []ports.WithdrawalEvent
	accountEvents    []ports.AccountEvent
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{}
}

func (n *recordingNotifier) PublishWithdrawal(ctx context.Context, ev ports.WithdrawalEvent) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.withdrawalEvents = append(n.withdrawalEvents, ev)
	return nil
}

func (n *recordingNotifier) PublishAccount(ctx context.Context, ev ports.AccountEvent) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.accountEvents = append(n.accountEvents, ev)
	return nil
}

func (n *recordingNotifier) lastAccountEvent() (ports.AccountEvent, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.accountEvents) == 0 {
		return ports.AccountEvent{}, false
	}
	return n.accountEvents[len(n.accountEvents)-1], true
}
