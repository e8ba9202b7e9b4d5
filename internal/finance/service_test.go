package finance

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/carpetdist/carpet-erp/internal/masterdata/suppliers"
	"github.com/carpetdist/carpet-erp/internal/sales/customers"
	"github.com/carpetdist/carpet-erp/internal/shared"
	"github.com/carpetdist/carpet-erp/internal/testing/memledger"
)

type memoryFinanceRepo struct {
	ledger   *memledger.Store
	payments []Payment
	failNext bool
}

type memoryFinanceTx struct {
	repo *memoryFinanceRepo
}

func newMemoryFinanceRepo() *memoryFinanceRepo {
	return &memoryFinanceRepo{ledger: memledger.New()}
}

func (r *memoryFinanceRepo) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	restore := r.ledger.Snapshot()
	payments := slices.Clone(r.payments)
	if err := fn(ctx, &memoryFinanceTx{repo: r}); err != nil {
		restore()
		r.payments = payments
		return err
	}
	return nil
}

func (r *memoryFinanceRepo) Stats(ctx context.Context) (Stats, error) {
	s := Stats{TotalReceivables: decimal.Zero, TotalPayables: decimal.Zero}
	for _, c := range r.ledger.Customers {
		s.TotalReceivables = s.TotalReceivables.Add(c.Balance)
	}
	for _, sup := range r.ledger.Suppliers {
		s.TotalPayables = s.TotalPayables.Add(sup.Balance)
	}
	return s, nil
}

func (r *memoryFinanceRepo) History(ctx context.Context, filters HistoryFilters) ([]Payment, error) {
	out := []Payment{}
	for i := len(r.payments) - 1; i >= 0; i-- {
		p := r.payments[i]
		if filters.PartyType != "" && p.PartyType != filters.PartyType {
			continue
		}
		out = append(out, p)
		if filters.Limit > 0 && len(out) == filters.Limit {
			break
		}
	}
	return out, nil
}

func (tx *memoryFinanceTx) Customers() customers.Ledger { return tx.repo.ledger.CustomerLedger() }
func (tx *memoryFinanceTx) Suppliers() suppliers.Ledger { return tx.repo.ledger.SupplierLedger() }

func (tx *memoryFinanceTx) InsertPayment(ctx context.Context, p Payment) (int64, error) {
	if tx.repo.failNext {
		tx.repo.failNext = false
		return 0, context.DeadlineExceeded
	}
	p.ID = int64(len(tx.repo.payments) + 1)
	tx.repo.payments = append(tx.repo.payments, p)
	return p.ID, nil
}

type memoryIdem struct {
	keys map[string]bool
}

func (m *memoryIdem) CheckAndInsert(ctx context.Context, key, module string) error {
	if m.keys[key] {
		return shared.ErrIdempotencyConflict
	}
	m.keys[key] = true
	return nil
}

func (m *memoryIdem) Delete(ctx context.Context, key string) error {
	delete(m.keys, key)
	return nil
}

func seed(repo *memoryFinanceRepo) {
	repo.ledger.Customers[1] = customers.Customer{ID: 1, Name: "Aydın Ev Tekstil", Balance: decimal.NewFromInt(-35000)}
	repo.ledger.Suppliers[1] = suppliers.Supplier{ID: 1, Name: "Merinos", Balance: decimal.NewFromInt(49000)}
}

func newTestService(repo *memoryFinanceRepo) (*Service, *memoryIdem) {
	idem := &memoryIdem{keys: map[string]bool{}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, shared.CommitHooks{Logger: logger}, idem, logger), idem
}

func TestRecordPaymentSignTable(t *testing.T) {
	cases := []struct {
		name      string
		partyType PartyType
		typ       PaymentType
		want      string
	}{
		{"customer income", PartyCustomer, PaymentIncome, "-25000"},
		{"customer expense", PartyCustomer, PaymentExpense, "-45000"},
		{"supplier expense", PartySupplier, PaymentExpense, "39000"},
		{"supplier income", PartySupplier, PaymentIncome, "59000"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newMemoryFinanceRepo()
			seed(repo)
			svc, _ := newTestService(repo)

			p, err := svc.RecordPayment(context.Background(), PaymentInput{
				Type: tc.typ, PartyType: tc.partyType, PartyID: 1, Amount: decimal.NewFromInt(10000), Method: MethodBankTransfer,
			}, "")
			require.NoError(t, err)
			require.NotZero(t, p.ID)

			balance := repo.ledger.CustomerBalance(1)
			if tc.partyType == PartySupplier {
				balance = repo.ledger.SupplierBalance(1)
			}
			require.Equal(t, tc.want, balance.String())
		})
	}
}

func TestPaymentInverseRestoresBalance(t *testing.T) {
	repo := newMemoryFinanceRepo()
	seed(repo)
	svc, _ := newTestService(repo)
	amount := decimal.RequireFromString("1234.56")

	for _, party := range []PartyType{PartyCustomer, PartySupplier} {
		for _, pair := range [][2]PaymentType{{PaymentIncome, PaymentExpense}, {PaymentExpense, PaymentIncome}} {
			before := repo.ledger.CustomerBalance(1)
			if party == PartySupplier {
				before = repo.ledger.SupplierBalance(1)
			}
			for _, typ := range pair {
				_, err := svc.RecordPayment(context.Background(), PaymentInput{Type: typ, PartyType: party, PartyID: 1, Amount: amount}, "")
				require.NoError(t, err)
			}
			after := repo.ledger.CustomerBalance(1)
			if party == PartySupplier {
				after = repo.ledger.SupplierBalance(1)
			}
			require.True(t, before.Equal(after), "%s %v", party, pair)
		}
	}
}

func TestRecordPaymentSnapshotsPartyName(t *testing.T) {
	repo := newMemoryFinanceRepo()
	seed(repo)
	svc, _ := newTestService(repo)

	p, err := svc.RecordPayment(context.Background(), PaymentInput{Type: PaymentIncome, PartyType: PartyCustomer, PartyID: 1, Amount: decimal.NewFromInt(5)}, "")
	require.NoError(t, err)
	require.Equal(t, "Aydın Ev Tekstil", p.PartyName)
	require.Equal(t, MethodCash, p.Method)

	party, err := p.Party()
	require.NoError(t, err)
	require.Equal(t, CustomerParty{ID: 1}, party)
}

func TestRecordPaymentRejects(t *testing.T) {
	repo := newMemoryFinanceRepo()
	seed(repo)
	svc, _ := newTestService(repo)
	ctx := context.Background()

	_, err := svc.RecordPayment(ctx, PaymentInput{Type: PaymentIncome, PartyType: PartyCustomer, PartyID: 9, Amount: decimal.NewFromInt(5)}, "")
	require.ErrorIs(t, err, ErrPartyNotFound)
	require.ErrorIs(t, err, shared.ErrNotFound)

	_, err = svc.RecordPayment(ctx, PaymentInput{Type: PaymentIncome, PartyType: PartySupplier, PartyID: 9, Amount: decimal.NewFromInt(5)}, "")
	require.ErrorIs(t, err, ErrPartyNotFound)

	_, err = svc.RecordPayment(ctx, PaymentInput{Type: PaymentIncome, PartyType: "bank", PartyID: 1, Amount: decimal.NewFromInt(5)}, "")
	require.ErrorIs(t, err, ErrInvalidPartyType)

	_, err = svc.RecordPayment(ctx, PaymentInput{Type: "refund", PartyType: PartyCustomer, PartyID: 1, Amount: decimal.NewFromInt(5)}, "")
	require.ErrorIs(t, err, ErrInvalidPaymentType)

	_, err = svc.RecordPayment(ctx, PaymentInput{Type: PaymentIncome, PartyType: PartyCustomer, PartyID: 1, Amount: decimal.NewFromInt(5), Method: "barter"}, "")
	require.ErrorIs(t, err, ErrInvalidMethod)

	for _, amount := range []string{"0", "-5", "0.005"} {
		_, err = svc.RecordPayment(ctx, PaymentInput{Type: PaymentIncome, PartyType: PartyCustomer, PartyID: 1, Amount: decimal.RequireFromString(amount)}, "")
		require.ErrorIs(t, err, ErrInvalidAmount, amount)
	}

	require.Equal(t, "-35000", repo.ledger.CustomerBalance(1).String())
	require.Empty(t, repo.payments)
}

func TestRecordPaymentPersistenceFailureRollsBack(t *testing.T) {
	repo := newMemoryFinanceRepo()
	seed(repo)
	svc, idem := newTestService(repo)
	repo.failNext = true

	_, err := svc.RecordPayment(context.Background(), PaymentInput{Type: PaymentIncome, PartyType: PartyCustomer, PartyID: 1, Amount: decimal.NewFromInt(500)}, "pay-1")
	require.Error(t, err)
	require.Equal(t, "-35000", repo.ledger.CustomerBalance(1).String())
	require.False(t, idem.keys["pay-1"])

	_, err = svc.RecordPayment(context.Background(), PaymentInput{Type: PaymentIncome, PartyType: PartyCustomer, PartyID: 1, Amount: decimal.NewFromInt(500)}, "pay-1")
	require.NoError(t, err)
	_, err = svc.RecordPayment(context.Background(), PaymentInput{Type: PaymentIncome, PartyType: PartyCustomer, PartyID: 1, Amount: decimal.NewFromInt(500)}, "pay-1")
	require.ErrorIs(t, err, shared.ErrConflict)
	require.Equal(t, "-34500", repo.ledger.CustomerBalance(1).String())
}

func TestStatsAndHistory(t *testing.T) {
	repo := newMemoryFinanceRepo()
	seed(repo)
	repo.ledger.Customers[2] = customers.Customer{ID: 2, Name: "Halı Dünyası", Balance: decimal.RequireFromString("-100.50")}
	svc, _ := newTestService(repo)
	ctx := context.Background()

	_, err := svc.RecordPayment(ctx, PaymentInput{Type: PaymentIncome, PartyType: PartyCustomer, PartyID: 2, Amount: decimal.RequireFromString("100.50")}, "")
	require.NoError(t, err)
	_, err = svc.RecordPayment(ctx, PaymentInput{Type: PaymentExpense, PartyType: PartySupplier, PartyID: 1, Amount: decimal.NewFromInt(9000)}, "")
	require.NoError(t, err)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, "-35000", stats.TotalReceivables.String())
	require.Equal(t, "40000", stats.TotalPayables.String())

	history, err := svc.History(ctx, HistoryFilters{})
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.Equal(t, PartySupplier, history[0].PartyType)

	history, err = svc.History(ctx, HistoryFilters{PartyType: PartyCustomer})
	require.NoError(t, err)
	require.Len(t, history, 1)

	_, err = svc.History(ctx, HistoryFilters{PartyType: "bank"})
	require.ErrorIs(t, err, shared.ErrValidation)
}
