package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dogarmed/storefront/internal/domain/models"
)

func sampleTransactions() []models.LedgerTransaction {
	return []models.LedgerTransaction{
		{Date: "2026-01-05", InvNo: 11, TransType: "Med-Sales", ItemName: "Panadol", Description: "Panadol - Qty: 2", DebitAmount: 100, Balance: 100, DrCr: "Dr"},
		{Date: "2026-01-05", InvNo: 11, TransType: "Receipt Vouc", ItemName: "Cash Payment", Description: "Payment for Order #11", CreditAmount: 60, Balance: 40, DrCr: "Dr"},
		{Date: "2026-02-10", InvNo: 12, TransType: "Med-Sales", ItemName: "Brufen", Description: "Brufen - Qty: 1", DebitAmount: 180, Balance: 220, DrCr: "Dr"},
	}
}

type fakeLedgerBackend struct {
	ledger *models.CustomerLedger
}

func (f *fakeLedgerBackend) CustomerLedger(context.Context, int64) (*models.CustomerLedger, error) {
	return f.ledger, nil
}

type recordingAppender struct {
	rows [][]interface{}
}

func (r *recordingAppender) WriteRow(_ context.Context, _ string, values []interface{}) error {
	r.rows = append(r.rows, values)
	return nil
}

func TestSummarizeFilteredSubset(t *testing.T) {
	txs := sampleTransactions()

	summary := Summarize(txs)
	assert.Equal(t, 280.0, summary.TotalDebit)
	assert.Equal(t, 60.0, summary.TotalCredit)
	assert.Equal(t, 220.0, summary.EndingBalance)
	// Opening balance intentionally stays zero on the filtered path.
	assert.Equal(t, 0.0, summary.OpeningBalance)
}

func TestSummarizeEmptySubsetDoesNotPanic(t *testing.T) {
	summary := Summarize(nil)
	assert.Equal(t, 0.0, summary.TotalDebit)
	assert.Equal(t, 0.0, summary.TotalCredit)
	assert.Equal(t, 0.0, summary.EndingBalance)
}

func TestFilterByDateRange(t *testing.T) {
	txs := sampleTransactions()

	from := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	out := Filter(txs, models.LedgerFilter{From: from})
	require.Len(t, out, 1)
	assert.Equal(t, "Brufen", out[0].ItemName)

	to := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	out = Filter(txs, models.LedgerFilter{To: to})
	assert.Len(t, out, 2)
}

func TestFilterByTypeIsExact(t *testing.T) {
	txs := sampleTransactions()

	out := Filter(txs, models.LedgerFilter{TransType: "Receipt Vouc"})
	require.Len(t, out, 1)
	assert.Equal(t, "Cash Payment", out[0].ItemName)

	out = Filter(txs, models.LedgerFilter{TransType: "receipt vouc"})
	assert.Empty(t, out)
}

func TestFilterSearchSpansFields(t *testing.T) {
	txs := sampleTransactions()

	byItem := Filter(txs, models.LedgerFilter{Search: "brufen"})
	require.Len(t, byItem, 1)

	byInvoice := Filter(txs, models.LedgerFilter{Search: "12"})
	require.Len(t, byInvoice, 1)
	assert.Equal(t, int64(12), byInvoice[0].InvNo)
}

func TestViewAppliesFilterAndReaggregates(t *testing.T) {
	backend := &fakeLedgerBackend{ledger: &models.CustomerLedger{
		CustomerInfo: models.LedgerCustomer{ID: 7, Name: "Ali Raza"},
		Transactions: sampleTransactions(),
		Summary:      models.LedgerSummary{OpeningBalance: 0, TotalDebit: 280, TotalCredit: 60, EndingBalance: 220},
	}}
	svc := NewService(backend, nil, nil)

	led, err := svc.View(context.Background(), 7, models.LedgerFilter{TransType: "Med-Sales"})
	require.NoError(t, err)
	require.Len(t, led.Transactions, 2)
	assert.Equal(t, 280.0, led.Summary.TotalDebit)
	assert.Equal(t, 0.0, led.Summary.TotalCredit)
	assert.Equal(t, 220.0, led.Summary.EndingBalance)
}

func TestViewWithoutFilterKeepsBackendSummary(t *testing.T) {
	backend := &fakeLedgerBackend{ledger: &models.CustomerLedger{
		Transactions: sampleTransactions(),
		Summary:      models.LedgerSummary{OpeningBalance: 0, TotalDebit: 280, TotalCredit: 60, EndingBalance: 220, EndingType: "Dr"},
	}}
	svc := NewService(backend, nil, nil)

	led, err := svc.View(context.Background(), 7, models.LedgerFilter{})
	require.NoError(t, err)
	assert.Equal(t, "Dr", led.Summary.EndingType)
	assert.Len(t, led.Transactions, 3)
}

func TestExportCSV(t *testing.T) {
	out, err := ExportCSV(sampleTransactions()[:1])
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "Date,Inv.No,Trans Type")
	assert.Contains(t, text, "Panadol - Qty: 2")
	assert.Contains(t, text, "100.00")
}

func TestArchiveDisabledWithoutAppender(t *testing.T) {
	svc := NewService(&fakeLedgerBackend{ledger: &models.CustomerLedger{}}, nil, nil)

	_, err := svc.Archive(context.Background(), 7, models.LedgerFilter{})
	assert.ErrorIs(t, err, ErrArchiveDisabled)
}

func TestArchiveWritesOneRowPerTransaction(t *testing.T) {
	backend := &fakeLedgerBackend{ledger: &models.CustomerLedger{
		CustomerInfo: models.LedgerCustomer{ID: 7},
		Transactions: sampleTransactions(),
	}}
	appender := &recordingAppender{}
	svc := NewService(backend, appender, nil)

	n, err := svc.Archive(context.Background(), 7, models.LedgerFilter{})
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Len(t, appender.rows, 3)
}
