// Package ledger implements the customer ledger viewer: fetching the posted
// transactions, re-aggregating the summary when the page filters them, and
// exporting the filtered view.
package ledger

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dogarmed/storefront/internal/domain/models"
)

// ErrArchiveDisabled is returned when no spreadsheet is configured.
var ErrArchiveDisabled = errors.New("ledger archive is not configured")

// BackendAPI is the slice of the upstream client the ledger needs.
type BackendAPI interface {
	CustomerLedger(ctx context.Context, customerID int64) (*models.CustomerLedger, error)
}

// RowAppender appends one row to the archive spreadsheet.
type RowAppender interface {
	WriteRow(ctx context.Context, sheetRange string, values []interface{}) error
}

const archiveRange = "Ledger!A:K"

// Service owns the ledger page logic.
type Service struct {
	backend  BackendAPI
	appender RowAppender // nil when archiving is disabled
	logger   *zap.Logger
}

// NewService wires a ledger service. appender may be nil.
func NewService(backend BackendAPI, appender RowAppender, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{backend: backend, appender: appender, logger: logger}
}

// View fetches a customer's ledger and, when a filter is active, replaces
// transactions and summary with the filtered subset and its re-aggregation.
func (s *Service) View(ctx context.Context, customerID int64, filter models.LedgerFilter) (*models.CustomerLedger, error) {
	led, err := s.backend.CustomerLedger(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}

	if filter.Empty() {
		return led, nil
	}

	led.Transactions = Filter(led.Transactions, filter)
	led.Summary = Summarize(led.Transactions)
	return led, nil
}

// Filter applies the page's date range, type and free-text controls, keeping
// the backend's order.
func Filter(transactions []models.LedgerTransaction, filter models.LedgerFilter) []models.LedgerTransaction {
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	out := make([]models.LedgerTransaction, 0, len(transactions))
	for _, tx := range transactions {
		if !filter.From.IsZero() || !filter.To.IsZero() {
			txDate, ok := parseDate(tx.Date)
			if ok {
				if !filter.From.IsZero() && txDate.Before(filter.From) {
					continue
				}
				if !filter.To.IsZero() && txDate.After(filter.To) {
					continue
				}
			}
		}

		if filter.TransType != "" && tx.TransType != filter.TransType {
			continue
		}

		if search != "" {
			haystack := strings.ToLower(strings.Join([]string{
				tx.ItemName,
				tx.Description,
				strconv.FormatInt(tx.InvNo, 10),
				tx.TransType,
			}, " "))
			if !strings.Contains(haystack, search) {
				continue
			}
		}

		out = append(out, tx)
	}
	return out
}

// Summarize recomputes the summary strip for a filtered subset. The ending
// balance is the precomputed balance of the last visible transaction, not a
// fresh running total. The opening balance stays at 0 on this path, matching
// the viewer's historical behavior.
func Summarize(transactions []models.LedgerTransaction) models.LedgerSummary {
	summary := models.LedgerSummary{}
	for _, tx := range transactions {
		summary.TotalDebit += tx.DebitAmount
		summary.TotalCredit += tx.CreditAmount
	}
	if len(transactions) > 0 {
		summary.EndingBalance = transactions[len(transactions)-1].Balance
	}
	return summary
}

// ExportCSV renders the filtered transactions in the download format the
// viewer's export button produced.
func ExportCSV(transactions []models.LedgerTransaction) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"Date", "Inv.No", "Trans Type", "Item Name", "Description", "Qty", "Rate", "Credit Amount", "Debit Amount", "Balance", "DR/CR"}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}

	for _, tx := range transactions {
		record := []string{
			tx.Date,
			strconv.FormatInt(tx.InvNo, 10),
			tx.TransType,
			tx.ItemName,
			tx.Description,
			strconv.FormatFloat(tx.Qty, 'f', -1, 64),
			strconv.FormatFloat(tx.Rate, 'f', 2, 64),
			strconv.FormatFloat(tx.CreditAmount, 'f', 2, 64),
			strconv.FormatFloat(tx.DebitAmount, 'f', 2, 64),
			strconv.FormatFloat(tx.Balance, 'f', 2, 64),
			tx.DrCr,
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write csv record: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// Archive appends the filtered view to the configured spreadsheet, one row
// per transaction, and returns how many rows were written.
func (s *Service) Archive(ctx context.Context, customerID int64, filter models.LedgerFilter) (int, error) {
	if s.appender == nil {
		return 0, ErrArchiveDisabled
	}

	led, err := s.View(ctx, customerID, filter)
	if err != nil {
		return 0, err
	}

	for _, tx := range led.Transactions {
		row := []interface{}{
			led.CustomerInfo.ID,
			tx.Date,
			tx.InvNo,
			tx.TransType,
			tx.ItemName,
			tx.Description,
			tx.Qty,
			tx.Rate,
			tx.CreditAmount,
			tx.DebitAmount,
			tx.Balance,
		}
		if err := s.appender.WriteRow(ctx, archiveRange, row); err != nil {
			return 0, fmt.Errorf("archive ledger row: %w", err)
		}
	}

	s.logger.Info("ledger archived",
		zap.Int64("customer_id", customerID),
		zap.Int("rows", len(led.Transactions)))
	return len(led.Transactions), nil
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	time.RFC1123,
	"Mon, 02 Jan 2006 15:04:05 GMT",
}

func parseDate(raw string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
