package models

import "time"

// LedgerTransaction is one posted debit/credit entry. Balance is the running
// total precomputed by the backend; transactions arrive pre-sorted by date.
type LedgerTransaction struct {
	Date         string  `json:"date"`
	InvNo        int64   `json:"inv_no"`
	TransType    string  `json:"trans_type"`
	ItemName     string  `json:"item_name"`
	Description  string  `json:"description"`
	Qty          float64 `json:"qty"`
	Rate         float64 `json:"rate"`
	CreditAmount float64 `json:"credit_amount"`
	DebitAmount  float64 `json:"debit_amount"`
	Balance      float64 `json:"balance"`
	DrCr         string  `json:"dr_cr"`
}

// LedgerSummary aggregates a transaction set for the summary strip.
type LedgerSummary struct {
	OpeningBalance float64 `json:"opening_balance"`
	TotalDebit     float64 `json:"total_debit"`
	TotalCredit    float64 `json:"total_credit"`
	EndingBalance  float64 `json:"ending_balance"`
	EndingType     string  `json:"ending_type,omitempty"`
}

// LedgerCustomer identifies the customer a ledger belongs to.
type LedgerCustomer struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CustomerLedger is the full ledger payload served to the viewer page.
type CustomerLedger struct {
	CustomerInfo LedgerCustomer      `json:"customer_info"`
	Transactions []LedgerTransaction `json:"transactions"`
	Summary      LedgerSummary       `json:"summary"`
}

// LedgerFilter captures the viewer's client-side filter controls. Zero values
// mean the control is inactive.
type LedgerFilter struct {
	From      time.Time
	To        time.Time
	TransType string
	Search    string
}

// Empty reports whether no filter control is active.
func (f LedgerFilter) Empty() bool {
	return f.From.IsZero() && f.To.IsZero() && f.TransType == "" && f.Search == ""
}
