package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentResult is what RecordPayment hands back. The payment itself is committed
// whenever a result is returned; Warning carries a failed ledger posting.
type PaymentResult struct {
	Amortization       *Amortization
	Installment        Installment
	ExternalSyncStatus ExternalSyncStatus
	ExternalReference  string
	Warning            error
}

// LedgerEntry is a payment posting sent to the external ledger.
type LedgerEntry struct {
	AmortizationID    string
	InstallmentID     string
	InstallmentNumber int
	Reference         string
	Amount            decimal.Decimal
	Date              time.Time
}
