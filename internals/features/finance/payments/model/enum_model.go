package model

import (
	"fmt"
	"strings"
)

type PaymentStatus string
type PaymentMethod string
type PaymentEventAction string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusPartial   PaymentStatus = "PARTIAL"
	PaymentStatusPaid      PaymentStatus = "PAID"
	PaymentStatusOverdue   PaymentStatus = "OVERDUE" // hanya nilai legacy; overdue diturunkan saat query
	PaymentStatusCancelled PaymentStatus = "CANCELLED"
)

const (
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodCreditCard   PaymentMethod = "CREDIT_CARD"
	PaymentMethodCheque       PaymentMethod = "CHEQUE"
)

const (
	EventCreated         PaymentEventAction = "CREATED"
	EventPlanInstallment PaymentEventAction = "PLAN_INSTALLMENT"
	EventBulkCharged     PaymentEventAction = "BULK_CHARGED"
	EventPaymentRecorded PaymentEventAction = "PAYMENT_RECORDED"
	EventBulkCollected   PaymentEventAction = "BULK_COLLECTED"
	EventUpdated         PaymentEventAction = "UPDATED"
	EventBulkCancelled   PaymentEventAction = "BULK_CANCELLED"
)

// Status yang masih bisa ditagih (dan dihitung overdue bila lewat jatuh tempo).
var OpenStatuses = []string{string(PaymentStatusPending), string(PaymentStatusPartial)}

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch st := PaymentStatus(strings.ToUpper(strings.TrimSpace(s))); st {
	case PaymentStatusPending, PaymentStatusPartial, PaymentStatusPaid, PaymentStatusOverdue, PaymentStatusCancelled:
		return st, nil
	default:
		return "", fmt.Errorf("unknown payment status %q", s)
	}
}

// IsTerminal: PAID dan CANCELLED tidak bisa berubah lagi.
func (s PaymentStatus) IsTerminal() bool {
	switch s {
	case PaymentStatusPaid, PaymentStatusCancelled:
		return true
	case PaymentStatusPending, PaymentStatusPartial, PaymentStatusOverdue:
		return false
	default:
		return false
	}
}

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch m := PaymentMethod(strings.ToUpper(strings.TrimSpace(s))); m {
	case PaymentMethodCash, PaymentMethodBankTransfer, PaymentMethodCreditCard, PaymentMethodCheque:
		return m, nil
	default:
		return "", fmt.Errorf("unknown payment method %q", s)
	}
}
