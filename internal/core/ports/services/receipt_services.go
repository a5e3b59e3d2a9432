package services

import (
	"context"

	"github.com/SscSPs/institute_ledger/internal/core/domain"
	"github.com/SscSPs/institute_ledger/internal/dto"
)

// ReceiptSvcFacade records student payments and their accrual entries
type ReceiptSvcFacade interface {
	CreateReceipt(ctx context.Context, req dto.CreateReceiptRequest, userID string) (*domain.Receipt, error)

	// CreateAccrualJournalEntry posts Dr cash / Cr AR for the receipt. Idempotent.
	CreateAccrualJournalEntry(ctx context.Context, receiptID string, userID string) (*domain.JournalEntry, error)

	// ReverseReceipt reverses the receipt's journal entry and reopens its
	// enrollment when the receivable is outstanding again.
	ReverseReceipt(ctx context.Context, receiptID string, userID string, description *string) (*domain.JournalEntry, error)

	GetReceipt(ctx context.Context, receiptID string) (*domain.Receipt, error)
	ListReceipts(ctx context.Context, filter domain.ReceiptFilter) ([]domain.Receipt, error)
}
