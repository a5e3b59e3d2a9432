package services

import (
	"fmt"

	"github.com/SscSPs/institute_ledger/internal/apperrors"
)

var (
	ErrUnbalancedEntry    = fmt.Errorf("%w: journal entry debits and credits do not balance", apperrors.ErrValidation)
	ErrInvalidAmount      = fmt.Errorf("%w: amount must be greater than zero", apperrors.ErrValidation)
	ErrPaymentExceedsDue  = fmt.Errorf("%w: payment exceeds the remaining amount due", apperrors.ErrValidation)
	ErrNoActor            = fmt.Errorf("%w: no acting user and no system actor configured", apperrors.ErrValidation)
	ErrInactiveAccount    = fmt.Errorf("%w: account is inactive", apperrors.ErrValidation)
	ErrMissingAccount     = fmt.Errorf("%w: required account association is missing", apperrors.ErrValidation)
	ErrInactiveCostCenter = fmt.Errorf("%w: cost center is inactive", apperrors.ErrValidation)
	ErrInactiveDiscount   = fmt.Errorf("%w: discount rule is inactive", apperrors.ErrValidation)

	ErrAlreadyPosted       = fmt.Errorf("%w: journal entry is already posted", apperrors.ErrConflict)
	ErrEntryNotPosted      = fmt.Errorf("%w: journal entry is not posted", apperrors.ErrConflict)
	ErrAlreadyReversed     = fmt.Errorf("%w: journal entry has already been reversed", apperrors.ErrConflict)
	ErrEnrollmentWithdrawn = fmt.Errorf("%w: enrollment is withdrawn", apperrors.ErrConflict)
	ErrEnrollmentCompleted = fmt.Errorf("%w: enrollment revenue has already been recognized", apperrors.ErrConflict)
	ErrAdvanceNotDisbursed = fmt.Errorf("%w: advance has no posted disbursement entry", apperrors.ErrConflict)
	ErrPeriodClosed        = fmt.Errorf("%w: entry date falls in a closed accounting period", apperrors.ErrConflict)
	ErrPeriodAlreadyClosed = fmt.Errorf("%w: accounting period is already closed", apperrors.ErrConflict)
)
