package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/institute_ledger/internal/core/domain"
	"github.com/SscSPs/institute_ledger/internal/core/services"
)

type MaintenanceServiceTestSuite struct {
	ledgerSuite
}

func TestMaintenanceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MaintenanceServiceTestSuite))
}

// seedImported writes an enrollment and a receipt the way a data import
// would: rows only, no accounts and no journal entries.
func (suite *MaintenanceServiceTestSuite) seedImported() (domain.Enrollment, domain.Receipt) {
	now := time.Now().UTC()
	audit := domain.AuditFields{CreatedAt: now, CreatedBy: "user-import", LastUpdatedAt: now, LastUpdatedBy: "user-import"}
	student := student42.ToDomain()
	course := course3.ToDomain()

	enr := domain.Enrollment{
		EnrollmentID:    "enr-imported",
		Student:         student,
		Course:          course,
		EnrollmentDate:  time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC),
		TotalAmount:     dec("500"),
		DiscountPercent: dec("0"),
		DiscountAmount:  dec("0"),
		NetAmount:       dec("500"),
		PaymentMethod:   "CASH",
		AuditFields:     audit,
	}
	suite.Require().NoError(suite.store.SaveEnrollment(suite.ctx, enr))

	receipt := domain.Receipt{
		ReceiptID:       "rcp-imported",
		ReceiptNumber:   "RC-S0042-20240905-001",
		Student:         student,
		Course:          &course,
		EnrollmentID:    &enr.EnrollmentID,
		Date:            time.Date(2024, 9, 5, 0, 0, 0, 0, time.UTC),
		Amount:          dec("500"),
		DiscountPercent: dec("0"),
		DiscountAmount:  dec("0"),
		NetAmount:       dec("500"),
		PaidAmount:      dec("200"),
		PaymentMethod:   "CASH",
		AuditFields:     audit,
	}
	suite.Require().NoError(suite.store.SaveReceipt(suite.ctx, receipt))
	return enr, receipt
}

func (suite *MaintenanceServiceTestSuite) TestReconcileBackfillsEntries() {
	enr, receipt := suite.seedImported()

	summary, err := suite.svc.Maintenance.Reconcile(suite.ctx, "")
	suite.Require().NoError(err)
	suite.Equal(1, summary.StudentAccountsEnsured)
	suite.Equal(1, summary.EnrollmentsChecked)
	suite.Equal(1, summary.OpeningEntriesPosted)
	suite.Equal(1, summary.ReceiptsChecked)
	suite.Equal(1, summary.ReceiptEntriesCreated)
	suite.Zero(summary.BalanceDrifts)

	suite.assertCached("1250-S0042", "0")
	suite.assertCached(arCode, "300")
	suite.assertCached(deferredCode, "500")
	suite.assertCached(cashCode, "200")

	reloaded, err := suite.svc.Enrollment.GetEnrollment(suite.ctx, enr.EnrollmentID)
	suite.Require().NoError(err)
	suite.Require().NotNil(reloaded.OpeningEntryID)

	opening, _, err := suite.svc.Journal.GetEntry(suite.ctx, *reloaded.OpeningEntryID)
	suite.Require().NoError(err)
	suite.Equal(student42.RegistrarID, opening.CreatedBy)

	paid, err := suite.svc.Receipt.GetReceipt(suite.ctx, receipt.ReceiptID)
	suite.Require().NoError(err)
	suite.Require().NotNil(paid.EntryID)
	entry, _, err := suite.svc.Journal.GetEntry(suite.ctx, *paid.EntryID)
	suite.Require().NoError(err)
	suite.Equal(receipt.ReceiptNumber, entry.Reference)

	again, err := suite.svc.Maintenance.Reconcile(suite.ctx, testUser)
	suite.Require().NoError(err)
	suite.Zero(again.OpeningEntriesPosted)
	suite.Zero(again.ReceiptEntriesCreated)
	suite.Zero(again.ReceiptEntriesPosted)
	suite.Zero(again.BalanceDrifts)
}

func (suite *MaintenanceServiceTestSuite) TestReconcileSkipsWithdrawn() {
	enr, _ := suite.seedImported()
	enr.IsWithdrawn = true
	suite.Require().NoError(suite.store.UpdateEnrollment(suite.ctx, enr))

	summary, err := suite.svc.Maintenance.Reconcile(suite.ctx, testUser)
	suite.Require().NoError(err)
	suite.Equal(1, summary.EnrollmentsChecked)
	suite.Zero(summary.OpeningEntriesPosted)
	suite.Zero(suite.countEntries(domain.EntryEnrollment))
}

func (suite *MaintenanceServiceTestSuite) TestVerifyReportsNoDriftOnCleanLedger() {
	suite.enroll("1000", "0", "0")

	report, err := suite.svc.Maintenance.VerifyBalances(suite.ctx)
	suite.Require().NoError(err)
	suite.Empty(report.Drifts)
	suite.Positive(report.AccountsScanned)
}

func (suite *MaintenanceServiceTestSuite) TestReconcileFallsBackToSystemActor() {
	now := time.Now().UTC()
	student := domain.StudentRef{ID: 7, FullName: "No Registrar"}
	suite.Require().NoError(suite.store.SaveReceipt(suite.ctx, domain.Receipt{
		ReceiptID:     "rcp-orphan",
		ReceiptNumber: "RC-S0007-20240905-001",
		Student:       student,
		Date:          time.Date(2024, 9, 5, 0, 0, 0, 0, time.UTC),
		Amount:        dec("100"),
		NetAmount:     dec("100"),
		PaidAmount:    dec("100"),
		PaymentMethod: "CASH",
		AuditFields:   domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}))

	_, err := suite.svc.Maintenance.Reconcile(suite.ctx, "")
	suite.Require().NoError(err)

	ar := suite.account("1250-S0007")
	suite.Equal(systemActor, ar.CreatedBy)
}

func (suite *MaintenanceServiceTestSuite) TestReconcileWithoutAnyActor() {
	svc := newContainer(suite.store, "")

	_, err := svc.Maintenance.Reconcile(suite.ctx, "")
	suite.ErrorIs(err, services.ErrNoActor)
}
