package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/institute_ledger/internal/apperrors"
	"github.com/SscSPs/institute_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/institute_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/institute_ledger/internal/core/ports/services"
	"github.com/SscSPs/institute_ledger/internal/dto"
	"github.com/SscSPs/institute_ledger/internal/utils/accounting"
)

// accountService owns the chart of accounts and the cached roll-up balances.
type accountService struct {
	BaseService
	txManager   portsrepo.TransactionManager
	accountRepo portsrepo.AccountRepositoryFacade
	journalRepo portsrepo.JournalReader
}

// NewAccountService creates a new AccountService.
func NewAccountService(txManager portsrepo.TransactionManager, accountRepo portsrepo.AccountRepositoryFacade, journalRepo portsrepo.JournalReader, options ...BaseOption) portssvc.AccountSvcFacade {
	s := &accountService{
		txManager:   txManager,
		accountRepo: accountRepo,
		journalRepo: journalRepo,
	}
	applyBaseOptions(&s.BaseService, options)
	return s
}

// Ensure accountService implements the portssvc.AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
		}
		s.LogError(ctx, err, "Failed to get account", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to get account %s: %w", accountID, err)
	}
	return account, nil
}

func (s *accountService) GetAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: account with code %s", apperrors.ErrNotFound, code)
		}
		return nil, fmt.Errorf("failed to get account by code %s: %w", code, err)
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

func (s *accountService) AccountTree(ctx context.Context) ([]*domain.AccountNode, error) {
	accounts, err := s.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}

	nodes := make(map[string]*domain.AccountNode, len(accounts))
	for _, acc := range accounts {
		nodes[acc.AccountID] = &domain.AccountNode{Account: acc, Children: []*domain.AccountNode{}}
	}
	children := childIndex(accounts)

	visited := make(map[string]bool, len(accounts))
	var build func(id string) *domain.AccountNode
	build = func(id string) *domain.AccountNode {
		visited[id] = true
		node := nodes[id]
		for _, childID := range children[id] {
			if visited[childID] {
				continue
			}
			node.Children = append(node.Children, build(childID))
		}
		return node
	}

	roots := make([]*domain.AccountNode, 0)
	for _, acc := range accounts {
		if acc.HasParent() {
			if _, ok := nodes[*acc.ParentAccountID]; ok {
				continue
			}
		}
		roots = append(roots, build(acc.AccountID))
	}
	// Accounts caught in a parent cycle have no root above them.
	for _, acc := range accounts {
		if !visited[acc.AccountID] {
			roots = append(roots, build(acc.AccountID))
		}
	}
	return roots, nil
}

func (s *accountService) Descendants(ctx context.Context, accountID string) ([]domain.Account, error) {
	if _, err := s.GetAccountByID(ctx, accountID); err != nil {
		return nil, err
	}
	accounts, err := s.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	byID := indexAccounts(accounts)
	children := childIndex(accounts)

	visited := map[string]bool{accountID: true}
	queue := []string{accountID}
	result := make([]domain.Account, 0)
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, childID := range children[current] {
			if visited[childID] {
				continue
			}
			visited[childID] = true
			result = append(result, byID[childID])
			queue = append(queue, childID)
		}
	}
	return result, nil
}

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	spec := domain.AccountSpec{
		Code:        strings.TrimSpace(req.Code),
		Name:        req.Name,
		NameLocal:   req.NameLocal,
		AccountType: req.AccountType,
		ParentCode:  strings.TrimSpace(req.ParentCode),
	}
	if err := validateSpec(spec); err != nil {
		return nil, err
	}

	var created *domain.Account
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.accountRepo.FindAccountByCode(ctx, spec.Code); err == nil {
			return fmt.Errorf("%w: account code %s", apperrors.ErrDuplicate, spec.Code)
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		var err error
		created, err = s.insertAccount(ctx, spec, userID)
		return err
	})
	if err != nil {
		s.LogWarn(ctx, err, "Failed to create account", slog.String("code", spec.Code))
		return nil, err
	}

	s.LogInfo(ctx, "Account created", slog.String("account_id", created.AccountID), slog.String("code", created.Code))
	return created, nil
}

func (s *accountService) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	return s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		account, err := s.GetAccountByID(ctx, accountID)
		if err != nil {
			return err
		}
		if !account.IsActive {
			return nil
		}
		account.IsActive = false
		account.LastUpdatedAt = time.Now().UTC()
		account.LastUpdatedBy = userID
		if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
			return fmt.Errorf("failed to deactivate account %s: %w", accountID, err)
		}
		return nil
	})
}

func (s *accountService) GetOrCreate(ctx context.Context, spec domain.AccountSpec, userID string) (*domain.Account, error) {
	if err := validateSpec(spec); err != nil {
		return nil, err
	}

	var account *domain.Account
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := s.accountRepo.FindAccountByCode(ctx, spec.Code)
		if err == nil {
			account = existing
			return nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}

		account, err = s.insertAccount(ctx, spec, userID)
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Lost a race with a concurrent creator; the row exists now.
			account, err = s.accountRepo.FindAccountByCode(ctx, spec.Code)
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get or create account %s: %w", spec.Code, err)
	}
	return account, nil
}

func (s *accountService) EnsureKey(ctx context.Context, key domain.AccountKey, spec domain.AccountSpec, userID string) (*domain.Account, error) {
	code := key.Code()
	if code == "" {
		return nil, fmt.Errorf("%w: account key has no code", apperrors.ErrValidation)
	}

	if existing, err := s.accountRepo.FindAccountByCode(ctx, code); err == nil {
		return existing, nil
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up account %s: %w", code, err)
	}

	var account *domain.Account
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		spec.ParentCode = ""
		if parentKey, ok := key.Parent(); ok {
			parent, err := s.EnsureKey(ctx, parentKey, domain.AccountSpec{}, userID)
			if err != nil {
				return err
			}
			spec.ParentCode = parent.Code
		}
		spec.Code = code
		spec.AccountType = key.AccountType()
		if spec.Name == "" {
			spec.Name = key.DefaultName()
		}
		var err error
		account, err = s.GetOrCreate(ctx, spec, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

func (s *accountService) GetCashAccount(ctx context.Context, userID string) (*domain.Account, error) {
	return s.EnsureKey(ctx, domain.KeyFor(domain.KindCash), domain.AccountSpec{}, userID)
}

func (s *accountService) GetRevenueReturnsAccount(ctx context.Context, userID string) (*domain.Account, error) {
	return s.EnsureKey(ctx, domain.KeyFor(domain.KindRevenueReturns), domain.AccountSpec{}, userID)
}

func (s *accountService) GetAdvancesAccount(ctx context.Context, userID string) (*domain.Account, error) {
	return s.EnsureKey(ctx, domain.KeyFor(domain.KindAdvances), domain.AccountSpec{}, userID)
}

func (s *accountService) GetExpenseCategoryAccount(ctx context.Context, category domain.ExpenseCategory, userID string) (*domain.Account, error) {
	if !category.IsValid() {
		return nil, fmt.Errorf("%w: unknown expense category %q", apperrors.ErrValidation, category)
	}
	return s.EnsureKey(ctx, domain.ExpenseCategoryKey(category), domain.AccountSpec{}, userID)
}

func (s *accountService) GetOrCreateStudentARAccount(ctx context.Context, student domain.StudentRef, userID string) (*domain.Account, error) {
	key := domain.StudentARKey(student.ID)
	return s.EnsureKey(ctx, key, domain.AccountSpec{
		Name:             fmt.Sprintf("%s %s", key.DefaultName(), student.FullName),
		IsStudentAccount: true,
		StudentName:      student.FullName,
	}, userID)
}

func (s *accountService) GetOrCreateEnrollmentARAccount(ctx context.Context, student domain.StudentRef, course domain.CourseRef, userID string) (*domain.Account, error) {
	var account *domain.Account
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		courseKey := domain.AccountKey{Kind: domain.KindEnrollmentARCourse, CourseID: course.ID}
		if _, err := s.EnsureKey(ctx, courseKey, domain.AccountSpec{
			Name:            fmt.Sprintf("%s - %s", courseKey.DefaultName(), course.Name),
			IsCourseAccount: true,
			CourseName:      course.Name,
		}, userID); err != nil {
			return err
		}

		key := domain.EnrollmentARKey(course.ID, student.ID)
		var err error
		account, err = s.EnsureKey(ctx, key, domain.AccountSpec{
			Name:             fmt.Sprintf("%s %s - %s", key.DefaultName(), student.FullName, course.Name),
			IsStudentAccount: true,
			StudentName:      student.FullName,
			CourseName:       course.Name,
		}, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

func (s *accountService) GetOrCreateCourseRevenueAccount(ctx context.Context, course domain.CourseRef, userID string) (*domain.Account, error) {
	key := domain.CourseDeferredRevenueKey(course.ID)
	return s.EnsureKey(ctx, key, domain.AccountSpec{
		Name:            fmt.Sprintf("%s - %s", key.DefaultName(), course.Name),
		IsCourseAccount: true,
		CourseName:      course.Name,
	}, userID)
}

func (s *accountService) GetOrCreateCourseEarnedRevenueAccount(ctx context.Context, course domain.CourseRef, userID string) (*domain.Account, error) {
	key := domain.CourseEarnedRevenueKey(course.ID)
	return s.EnsureKey(ctx, key, domain.AccountSpec{
		Name:            fmt.Sprintf("%s - %s", key.DefaultName(), course.Name),
		IsCourseAccount: true,
		CourseName:      course.Name,
	}, userID)
}

func (s *accountService) GetOrCreateEmployeeSalaryAccount(ctx context.Context, employee domain.EmployeeRef, userID string) (*domain.Account, error) {
	key := domain.EmployeeSalaryKey(employee.ID)
	return s.EnsureKey(ctx, key, domain.AccountSpec{
		Name: fmt.Sprintf("%s - %s", key.DefaultName(), employee.FullName),
	}, userID)
}

func (s *accountService) GetOrCreateTeacherSalaryAccount(ctx context.Context, teacher domain.TeacherRef, userID string) (*domain.Account, error) {
	key := domain.TeacherSalaryKey(teacher.ID)
	return s.EnsureKey(ctx, key, domain.AccountSpec{
		Name: fmt.Sprintf("%s - %s", key.DefaultName(), teacher.FullName),
	}, userID)
}

func (s *accountService) BalanceOf(ctx context.Context, accountID string, includeDescendants bool) (decimal.Decimal, error) {
	if includeDescendants {
		return s.RollupBalance(ctx, accountID)
	}
	account, err := s.GetAccountByID(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	totals, err := s.journalRepo.SumPostedForAccount(ctx, accountID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum postings for account %s: %w", accountID, err)
	}
	return totals.Net(account.AccountType), nil
}

func (s *accountService) RollupBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	if _, err := s.GetAccountByID(ctx, accountID); err != nil {
		return decimal.Zero, err
	}
	accounts, err := s.ListAccounts(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	totals, err := s.journalRepo.SumPostedByAccount(ctx, domain.DateRange{})
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum postings: %w", err)
	}

	byID := indexAccounts(accounts)
	children := childIndex(accounts)
	visited := make(map[string]bool)

	var walk func(id string) decimal.Decimal
	walk = func(id string) decimal.Decimal {
		if visited[id] {
			return decimal.Zero
		}
		visited[id] = true
		total := totals[id].Net(byID[id].AccountType)
		for _, childID := range children[id] {
			total = total.Add(walk(childID))
		}
		return total
	}
	return walk(accountID), nil
}

func (s *accountService) ApplyPosting(ctx context.Context, accountID string, isDebit bool, amount decimal.Decimal, userID string) error {
	if amount.LessThan(domain.MinimumAmount) {
		return ErrInvalidAmount
	}
	return s.ApplyPostings(ctx, []domain.Transaction{{
		TransactionID: uuid.NewString(),
		AccountID:     accountID,
		Amount:        amount,
		IsDebit:       isDebit,
	}}, userID)
}

func (s *accountService) ApplyPostings(ctx context.Context, transactions []domain.Transaction, userID string) error {
	if len(transactions) == 0 {
		return nil
	}

	return s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		cache := make(map[string]domain.Account)
		load := func(id string) (domain.Account, error) {
			if acc, ok := cache[id]; ok {
				return acc, nil
			}
			acc, err := s.accountRepo.FindAccountByID(ctx, id)
			if err != nil {
				return domain.Account{}, fmt.Errorf("failed to load account %s: %w", id, err)
			}
			cache[id] = *acc
			return *acc, nil
		}

		changes := make(map[string]decimal.Decimal)
		for _, txn := range transactions {
			acc, err := load(txn.AccountID)
			if err != nil {
				return err
			}
			signed, err := accounting.CalculateSignedAmount(txn, acc.AccountType)
			if err != nil {
				return err
			}

			// The line's signed amount propagates unchanged to every ancestor.
			seen := make(map[string]bool)
			current := acc
			for !seen[current.AccountID] {
				seen[current.AccountID] = true
				changes[current.AccountID] = changes[current.AccountID].Add(signed)
				if !current.HasParent() {
					break
				}
				current, err = load(*current.ParentAccountID)
				if err != nil {
					return err
				}
			}
		}

		ids := make([]string, 0, len(changes))
		for id := range changes {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		locked, err := s.accountRepo.FindAccountsByIDsForUpdate(ctx, ids)
		if err != nil {
			return fmt.Errorf("failed to lock accounts: %w", err)
		}
		for _, id := range ids {
			if _, ok := locked[id]; !ok {
				return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
			}
		}

		if err := s.accountRepo.UpdateAccountBalances(ctx, changes, userID, time.Now().UTC()); err != nil {
			return fmt.Errorf("failed to update account balances: %w", err)
		}
		s.LogDebug(ctx, "Applied postings", slog.Int("lines", len(transactions)), slog.Int("accounts", len(ids)))
		return nil
	})
}

func (s *accountService) RebuildAll(ctx context.Context, userID string) (*domain.RebuildReport, error) {
	var report *domain.RebuildReport
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		accounts, err := s.accountRepo.ListAccounts(ctx)
		if err != nil {
			return err
		}
		ids := make([]string, len(accounts))
		for i, acc := range accounts {
			ids[i] = acc.AccountID
		}
		sort.Strings(ids)
		locked, err := s.accountRepo.FindAccountsByIDsForUpdate(ctx, ids)
		if err != nil {
			return fmt.Errorf("failed to lock accounts: %w", err)
		}
		for i, acc := range accounts {
			if l, ok := locked[acc.AccountID]; ok {
				accounts[i] = l
			}
		}

		balances, rep, err := s.recompute(ctx, accounts)
		if err != nil {
			return err
		}
		if err := s.accountRepo.SetAccountBalances(ctx, balances, userID, time.Now().UTC()); err != nil {
			return fmt.Errorf("failed to store rebuilt balances: %w", err)
		}
		rep.Applied = true
		report = rep
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to rebuild balances")
		return nil, err
	}

	s.Metrics.BalanceDrift(len(report.Drifts))
	s.LogInfo(ctx, "Rebuilt account balances", slog.Int("accounts", report.AccountsScanned), slog.Int("drifts", len(report.Drifts)))
	return report, nil
}

func (s *accountService) VerifyBalances(ctx context.Context) (*domain.RebuildReport, error) {
	accounts, err := s.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	_, report, err := s.recompute(ctx, accounts)
	if err != nil {
		return nil, err
	}
	s.Metrics.BalanceDrift(len(report.Drifts))
	return report, nil
}

// recompute derives every roll-up balance from posted transactions, deepest
// accounts first so each parent sees its children's finished totals.
func (s *accountService) recompute(ctx context.Context, accounts []domain.Account) (map[string]decimal.Decimal, *domain.RebuildReport, error) {
	totals, err := s.journalRepo.SumPostedByAccount(ctx, domain.DateRange{})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to sum postings: %w", err)
	}

	byID := indexAccounts(accounts)
	children := childIndex(accounts)

	depth := make(map[string]int, len(accounts))
	for _, acc := range accounts {
		d := 0
		seen := map[string]bool{acc.AccountID: true}
		current := acc
		for current.HasParent() {
			parent, ok := byID[*current.ParentAccountID]
			if !ok || seen[parent.AccountID] {
				break
			}
			seen[parent.AccountID] = true
			d++
			current = parent
		}
		depth[acc.AccountID] = d
	}

	order := make([]domain.Account, len(accounts))
	copy(order, accounts)
	sort.SliceStable(order, func(i, j int) bool {
		di, dj := depth[order[i].AccountID], depth[order[j].AccountID]
		if di != dj {
			return di > dj
		}
		return order[i].Code < order[j].Code
	})

	balances := make(map[string]decimal.Decimal, len(accounts))
	for _, acc := range order {
		balance := totals[acc.AccountID].Net(acc.AccountType)
		for _, childID := range children[acc.AccountID] {
			if childBalance, ok := balances[childID]; ok {
				balance = balance.Add(childBalance)
			}
		}
		balances[acc.AccountID] = balance
	}

	report := &domain.RebuildReport{AccountsScanned: len(accounts), Drifts: []domain.BalanceDrift{}}
	for _, acc := range accounts {
		computed := balances[acc.AccountID]
		if !acc.Balance.Equal(computed) {
			report.Drifts = append(report.Drifts, domain.BalanceDrift{
				AccountID: acc.AccountID,
				Code:      acc.Code,
				Cached:    acc.Balance,
				Computed:  computed,
			})
		}
	}
	return balances, report, nil
}

// errDryRun rolls back the attach-parents transaction after a preview.
var errDryRun = errors.New("dry run")

func (s *accountService) AttachParents(ctx context.Context, dryRun bool, userID string) ([]domain.ParentAttachment, error) {
	var attached []domain.ParentAttachment
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		accounts, err := s.accountRepo.ListAccounts(ctx)
		if err != nil {
			return err
		}
		byCode := make(map[string]domain.Account, len(accounts))
		byID := indexAccounts(accounts)
		for _, acc := range accounts {
			byCode[acc.Code] = acc
		}

		attached = make([]domain.ParentAttachment, 0)
		// The child's roll-up moves into its new ancestor chain.
		changes := make(map[string]decimal.Decimal)
		now := time.Now().UTC()
		for _, acc := range accounts {
			if acc.HasParent() {
				continue
			}
			parentCode := inferParentCode(acc.Code, byCode)
			if parentCode == "" {
				continue
			}
			parent := byCode[parentCode]
			if parent.AccountID == acc.AccountID {
				continue
			}
			attached = append(attached, domain.ParentAttachment{AccountID: acc.AccountID, Code: acc.Code, ParentCode: parentCode})

			parentID := parent.AccountID
			acc.ParentAccountID = &parentID
			acc.LastUpdatedAt = now
			acc.LastUpdatedBy = userID
			if err := s.accountRepo.UpdateAccount(ctx, acc); err != nil {
				return fmt.Errorf("failed to attach %s to %s: %w", acc.Code, parentCode, err)
			}
			byID[acc.AccountID] = acc

			rollup := acc.Balance.Add(changes[acc.AccountID])
			if rollup.IsZero() {
				continue
			}
			seen := map[string]bool{acc.AccountID: true}
			for id := parentID; !seen[id]; {
				seen[id] = true
				changes[id] = changes[id].Add(rollup)
				ancestor, ok := byID[id]
				if !ok || !ancestor.HasParent() {
					break
				}
				id = *ancestor.ParentAccountID
			}
		}

		if len(changes) > 0 {
			ids := make([]string, 0, len(changes))
			for id := range changes {
				ids = append(ids, id)
			}
			sort.Strings(ids)
			if _, err := s.accountRepo.FindAccountsByIDsForUpdate(ctx, ids); err != nil {
				return fmt.Errorf("failed to lock accounts: %w", err)
			}
			if err := s.accountRepo.UpdateAccountBalances(ctx, changes, userID, now); err != nil {
				return fmt.Errorf("failed to move balances to new parents: %w", err)
			}
		}
		if dryRun {
			return errDryRun
		}
		return nil
	})
	if err != nil && !errors.Is(err, errDryRun) {
		s.LogError(ctx, err, "Failed to attach parents")
		return nil, err
	}

	s.LogInfo(ctx, "Attached parents", slog.Int("linked", len(attached)), slog.Bool("dry_run", dryRun))
	return attached, nil
}

// inferParentCode strips the last hyphen segment, or trailing digits for plain
// numeric codes, until an existing code is found.
func inferParentCode(code string, byCode map[string]domain.Account) string {
	if strings.Contains(code, "-") {
		candidate := code
		for {
			i := strings.LastIndex(candidate, "-")
			if i <= 0 {
				break
			}
			candidate = candidate[:i]
			if _, ok := byCode[candidate]; ok {
				return candidate
			}
		}
		return ""
	}
	candidate := strings.TrimSpace(code)
	for len(candidate) > 1 {
		candidate = candidate[:len(candidate)-1]
		if _, ok := byCode[candidate]; ok {
			return candidate
		}
	}
	return ""
}

func (s *accountService) insertAccount(ctx context.Context, spec domain.AccountSpec, userID string) (*domain.Account, error) {
	var parentID *string
	if spec.ParentCode != "" {
		parent, err := s.accountRepo.FindAccountByCode(ctx, spec.ParentCode)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: parent account %s does not exist", apperrors.ErrValidation, spec.ParentCode)
			}
			return nil, err
		}
		id := parent.AccountID
		parentID = &id
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:        uuid.NewString(),
		Code:             spec.Code,
		Name:             spec.Name,
		NameLocal:        spec.NameLocal,
		AccountType:      spec.AccountType,
		ParentAccountID:  parentID,
		IsActive:         true,
		IsCourseAccount:  spec.IsCourseAccount,
		CourseName:       spec.CourseName,
		IsStudentAccount: spec.IsStudentAccount,
		StudentName:      spec.StudentName,
		Balance:          decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		return nil, err
	}
	return &account, nil
}

func validateSpec(spec domain.AccountSpec) error {
	if strings.TrimSpace(spec.Code) == "" {
		return fmt.Errorf("%w: account code is required", apperrors.ErrValidation)
	}
	if !spec.AccountType.IsValid() {
		return fmt.Errorf("%w: invalid account type %q", apperrors.ErrValidation, spec.AccountType)
	}
	if spec.ParentCode == spec.Code {
		return fmt.Errorf("%w: account %s cannot be its own parent", apperrors.ErrValidation, spec.Code)
	}
	return nil
}

func indexAccounts(accounts []domain.Account) map[string]domain.Account {
	byID := make(map[string]domain.Account, len(accounts))
	for _, acc := range accounts {
		byID[acc.AccountID] = acc
	}
	return byID
}

// childIndex maps parent id to child ids, keeping the input (code) order.
func childIndex(accounts []domain.Account) map[string][]string {
	children := make(map[string][]string)
	for _, acc := range accounts {
		if acc.HasParent() && *acc.ParentAccountID != acc.AccountID {
			children[*acc.ParentAccountID] = append(children[*acc.ParentAccountID], acc.AccountID)
		}
	}
	return children
}
