package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/institute_ledger/internal/apperrors"
	"github.com/SscSPs/institute_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/institute_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/institute_ledger/internal/core/ports/services"
	"github.com/SscSPs/institute_ledger/internal/dto"
)

type discountRuleService struct {
	BaseService
	txManager portsrepo.TransactionManager
	ruleRepo  portsrepo.DiscountRuleRepositoryFacade
	actor     ActorResolver
}

// NewDiscountRuleService creates a new DiscountRuleService.
func NewDiscountRuleService(txManager portsrepo.TransactionManager, ruleRepo portsrepo.DiscountRuleRepositoryFacade, actor ActorResolver, options ...BaseOption) portssvc.DiscountRuleSvcFacade {
	s := &discountRuleService{txManager: txManager, ruleRepo: ruleRepo, actor: actor}
	applyBaseOptions(&s.BaseService, options)
	return s
}

var _ portssvc.DiscountRuleSvcFacade = (*discountRuleService)(nil)

func (s *discountRuleService) CreateDiscountRule(ctx context.Context, req dto.CreateDiscountRuleRequest, userID string) (*domain.DiscountRule, error) {
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: discount reason is required", apperrors.ErrValidation)
	}
	if req.DiscountPercent.IsNegative() || req.DiscountPercent.GreaterThan(hundredPercent) {
		return nil, fmt.Errorf("%w: discount percent must be between 0 and 100", apperrors.ErrValidation)
	}
	if req.DiscountAmount.IsNegative() {
		return nil, fmt.Errorf("%w: discount amount cannot be negative", apperrors.ErrValidation)
	}
	actorID, err := s.actor.Resolve(userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	rule := domain.DiscountRule{
		RuleID:          uuid.NewString(),
		Reason:          reason,
		ReasonLocal:     req.ReasonLocal,
		DiscountPercent: req.DiscountPercent,
		DiscountAmount:  req.DiscountAmount,
		Description:     req.Description,
		IsActive:        true,
		AuditFields:     domain.AuditFields{CreatedAt: now, CreatedBy: actorID, LastUpdatedAt: now, LastUpdatedBy: actorID},
	}
	if err := s.ruleRepo.SaveDiscountRule(ctx, rule); err != nil {
		s.LogWarn(ctx, err, "Failed to create discount rule", slog.String("reason", reason))
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: discount rule %q already exists", apperrors.ErrDuplicate, reason)
		}
		return nil, fmt.Errorf("failed to save discount rule: %w", err)
	}
	s.LogInfo(ctx, "Discount rule created", slog.String("rule_id", rule.RuleID), slog.String("reason", reason))
	return &rule, nil
}

func (s *discountRuleService) GetDiscountRule(ctx context.Context, ruleID string) (*domain.DiscountRule, error) {
	rule, err := s.ruleRepo.FindDiscountRuleByID(ctx, ruleID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: discount rule %s", apperrors.ErrNotFound, ruleID)
		}
		return nil, fmt.Errorf("failed to get discount rule %s: %w", ruleID, err)
	}
	return rule, nil
}

func (s *discountRuleService) ListDiscountRules(ctx context.Context, activeOnly bool) ([]domain.DiscountRule, error) {
	rules, err := s.ruleRepo.ListDiscountRules(ctx, activeOnly)
	if err != nil {
		s.LogError(ctx, err, "Failed to list discount rules")
		return nil, fmt.Errorf("failed to list discount rules: %w", err)
	}
	return rules, nil
}

func (s *discountRuleService) DeactivateDiscountRule(ctx context.Context, ruleID string, userID string) (*domain.DiscountRule, error) {
	actorID, err := s.actor.Resolve(userID)
	if err != nil {
		return nil, err
	}
	var rule *domain.DiscountRule
	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		rule, err = s.GetDiscountRule(ctx, ruleID)
		if err != nil {
			return err
		}
		if !rule.IsActive {
			return nil
		}
		rule.IsActive = false
		rule.LastUpdatedAt = time.Now().UTC()
		rule.LastUpdatedBy = actorID
		return s.ruleRepo.UpdateDiscountRule(ctx, *rule)
	})
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Discount rule deactivated", slog.String("rule_id", ruleID))
	return rule, nil
}
