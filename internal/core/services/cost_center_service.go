package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/institute_ledger/internal/apperrors"
	"github.com/SscSPs/institute_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/institute_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/institute_ledger/internal/core/ports/services"
	"github.com/SscSPs/institute_ledger/internal/dto"
)

type costCenterService struct {
	BaseService
	txManager      portsrepo.TransactionManager
	costCenterRepo portsrepo.CostCenterRepositoryFacade
	actor          ActorResolver
}

// NewCostCenterService creates a new CostCenterService.
func NewCostCenterService(txManager portsrepo.TransactionManager, costCenterRepo portsrepo.CostCenterRepositoryFacade, actor ActorResolver, options ...BaseOption) portssvc.CostCenterSvcFacade {
	s := &costCenterService{txManager: txManager, costCenterRepo: costCenterRepo, actor: actor}
	applyBaseOptions(&s.BaseService, options)
	return s
}

var _ portssvc.CostCenterSvcFacade = (*costCenterService)(nil)

func (s *costCenterService) CreateCostCenter(ctx context.Context, req dto.CreateCostCenterRequest, userID string) (*domain.CostCenter, error) {
	code := strings.TrimSpace(req.Code)
	if code == "" || strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: cost center code and name are required", apperrors.ErrValidation)
	}
	actorID, err := s.actor.Resolve(userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	center := domain.CostCenter{
		Code:        code,
		Name:        req.Name,
		NameLocal:   req.NameLocal,
		Description: req.Description,
		IsActive:    true,
		AuditFields: domain.AuditFields{CreatedAt: now, CreatedBy: actorID, LastUpdatedAt: now, LastUpdatedBy: actorID},
	}
	if err := s.costCenterRepo.SaveCostCenter(ctx, center); err != nil {
		s.LogWarn(ctx, err, "Failed to create cost center", slog.String("code", code))
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: cost center %s already exists", apperrors.ErrDuplicate, code)
		}
		return nil, fmt.Errorf("failed to save cost center: %w", err)
	}
	s.LogInfo(ctx, "Cost center created", slog.String("code", code))
	return &center, nil
}

func (s *costCenterService) GetCostCenter(ctx context.Context, code string) (*domain.CostCenter, error) {
	center, err := s.costCenterRepo.FindCostCenterByCode(ctx, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: cost center %s", apperrors.ErrNotFound, code)
		}
		return nil, fmt.Errorf("failed to get cost center %s: %w", code, err)
	}
	return center, nil
}

func (s *costCenterService) ListCostCenters(ctx context.Context, activeOnly bool) ([]domain.CostCenter, error) {
	centers, err := s.costCenterRepo.ListCostCenters(ctx, activeOnly)
	if err != nil {
		s.LogError(ctx, err, "Failed to list cost centers")
		return nil, fmt.Errorf("failed to list cost centers: %w", err)
	}
	return centers, nil
}

func (s *costCenterService) DeactivateCostCenter(ctx context.Context, code string, userID string) (*domain.CostCenter, error) {
	actorID, err := s.actor.Resolve(userID)
	if err != nil {
		return nil, err
	}
	var center *domain.CostCenter
	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		center, err = s.GetCostCenter(ctx, code)
		if err != nil {
			return err
		}
		if !center.IsActive {
			return nil
		}
		center.IsActive = false
		center.LastUpdatedAt = time.Now().UTC()
		center.LastUpdatedBy = actorID
		return s.costCenterRepo.UpdateCostCenter(ctx, *center)
	})
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Cost center deactivated", slog.String("code", code))
	return center, nil
}

// checkCostCenter accepts an empty code or the code of an active cost center.
func checkCostCenter(ctx context.Context, repo portsrepo.CostCenterReader, code string) error {
	if strings.TrimSpace(code) == "" {
		return nil
	}
	center, err := repo.FindCostCenterByCode(ctx, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: unknown cost center %q", apperrors.ErrValidation, code)
		}
		return err
	}
	if !center.IsActive {
		return fmt.Errorf("%w: %s", ErrInactiveCostCenter, code)
	}
	return nil
}
