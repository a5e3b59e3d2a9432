package services_test

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/sync/errgroup"

	"github.com/SscSPs/institute_ledger/internal/apperrors"
	"github.com/SscSPs/institute_ledger/internal/core/services"
	"github.com/SscSPs/institute_ledger/internal/repositories/memory"
)

// MockSequenceRepository is a mock implementation of the SequenceRepository interface
type MockSequenceRepository struct {
	mock.Mock
}

func (m *MockSequenceRepository) NextValue(ctx context.Context, key string) (int64, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(int64), args.Error(1)
}

// passthroughTx runs fn without a transaction.
type passthroughTx struct{}

func (passthroughTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type SequenceServiceTestSuite struct {
	suite.Suite
	mockRepo *MockSequenceRepository
	ctx      context.Context
}

func (suite *SequenceServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockSequenceRepository)
	suite.ctx = context.Background()
}

func TestSequenceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SequenceServiceTestSuite))
}

func (suite *SequenceServiceTestSuite) TestNextReferencePadsValue() {
	suite.mockRepo.On("NextValue", mock.Anything, services.SeqJournalEntry).Return(int64(42), nil).Once()
	svc := services.NewSequenceService(passthroughTx{}, suite.mockRepo)

	ref, err := svc.NextReference(suite.ctx, services.SeqJournalEntry, "JE-", 6)

	suite.Require().NoError(err)
	suite.Equal("JE-000042", ref)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *SequenceServiceTestSuite) TestNextRequiresKey() {
	svc := services.NewSequenceService(passthroughTx{}, suite.mockRepo)

	_, err := svc.Next(suite.ctx, "  ")

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "NextValue", mock.Anything, mock.Anything)
}

func (suite *SequenceServiceTestSuite) TestNextRepositoryError() {
	dbErr := errors.New("connection reset")
	suite.mockRepo.On("NextValue", mock.Anything, "receipt:S0001:20250105").Return(int64(0), dbErr).Once()
	svc := services.NewSequenceService(passthroughTx{}, suite.mockRepo)

	_, err := svc.Next(suite.ctx, "receipt:S0001:20250105")

	suite.ErrorIs(err, dbErr)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestSequenceConcurrentCallersGetDistinctValues(t *testing.T) {
	store := memory.NewStore()
	provider := store.Provider()
	svc := services.NewSequenceService(provider.TxManager, provider.SequenceRepo)

	const callers = 100
	values := make([]int64, callers)
	var g errgroup.Group
	for i := range callers {
		g.Go(func() error {
			v, err := svc.Next(context.Background(), "journal_entry")
			values[i] = v
			return err
		})
	}
	require.NoError(t, g.Wait())

	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })
	for i, v := range values {
		assert.Equal(t, int64(i+1), v)
	}

	other, err := svc.Next(context.Background(), "expense_entry")
	require.NoError(t, err)
	assert.Equal(t, int64(1), other, "keys are independent")
}
