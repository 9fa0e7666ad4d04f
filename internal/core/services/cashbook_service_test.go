package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/innlodge/lodgebook_app/internal/apperrors"
	"github.com/innlodge/lodgebook_app/internal/core/domain"
	portsrepo "github.com/innlodge/lodgebook_app/internal/core/ports/repositories"
	portssvc "github.com/innlodge/lodgebook_app/internal/core/ports/services"
	"github.com/innlodge/lodgebook_app/internal/core/services"
	"github.com/innlodge/lodgebook_app/internal/dto"
	"github.com/innlodge/lodgebook_app/internal/utils/datewindow"
)

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

// Ensure MockLedgerRepository implements portsrepo.LedgerRepositoryFacade
var _ portsrepo.LedgerRepositoryFacade = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) FindEntriesByDateRange(ctx context.Context, propertyID string, window domain.TimeWindow) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, propertyID, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) FindAggregateInputsByDateRange(ctx context.Context, propertyID string, window domain.TimeWindow) ([]domain.AggregateInput, error) {
	args := m.Called(ctx, propertyID, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AggregateInput), args.Error(1)
}

func (m *MockLedgerRepository) SaveEntry(ctx context.Context, entry domain.LedgerEntry) (string, error) {
	args := m.Called(ctx, entry)
	return args.String(0), args.Error(1)
}

// --- Mock RoomReader (only the read side, as the cashbook service consumes it) ---
type MockRoomReader struct {
	mock.Mock
}

var _ portsrepo.RoomReader = (*MockRoomReader)(nil)

func (m *MockRoomReader) FindRoomByID(ctx context.Context, roomID string) (*domain.Room, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

func (m *MockRoomReader) ListRoomsByProperty(ctx context.Context, propertyID string) ([]domain.Room, error) {
	args := m.Called(ctx, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Room), args.Error(1)
}

func (m *MockRoomReader) FindRoomNamesByIDs(ctx context.Context, roomIDs []string) (map[string]string, error) {
	args := m.Called(ctx, roomIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

// --- Mock PropertyAuthorizer ---
type MockPropertyAuthorizer struct {
	mock.Mock
}

var _ portssvc.PropertyAuthorizerSvc = (*MockPropertyAuthorizer)(nil)

func (m *MockPropertyAuthorizer) AuthorizeUserForProperty(ctx context.Context, userID, propertyID string) error {
	args := m.Called(ctx, userID, propertyID)
	return args.Error(0)
}

// --- Test Suite Setup ---
type CashbookServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo *MockLedgerRepository
	mockRoomRepo   *MockRoomReader
	service        portssvc.CashbookSvcFacade
	userID         string
	propertyID     string
	anchor         time.Time
}

func (suite *CashbookServiceTestSuite) SetupTest() {
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockRoomRepo = new(MockRoomReader)
	suite.service = services.NewCashbookService(suite.mockLedgerRepo, suite.mockRoomRepo)

	suite.userID = uuid.NewString()
	suite.propertyID = uuid.NewString()
	suite.anchor = time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)
}

func (suite *CashbookServiceTestSuite) entry(kind domain.EntryKind, amount int64, occurredAt time.Time) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:    uuid.NewString(),
		PropertyID: suite.propertyID,
		Kind:       kind,
		Amount:     decimal.NewFromInt(amount),
		Method:     domain.Cash,
		OccurredAt: occurredAt,
	}
}

func (suite *CashbookServiceTestSuite) assertTotals(totals domain.AggregateTotals, income, expense, profit int64) {
	suite.True(totals.Income.Equal(decimal.NewFromInt(income)), "income: want %d, got %s", income, totals.Income)
	suite.True(totals.Expense.Equal(decimal.NewFromInt(expense)), "expense: want %d, got %s", expense, totals.Expense)
	suite.True(totals.Profit.Equal(decimal.NewFromInt(profit)), "profit: want %d, got %s", profit, totals.Profit)
}

// stubEmptyQueries makes every range query succeed with no rows, for tests
// that only care about window bookkeeping.
func (suite *CashbookServiceTestSuite) stubEmptyQueries() {
	suite.mockLedgerRepo.On("FindEntriesByDateRange", mock.Anything, suite.propertyID, mock.Anything).
		Return([]domain.LedgerEntry{}, nil)
	suite.mockLedgerRepo.On("FindAggregateInputsByDateRange", mock.Anything, suite.propertyID, mock.Anything).
		Return([]domain.AggregateInput{}, nil)
}

// --- Refresh / aggregation ---

// Day, month and range totals for a single anchor day in TODAY mode: the
// range totals must come out of the displayed list and equal the day totals.
func (suite *CashbookServiceTestSuite) TestRefresh_TodayModeTotals() {
	ctx := context.Background()

	noon10 := time.Date(2024, time.January, 10, 12, 0, 0, 0, time.UTC)
	dayEntries := []domain.LedgerEntry{
		suite.entry(domain.Income, 100000, noon10),
		suite.entry(domain.Expense, 30000, noon10),
	}
	dayInputs := []domain.AggregateInput{
		{Kind: domain.Income, Amount: decimal.NewFromInt(100000)},
		{Kind: domain.Expense, Amount: decimal.NewFromInt(30000)},
	}
	monthInputs := append([]domain.AggregateInput{
		{Kind: domain.Income, Amount: decimal.NewFromInt(50000)},
	}, dayInputs...)

	dayWindow := datewindow.DayWindow(suite.anchor)
	monthWindow := datewindow.MonthWindow(suite.anchor)

	suite.mockLedgerRepo.On("FindEntriesByDateRange", mock.Anything, suite.propertyID, dayWindow).
		Return(dayEntries, nil).Once()
	suite.mockLedgerRepo.On("FindAggregateInputsByDateRange", mock.Anything, suite.propertyID, dayWindow).
		Return(dayInputs, nil).Once()
	suite.mockLedgerRepo.On("FindAggregateInputsByDateRange", mock.Anything, suite.propertyID, monthWindow).
		Return(monthInputs, nil).Once()

	snap, err := suite.service.SetAnchorDate(ctx, suite.userID, suite.propertyID, suite.anchor)

	suite.Require().NoError(err)
	suite.Require().NotNil(snap)
	suite.Equal(domain.WindowToday, snap.WindowMode)
	suite.Len(snap.Entries, 2)
	suite.Empty(snap.Failures)
	suite.assertTotals(snap.DayTotals, 100000, 30000, 70000)
	suite.assertTotals(snap.RangeTotals, 100000, 30000, 70000)
	suite.assertTotals(snap.MonthTotals, 150000, 30000, 120000)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

// A failed entry list query empties the list and zeroes the range totals,
// while day and month totals keep the results of their own queries.
func (suite *CashbookServiceTestSuite) TestRefresh_EntryListFailureKeepsOtherSlots() {
	ctx := context.Background()

	inputs := []domain.AggregateInput{
		{Kind: domain.Income, Amount: decimal.NewFromInt(500)},
	}
	suite.mockLedgerRepo.On("FindEntriesByDateRange", mock.Anything, suite.propertyID, mock.Anything).
		Return(nil, errors.New("connection reset")).Once()
	suite.mockLedgerRepo.On("FindAggregateInputsByDateRange", mock.Anything, suite.propertyID, mock.Anything).
		Return(inputs, nil).Twice()

	snap, err := suite.service.Refresh(ctx, suite.userID, suite.propertyID)

	suite.Require().NoError(err, "a failed slot must not fail the whole refresh")
	suite.Empty(snap.Entries)
	suite.assertTotals(snap.RangeTotals, 0, 0, 0)
	suite.assertTotals(snap.DayTotals, 500, 0, 500)
	suite.assertTotals(snap.MonthTotals, 500, 0, 500)

	suite.Require().Len(snap.Failures, 1)
	suite.Equal(domain.SlotEntries, snap.Failures[0].Slot)
	suite.ErrorIs(snap.Failures[0].Err, apperrors.ErrRemote)
}

// A failed day totals query must not overwrite the freshly loaded list.
func (suite *CashbookServiceTestSuite) TestRefresh_DayTotalsFailureKeepsList() {
	ctx := context.Background()

	noon10 := time.Date(2024, time.January, 10, 12, 0, 0, 0, time.UTC)
	entries := []domain.LedgerEntry{suite.entry(domain.Income, 777, noon10)}
	monthInputs := []domain.AggregateInput{
		{Kind: domain.Income, Amount: decimal.NewFromInt(777)},
	}

	dayWindow := datewindow.DayWindow(suite.anchor)
	monthWindow := datewindow.MonthWindow(suite.anchor)

	suite.mockLedgerRepo.On("FindEntriesByDateRange", mock.Anything, suite.propertyID, dayWindow).
		Return(entries, nil).Once()
	suite.mockLedgerRepo.On("FindAggregateInputsByDateRange", mock.Anything, suite.propertyID, dayWindow).
		Return(nil, errors.New("query timeout")).Once()
	suite.mockLedgerRepo.On("FindAggregateInputsByDateRange", mock.Anything, suite.propertyID, monthWindow).
		Return(monthInputs, nil).Once()

	snap, err := suite.service.SetAnchorDate(ctx, suite.userID, suite.propertyID, suite.anchor)

	suite.Require().NoError(err)
	suite.Len(snap.Entries, 1)
	suite.assertTotals(snap.RangeTotals, 777, 0, 777)
	suite.assertTotals(snap.DayTotals, 0, 0, 0)
	suite.assertTotals(snap.MonthTotals, 777, 0, 777)

	suite.Require().Len(snap.Failures, 1)
	suite.Equal(domain.SlotDayTotals, snap.Failures[0].Slot)
	suite.ErrorIs(snap.Failures[0].Err, apperrors.ErrRemote)
}

// --- Window bookkeeping ---

func (suite *CashbookServiceTestSuite) TestSetWindowMode_RejectsUnknownMode() {
	ctx := context.Background()

	snap, err := suite.service.SetWindowMode(ctx, suite.userID, suite.propertyID, domain.WindowMode("YESTERDAY"))

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(snap)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "FindEntriesByDateRange")
}

// Leaving custom mode and coming back keeps the explicit bounds as long as
// the anchor is untouched in between.
func (suite *CashbookServiceTestSuite) TestCustomBounds_SurviveModeRoundTrip() {
	ctx := context.Background()
	suite.stubEmptyQueries()

	from := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)

	_, err := suite.service.SetCustomRange(ctx, suite.userID, suite.propertyID, from, to)
	suite.Require().NoError(err)

	_, err = suite.service.SetWindowMode(ctx, suite.userID, suite.propertyID, domain.WindowToday)
	suite.Require().NoError(err)

	snap, err := suite.service.SetWindowMode(ctx, suite.userID, suite.propertyID, domain.WindowCustom)
	suite.Require().NoError(err)

	suite.True(snap.RangeFrom.Equal(from), "rangeFrom: want %s, got %s", from, snap.RangeFrom)
	suite.True(snap.RangeTo.Equal(to), "rangeTo: want %s, got %s", to, snap.RangeTo)
	suite.True(snap.Window.Start.Equal(datewindow.StartOfDay(from)))
	suite.True(snap.Window.End.Equal(datewindow.EndOfDay(to)))
}

// Moving the anchor outside custom mode collapses the custom bounds to the
// new anchor, so a later switch to custom mode starts from a single day.
func (suite *CashbookServiceTestSuite) TestCustomBounds_CollapseOnAnchorChange() {
	ctx := context.Background()
	suite.stubEmptyQueries()

	from := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)
	newAnchor := time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC)

	_, err := suite.service.SetCustomRange(ctx, suite.userID, suite.propertyID, from, to)
	suite.Require().NoError(err)

	_, err = suite.service.SetWindowMode(ctx, suite.userID, suite.propertyID, domain.WindowToday)
	suite.Require().NoError(err)

	_, err = suite.service.SetAnchorDate(ctx, suite.userID, suite.propertyID, newAnchor)
	suite.Require().NoError(err)

	snap, err := suite.service.SetWindowMode(ctx, suite.userID, suite.propertyID, domain.WindowCustom)
	suite.Require().NoError(err)

	suite.True(snap.RangeFrom.Equal(newAnchor))
	suite.True(snap.RangeTo.Equal(newAnchor))
}

// An inverted custom range resolves to an empty window and an empty result,
// never an error.
func (suite *CashbookServiceTestSuite) TestSetCustomRange_InvertedRangeIsEmptyNotError() {
	ctx := context.Background()
	suite.stubEmptyQueries()

	from := time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	snap, err := suite.service.SetCustomRange(ctx, suite.userID, suite.propertyID, from, to)

	suite.Require().NoError(err)
	suite.True(snap.Window.IsEmpty())
	suite.Empty(snap.Entries)
	suite.Empty(snap.Failures)
}

// --- Manual expense submission ---

func (suite *CashbookServiceTestSuite) TestSubmitExpense_UnparsableAmount() {
	ctx := context.Background()

	req := dto.SubmitExpenseRequest{
		Amount: "abc",
		Method: domain.Cash,
		Date:   "2024-01-10",
	}

	snap, err := suite.service.SubmitExpense(ctx, suite.userID, suite.propertyID, req)

	suite.Require().ErrorIs(err, apperrors.ErrInvalidAmount)
	suite.ErrorIs(err, apperrors.ErrValidation, "invalid amount must stay a validation error")
	suite.Nil(snap)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SaveEntry")
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "FindEntriesByDateRange")
}

func (suite *CashbookServiceTestSuite) TestSubmitExpense_NonPositiveAmount() {
	ctx := context.Background()

	for _, amount := range []string{"0", "-15.50"} {
		req := dto.SubmitExpenseRequest{
			Amount: amount,
			Method: domain.Transfer,
			Date:   "2024-01-10",
		}

		_, err := suite.service.SubmitExpense(ctx, suite.userID, suite.propertyID, req)

		suite.Require().ErrorIs(err, apperrors.ErrInvalidAmount, "amount %q", amount)
	}
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SaveEntry")
}

func (suite *CashbookServiceTestSuite) TestSubmitExpense_RequiresAuthenticatedUser() {
	ctx := context.Background()

	req := dto.SubmitExpenseRequest{
		Amount: "100",
		Method: domain.Cash,
		Date:   "2024-01-10",
	}

	_, err := suite.service.SubmitExpense(ctx, "", suite.propertyID, req)

	suite.Require().ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SaveEntry")
}

func (suite *CashbookServiceTestSuite) TestSubmitExpense_SavesEntryAndMovesAnchor() {
	ctx := context.Background()
	roomID := uuid.NewString()

	req := dto.SubmitExpenseRequest{
		Amount: "150.50",
		Method: domain.Transfer,
		Note:   "Plumber callout",
		Date:   "2024-02-03",
		RoomID: &roomID,
	}

	suite.mockLedgerRepo.On("SaveEntry", mock.Anything, mock.MatchedBy(func(e domain.LedgerEntry) bool {
		return e.Kind == domain.Expense &&
			e.Amount.Equal(decimal.RequireFromString("150.50")) &&
			e.Method == domain.Transfer &&
			e.PropertyID == suite.propertyID &&
			e.RoomID != nil && *e.RoomID == roomID &&
			e.OccurredAt.Hour() == 12 &&
			e.OccurredAt.Format("2006-01-02") == "2024-02-03" &&
			e.CreatedBy == suite.userID
	})).Return(uuid.NewString(), nil).Once()
	suite.stubEmptyQueries()

	snap, err := suite.service.SubmitExpense(ctx, suite.userID, suite.propertyID, req)

	suite.Require().NoError(err)
	suite.Equal("2024-02-03", snap.AnchorDate.Format("2006-01-02"))
	suite.Equal("2024-02-03", snap.RangeFrom.Format("2006-01-02"))
	suite.Equal("2024-02-03", snap.RangeTo.Format("2006-01-02"))
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *CashbookServiceTestSuite) TestSubmitExpense_SaveFailureSkipsRefresh() {
	ctx := context.Background()

	req := dto.SubmitExpenseRequest{
		Amount: "80",
		Method: domain.Cash,
		Date:   "2024-01-10",
	}

	suite.mockLedgerRepo.On("SaveEntry", mock.Anything, mock.Anything).
		Return("", apperrors.ErrCreation).Once()

	_, err := suite.service.SubmitExpense(ctx, suite.userID, suite.propertyID, req)

	suite.Require().ErrorIs(err, apperrors.ErrCreation)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "FindEntriesByDateRange")
}

// --- Export ---

func (suite *CashbookServiceTestSuite) TestExport_NoSession() {
	ctx := context.Background()

	export, err := suite.service.Export(ctx, suite.userID, suite.propertyID)

	suite.Require().ErrorIs(err, apperrors.ErrNothingToExport)
	suite.Nil(export)
}

func (suite *CashbookServiceTestSuite) TestExport_EmptyListRefused() {
	ctx := context.Background()
	suite.stubEmptyQueries()

	_, err := suite.service.Refresh(ctx, suite.userID, suite.propertyID)
	suite.Require().NoError(err)

	export, err := suite.service.Export(ctx, suite.userID, suite.propertyID)

	suite.Require().ErrorIs(err, apperrors.ErrNothingToExport)
	suite.Nil(export)
}

func (suite *CashbookServiceTestSuite) TestExport_BuildsWorkbookFromSnapshot() {
	ctx := context.Background()
	roomID := uuid.NewString()

	noon10 := time.Date(2024, time.January, 10, 12, 0, 0, 0, time.UTC)
	withRoom := suite.entry(domain.Income, 100000, noon10)
	withRoom.RoomID = &roomID

	suite.mockLedgerRepo.On("FindEntriesByDateRange", mock.Anything, suite.propertyID, mock.Anything).
		Return([]domain.LedgerEntry{withRoom}, nil)
	suite.mockLedgerRepo.On("FindAggregateInputsByDateRange", mock.Anything, suite.propertyID, mock.Anything).
		Return([]domain.AggregateInput{}, nil)
	suite.mockRoomRepo.On("FindRoomNamesByIDs", mock.Anything, []string{roomID}).
		Return(map[string]string{roomID: "101"}, nil)

	_, err := suite.service.SetAnchorDate(ctx, suite.userID, suite.propertyID, suite.anchor)
	suite.Require().NoError(err)

	export, err := suite.service.Export(ctx, suite.userID, suite.propertyID)

	suite.Require().NoError(err)
	suite.Require().NotNil(export)
	suite.Equal("cashbook_today_2024-01-10.xlsx", export.Filename)
	suite.NotEmpty(export.Content)
	suite.mockRoomRepo.AssertExpectations(suite.T())
}

// --- Liveness / stale result handling ---

// A refresh that is still in flight when the session closes must not
// resurrect the session; its results are dropped.
func (suite *CashbookServiceTestSuite) TestRefresh_DiscardedAfterClose() {
	ctx := context.Background()

	started := make(chan struct{})
	release := make(chan struct{})

	suite.mockLedgerRepo.On("FindEntriesByDateRange", mock.Anything, suite.propertyID, mock.Anything).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return([]domain.LedgerEntry{suite.entry(domain.Income, 1, time.Now())}, nil).Once()
	suite.mockLedgerRepo.On("FindAggregateInputsByDateRange", mock.Anything, suite.propertyID, mock.Anything).
		Return([]domain.AggregateInput{}, nil)

	done := make(chan error, 1)
	go func() {
		_, err := suite.service.Refresh(ctx, suite.userID, suite.propertyID)
		done <- err
	}()

	<-started
	suite.Require().NoError(suite.service.Close(ctx, suite.userID, suite.propertyID))
	close(release)

	err := <-done
	suite.Require().ErrorIs(err, apperrors.ErrNotFound)

	// The closed session must stay gone.
	export, err := suite.service.Export(ctx, suite.userID, suite.propertyID)
	suite.ErrorIs(err, apperrors.ErrNothingToExport)
	suite.Nil(export)
}

// When a newer refresh finishes while an older one is still waiting on the
// store, the older results are discarded instead of overwriting the list.
func (suite *CashbookServiceTestSuite) TestRefresh_SupersededResultsDiscarded() {
	ctx := context.Background()

	staleEntry := suite.entry(domain.Income, 11111, time.Now())
	freshEntry := suite.entry(domain.Expense, 222, time.Now())

	started := make(chan struct{})
	release := make(chan struct{})

	suite.mockLedgerRepo.On("FindEntriesByDateRange", mock.Anything, suite.propertyID, mock.Anything).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return([]domain.LedgerEntry{staleEntry}, nil).Once()
	suite.mockLedgerRepo.On("FindEntriesByDateRange", mock.Anything, suite.propertyID, mock.Anything).
		Return([]domain.LedgerEntry{freshEntry}, nil)
	suite.mockLedgerRepo.On("FindAggregateInputsByDateRange", mock.Anything, suite.propertyID, mock.Anything).
		Return([]domain.AggregateInput{}, nil)

	slowDone := make(chan *domain.CashbookSnapshot, 1)
	go func() {
		snap, err := suite.service.Refresh(ctx, suite.userID, suite.propertyID)
		suite.NoError(err)
		slowDone <- snap
	}()

	<-started
	newSnap, err := suite.service.SetAnchorDate(ctx, suite.userID, suite.propertyID, suite.anchor)
	suite.Require().NoError(err)
	suite.Require().Len(newSnap.Entries, 1)
	suite.Equal(freshEntry.EntryID, newSnap.Entries[0].EntryID)

	close(release)
	slowSnap := <-slowDone

	// The slow refresh came back after being superseded: it reports the
	// session as it is now, not its own stale rows.
	suite.Require().NotNil(slowSnap)
	suite.Require().Len(slowSnap.Entries, 1)
	suite.Equal(freshEntry.EntryID, slowSnap.Entries[0].EntryID)

	finalSnap, err := suite.service.Snapshot(ctx, suite.userID, suite.propertyID)
	suite.Require().NoError(err)
	suite.Require().Len(finalSnap.Entries, 1)
	suite.Equal(freshEntry.EntryID, finalSnap.Entries[0].EntryID)
}

// --- Authorization ---

func (suite *CashbookServiceTestSuite) TestSnapshot_ForbiddenWithoutPropertyAccess() {
	ctx := context.Background()

	mockAuthorizer := new(MockPropertyAuthorizer)
	mockAuthorizer.On("AuthorizeUserForProperty", ctx, suite.userID, suite.propertyID).
		Return(apperrors.ErrForbidden).Once()

	service := services.NewCashbookService(
		suite.mockLedgerRepo,
		suite.mockRoomRepo,
		services.WithCashbookPropertyAuthorizer(mockAuthorizer),
	)

	snap, err := service.Snapshot(ctx, suite.userID, suite.propertyID)

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(snap)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "FindEntriesByDateRange")
	mockAuthorizer.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestCashbookService(t *testing.T) {
	suite.Run(t, new(CashbookServiceTestSuite))
}
