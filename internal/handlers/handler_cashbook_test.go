package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/innlodge/lodgebook_app/internal/apperrors"
	"github.com/innlodge/lodgebook_app/internal/core/domain"
	portssvc "github.com/innlodge/lodgebook_app/internal/core/ports/services"
	"github.com/innlodge/lodgebook_app/internal/dto"
	"github.com/innlodge/lodgebook_app/internal/handlers"
	"github.com/innlodge/lodgebook_app/internal/middleware"
)

// --- Mock CashbookService ---
type MockCashbookService struct {
	mock.Mock
}

// Ensure mock implements the interface
var _ portssvc.CashbookSvcFacade = (*MockCashbookService)(nil)

func (m *MockCashbookService) Snapshot(ctx context.Context, userID, propertyID string) (*domain.CashbookSnapshot, error) {
	args := m.Called(ctx, userID, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashbookSnapshot), args.Error(1)
}

func (m *MockCashbookService) Refresh(ctx context.Context, userID, propertyID string) (*domain.CashbookSnapshot, error) {
	args := m.Called(ctx, userID, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashbookSnapshot), args.Error(1)
}

func (m *MockCashbookService) SetWindowMode(ctx context.Context, userID, propertyID string, mode domain.WindowMode) (*domain.CashbookSnapshot, error) {
	args := m.Called(ctx, userID, propertyID, mode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashbookSnapshot), args.Error(1)
}

func (m *MockCashbookService) SetAnchorDate(ctx context.Context, userID, propertyID string, anchor time.Time) (*domain.CashbookSnapshot, error) {
	args := m.Called(ctx, userID, propertyID, anchor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashbookSnapshot), args.Error(1)
}

func (m *MockCashbookService) SetCustomRange(ctx context.Context, userID, propertyID string, from, to time.Time) (*domain.CashbookSnapshot, error) {
	args := m.Called(ctx, userID, propertyID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashbookSnapshot), args.Error(1)
}

func (m *MockCashbookService) SubmitExpense(ctx context.Context, userID, propertyID string, req dto.SubmitExpenseRequest) (*domain.CashbookSnapshot, error) {
	args := m.Called(ctx, userID, propertyID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashbookSnapshot), args.Error(1)
}

func (m *MockCashbookService) Export(ctx context.Context, userID, propertyID string) (*domain.LedgerExport, error) {
	args := m.Called(ctx, userID, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerExport), args.Error(1)
}

func (m *MockCashbookService) Close(ctx context.Context, userID, propertyID string) error {
	args := m.Called(ctx, userID, propertyID)
	return args.Error(0)
}

// --- Test Suite Setup ---
type CashbookHandlerTestSuite struct {
	suite.Suite
	router              *gin.Engine
	mockCashbookService *MockCashbookService
	jwtSecret           string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *CashbookHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "lodgebook-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *CashbookHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockCashbookService = new(MockCashbookService)

	v1 := suite.router.Group("/api/v1/properties/:property_id")
	handlers.RegisterCashbookRoutes(v1, suite.mockCashbookService)
}

func (suite *CashbookHandlerTestSuite) snapshotFixture(propertyID string) *domain.CashbookSnapshot {
	anchor := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)
	roomID := uuid.NewString()
	return &domain.CashbookSnapshot{
		PropertyID: propertyID,
		WindowMode: domain.WindowToday,
		AnchorDate: anchor,
		RangeFrom:  anchor,
		RangeTo:    anchor,
		Window: domain.TimeWindow{
			Start: anchor,
			End:   anchor.Add(24*time.Hour - time.Millisecond),
		},
		Entries: []domain.LedgerEntry{
			{
				EntryID:    uuid.NewString(),
				PropertyID: propertyID,
				Kind:       domain.Income,
				Amount:     decimal.NewFromInt(100000),
				Method:     domain.Cash,
				OccurredAt: anchor.Add(12 * time.Hour),
				RoomID:     &roomID,
			},
		},
		RoomNames: map[string]string{roomID: "101"},
		DayTotals: domain.AggregateTotals{
			Income:  decimal.NewFromInt(100000),
			Expense: decimal.Zero,
			Profit:  decimal.NewFromInt(100000),
		},
		MonthTotals: domain.AggregateTotals{
			Income:  decimal.NewFromInt(100000),
			Expense: decimal.Zero,
			Profit:  decimal.NewFromInt(100000),
		},
		RangeTotals: domain.AggregateTotals{
			Income:  decimal.NewFromInt(100000),
			Expense: decimal.Zero,
			Profit:  decimal.NewFromInt(100000),
		},
	}
}

// --- Test Cases ---

func (suite *CashbookHandlerTestSuite) TestGetCashbook_Success() {
	propertyID := uuid.NewString()
	userID := uuid.NewString()
	snapshot := suite.snapshotFixture(propertyID)

	suite.mockCashbookService.On("Snapshot", mock.Anything, userID, propertyID).
		Return(snapshot, nil).Once()

	url := fmt.Sprintf("/api/v1/properties/%s/cashbook", propertyID)
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var body dto.CashbookResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(propertyID, body.PropertyID)
	suite.Equal(domain.WindowToday, body.WindowMode)
	suite.Equal("2024-01-10", body.AnchorDate)
	suite.Require().Len(body.Entries, 1)
	suite.Equal("101", body.Entries[0].RoomName, "entry must carry its resolved room name")
	suite.True(body.DayTotals.Profit.Equal(decimal.NewFromInt(100000)))

	suite.mockCashbookService.AssertExpectations(suite.T())
}

func (suite *CashbookHandlerTestSuite) TestGetCashbook_MissingToken() {
	propertyID := uuid.NewString()

	url := fmt.Sprintf("/api/v1/properties/%s/cashbook", propertyID)
	req, _ := http.NewRequest(http.MethodGet, url, nil)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockCashbookService.AssertNotCalled(suite.T(), "Snapshot")
}

func (suite *CashbookHandlerTestSuite) TestSubmitExpense_InvalidAmountIsBadRequest() {
	propertyID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockCashbookService.On("SubmitExpense", mock.Anything, userID, propertyID,
		mock.AnythingOfType("dto.SubmitExpenseRequest")).
		Return(nil, apperrors.ErrInvalidAmount).Once()

	payload, _ := json.Marshal(dto.SubmitExpenseRequest{
		Amount: "abc",
		Method: domain.Cash,
		Date:   "2024-01-10",
	})
	url := fmt.Sprintf("/api/v1/properties/%s/cashbook/expenses", propertyID)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockCashbookService.AssertExpectations(suite.T())
}

func (suite *CashbookHandlerTestSuite) TestSetAnchorDate_UnparsableDateIsBadRequest() {
	propertyID := uuid.NewString()
	userID := uuid.NewString()

	payload := []byte(`{"anchorDate":"10/01/2024"}`)
	url := fmt.Sprintf("/api/v1/properties/%s/cashbook/anchor", propertyID)
	req, _ := http.NewRequest(http.MethodPut, url, bytes.NewReader(payload))
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockCashbookService.AssertNotCalled(suite.T(), "SetAnchorDate")
}

func (suite *CashbookHandlerTestSuite) TestExport_NothingToExportIsConflict() {
	propertyID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockCashbookService.On("Export", mock.Anything, userID, propertyID).
		Return(nil, apperrors.ErrNothingToExport).Once()

	url := fmt.Sprintf("/api/v1/properties/%s/cashbook/export", propertyID)
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockCashbookService.AssertExpectations(suite.T())
}

func (suite *CashbookHandlerTestSuite) TestExport_StreamsWorkbookAsAttachment() {
	propertyID := uuid.NewString()
	userID := uuid.NewString()

	export := &domain.LedgerExport{
		Filename: "cashbook_today_2024-01-10.xlsx",
		Content:  []byte("PK\x03\x04workbook-bytes"),
	}
	suite.mockCashbookService.On("Export", mock.Anything, userID, propertyID).
		Return(export, nil).Once()

	url := fmt.Sprintf("/api/v1/properties/%s/cashbook/export", propertyID)
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	suite.Contains(w.Header().Get("Content-Disposition"), export.Filename)
	suite.Equal(export.Content, w.Body.Bytes())
	suite.mockCashbookService.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestCashbookHandler(t *testing.T) {
	suite.Run(t, new(CashbookHandlerTestSuite))
}
