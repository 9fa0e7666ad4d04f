package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"

	"github.com/innlodge/lodgebook_app/internal/core/domain"
	portssvc "github.com/innlodge/lodgebook_app/internal/core/ports/services"
	"github.com/innlodge/lodgebook_app/internal/dto"
	"github.com/innlodge/lodgebook_app/internal/handlers"
	"github.com/innlodge/lodgebook_app/internal/platform/config"
)

// --- Mock GoogleOAuthService ---
type MockGoogleOAuthService struct {
	mock.Mock
}

// Ensure mock implements the interface
var _ portssvc.GoogleOAuthHandlerSvcFacade = (*MockGoogleOAuthService)(nil)

func (m *MockGoogleOAuthService) GenerateStateString(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockGoogleOAuthService) GetGoogleLoginURL(ctx context.Context, state string) string {
	args := m.Called(ctx, state)
	return args.String(0)
}

func (m *MockGoogleOAuthService) ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*oauth2.Token), args.Error(1)
}

func (m *MockGoogleOAuthService) GetUserInfo(ctx context.Context, token *oauth2.Token) (*domain.GoogleUserInfo, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GoogleUserInfo), args.Error(1)
}

func (m *MockGoogleOAuthService) ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error) {
	args := m.Called(ctx, idTokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*idtoken.Payload), args.Error(1)
}

// --- Mock UserService ---
type MockOAuthUserService struct {
	mock.Mock
}

var _ portssvc.UserSvcFacade = (*MockOAuthUserService)(nil)

func (m *MockOAuthUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockOAuthUserService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockOAuthUserService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockOAuthUserService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockOAuthUserService) CreateOAuthUser(ctx context.Context, name, email, provider, providerUserID string, isEmailVerified bool) (*domain.User, error) {
	args := m.Called(ctx, name, email, provider, providerUserID, isEmailVerified)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockOAuthUserService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error) {
	args := m.Called(ctx, userID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockOAuthUserService) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error {
	args := m.Called(ctx, userID, refreshTokenHash, refreshTokenExpiryTime)
	return args.Error(0)
}

func (m *MockOAuthUserService) ClearRefreshToken(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockOAuthUserService) DeleteUser(ctx context.Context, userID string, requestingUserID string) error {
	args := m.Called(ctx, userID, requestingUserID)
	return args.Error(0)
}

func (m *MockOAuthUserService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// --- Mock TokenService ---
type MockOAuthTokenService struct {
	mock.Mock
}

var _ portssvc.TokenSvcFacade = (*MockOAuthTokenService)(nil)

func (m *MockOAuthTokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockOAuthTokenService) GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockOAuthTokenService) ValidateAndParseRefreshToken(ctx context.Context, userID string, refreshTokenString string) (*domain.User, error) {
	args := m.Called(ctx, userID, refreshTokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// --- Test Suite Setup ---
type GoogleOAuthHandlerTestSuite struct {
	suite.Suite
	router           *gin.Engine
	mockOAuthService *MockGoogleOAuthService
	mockUserService  *MockOAuthUserService
	mockTokenService *MockOAuthTokenService
	cfg              *config.Config
}

func (suite *GoogleOAuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()

	suite.mockOAuthService = new(MockGoogleOAuthService)
	suite.mockUserService = new(MockOAuthUserService)
	suite.mockTokenService = new(MockOAuthTokenService)
	suite.cfg = &config.Config{FrontendBaseURL: "http://localhost:3000"}

	services := &portssvc.ServiceContainer{
		User:               suite.mockUserService,
		TokenService:       suite.mockTokenService,
		GoogleOAuthHandler: suite.mockOAuthService,
	}

	authGroup := suite.router.Group("/api/v1/auth")
	handlers.RegisterGoogleOAuthRoutes(authGroup, suite.cfg, services)
}

func (suite *GoogleOAuthHandlerTestSuite) testGoogleUser() *domain.User {
	return &domain.User{
		UserID:          "user-google-1",
		Name:            "Greta Guest",
		Email:           "greta@example.com",
		AuthProvider:    domain.ProviderGoogle,
		ProviderUserID:  "google-sub-123",
		IsEmailVerified: true,
	}
}

// --- LoginGoogle tests ---

func (suite *GoogleOAuthHandlerTestSuite) TestLoginGoogle_RedirectsToGoogleWithStateCookie() {
	loginURL := "https://accounts.google.com/o/oauth2/auth?state=state-abc"
	suite.mockOAuthService.On("GenerateStateString", mock.Anything).Return("state-abc", nil).Once()
	suite.mockOAuthService.On("GetGoogleLoginURL", mock.Anything, "state-abc").Return(loginURL).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/auth/google", nil)
	rr := httptest.NewRecorder()
	suite.router.ServeHTTP(rr, req)

	suite.Equal(http.StatusTemporaryRedirect, rr.Code)
	suite.Equal(loginURL, rr.Header().Get("Location"))

	var stateCookie *http.Cookie
	for _, cookie := range rr.Result().Cookies() {
		if cookie.Name == "oauth_state" {
			stateCookie = cookie
		}
	}
	suite.Require().NotNil(stateCookie, "state cookie should be set")
	suite.Equal("state-abc", stateCookie.Value)
	suite.True(stateCookie.HttpOnly)
	suite.mockOAuthService.AssertExpectations(suite.T())
}

// --- CallbackGoogle tests ---

func (suite *GoogleOAuthHandlerTestSuite) TestCallbackGoogle_RejectsStateMismatch() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/auth/google/callback?state=evil&code=code-1", nil)
	req.AddCookie(&http.Cookie{Name: "oauth_state", Value: "state-abc"})
	rr := httptest.NewRecorder()
	suite.router.ServeHTTP(rr, req)

	suite.Equal(http.StatusUnauthorized, rr.Code)
	suite.mockOAuthService.AssertNotCalled(suite.T(), "ExchangeCodeForToken", mock.Anything, mock.Anything)
}

func (suite *GoogleOAuthHandlerTestSuite) TestCallbackGoogle_RejectsMissingStateCookie() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/auth/google/callback?state=state-abc&code=code-1", nil)
	rr := httptest.NewRecorder()
	suite.router.ServeHTTP(rr, req)

	suite.Equal(http.StatusUnauthorized, rr.Code)
	suite.mockOAuthService.AssertNotCalled(suite.T(), "ExchangeCodeForToken", mock.Anything, mock.Anything)
}

func (suite *GoogleOAuthHandlerTestSuite) TestCallbackGoogle_SignsInAndRedirectsToFrontend() {
	googleToken := &oauth2.Token{AccessToken: "google-access"}
	suite.mockOAuthService.On("ExchangeCodeForToken", mock.Anything, "code-1").Return(googleToken, nil).Once()
	suite.mockOAuthService.On("GetUserInfo", mock.Anything, googleToken).Return(&domain.GoogleUserInfo{
		ID:            "google-sub-123",
		Email:         "greta@example.com",
		VerifiedEmail: true,
		Name:          "Greta Guest",
	}, nil).Once()

	user := suite.testGoogleUser()
	suite.mockUserService.On("CreateOAuthUser", mock.Anything,
		"Greta Guest", "greta@example.com", string(domain.ProviderGoogle), "google-sub-123", true).
		Return(user, nil).Once()
	suite.mockTokenService.On("GenerateAccessToken", mock.Anything, user).
		Return("app.jwt.token", time.Now().Add(time.Hour), nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/auth/google/callback?state=state-abc&code=code-1", nil)
	req.AddCookie(&http.Cookie{Name: "oauth_state", Value: "state-abc"})
	rr := httptest.NewRecorder()
	suite.router.ServeHTTP(rr, req)

	suite.Equal(http.StatusFound, rr.Code)
	location := rr.Header().Get("Location")
	suite.True(strings.HasPrefix(location, "http://localhost:3000/login?token="), "unexpected redirect target: %s", location)
	suite.Contains(location, url.QueryEscape("app.jwt.token"))

	suite.mockOAuthService.AssertExpectations(suite.T())
	suite.mockUserService.AssertExpectations(suite.T())
	suite.mockTokenService.AssertExpectations(suite.T())
}

// --- ExchangeCodeGoogle tests ---

func (suite *GoogleOAuthHandlerTestSuite) exchangeCode(code string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(dto.GoogleExchangeCodeRequest{Code: code})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/google/exchange-code", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	suite.router.ServeHTTP(rr, req)
	return rr
}

func (suite *GoogleOAuthHandlerTestSuite) TestExchangeCodeGoogle_Success() {
	googleToken := (&oauth2.Token{AccessToken: "google-access"}).
		WithExtra(map[string]interface{}{"id_token": "google-id-token"})
	suite.mockOAuthService.On("ExchangeCodeForToken", mock.Anything, "code-1").Return(googleToken, nil).Once()
	suite.mockOAuthService.On("ValidateGoogleIDToken", mock.Anything, "google-id-token").Return(&idtoken.Payload{
		Subject: "google-sub-123",
		Claims: map[string]interface{}{
			"email":          "greta@example.com",
			"name":           "Greta Guest",
			"email_verified": true,
		},
	}, nil).Once()

	user := suite.testGoogleUser()
	suite.mockUserService.On("CreateOAuthUser", mock.Anything,
		"Greta Guest", "greta@example.com", string(domain.ProviderGoogle), "google-sub-123", true).
		Return(user, nil).Once()
	suite.mockTokenService.On("GenerateAccessToken", mock.Anything, user).
		Return("app.jwt.token", time.Now().Add(time.Hour), nil).Once()

	rr := suite.exchangeCode("code-1")

	suite.Equal(http.StatusOK, rr.Code)
	var resp dto.LoginResponse
	suite.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &resp))
	suite.Equal("app.jwt.token", resp.Token)

	suite.mockOAuthService.AssertExpectations(suite.T())
	suite.mockUserService.AssertExpectations(suite.T())
	suite.mockTokenService.AssertExpectations(suite.T())
}

func (suite *GoogleOAuthHandlerTestSuite) TestExchangeCodeGoogle_MissingEmailClaimIsRejected() {
	// An ID token can validate while carrying no email claim at all. The
	// handler must refuse it cleanly instead of panicking on the missing
	// claim.
	googleToken := (&oauth2.Token{AccessToken: "google-access"}).
		WithExtra(map[string]interface{}{"id_token": "google-id-token"})
	suite.mockOAuthService.On("ExchangeCodeForToken", mock.Anything, "code-1").Return(googleToken, nil).Once()
	suite.mockOAuthService.On("ValidateGoogleIDToken", mock.Anything, "google-id-token").Return(&idtoken.Payload{
		Subject: "google-sub-123",
		Claims: map[string]interface{}{
			"name": "Greta Guest",
		},
	}, nil).Once()

	rr := suite.exchangeCode("code-1")

	suite.Equal(http.StatusBadGateway, rr.Code)
	suite.mockUserService.AssertNotCalled(suite.T(), "CreateOAuthUser",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockOAuthService.AssertExpectations(suite.T())
}

func (suite *GoogleOAuthHandlerTestSuite) TestExchangeCodeGoogle_MissingIDTokenIsRejected() {
	googleToken := &oauth2.Token{AccessToken: "google-access"}
	suite.mockOAuthService.On("ExchangeCodeForToken", mock.Anything, "code-1").Return(googleToken, nil).Once()

	rr := suite.exchangeCode("code-1")

	suite.Equal(http.StatusBadGateway, rr.Code)
	suite.mockOAuthService.AssertNotCalled(suite.T(), "ValidateGoogleIDToken", mock.Anything, mock.Anything)
}

func (suite *GoogleOAuthHandlerTestSuite) TestExchangeCodeGoogle_MissingCodeIsBadRequest() {
	rr := suite.exchangeCode("")

	suite.Equal(http.StatusBadRequest, rr.Code)
	suite.mockOAuthService.AssertNotCalled(suite.T(), "ExchangeCodeForToken", mock.Anything, mock.Anything)
}

func TestGoogleOAuthHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GoogleOAuthHandlerTestSuite))
}
