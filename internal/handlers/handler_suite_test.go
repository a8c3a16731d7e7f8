package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/buildledger/internal/core/domain"
	portssvc "github.com/SscSPs/buildledger/internal/core/ports/services"
	"github.com/SscSPs/buildledger/internal/handlers"
	"github.com/SscSPs/buildledger/internal/middleware"
	"github.com/SscSPs/buildledger/internal/platform/config"
	"github.com/SscSPs/buildledger/internal/platform/metrics"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/suite"
)

const (
	testOrgID  = "org-1"
	testUserID = "user-1"
)

// HandlerTestSuite drives the full router with mocked services behind it.
type HandlerTestSuite struct {
	suite.Suite
	router    *gin.Engine
	jwtSecret string

	mockOrganizationService *MockOrganizationService
	mockAccountService      *MockAccountService
	mockJournalService      *MockJournalService
	mockTreasuryService     *MockTreasuryService
	mockCheckService        *MockCheckService
}

func (suite *HandlerTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	suite.Require().NoError(handlers.RegisterValidators())
}

func (suite *HandlerTestSuite) SetupTest() {
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.router = gin.New()

	suite.mockOrganizationService = new(MockOrganizationService)
	suite.mockAccountService = new(MockAccountService)
	suite.mockJournalService = new(MockJournalService)
	suite.mockTreasuryService = new(MockTreasuryService)
	suite.mockCheckService = new(MockCheckService)

	cfg := &config.Config{JWTSecret: suite.jwtSecret, IsProduction: true}
	services := &portssvc.ServiceContainer{
		Organization: suite.mockOrganizationService,
		Account:      suite.mockAccountService,
		Journal:      suite.mockJournalService,
		Treasury:     suite.mockTreasuryService,
		Check:        suite.mockCheckService,
	}
	handlers.RegisterRoutes(suite.router, cfg, services, metrics.New())
}

func (suite *HandlerTestSuite) TearDownTest() {
	suite.mockOrganizationService.AssertExpectations(suite.T())
	suite.mockAccountService.AssertExpectations(suite.T())
	suite.mockJournalService.AssertExpectations(suite.T())
	suite.mockTreasuryService.AssertExpectations(suite.T())
	suite.mockCheckService.AssertExpectations(suite.T())
}

// generateTestToken creates a signed session token for the test organization.
func (suite *HandlerTestSuite) generateTestToken(role domain.OrganizationRole) string {
	claims := middleware.SessionClaims{
		OrganizationID: testOrgID,
		Role:           string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "buildledger-test",
			Subject:   testUserID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

// do sends a request as a MEMBER of the test organization.
func (suite *HandlerTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	return suite.doAs(domain.RoleMember, method, path, body)
}

func (suite *HandlerTestSuite) doAs(role domain.OrganizationRole, method, path string, body any) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		req = httptest.NewRequest(method, path, bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(role))
	req.Header.Set("Accept", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) decode(w *httptest.ResponseRecorder, out any) {
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), out), "body: %s", w.Body.String())
}

func (suite *HandlerTestSuite) TestHealthAndMetricsArePublic() {
	for _, path := range []string{"/health", "/metrics"} {
		w := httptest.NewRecorder()
		suite.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		suite.Equal(http.StatusOK, w.Code, path)
	}
}

func (suite *HandlerTestSuite) TestMissingTokenIsRejected() {
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil))
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlerTestSuite) TestExpiredTokenIsRejected() {
	claims := middleware.SessionClaims{
		OrganizationID: testOrgID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   testUserID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(suite.jwtSecret))
	suite.Require().NoError(err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Contains(w.Body.String(), "Token has expired")
}

func (suite *HandlerTestSuite) TestTokenWithoutOrganizationIsRejected() {
	claims := jwt.RegisteredClaims{
		Subject:   testUserID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(suite.jwtSecret))
	suite.Require().NoError(err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlerTestSuite) TestGetCurrentOrganization() {
	suite.mockOrganizationService.On("GetOrganizationByID", mockCtx, testOrgID).
		Return(&domain.Organization{OrganizationID: testOrgID, AccountingEnabled: true}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/organization", nil)

	suite.Equal(http.StatusOK, w.Code)
	var org domain.Organization
	suite.decode(w, &org)
	suite.Equal(testOrgID, org.OrganizationID)
	suite.True(org.AccountingEnabled)
}

// --- Run Test Suite ---
func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
