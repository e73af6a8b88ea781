package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/orbitcommerce/collab_backend/internal/apperrors"
	"github.com/orbitcommerce/collab_backend/internal/core/domain"
	"github.com/orbitcommerce/collab_backend/internal/dto"
	"github.com/orbitcommerce/collab_backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type EmployeeHandlerTestSuite struct {
	suite.Suite
	router              *gin.Engine
	mockEmployeeService *mockEmployeeService
	jwtSecret           string
	externalUserID      string
	employeeID          string
}

func (suite *EmployeeHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.externalUserID = "idp|" + uuid.NewString()
	suite.employeeID = uuid.NewString()

	suite.mockEmployeeService = new(mockEmployeeService)

	suite.router = gin.New()
	v1 := suite.router.Group("/api/v1", middleware.AuthMiddleware(suite.jwtSecret, suite.mockEmployeeService))
	registerEmployeeRoutes(v1, suite.mockEmployeeService)
}

func (suite *EmployeeHandlerTestSuite) signToken() string {
	claims := jwt.RegisteredClaims{
		Issuer:    "orbitcommerce-test",
		Subject:   suite.externalUserID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(suite.jwtSecret))
	suite.Require().NoError(err)
	return signed
}

func (suite *EmployeeHandlerTestSuite) expectAuth() {
	suite.mockEmployeeService.On("EmployeeForAuthenticatedUser", mock.Anything, suite.externalUserID).Return(&domain.Employee{
		EmployeeID:     suite.employeeID,
		ExternalUserID: suite.externalUserID,
		Status:         domain.EmployeeActive,
	}, nil).Once()
}

func (suite *EmployeeHandlerTestSuite) authedRequest(method, url string, body []byte) *http.Request {
	req, _ := http.NewRequest(method, url, bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+suite.signToken())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func (suite *EmployeeHandlerTestSuite) TestGetSelf_Success() {
	suite.expectAuth()
	self := &domain.Employee{
		EmployeeID: suite.employeeID,
		Email:      "jane.doe@orbitcommerce.io",
		FirstName:  "Jane",
		LastName:   "Doe",
		JobTitle:   "Engineer",
		TimeZone:   "UTC",
		Status:     domain.EmployeeActive,
		Presence:   domain.PresenceOnline,
	}

	suite.mockEmployeeService.On("GetEmployeeByID", mock.Anything, suite.employeeID).Return(self, nil).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodGet, "/api/v1/employees/me", nil))

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.EmployeeResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(suite.employeeID, resp.EmployeeID)
	suite.Equal("jane.doe@orbitcommerce.io", resp.Email)
	suite.Equal("ONLINE", resp.Presence)
	suite.mockEmployeeService.AssertExpectations(suite.T())
}

func (suite *EmployeeHandlerTestSuite) TestGetSelf_ExpiredToken() {
	claims := jwt.RegisteredClaims{
		Subject:   suite.externalUserID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(suite.jwtSecret))
	suite.Require().NoError(err)

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/employees/me", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Contains(w.Body.String(), "Token has expired")
}

func (suite *EmployeeHandlerTestSuite) TestGetSelf_WrongSigningSecret() {
	claims := jwt.RegisteredClaims{
		Subject:   suite.externalUserID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("some-other-secret"))
	suite.Require().NoError(err)

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/employees/me", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *EmployeeHandlerTestSuite) TestUpdatePresence_NoContent() {
	suite.expectAuth()

	suite.mockEmployeeService.On("UpdatePresence", mock.Anything, suite.employeeID, domain.PresenceAway).Return(nil).Once()

	body := []byte(`{"presence":"AWAY"}`)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodPut, "/api/v1/employees/me/presence", body))

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockEmployeeService.AssertExpectations(suite.T())
}

func (suite *EmployeeHandlerTestSuite) TestUpdatePresence_UnknownStateRejected() {
	suite.expectAuth()

	body := []byte(`{"presence":"NAPPING"}`)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodPut, "/api/v1/employees/me/presence", body))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockEmployeeService.AssertNotCalled(suite.T(), "UpdatePresence", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *EmployeeHandlerTestSuite) TestProvisionEmployee_Duplicate() {
	suite.expectAuth()
	reqBody := dto.ProvisionEmployeeRequest{
		ExternalUserID: "idp|" + uuid.NewString(),
		Email:          "dup@orbitcommerce.io",
		FirstName:      "Dup",
		LastName:       "Licate",
		JobTitle:       "Analyst",
		TimeZone:       "UTC",
	}

	suite.mockEmployeeService.On("ProvisionEmployee", mock.Anything, mock.AnythingOfType("dto.ProvisionEmployeeRequest"), suite.employeeID).Return(nil, apperrors.ErrDuplicate).Once()

	body, _ := json.Marshal(reqBody)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodPost, "/api/v1/employees", body))

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *EmployeeHandlerTestSuite) TestGetEmployee_NotFound() {
	suite.expectAuth()
	otherID := uuid.NewString()

	suite.mockEmployeeService.On("GetEmployeeByID", mock.Anything, otherID).Return(nil, apperrors.ErrNotFound).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodGet, "/api/v1/employees/"+otherID, nil))

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *EmployeeHandlerTestSuite) TestListEmployees_PassesPagination() {
	suite.expectAuth()

	suite.mockEmployeeService.On("ListEmployees", mock.Anything, 5, 10).Return([]domain.Employee{}, nil).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodGet, "/api/v1/employees?limit=5&offset=10", nil))

	suite.Equal(http.StatusOK, w.Code)
	suite.mockEmployeeService.AssertExpectations(suite.T())
}

func TestEmployeeHandler(t *testing.T) {
	suite.Run(t, new(EmployeeHandlerTestSuite))
}
