package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"teamspace/internal/models"
	"teamspace/internal/services"
	"teamspace/internal/session"
	"teamspace/internal/validator"
)

// --- mock team space service ---

type mockTeamSpaceService struct {
	createFn      func(ctx context.Context, name, leaderUserID, leaderUsername string) (*models.TeamSpace, error)
	editFn        func(ctx context.Context, teamSpaceID, newName string, newTotalBudget decimal.Decimal) error
	rotateFn      func(ctx context.Context, teamSpaceID string) (string, error)
	getAllFn      func(ctx context.Context) ([]models.TeamSpace, error)
	getByIDFn     func(ctx context.Context, teamSpaceID string) (*models.TeamSpace, error)
	getJoinCodeFn func(ctx context.Context, teamSpaceID string) (string, error)
	getStylesFn   func(ctx context.Context, teamSpaceID string) (models.Styles, error)
}

func (m *mockTeamSpaceService) CreateTeamSpace(ctx context.Context, name, leaderUserID, leaderUsername string) (*models.TeamSpace, error) {
	if m.createFn != nil {
		return m.createFn(ctx, name, leaderUserID, leaderUsername)
	}
	return &models.TeamSpace{}, nil
}

func (m *mockTeamSpaceService) EditTeamSpace(ctx context.Context, teamSpaceID, newName string, newTotalBudget decimal.Decimal) error {
	if m.editFn != nil {
		return m.editFn(ctx, teamSpaceID, newName, newTotalBudget)
	}
	return nil
}

func (m *mockTeamSpaceService) GenerateNewJoinCode(ctx context.Context, teamSpaceID string) (string, error) {
	if m.rotateFn != nil {
		return m.rotateFn(ctx, teamSpaceID)
	}
	return "", nil
}

func (m *mockTeamSpaceService) GetAllTeamSpaces(ctx context.Context) ([]models.TeamSpace, error) {
	if m.getAllFn != nil {
		return m.getAllFn(ctx)
	}
	return []models.TeamSpace{}, nil
}

func (m *mockTeamSpaceService) GetTeamSpaceByID(ctx context.Context, teamSpaceID string) (*models.TeamSpace, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, teamSpaceID)
	}
	return &models.TeamSpace{}, nil
}

func (m *mockTeamSpaceService) GetJoinCode(ctx context.Context, teamSpaceID string) (string, error) {
	if m.getJoinCodeFn != nil {
		return m.getJoinCodeFn(ctx, teamSpaceID)
	}
	return "", nil
}

func (m *mockTeamSpaceService) GetTeamSpaceStyles(ctx context.Context, teamSpaceID string) (models.Styles, error) {
	if m.getStylesFn != nil {
		return m.getStylesFn(ctx, teamSpaceID)
	}
	return models.Styles{}, nil
}

var _ services.TeamSpaceServicer = (*mockTeamSpaceService)(nil)

// --- mock member service ---

type mockMemberService struct {
	addFn        func(ctx context.Context, joinCode, userID, username string) (*models.TeamSpace, error)
	removeFn     func(ctx context.Context, teamSpaceID, userID string) (*models.Member, error)
	getUsersFn   func(ctx context.Context, teamSpaceID string) ([]models.Member, error)
	getLeaderFn  func(ctx context.Context, teamSpaceID string) (*models.Member, error)
	byUserIDFn   func(ctx context.Context, userID string) (*models.TeamSpace, error)
	getUserFn    func(ctx context.Context, userID string) (*models.Member, error)
	userStylesFn func(ctx context.Context, userID string) (models.Styles, error)
}

func (m *mockMemberService) AddUserToTeamSpace(ctx context.Context, joinCode, userID, username string) (*models.TeamSpace, error) {
	if m.addFn != nil {
		return m.addFn(ctx, joinCode, userID, username)
	}
	return &models.TeamSpace{}, nil
}

func (m *mockMemberService) RemoveUserFromTeamSpace(ctx context.Context, teamSpaceID, userID string) (*models.Member, error) {
	if m.removeFn != nil {
		return m.removeFn(ctx, teamSpaceID, userID)
	}
	return &models.Member{}, nil
}

func (m *mockMemberService) GetAllTeamSpaceUsers(ctx context.Context, teamSpaceID string) ([]models.Member, error) {
	if m.getUsersFn != nil {
		return m.getUsersFn(ctx, teamSpaceID)
	}
	return []models.Member{}, nil
}

func (m *mockMemberService) GetTeamSpaceLeader(ctx context.Context, teamSpaceID string) (*models.Member, error) {
	if m.getLeaderFn != nil {
		return m.getLeaderFn(ctx, teamSpaceID)
	}
	return &models.Member{}, nil
}

func (m *mockMemberService) GetTeamSpaceByUserID(ctx context.Context, userID string) (*models.TeamSpace, error) {
	if m.byUserIDFn != nil {
		return m.byUserIDFn(ctx, userID)
	}
	return &models.TeamSpace{}, nil
}

func (m *mockMemberService) GetUserByID(ctx context.Context, userID string) (*models.Member, error) {
	if m.getUserFn != nil {
		return m.getUserFn(ctx, userID)
	}
	return &models.Member{}, nil
}

func (m *mockMemberService) GetUserStyles(ctx context.Context, userID string) (models.Styles, error) {
	if m.userStylesFn != nil {
		return m.userStylesFn(ctx, userID)
	}
	return models.Styles{}, nil
}

var _ services.MemberServicer = (*mockMemberService)(nil)

// --- mock category service ---

type mockCategoryService struct {
	createFn      func(ctx context.Context, teamSpaceID, name string, budgetLimit decimal.Decimal) (*models.SpendingCategory, error)
	editFn        func(ctx context.Context, teamSpaceID, categoryID, oldName, newName string, newBudgetLimit decimal.Decimal, oldImage string) error
	deleteFn      func(ctx context.Context, teamSpaceID, categoryID string) error
	changeLimitFn func(ctx context.Context, teamSpaceID, categoryID string, newBudgetLimit decimal.Decimal) error
	getAllFn      func(ctx context.Context, teamSpaceID string) ([]models.SpendingCategory, error)
	getByIDFn     func(ctx context.Context, teamSpaceID, categoryID string) (*models.SpendingCategory, error)
	getStylesFn   func(ctx context.Context, teamSpaceID, categoryID string) (models.Styles, error)
}

func (m *mockCategoryService) CreateSpendingCategory(ctx context.Context, teamSpaceID, name string, budgetLimit decimal.Decimal) (*models.SpendingCategory, error) {
	if m.createFn != nil {
		return m.createFn(ctx, teamSpaceID, name, budgetLimit)
	}
	return &models.SpendingCategory{}, nil
}

func (m *mockCategoryService) EditSpendingCategory(ctx context.Context, teamSpaceID, categoryID, oldName, newName string, newBudgetLimit decimal.Decimal, oldImage string) error {
	if m.editFn != nil {
		return m.editFn(ctx, teamSpaceID, categoryID, oldName, newName, newBudgetLimit, oldImage)
	}
	return nil
}

func (m *mockCategoryService) DeleteSpendingCategory(ctx context.Context, teamSpaceID, categoryID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, teamSpaceID, categoryID)
	}
	return nil
}

func (m *mockCategoryService) ChangeBudgetLimit(ctx context.Context, teamSpaceID, categoryID string, newBudgetLimit decimal.Decimal) error {
	if m.changeLimitFn != nil {
		return m.changeLimitFn(ctx, teamSpaceID, categoryID, newBudgetLimit)
	}
	return nil
}

func (m *mockCategoryService) GetAllSpendingCategories(ctx context.Context, teamSpaceID string) ([]models.SpendingCategory, error) {
	if m.getAllFn != nil {
		return m.getAllFn(ctx, teamSpaceID)
	}
	return []models.SpendingCategory{}, nil
}

func (m *mockCategoryService) GetSpendingCategoryByID(ctx context.Context, teamSpaceID, categoryID string) (*models.SpendingCategory, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, teamSpaceID, categoryID)
	}
	return &models.SpendingCategory{}, nil
}

func (m *mockCategoryService) GetSpendingCategoryStyles(ctx context.Context, teamSpaceID, categoryID string) (models.Styles, error) {
	if m.getStylesFn != nil {
		return m.getStylesFn(ctx, teamSpaceID, categoryID)
	}
	return models.Styles{}, nil
}

var _ services.CategoryServicer = (*mockCategoryService)(nil)

// --- mock transaction service ---

type mockTransactionService struct {
	createFn    func(ctx context.Context, in services.NewTransaction) (*models.Transaction, error)
	editFn      func(ctx context.Context, teamSpaceID, transactionID, oldName, newName string, newAmount decimal.Decimal, oldImage string) error
	deleteFn    func(ctx context.Context, teamSpaceID, transactionID string) (*models.Transaction, error)
	getStylesFn func(ctx context.Context, teamSpaceID, transactionID string) (models.Styles, error)
}

func (m *mockTransactionService) CreateTransaction(ctx context.Context, in services.NewTransaction) (*models.Transaction, error) {
	if m.createFn != nil {
		return m.createFn(ctx, in)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) EditTransaction(ctx context.Context, teamSpaceID, transactionID, oldName, newName string, newAmount decimal.Decimal, oldImage string) error {
	if m.editFn != nil {
		return m.editFn(ctx, teamSpaceID, transactionID, oldName, newName, newAmount, oldImage)
	}
	return nil
}

func (m *mockTransactionService) DeleteTransaction(ctx context.Context, teamSpaceID, transactionID string) (*models.Transaction, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, teamSpaceID, transactionID)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) GetTransactionStyles(ctx context.Context, teamSpaceID, transactionID string) (models.Styles, error) {
	if m.getStylesFn != nil {
		return m.getStylesFn(ctx, teamSpaceID, transactionID)
	}
	return models.Styles{}, nil
}

var _ services.TransactionServicer = (*mockTransactionService)(nil)

// --- mock query service ---

type mockQueryService struct {
	allFn        func(ctx context.Context, teamSpaceID string) ([]models.Transaction, error)
	byCategoryFn func(ctx context.Context, teamSpaceID, categoryID string) ([]models.Transaction, error)
	recentFn     func(ctx context.Context, teamSpaceID string) ([]models.Transaction, error)
	usedFn       func(ctx context.Context, teamSpaceID string) (decimal.Decimal, error)
	budgetFn     func(ctx context.Context, teamSpaceID string) (decimal.Decimal, error)
	byUserFn     func(ctx context.Context, userID string) ([]models.Transaction, error)
}

func (m *mockQueryService) AllTransactions(ctx context.Context, teamSpaceID string) ([]models.Transaction, error) {
	if m.allFn != nil {
		return m.allFn(ctx, teamSpaceID)
	}
	return []models.Transaction{}, nil
}

func (m *mockQueryService) TransactionsByCategory(ctx context.Context, teamSpaceID, categoryID string) ([]models.Transaction, error) {
	if m.byCategoryFn != nil {
		return m.byCategoryFn(ctx, teamSpaceID, categoryID)
	}
	return []models.Transaction{}, nil
}

func (m *mockQueryService) RecentTransactions(ctx context.Context, teamSpaceID string) ([]models.Transaction, error) {
	if m.recentFn != nil {
		return m.recentFn(ctx, teamSpaceID)
	}
	return []models.Transaction{}, nil
}

func (m *mockQueryService) TotalAmountUsed(ctx context.Context, teamSpaceID string) (decimal.Decimal, error) {
	if m.usedFn != nil {
		return m.usedFn(ctx, teamSpaceID)
	}
	return decimal.Zero, nil
}

func (m *mockQueryService) TotalBudget(ctx context.Context, teamSpaceID string) (decimal.Decimal, error) {
	if m.budgetFn != nil {
		return m.budgetFn(ctx, teamSpaceID)
	}
	return decimal.Zero, nil
}

func (m *mockQueryService) TransactionsByUserID(ctx context.Context, userID string) ([]models.Transaction, error) {
	if m.byUserFn != nil {
		return m.byUserFn(ctx, userID)
	}
	return []models.Transaction{}, nil
}

var _ services.QueryServicer = (*mockQueryService)(nil)

// --- test helpers ---

const (
	testTeamSpaceID   = "T0a1b2c3d"
	testCategoryID    = "C0a1b2c3d"
	testTransactionID = "X0a1b2c3d"
	testJoinCode      = "0123456789"
)

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

// mocks bundles one of each service mock so routers can be built from the
// full route table.
type mocks struct {
	teamSpaces   *mockTeamSpaceService
	members      *mockMemberService
	categories   *mockCategoryService
	transactions *mockTransactionService
	queries      *mockQueryService
	issuer       TokenIssuer
}

func newMocks() *mocks {
	return &mocks{
		teamSpaces:   &mockTeamSpaceService{},
		members:      &mockMemberService{},
		categories:   &mockCategoryService{},
		transactions: &mockTransactionService{},
		queries:      &mockQueryService{},
		issuer:       session.NewManager("test-secret", time.Hour),
	}
}

// router mounts every route, optionally behind a fixed session.
func (m *mocks) router(sess *session.Session) *gin.Engine {
	r := gin.New()
	if sess != nil {
		r.Use(injectSession(*sess))
	}
	Handlers{
		TeamSpaces:   NewTeamSpaceHandler(m.teamSpaces, m.queries),
		Members:      NewMemberHandler(m.members, m.queries),
		Categories:   NewCategoryHandler(m.categories, m.queries),
		Transactions: NewTransactionHandler(m.transactions, m.queries),
		Sessions:     NewSessionHandler(m.issuer, m.members),
	}.RegisterRoutes(r)
	return r
}

func injectSession(s session.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(session.NewContext(c.Request.Context(), s))
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// assertEnvelope checks the HTTP 200 wrapper and the envelope status, and
// returns the decoded envelope.
func assertEnvelope(t *testing.T, rec *httptest.ResponseRecorder, status int) map[string]interface{} {
	t.Helper()
	if rec.Code != http.StatusOK {
		t.Fatalf("expected HTTP 200, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	if got, _ := result["status"].(float64); int(got) != status {
		t.Fatalf("expected envelope status %d, got %v: %s", status, result["status"], rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	if result["code"] != code {
		t.Errorf("expected code %s, got %v", code, result["code"])
	}
	if result["data"] != nil {
		t.Errorf("expected null data on failure, got %v", result["data"])
	}
}

func dataMap(t *testing.T, result map[string]interface{}) map[string]interface{} {
	t.Helper()
	data, ok := result["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected data object, got %v", result["data"])
	}
	return data
}
