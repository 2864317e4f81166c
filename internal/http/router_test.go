package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	batchrepo "github.com/yungbote/metalqc-backend/internal/data/repos/batch"
	dtrepo "github.com/yungbote/metalqc-backend/internal/data/repos/defecttype"
	insprepo "github.com/yungbote/metalqc-backend/internal/data/repos/inspection"
	iprepo "github.com/yungbote/metalqc-backend/internal/data/repos/inspectionpoint"
	ptrepo "github.com/yungbote/metalqc-backend/internal/data/repos/producttype"
	rolerepo "github.com/yungbote/metalqc-backend/internal/data/repos/role"
	"github.com/yungbote/metalqc-backend/internal/data/repos/testutil"
	userrepo "github.com/yungbote/metalqc-backend/internal/data/repos/user"
	"github.com/yungbote/metalqc-backend/internal/domain"
	httpH "github.com/yungbote/metalqc-backend/internal/http/handlers"
	httpMW "github.com/yungbote/metalqc-backend/internal/http/middleware"
	"github.com/yungbote/metalqc-backend/internal/services"
)

type apiTest struct {
	tx     *gorm.DB
	router *gin.Engine
}

func newAPITest(t *testing.T) *apiTest {
	t.Helper()
	tx := testutil.Tx(t, testutil.DB(t))
	log := testutil.Logger(t)

	users := userrepo.NewUserRepo(tx, log)
	roles := rolerepo.NewRoleRepo(tx, log)
	types := ptrepo.NewProductTypeRepo(tx, log)
	batches := batchrepo.NewBatchRepo(tx, log)
	insp := insprepo.NewInspectionRepo(tx, log)
	details := insprepo.NewDefectDetailRepo(tx, log)
	defects := dtrepo.NewDefectTypeRepo(tx, log)
	points := iprepo.NewInspectionPointRepo(tx, log)

	auth := services.NewAuthService(tx, log, users, "router-test-secret", 30*time.Minute)

	router := NewRouter(RouterConfig{
		Log:     log,
		GinMode: gin.TestMode,

		AuthHandler:            httpH.NewAuthHandler(auth),
		AuthMiddleware:         httpMW.NewAuthMiddleware(log, auth),
		UserHandler:            httpH.NewUserHandler(services.NewUserService(tx, log, users, roles)),
		RoleHandler:            httpH.NewRoleHandler(services.NewRoleService(tx, log, roles, users)),
		ProductTypeHandler:     httpH.NewProductTypeHandler(services.NewProductTypeService(tx, log, types, batches)),
		BatchHandler:           httpH.NewBatchHandler(services.NewBatchService(tx, log, batches, types, insp, details)),
		InspectionHandler:      httpH.NewInspectionHandler(services.NewInspectionService(tx, log, insp, details, batches, defects)),
		InspectionPointHandler: httpH.NewInspectionPointHandler(services.NewInspectionPointService(tx, log, points)),
		DefectTypeHandler:      httpH.NewDefectTypeHandler(services.NewDefectTypeService(tx, log, defects, details)),
	})

	return &apiTest{tx: tx, router: router}
}

func (at *apiTest) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	at.router.ServeHTTP(rec, req)
	return rec
}

func (at *apiTest) login(t *testing.T, username, password string) string {
	t.Helper()
	form := url.Values{"username": {username}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/api/auth/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	at.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: expected 200, got %d: %s", username, rec.Code, rec.Body.String())
	}
	var resp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if resp.TokenType != "bearer" {
		t.Fatalf("expected token_type bearer, got %q", resp.TokenType)
	}
	return resp.AccessToken
}

func seedStandardUsers(t *testing.T, tx *gorm.DB) (admin, operator, viewer *domain.User) {
	t.Helper()
	adminRole := testutil.SeedRole(t, tx, "admin", domain.Permissions{CanRead: true, CanWrite: true, CanDelete: true, CanAdmin: true})
	opRole := testutil.SeedRole(t, tx, "operator", domain.Permissions{CanRead: true, CanWrite: true})
	viewRole := testutil.SeedRole(t, tx, "viewer", domain.Permissions{CanRead: true})
	admin = testutil.SeedUser(t, tx, "root", "rootpw", &adminRole.ID)
	operator = testutil.SeedUser(t, tx, "op", "oppw", &opRole.ID)
	viewer = testutil.SeedUser(t, tx, "view", "viewpw", &viewRole.ID)
	return admin, operator, viewer
}

func TestAPIRequiresToken(t *testing.T) {
	at := newAPITest(t)

	rec := at.do(t, http.MethodGet, "/api/batches", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if got := rec.Header().Get("WWW-Authenticate"); got != "Bearer" {
		t.Fatalf("expected WWW-Authenticate: Bearer, got %q", got)
	}

	rec = at.do(t, http.MethodGet, "/api/batches", "garbage.token.here", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad token, got %d", rec.Code)
	}
}

func TestAPILoginAndMe(t *testing.T) {
	at := newAPITest(t)
	_, operator, _ := seedStandardUsers(t, at.tx)

	token := at.login(t, "op", "oppw")

	rec := at.do(t, http.MethodGet, "/api/auth/me", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var me domain.User
	if err := json.Unmarshal(rec.Body.Bytes(), &me); err != nil {
		t.Fatalf("decode me: %v", err)
	}
	if me.ID != operator.ID || me.Username != "op" {
		t.Fatalf("unexpected me payload: %+v", me)
	}
	if strings.Contains(rec.Body.String(), "hashed_password") {
		t.Fatal("password hash leaked in response")
	}
}

func TestAPILoginBadCredentials(t *testing.T) {
	at := newAPITest(t)
	seedStandardUsers(t, at.tx)

	form := url.Values{"username": {"op"}, "password": {"nope"}}
	req := httptest.NewRequest(http.MethodPost, "/api/auth/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	at.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAPIUserAdministrationIsAdminOnly(t *testing.T) {
	at := newAPITest(t)
	_, operator, _ := seedStandardUsers(t, at.tx)

	opToken := at.login(t, "op", "oppw")
	adminToken := at.login(t, "root", "rootpw")

	if rec := at.do(t, http.MethodGet, "/api/users", opToken, nil); rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for operator, got %d", rec.Code)
	}
	if rec := at.do(t, http.MethodGet, "/api/users", adminToken, nil); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", rec.Code)
	}

	// Self-read allowed, reading another user is not.
	self := fmt.Sprintf("/api/users/%d", operator.ID)
	if rec := at.do(t, http.MethodGet, self, opToken, nil); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for self read, got %d", rec.Code)
	}
	other := fmt.Sprintf("/api/users/%d", operator.ID+1)
	if rec := at.do(t, http.MethodGet, other, opToken, nil); rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for other read, got %d", rec.Code)
	}
}

func TestAPIBatchLifecycle(t *testing.T) {
	at := newAPITest(t)
	seedStandardUsers(t, at.tx)
	pt := testutil.SeedProductType(t, at.tx, "API-01")

	opToken := at.login(t, "op", "oppw")
	viewToken := at.login(t, "view", "viewpw")
	adminToken := at.login(t, "root", "rootpw")

	payload := map[string]any{
		"batch_number":    "API-B-1",
		"product_type_id": pt.ID,
		"production_date": "2025-04-01T00:00:00Z",
	}

	// Read-only role cannot create.
	if rec := at.do(t, http.MethodPost, "/api/batches", viewToken, payload); rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for viewer create, got %d", rec.Code)
	}

	rec := at.do(t, http.MethodPost, "/api/batches", opToken, payload)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created domain.ProductionBatch
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode batch: %v", err)
	}
	if created.Status != domain.BatchStatusInProduction {
		t.Fatalf("expected default status, got %q", created.Status)
	}

	// Duplicate number.
	if rec := at.do(t, http.MethodPost, "/api/batches", opToken, payload); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate, got %d: %s", rec.Code, rec.Body.String())
	}

	// Viewer can list, and the new batch is visible.
	rec = at.do(t, http.MethodGet, "/api/batches", viewToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for viewer list, got %d", rec.Code)
	}
	var listed []domain.ProductionBatch
	if err := json.Unmarshal(rec.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	found := false
	for _, b := range listed {
		if b.ID == created.ID {
			found = true
		}
	}
	if !found {
		t.Fatalf("created batch %d missing from list", created.ID)
	}

	// Partial update touches only the named field.
	batchPath := fmt.Sprintf("/api/batches/%d", created.ID)
	rec = at.do(t, http.MethodPut, batchPath, opToken, map[string]any{"quality_rating": 5})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var updated domain.ProductionBatch
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode batch: %v", err)
	}
	if updated.QualityRating == nil || *updated.QualityRating != 5 {
		t.Fatalf("expected quality rating 5, got %v", updated.QualityRating)
	}
	if updated.BatchNumber != "API-B-1" {
		t.Fatalf("batch number changed: %q", updated.BatchNumber)
	}

	// Operator holds no delete grant.
	if rec := at.do(t, http.MethodDelete, batchPath, opToken, nil); rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for operator delete, got %d", rec.Code)
	}
	if rec := at.do(t, http.MethodDelete, batchPath, adminToken, nil); rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for admin delete, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec := at.do(t, http.MethodGet, batchPath, opToken, nil); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestAPIQualityManagerCatalogEditing(t *testing.T) {
	at := newAPITest(t)
	qmRole := testutil.SeedRole(t, at.tx, "quality_manager", domain.Permissions{CanRead: true, CanWrite: true})
	testutil.SeedUser(t, at.tx, "qm", "qmpw", &qmRole.ID)
	opRole := testutil.SeedRole(t, at.tx, "operator", domain.Permissions{CanRead: true, CanWrite: true})
	testutil.SeedUser(t, at.tx, "op2", "oppw", &opRole.ID)

	qmToken := at.login(t, "qm", "qmpw")
	opToken := at.login(t, "op2", "oppw")

	payload := map[string]any{"type_code": "QM-01", "type_name": "Checked plate"}
	if rec := at.do(t, http.MethodPost, "/api/product-types", opToken, payload); rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for operator, got %d", rec.Code)
	}
	rec := at.do(t, http.MethodPost, "/api/product-types", qmToken, payload)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 for quality manager, got %d: %s", rec.Code, rec.Body.String())
	}
	var created domain.ProductType
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode product type: %v", err)
	}

	// Catalog deletion is admin-only even for the quality manager.
	path := fmt.Sprintf("/api/product-types/%d", created.ID)
	if rec := at.do(t, http.MethodDelete, path, qmToken, nil); rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for quality manager delete, got %d", rec.Code)
	}
}

func TestAPIInspectionWithDefects(t *testing.T) {
	at := newAPITest(t)
	seedStandardUsers(t, at.tx)
	pt := testutil.SeedProductType(t, at.tx, "API-02")
	b := testutil.SeedBatch(t, at.tx, "API-B-2", pt.ID)

	adminToken := at.login(t, "root", "rootpw")
	opToken := at.login(t, "op", "oppw")

	rec := at.do(t, http.MethodPost, "/api/defect-types", adminToken, map[string]any{
		"defect_code": "API-DT-1", "defect_name": "Edge wave",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var dt domain.DefectType
	if err := json.Unmarshal(rec.Body.Bytes(), &dt); err != nil {
		t.Fatalf("decode defect type: %v", err)
	}

	rec = at.do(t, http.MethodPost, "/api/inspections", opToken, map[string]any{
		"batch_id":           b.ID,
		"measurement_data":   map[string]any{"width_mm": 1250.4},
		"is_defect_detected": true,
		"defect_count":       1,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var insp domain.InspectionResult
	if err := json.Unmarshal(rec.Body.Bytes(), &insp); err != nil {
		t.Fatalf("decode inspection: %v", err)
	}
	if insp.InspectorID == nil {
		t.Fatal("expected inspector defaulted from acting user")
	}

	defectPath := fmt.Sprintf("/api/inspections/%d/defects", insp.ID)
	rec = at.do(t, http.MethodPost, defectPath, opToken, map[string]any{
		"defect_type_id": dt.ID,
		"size_mm":        12.5,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = at.do(t, http.MethodGet, defectPath, opToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var details []domain.DefectDetail
	if err := json.Unmarshal(rec.Body.Bytes(), &details); err != nil {
		t.Fatalf("decode details: %v", err)
	}
	if len(details) != 1 || details[0].DefectTypeID != dt.ID {
		t.Fatalf("expected one detail for type %d, got %+v", dt.ID, details)
	}

	// Unknown defect type is rejected.
	rec = at.do(t, http.MethodPost, defectPath, opToken, map[string]any{"defect_type_id": 999999})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown defect type, got %d", rec.Code)
	}
}

func TestAPIHealthcheck(t *testing.T) {
	// Health endpoint sits outside the API group and needs no token; without
	// a DB pinger it reports ok.
	router := NewRouter(RouterConfig{
		GinMode:       gin.TestMode,
		HealthHandler: httpH.NewHealthHandler(nil),
	})
	req := httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
