package resumes_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-builder-backend/internal/bootstrap"
	"resume-builder-backend/internal/shared/auth"
	"resume-builder-backend/internal/shared/config"
)

func newTestApp(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Port:            "0",
		Env:             "dev",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		ObjectStoreType: "local",
		LocalStoreDir:   t.TempDir(),
	}
	app, err := bootstrap.Build(cfg)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	return app.Router
}

func authHeader(t *testing.T, userID string) string {
	t.Helper()
	token, err := auth.SignJWT(auth.Claims{Sub: userID, Email: userID + "@example.com"})
	if err != nil {
		t.Fatalf("sign jwt: %v", err)
	}
	return "Bearer " + token
}

func doJSON(t *testing.T, router *gin.Engine, method, path, user string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Buffer
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewBuffer(payload)
	} else {
		reader = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", authHeader(t, user))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestResumeCRUDFlow(t *testing.T) {
	router := newTestApp(t)

	createResp := doJSON(t, router, http.MethodPost, "/api/v1/resumes", "user-1", map[string]any{
		"title": "Backend Engineer",
		"content": map[string]any{
			"personalInfo": map[string]any{"fullName": "Dana Smith", "email": "dana@example.com"},
		},
		"tags": []string{"backend"},
	})
	if createResp.Code != http.StatusCreated {
		t.Fatalf("create status = %d body = %s", createResp.Code, createResp.Body.String())
	}
	var created struct {
		ResumeID string `json:"resumeId"`
		Title    string `json:"title"`
	}
	if err := json.NewDecoder(createResp.Body).Decode(&created); err != nil {
		t.Fatalf("decode create: %v", err)
	}
	if created.ResumeID == "" || created.Title != "Backend Engineer" {
		t.Fatalf("unexpected create payload: %+v", created)
	}

	getResp := doJSON(t, router, http.MethodGet, "/api/v1/resumes/"+created.ResumeID, "user-1", nil)
	if getResp.Code != http.StatusOK {
		t.Fatalf("get status = %d", getResp.Code)
	}

	listResp := doJSON(t, router, http.MethodGet, "/api/v1/resumes?search=Backend", "user-1", nil)
	if listResp.Code != http.StatusOK {
		t.Fatalf("list status = %d", listResp.Code)
	}
	var listed struct {
		Items      []json.RawMessage `json:"items"`
		TotalCount int               `json:"totalCount"`
	}
	if err := json.NewDecoder(listResp.Body).Decode(&listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if listed.TotalCount != 1 || len(listed.Items) != 1 {
		t.Fatalf("list = %+v", listed)
	}

	updateResp := doJSON(t, router, http.MethodPut, "/api/v1/resumes/"+created.ResumeID, "user-1", map[string]any{
		"title": "Staff Engineer",
	})
	if updateResp.Code != http.StatusOK {
		t.Fatalf("update status = %d body = %s", updateResp.Code, updateResp.Body.String())
	}

	deleteResp := doJSON(t, router, http.MethodDelete, "/api/v1/resumes/"+created.ResumeID, "user-1", nil)
	if deleteResp.Code != http.StatusOK {
		t.Fatalf("delete status = %d", deleteResp.Code)
	}
	goneResp := doJSON(t, router, http.MethodGet, "/api/v1/resumes/"+created.ResumeID, "user-1", nil)
	if goneResp.Code != http.StatusNotFound {
		t.Fatalf("get after delete status = %d, want 404", goneResp.Code)
	}
}

func TestResumeOwnershipEnforced(t *testing.T) {
	router := newTestApp(t)

	createResp := doJSON(t, router, http.MethodPost, "/api/v1/resumes", "owner", map[string]any{
		"title": "Private Resume",
		"content": map[string]any{
			"personalInfo": map[string]any{"fullName": "Owner", "email": "owner@example.com"},
		},
	})
	if createResp.Code != http.StatusCreated {
		t.Fatalf("create status = %d", createResp.Code)
	}
	var created struct {
		ResumeID string `json:"resumeId"`
	}
	if err := json.NewDecoder(createResp.Body).Decode(&created); err != nil {
		t.Fatalf("decode create: %v", err)
	}

	getResp := doJSON(t, router, http.MethodGet, "/api/v1/resumes/"+created.ResumeID, "intruder", nil)
	if getResp.Code != http.StatusForbidden {
		t.Fatalf("cross-user get status = %d, want 403", getResp.Code)
	}

	noAuth := httptest.NewRequest(http.MethodGet, "/api/v1/resumes", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, noAuth)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated status = %d, want 401", resp.Code)
	}
}

func TestResumeDuplicate(t *testing.T) {
	router := newTestApp(t)

	createResp := doJSON(t, router, http.MethodPost, "/api/v1/resumes", "user-1", map[string]any{
		"title": "Backend Engineer",
		"content": map[string]any{
			"personalInfo": map[string]any{"fullName": "Dana Smith", "email": "dana@example.com"},
		},
	})
	var created struct {
		ResumeID string `json:"resumeId"`
	}
	if err := json.NewDecoder(createResp.Body).Decode(&created); err != nil {
		t.Fatalf("decode create: %v", err)
	}

	dupResp := doJSON(t, router, http.MethodPost, "/api/v1/resumes/"+created.ResumeID+"/duplicate", "user-1", nil)
	if dupResp.Code != http.StatusCreated {
		t.Fatalf("duplicate status = %d body = %s", dupResp.Code, dupResp.Body.String())
	}
	var dup struct {
		ResumeID string `json:"resumeId"`
		Title    string `json:"title"`
	}
	if err := json.NewDecoder(dupResp.Body).Decode(&dup); err != nil {
		t.Fatalf("decode duplicate: %v", err)
	}
	if dup.ResumeID == created.ResumeID {
		t.Fatalf("duplicate shares the source ID")
	}
	if dup.Title != "Backend Engineer (Copy)" {
		t.Fatalf("duplicate title = %q", dup.Title)
	}
}
