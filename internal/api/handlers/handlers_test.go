package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ndmlabs/dealfeed/internal/domain"
	"github.com/ndmlabs/dealfeed/internal/ingest"
	"github.com/ndmlabs/dealfeed/internal/posts"
	"github.com/ndmlabs/dealfeed/internal/redirect"
	"github.com/ndmlabs/dealfeed/internal/store"
)

const testCSV = "title,brand,model_number,price,reviews,dealUrl\n" +
	"Roomba 694,iRobot,R694020,$299.00,4.4,https://www.amazon.com/dp/B08SGC46M9\n"

const iphoneUA = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15"

func newImportHandler() (ImportHandler, *store.MemoryStore) {
	st := store.NewMemoryStore()
	return ImportHandler{
		Processor: ingest.Processor{Catalog: st, Tag: "ndmlabs-20"},
	}, st
}

func TestImportHandler_RawCSVBody(t *testing.T) {
	h, st := newImportHandler()

	req := httptest.NewRequest(http.MethodPost, "/v1/catalog/import", strings.NewReader(testCSV))
	req.Header.Set("Content-Type", "text/csv")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}

	var report ingest.Report
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if report.Stats.TotalRows != 1 || report.Stats.ValidRows != 1 {
		t.Fatalf("stats = %+v", report.Stats)
	}
	if report.RunID == "" {
		t.Fatal("report missing run id")
	}

	items, err := st.ListProducts(req.Context(), 0)
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if len(items) != 1 || items[0].ModelNumber != "R694020" {
		t.Fatalf("stored products = %+v", items)
	}
}

func TestImportHandler_MultipartUpload(t *testing.T) {
	h, _ := newImportHandler()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "products.csv")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte(testCSV)); err != nil {
		t.Fatalf("write part: %v", err)
	}
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/v1/catalog/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
}

func TestImportHandler_RejectsNonCSVExtension(t *testing.T) {
	h, _ := newImportHandler()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, _ := mw.CreateFormFile("file", "products.xlsx")
	_, _ = part.Write([]byte(testCSV))
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/v1/catalog/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestImportHandler_HeaderOnlyFileIsBadRequest(t *testing.T) {
	h, _ := newImportHandler()

	req := httptest.NewRequest(http.MethodPost, "/v1/catalog/import",
		strings.NewReader("title,brand,model_number,price,reviews,dealUrl\n"))
	req.Header.Set("Content-Type", "text/csv")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestImportHandler_AllInvalidRowsIsUnprocessable(t *testing.T) {
	h, _ := newImportHandler()

	csv := "title,brand,model_number,price,reviews,dealUrl\n" +
		"Roomba 694,iRobot,R694020,not-a-price,4.4,https://www.amazon.com/dp/B08SGC46M9\n"
	req := httptest.NewRequest(http.MethodPost, "/v1/catalog/import", strings.NewReader(csv))
	req.Header.Set("Content-Type", "text/csv")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422 (body %s)", rec.Code, rec.Body.String())
	}

	var report ingest.Report
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if report.Stats.Errors != 1 {
		t.Fatalf("stats = %+v", report.Stats)
	}
}

func TestProductsHandler_Limit(t *testing.T) {
	st := store.NewMemoryStore()
	ctx := httptest.NewRequest(http.MethodGet, "/", nil).Context()
	for _, model := range []string{"A", "B", "C"} {
		p := domain.Product{ID: model, ModelNumber: model, Title: "Vac " + model}
		if err := st.InsertProduct(ctx, p); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	h := ProductsHandler{Store: st}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/catalog/products?limit=2", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp struct {
		Items []domain.Product `json:"items"`
		Count int              `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Count != 2 || len(resp.Items) != 2 {
		t.Fatalf("count = %d, items = %d", resp.Count, len(resp.Items))
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/catalog/products?limit=zero", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad limit status = %d, want 400", rec.Code)
	}
}

func TestRedirectPlanHandler(t *testing.T) {
	h := RedirectPlanHandler{Resolver: redirect.Resolver{Tag: "ndmlabs-20"}}

	req := httptest.NewRequest(http.MethodGet,
		"/v1/redirect/plan?url="+
			"https%3A%2F%2Fwww.amazon.com%2Fdp%2FB08SGC46M9", nil)
	req.Header.Set("User-Agent", iphoneUA)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}

	var plan redirect.Plan
	if err := json.Unmarshal(rec.Body.Bytes(), &plan); err != nil {
		t.Fatalf("decode plan: %v", err)
	}
	if plan.Platform != redirect.PlatformIOS {
		t.Fatalf("platform = %q, want ios", plan.Platform)
	}
	if plan.ASIN != "B08SGC46M9" {
		t.Fatalf("asin = %q", plan.ASIN)
	}
	if !strings.Contains(plan.WebURL, "tag=ndmlabs-20") {
		t.Fatalf("web url missing tag: %q", plan.WebURL)
	}
}

func TestRedirectPlanHandler_MissingURL(t *testing.T) {
	h := RedirectPlanHandler{Resolver: redirect.Resolver{Tag: "ndmlabs-20"}}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/redirect/plan", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

const testPostHTML = `<html><head><title>Best Budget Robot Vacuums</title></head>
<body><p>Our picks for small apartments.</p><h2>Top choice</h2></body></html>`

func TestPostHandlers_ImportListGet(t *testing.T) {
	svc := posts.Service{Store: store.NewMemoryStore()}

	importH := PostImportHandler{Service: svc}
	req := httptest.NewRequest(http.MethodPost, "/v1/posts/import", strings.NewReader(testPostHTML))
	req.Header.Set("Content-Type", "text/html")
	rec := httptest.NewRecorder()
	importH.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("import status = %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}
	var created domain.Post
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode post: %v", err)
	}
	if created.Slug != "best-budget-robot-vacuums" {
		t.Fatalf("slug = %q", created.Slug)
	}

	postsH := PostsHandler{Service: svc}

	rec = httptest.NewRecorder()
	postsH.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/posts", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d, want 200", rec.Code)
	}
	var listResp struct {
		Items []domain.Post `json:"items"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &listResp); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listResp.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(listResp.Items))
	}

	rec = httptest.NewRecorder()
	postsH.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/posts/"+created.Slug, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d, want 200", rec.Code)
	}

	rec = httptest.NewRecorder()
	postsH.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/posts/no-such-post", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing post status = %d, want 404", rec.Code)
	}
}

func TestPostImportHandler_EmptyBody(t *testing.T) {
	h := PostImportHandler{Service: posts.Service{Store: store.NewMemoryStore()}}

	req := httptest.NewRequest(http.MethodPost, "/v1/posts/import", strings.NewReader("  \n"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHealthHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	HealthHandler{}.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Fatalf("body = %q", rec.Body.String())
	}
}
