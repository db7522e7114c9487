package httpadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ArbaazShaikh07/Ecomlytics/internal/config"
	"github.com/ArbaazShaikh07/Ecomlytics/internal/core/domain"
)

type fakeIngestor struct {
	job        *domain.UploadJob
	err        error
	gotDataset domain.Dataset
	gotBody    []byte
}

func (f *fakeIngestor) Upload(_ context.Context, dataset domain.Dataset, source io.Reader) (*domain.UploadJob, error) {
	f.gotDataset = dataset
	f.gotBody, _ = io.ReadAll(source)
	if f.err != nil {
		return nil, f.err
	}
	return f.job, nil
}

type fakeReports struct {
	kpis            *domain.KPIReport
	forecasts       []domain.Forecast
	customers       []domain.Customer
	recommendations []domain.Recommendation
	simulation      *domain.SimulationResult
	err             error
}

func (f *fakeReports) KPIs(context.Context) (*domain.KPIReport, error) { return f.kpis, f.err }
func (f *fakeReports) Forecasts(context.Context) ([]domain.Forecast, error) {
	return f.forecasts, f.err
}
func (f *fakeReports) ChurnRanking(context.Context) ([]domain.Customer, error) {
	return f.customers, f.err
}
func (f *fakeReports) Recommendations(context.Context) ([]domain.Recommendation, error) {
	return f.recommendations, f.err
}
func (f *fakeReports) Simulate(context.Context, string, float64) (*domain.SimulationResult, error) {
	return f.simulation, f.err
}

type fakeJobStore struct {
	job *domain.UploadJob
	err error
}

func (f *fakeJobStore) Create(context.Context, *domain.UploadJob) error { return nil }
func (f *fakeJobStore) GetByID(context.Context, string) (*domain.UploadJob, error) {
	return f.job, f.err
}
func (f *fakeJobStore) UpdateStatus(context.Context, string, domain.JobStatus, string) error {
	return nil
}

func testConfig() config.Config {
	return config.Config{
		CORSOrigins:       []string{"*"},
		APIRateLimitRPS:   1000,
		APIRateLimitBurst: 1000,
		APIMaxConcurrent:  16,
	}
}

func newHandler(ingest *fakeIngestor, reports *fakeReports, jobs *fakeJobStore) http.Handler {
	return NewRouter(testConfig(), ingest, reports, jobs, nil).Handler()
}

func multipartUpload(t *testing.T, target, csvBody string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "data.csv")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte(csvBody)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestRootBanner(t *testing.T) {
	handler := newHandler(&fakeIngestor{}, &fakeReports{}, &fakeJobStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["message"] != "Ecomlytics API" {
		t.Fatalf("unexpected banner: %v", body)
	}
}

func TestUploadReturnsAcceptedJob(t *testing.T) {
	ingest := &fakeIngestor{job: &domain.UploadJob{
		ID:          "job-1",
		Dataset:     domain.DatasetOrders,
		RecordCount: 2,
		Status:      domain.JobStatusReceived,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}}
	handler := newHandler(ingest, &fakeReports{}, &fakeJobStore{})

	req := multipartUpload(t, "/api/upload?collection=orders", "order_date,customer_id,product_id\n2024-01-15,C001,P001\n")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", res.Code, res.Body.String())
	}
	if ingest.gotDataset != domain.DatasetOrders {
		t.Fatalf("expected orders dataset, got %s", ingest.gotDataset)
	}

	var resp uploadResponse
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.RecordsProcessed != 2 || resp.Collection != "orders" {
		t.Fatalf("unexpected upload response: %+v", resp)
	}
	if resp.Job == nil || resp.Job.ID != "job-1" || resp.Job.Status != domain.JobStatusReceived {
		t.Fatalf("expected pollable job in response, got %+v", resp.Job)
	}
}

func TestUploadDefaultsToOrdersCollection(t *testing.T) {
	ingest := &fakeIngestor{job: &domain.UploadJob{ID: "job-1", Dataset: domain.DatasetOrders, Status: domain.JobStatusReceived}}
	handler := newHandler(ingest, &fakeReports{}, &fakeJobStore{})

	req := multipartUpload(t, "/api/upload", "order_date\n2024-01-15\n")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", res.Code)
	}
	if ingest.gotDataset != domain.DatasetOrders {
		t.Fatalf("expected default orders dataset, got %s", ingest.gotDataset)
	}
}

func TestUploadRejectsUnknownCollection(t *testing.T) {
	handler := newHandler(&fakeIngestor{}, &fakeReports{}, &fakeJobStore{})

	req := multipartUpload(t, "/api/upload?collection=payments", "a\n1\n")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
}

func TestUploadRequiresFileField(t *testing.T) {
	handler := newHandler(&fakeIngestor{}, &fakeReports{}, &fakeJobStore{})

	req := httptest.NewRequest(http.MethodPost, "/api/upload", strings.NewReader("not multipart"))
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
}

func TestUploadMapsInvalidInputTo400(t *testing.T) {
	ingest := &fakeIngestor{err: domain.WrapError(domain.ErrInvalidInput, "normalize orders", io.ErrUnexpectedEOF)}
	handler := newHandler(ingest, &fakeReports{}, &fakeJobStore{})

	req := multipartUpload(t, "/api/upload?collection=orders", "broken")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid csv, got %d", res.Code)
	}
}

func TestGetUploadJob(t *testing.T) {
	jobs := &fakeJobStore{job: &domain.UploadJob{ID: "job-7", Dataset: domain.DatasetCustomers, Status: domain.JobStatusReady}}
	handler := newHandler(&fakeIngestor{}, &fakeReports{}, jobs)

	req := httptest.NewRequest(http.MethodGet, "/api/uploads/job-7", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	var job domain.UploadJob
	if err := json.NewDecoder(res.Body).Decode(&job); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if job.ID != "job-7" || job.Status != domain.JobStatusReady {
		t.Fatalf("unexpected job: %+v", job)
	}
}

func TestGetUploadJobNotFound(t *testing.T) {
	jobs := &fakeJobStore{err: domain.WrapError(domain.ErrNotFound, "get upload job", io.EOF)}
	handler := newHandler(&fakeIngestor{}, &fakeReports{}, jobs)

	req := httptest.NewRequest(http.MethodGet, "/api/uploads/missing", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.Code)
	}
}

func TestGetForecastsEnvelope(t *testing.T) {
	reports := &fakeReports{forecasts: []domain.Forecast{
		{ID: "f-1", ProductID: "P001", ForecastDate: domain.NewDate(2024, 1, 20), PredictedQuantity: 2.5, Confidence: "medium"},
	}}
	handler := newHandler(&fakeIngestor{}, reports, &fakeJobStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/forecast", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	var body struct {
		Forecasts []domain.Forecast `json:"forecasts"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.Forecasts) != 1 || body.Forecasts[0].ProductID != "P001" {
		t.Fatalf("unexpected forecast envelope: %+v", body)
	}
}

func TestGetChurnEnvelope(t *testing.T) {
	reports := &fakeReports{customers: []domain.Customer{
		{CustomerID: "C002", ChurnProbability: 0.8},
		{CustomerID: "C001", ChurnProbability: 0.3},
	}}
	handler := newHandler(&fakeIngestor{}, reports, &fakeJobStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/churn", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	var body struct {
		Customers []domain.Customer `json:"customers"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.Customers) != 2 || body.Customers[0].CustomerID != "C002" {
		t.Fatalf("unexpected churn envelope: %+v", body)
	}
}

func TestGetKPIs(t *testing.T) {
	reports := &fakeReports{kpis: &domain.KPIReport{
		TotalRevenue:      2500,
		TotalOrders:       3,
		AvgOrderValue:     833.33,
		TopProducts:       []domain.ProductRevenue{},
		RevenueByCategory: []domain.CategoryRevenue{},
	}}
	handler := newHandler(&fakeIngestor{}, reports, &fakeJobStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/kpis", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	var report domain.KPIReport
	if err := json.NewDecoder(res.Body).Decode(&report); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if report.TotalRevenue != 2500 || report.TotalOrders != 3 {
		t.Fatalf("unexpected kpi report: %+v", report)
	}
}

func TestSimulateNoDataMapsTo422(t *testing.T) {
	reports := &fakeReports{err: domain.WrapError(domain.ErrNoData, "simulate", io.EOF)}
	handler := newHandler(&fakeIngestor{}, reports, &fakeJobStore{})

	payload := `{"scenario":"price_change","value":10}`
	req := httptest.NewRequest(http.MethodPost, "/api/simulate", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 without order data, got %d", res.Code)
	}
}

func TestSimulateReturnsResult(t *testing.T) {
	roi := 2.0
	reports := &fakeReports{simulation: &domain.SimulationResult{
		Scenario:         domain.ScenarioAdSpend,
		CurrentRevenue:   10000,
		SimulatedRevenue: 11000,
		Change:           1000,
		ChangePercent:    10,
		ROI:              &roi,
	}}
	handler := newHandler(&fakeIngestor{}, reports, &fakeJobStore{})

	payload := `{"scenario":"ad_spend","value":500}`
	req := httptest.NewRequest(http.MethodPost, "/api/simulate", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	var result domain.SimulationResult
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.ROI == nil || *result.ROI != 2 {
		t.Fatalf("expected roi 2, got %+v", result)
	}
}

func TestSimulateRequiresScenario(t *testing.T) {
	handler := newHandler(&fakeIngestor{}, &fakeReports{}, &fakeJobStore{})

	req := httptest.NewRequest(http.MethodPost, "/api/simulate", strings.NewReader(`{"value":10}`))
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
}

func TestExportCSVChurnReport(t *testing.T) {
	last := domain.NewDate(2024, 1, 16)
	reports := &fakeReports{customers: []domain.Customer{
		{CustomerID: "C001", Name: "John Doe", Email: "john@example.com", JoinDate: domain.NewDate(2023, 6, 15), LastPurchaseDate: &last, TotalSpent: 1275, OrderCount: 2, ChurnProbability: 0.42},
	}}
	handler := newHandler(&fakeIngestor{}, reports, &fakeJobStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/export/csv/churn", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", res.Code, res.Body.String())
	}
	if ct := res.Header().Get("Content-Type"); ct != "text/csv" {
		t.Fatalf("expected text/csv, got %s", ct)
	}
	if cd := res.Header().Get("Content-Disposition"); !strings.Contains(cd, "churn_report.csv") {
		t.Fatalf("unexpected content disposition: %s", cd)
	}
	if !strings.Contains(res.Body.String(), "C001") {
		t.Fatalf("expected customer row in csv, got %s", res.Body.String())
	}
}

func TestExportEmptyReportReturns404(t *testing.T) {
	handler := newHandler(&fakeIngestor{}, &fakeReports{}, &fakeJobStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/export/csv/forecast", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for empty report, got %d", res.Code)
	}
}

func TestExportRejectsUnknownReportAndFormat(t *testing.T) {
	reports := &fakeReports{forecasts: []domain.Forecast{{ID: "f-1"}}}
	handler := newHandler(&fakeIngestor{}, reports, &fakeJobStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/export/csv/payments", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)
	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown report, got %d", res.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/api/export/doc/forecast", nil)
	res2 := httptest.NewRecorder()
	handler.ServeHTTP(res2, req2)
	if res2.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown format, got %d", res2.Code)
	}
}

func TestSampleDataServesCannedCSV(t *testing.T) {
	handler := newHandler(&fakeIngestor{}, &fakeReports{}, &fakeJobStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/sample-data/orders", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	if !strings.HasPrefix(res.Body.String(), "order_date,customer_id,product_id") {
		t.Fatalf("unexpected sample csv: %s", res.Body.String())
	}

	reqBad := httptest.NewRequest(http.MethodGet, "/api/sample-data/payments", nil)
	resBad := httptest.NewRecorder()
	handler.ServeHTTP(resBad, reqBad)
	if resBad.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown sample type, got %d", resBad.Code)
	}
}

func TestEmbeddedSpecIsValid(t *testing.T) {
	if err := ValidateSpec(context.Background()); err != nil {
		t.Fatalf("ValidateSpec() error = %v", err)
	}
}

func TestServeSpec(t *testing.T) {
	handler := newHandler(&fakeIngestor{}, &fakeReports{}, &fakeJobStore{})

	req := httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	if !strings.Contains(res.Body.String(), "Ecomlytics API") {
		t.Fatalf("expected spec body, got %s", res.Body.String()[:64])
	}
}
