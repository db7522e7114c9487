package httpadapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/ArbaazShaikh07/Ecomlytics/internal/adapters/export"
	"github.com/ArbaazShaikh07/Ecomlytics/internal/config"
	"github.com/ArbaazShaikh07/Ecomlytics/internal/core/domain"
	"github.com/ArbaazShaikh07/Ecomlytics/internal/core/ports"
	"github.com/ArbaazShaikh07/Ecomlytics/internal/observability/metrics"
)

const serviceName = "api"

type Router struct {
	cfg     config.Config
	ingest  ports.DatasetIngestor
	reports ports.AnalyticsReader
	jobs    ports.UploadJobStore
	metrics *metrics.APIMetrics
}

func NewRouter(
	cfg config.Config,
	ingest ports.DatasetIngestor,
	reports ports.AnalyticsReader,
	jobs ports.UploadJobStore,
	apiMetrics *metrics.APIMetrics,
) *Router {
	return &Router{
		cfg:     cfg,
		ingest:  ingest,
		reports: reports,
		jobs:    jobs,
		metrics: apiMetrics,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/api/upload", rt.uploadDataset)
	mux.HandleFunc("/api/uploads/", rt.getUploadJob)
	mux.HandleFunc("/api/kpis", rt.getKPIs)
	mux.HandleFunc("/api/forecast", rt.getForecasts)
	mux.HandleFunc("/api/churn", rt.getChurnRanking)
	mux.HandleFunc("/api/inventory", rt.getInventoryRecommendations)
	mux.HandleFunc("/api/simulate", rt.runSimulation)
	mux.HandleFunc("/api/export/", rt.exportReport)
	mux.HandleFunc("/api/sample-data/", rt.getSampleData)
	mux.HandleFunc("/api/", rt.root)
	mux.HandleFunc("/openapi.yaml", rt.serveSpec)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}

	var handler http.Handler = mux
	handler = backpressureMiddleware(handler, rt.cfg.APIMaxConcurrent, defaultBackpressureWait)
	handler = rateLimitMiddleware(handler, rt.cfg.APIRateLimitRPS, rt.cfg.APIRateLimitBurst)
	handler = corsMiddleware(handler, rt.cfg.CORSOrigins)
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(serviceName, handler)
	}
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) root(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/api/" && r.URL.Path != "/api" {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Ecomlytics API"})
}

type uploadResponse struct {
	Message          string            `json:"message"`
	RecordsProcessed int               `json:"records_processed"`
	Collection       string            `json:"collection"`
	Job              *domain.UploadJob `json:"job"`
}

func (rt *Router) uploadDataset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	collection := r.URL.Query().Get("collection")
	if collection == "" {
		collection = r.FormValue("collection")
	}
	if collection == "" {
		collection = string(domain.DatasetOrders)
	}
	dataset, err := domain.ParseDataset(collection)
	if err != nil {
		writeError(w, err)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart field 'file' is required"})
		return
	}
	defer file.Close()

	job, err := rt.ingest.Upload(r.Context(), dataset, file)
	if err != nil {
		if rt.metrics != nil {
			rt.metrics.RecordUpload(serviceName, string(dataset), "rejected", 0)
		}
		writeError(w, err)
		return
	}
	if rt.metrics != nil {
		rt.metrics.RecordUpload(serviceName, string(dataset), "accepted", job.RecordCount)
	}

	writeJSON(w, http.StatusAccepted, uploadResponse{
		Message:          fmt.Sprintf("Successfully uploaded %s", dataset),
		RecordsProcessed: job.RecordCount,
		Collection:       string(dataset),
		Job:              job,
	})
}

func (rt *Router) getUploadJob(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/uploads/")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "upload job id is required"})
		return
	}

	job, err := rt.jobs.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (rt *Router) getKPIs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	report, err := rt.reports.KPIs(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if rt.metrics != nil {
		rt.metrics.RecordReport(serviceName, "kpis")
	}
	writeJSON(w, http.StatusOK, report)
}

func (rt *Router) getForecasts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	forecasts, err := rt.reports.Forecasts(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if rt.metrics != nil {
		rt.metrics.RecordReport(serviceName, "forecast")
	}
	writeJSON(w, http.StatusOK, map[string]any{"forecasts": forecasts})
}

func (rt *Router) getChurnRanking(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	customers, err := rt.reports.ChurnRanking(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if rt.metrics != nil {
		rt.metrics.RecordReport(serviceName, "churn")
	}
	writeJSON(w, http.StatusOK, map[string]any{"customers": customers})
}

func (rt *Router) getInventoryRecommendations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	recommendations, err := rt.reports.Recommendations(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if rt.metrics != nil {
		rt.metrics.RecordReport(serviceName, "inventory")
	}
	writeJSON(w, http.StatusOK, map[string]any{"inventory": recommendations})
}

func (rt *Router) runSimulation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req struct {
		Scenario  string  `json:"scenario"`
		Parameter string  `json:"parameter"`
		Value     float64 `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(req.Scenario) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "scenario is required"})
		return
	}

	result, err := rt.reports.Simulate(r.Context(), req.Scenario, req.Value)
	if err != nil {
		writeError(w, err)
		return
	}
	if rt.metrics != nil {
		rt.metrics.RecordSimulation(serviceName, req.Scenario)
	}
	writeJSON(w, http.StatusOK, result)
}

func (rt *Router) exportReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/api/export/"), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "export path must be /api/export/{format}/{report}"})
		return
	}
	format, report := parts[0], parts[1]

	table, err := rt.buildReportTable(r, report)
	if err != nil {
		writeError(w, err)
		return
	}
	if len(table.Rows) == 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no data available"})
		return
	}

	if rt.metrics != nil {
		rt.metrics.RecordExport(serviceName, format, report)
	}

	filename := fmt.Sprintf("%s_report.%s", report, format)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	switch format {
	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		err = export.WriteCSV(w, table)
	case "xlsx":
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		err = export.WriteXLSX(w, table)
	case "pdf":
		w.Header().Set("Content-Type", "application/pdf")
		err = export.WritePDF(w, table)
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid export format"})
		return
	}
	if err != nil {
		writeError(w, err)
	}
}

func (rt *Router) buildReportTable(r *http.Request, report string) (export.Table, error) {
	switch report {
	case "churn":
		customers, err := rt.reports.ChurnRanking(r.Context())
		if err != nil {
			return export.Table{}, err
		}
		return export.ChurnTable(customers), nil
	case "forecast":
		forecasts, err := rt.reports.Forecasts(r.Context())
		if err != nil {
			return export.Table{}, err
		}
		return export.ForecastTable(forecasts), nil
	case "inventory":
		recommendations, err := rt.reports.Recommendations(r.Context())
		if err != nil {
			return export.Table{}, err
		}
		return export.InventoryTable(recommendations), nil
	default:
		return export.Table{}, domain.WrapError(domain.ErrInvalidInput, "export report", fmt.Errorf("invalid report type %q", report))
	}
}

func (rt *Router) getSampleData(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	dataType := strings.TrimPrefix(r.URL.Path, "/api/sample-data/")
	sample, ok := sampleCSV[dataType]
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid data type"})
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=sample_%s.csv", dataType))
	_, _ = w.Write([]byte(sample))
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
}
