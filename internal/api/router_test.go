package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/api"
	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/model"
	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/pkg/jwt"
	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/report"
	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/repository"
	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/service"
	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type generateResponse struct {
	Report    model.ReportRecord `json:"report"`
	Persisted bool               `json:"persisted"`
	Warning   string             `json:"warning"`
}

func setup(t *testing.T) *gin.Engine {
	t.Helper()
	require.NoError(t, repository.InitDB(repository.DriverSQLite, filepath.Join(t.TempDir(), "hotel.db")))
	t.Cleanup(func() { _ = repository.Close() })

	st := store.NewLocal()
	svc := service.NewReportService(st, report.NewDefaultRegistry(report.NewPDFRenderer(nil, st)), service.Options{
		HotelName:    "Lavimac Royal Hotel",
		ShareBaseURL: "http://localhost:8080",
		Formatter:    report.Formatter{CurrencySymbol: "$"},
	})

	gin.SetMode(gin.TestMode)
	r := gin.New()
	api.SetupRouter(r, svc, testSecret)
	return r
}

func do(r http.Handler, method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func generate(t *testing.T, r http.Handler, body string, header map[string]string) generateResponse {
	t.Helper()
	w := do(r, http.MethodPost, "/api/reports", body, header)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var res generateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return res
}

func TestHealthAndCORS(t *testing.T) {
	r := setup(t)

	w := do(r, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)

	w = do(r, http.MethodOptions, "/api/reports", "", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestGenerateReport(t *testing.T) {
	r := setup(t)

	t.Run("anonymous caller uses the default preparer", func(t *testing.T) {
		res := generate(t, r, `{"date_range":"30days","report_type":"summary","format":"csv"}`, nil)
		assert.True(t, res.Persisted)
		assert.Empty(t, res.Warning)
		assert.Equal(t, "Hotel Manager", res.Report.GeneratedBy)
		assert.Equal(t, "Summary Report", res.Report.Name)
		require.NotNil(t, res.Report.PreviewData.Table)
		assert.Equal(t, []string{"Date", "Revenue", "Occupancy"}, res.Report.PreviewData.Table.Headers)
	})

	t.Run("token username becomes the preparer", func(t *testing.T) {
		token, err := jwt.GenerateToken(testSecret, "u-1", "amara", time.Hour)
		require.NoError(t, err)
		res := generate(t, r, `{"date_range":"7days","report_type":"financial","format":"xlsx"}`,
			map[string]string{"Authorization": "Bearer " + token})
		assert.Equal(t, "amara", res.Report.GeneratedBy)
		assert.Equal(t, model.FormatExcel, res.Report.Type)
	})

	t.Run("invalid token", func(t *testing.T) {
		w := do(r, http.MethodPost, "/api/reports", `{"date_range":"7days","report_type":"summary","format":"pdf"}`,
			map[string]string{"Authorization": "Bearer nope"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	for name, body := range map[string]string{
		"bad range":     `{"date_range":"2days","report_type":"summary","format":"pdf"}`,
		"bad type":      `{"date_range":"7days","report_type":"weekly","format":"pdf"}`,
		"bad format":    `{"date_range":"7days","report_type":"summary","format":"docx"}`,
		"missing field": `{"date_range":"7days","report_type":"summary"}`,
		"not json":      `date_range=7days`,
	} {
		t.Run(name, func(t *testing.T) {
			w := do(r, http.MethodPost, "/api/reports", body, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), `"detail"`)
		})
	}
}

func TestReportLifecycle(t *testing.T) {
	r := setup(t)
	first := generate(t, r, `{"date_range":"7days","report_type":"guests","format":"csv"}`, nil)
	second := generate(t, r, `{"date_range":"7days","report_type":"summary","format":"pdf"}`, nil)
	id := first.Report.ID

	t.Run("list omits payloads, newest first", func(t *testing.T) {
		w := do(r, http.MethodGet, "/api/reports", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var body struct {
			Reports []model.ReportRecord `json:"reports"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body.Reports, 2)
		assert.Equal(t, second.Report.ID, body.Reports[0].ID)
		for _, rep := range body.Reports {
			assert.Empty(t, rep.FileContent)
		}
		assert.NotContains(t, w.Body.String(), "base64")
	})

	t.Run("get", func(t *testing.T) {
		w := do(r, http.MethodGet, "/api/reports/"+id, "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "data:text/csv;base64,")
	})

	t.Run("download", func(t *testing.T) {
		w := do(r, http.MethodGet, "/api/reports/"+id+"/download", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), first.Report.Filename)
		assert.True(t, strings.HasPrefix(w.Body.String(), "# Lavimac Royal Hotel - Guests Report"))
	})

	t.Run("preview json", func(t *testing.T) {
		w := do(r, http.MethodGet, "/api/reports/"+id+"/preview", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"viewer":"table"`)
		assert.Contains(t, w.Body.String(), "/reports/"+id+"/preview")

		w = do(r, http.MethodGet, "/api/reports/"+id+"/preview?open=false", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"open":false`)

		w = do(r, http.MethodGet, "/api/reports/"+id+"/preview?open=maybe", "", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("preview page", func(t *testing.T) {
		w := do(r, http.MethodGet, "/reports/"+second.Report.ID+"/preview", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, w.Body.String(), "data:application/pdf;base64,")

		w = do(r, http.MethodGet, "/reports/missing/preview", "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("email share without smtp", func(t *testing.T) {
		w := do(r, http.MethodPost, "/api/reports/"+id+"/share/email", `{"to":"gm@example.com"}`, nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)

		w = do(r, http.MethodPost, "/api/reports/"+id+"/share/email", `{"to":"not-an-address"}`, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("delete", func(t *testing.T) {
		w := do(r, http.MethodDelete, "/api/reports/"+id, "", nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = do(r, http.MethodGet, "/api/reports/"+id, "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		w = do(r, http.MethodDelete, "/api/reports/"+id, "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDashboard(t *testing.T) {
	r := setup(t)

	w := do(r, http.MethodGet, "/api/dashboard?range=30days", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Label   string `json:"label"`
		Dataset struct {
			Revenue []json.RawMessage `json:"revenueSeries"`
		} `json:"dataset"`
		Highlights []model.HighlightMetric `json:"highlights"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Last 30 Days", body.Label)
	assert.Len(t, body.Dataset.Revenue, 31)
	assert.Len(t, body.Highlights, 5)

	w = do(r, http.MethodGet, "/api/dashboard?range=fortnight", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCurrentUser(t *testing.T) {
	r := setup(t)

	w := do(r, http.MethodGet, "/api/me", "", nil)
	assert.JSONEq(t, `{"authenticated":false}`, w.Body.String())

	token, err := jwt.GenerateToken(testSecret, "u-7", "kwame", time.Hour)
	require.NoError(t, err)
	w = do(r, http.MethodGet, "/api/me", "", map[string]string{"Authorization": "Bearer " + token})
	assert.JSONEq(t, `{"authenticated":true,"user_id":"u-7","username":"kwame"}`, w.Body.String())
}
