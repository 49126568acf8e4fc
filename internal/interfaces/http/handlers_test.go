package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/application/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/application/usecase"
	"github.com/jhoicas/stock-ledger-api/internal/domain/ledger"
	"github.com/jhoicas/stock-ledger-api/internal/infrastructure/memory"
	"github.com/jhoicas/stock-ledger-api/internal/infrastructure/pdf"
	"github.com/jhoicas/stock-ledger-api/internal/infrastructure/xlsx"
	apphttp "github.com/jhoicas/stock-ledger-api/internal/interfaces/http"
	"github.com/jhoicas/stock-ledger-api/pkg/metrics"
)

type apiClient struct {
	t   *testing.T
	app *fiber.App
}

func newAPI(t *testing.T) *apiClient {
	t.Helper()
	store := memory.NewStore()
	prods := memory.NewProductRepository(store)
	movs := memory.NewStockMovementRepository(store)
	m := metrics.New("api_test")

	ledgerUC := inventory.NewRegisterMovementUseCase(memory.NewTxRunner(store), prods, movs, nil,
		ledger.NewAdmissionPolicy(false), nil, inventory.NewMetricsHook(m))
	reports := inventory.NewStockReportUseCase(prods, movs, nil,
		pdf.NewMarotoPDFGenerator("stock-ledger"), xlsx.NewStatementExporter())

	app := apphttp.NewApp(apphttp.AppConfig{Name: "stock-ledger-test"}, nil)
	apphttp.Router(app, apphttp.RouterDeps{
		AppName:   "stock-ledger-test",
		ProductUC: usecase.NewProductUseCase(prods),
		Ledger:    ledgerUC,
		Reports:   reports,
		JWTSecret: testJWTSecret,
		Metrics:   m,
	})
	return &apiClient{t: t, app: app}
}

func (a *apiClient) do(method, path, role string, body any) (*http.Response, []byte) {
	a.t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(a.t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if role != "" {
		req.Header.Set("Authorization", tokenForRole(a.t, role))
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(a.t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(a.t, err)
	return resp, data
}

func (a *apiClient) createProduct(name string, minimum int64) int64 {
	a.t.Helper()
	resp, data := a.do(http.MethodPost, "/api/v1/products", "admin",
		map[string]any{"name": name, "price_minor_units": 1500, "minimum_stock": minimum})
	require.Equal(a.t, http.StatusCreated, resp.StatusCode, string(data))
	var out dto.ProductResponse
	require.NoError(a.t, json.Unmarshal(data, &out))
	return out.ID
}

func decodeError(t *testing.T, data []byte) dto.ErrorResponse {
	t.Helper()
	var e dto.ErrorResponse
	require.NoError(t, json.Unmarshal(data, &e), string(data))
	return e
}

func TestProducts_RoleRestrictedWrites(t *testing.T) {
	api := newAPI(t)

	resp, _ := api.do(http.MethodPost, "/api/v1/products", "vendedor", map[string]any{"name": "X", "price_minor_units": 1})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	id := api.createProduct("Café", 0)

	resp, data := api.do(http.MethodGet, fmt.Sprintf("/api/v1/products/%d", id), "vendedor", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(data), `"price":"15"`)

	resp, data = api.do(http.MethodPost, "/api/v1/products", "admin", map[string]any{"name": "CAFÉ", "price_minor_units": 10})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE", decodeError(t, data).Code)

	resp, data = api.do(http.MethodPost, "/api/v1/products", "admin", map[string]any{"name": "Sin precio"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	e := decodeError(t, data)
	assert.Equal(t, "VALIDATION", e.Code)
	assert.Contains(t, e.Details, "price_minor_units")

	resp, _ = api.do(http.MethodGet, "/api/v1/products/abc", "admin", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestStock_ScenarioOverHTTP(t *testing.T) {
	api := newAPI(t)
	id := api.createProduct("P", 10)

	resp, data := api.do(http.MethodPost, "/api/v1/stock/sale", "vendedor", map[string]any{"product_id": id, "quantity": 5})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	e := decodeError(t, data)
	assert.Equal(t, "INSUFFICIENT_BALANCE", e.Code)
	assert.EqualValues(t, 0, e.Details["balance"])
	assert.EqualValues(t, 5, e.Details["requested"])

	resp, data = api.do(http.MethodPost, "/api/v1/stock/return", "vendedor", map[string]any{"product_id": id, "quantity": 20})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))
	var mov dto.MovementResponse
	require.NoError(t, json.Unmarshal(data, &mov))
	assert.Equal(t, "INBOUND", mov.Type)
	require.NotNil(t, mov.Reason)
	assert.Equal(t, "return", *mov.Reason)

	resp, _ = api.do(http.MethodPost, "/api/v1/stock/sale", "vendedor", map[string]any{"product_id": id, "quantity": 15})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, data = api.do(http.MethodGet, fmt.Sprintf("/api/v1/stock/balance/%d", id), "vendedor", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var bal dto.BalanceResponse
	require.NoError(t, json.Unmarshal(data, &bal))
	assert.Equal(t, int64(5), bal.Balance)
	assert.Equal(t, "P", bal.ProductName)

	resp, data = api.do(http.MethodGet, "/api/v1/products/below-minimum", "vendedor", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var rows []dto.StockSummaryRow
	require.NoError(t, json.Unmarshal(data, &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, id, rows[0].ProductID)
	assert.True(t, rows[0].BelowMinimum)
}

func TestStock_InputErrors(t *testing.T) {
	api := newAPI(t)
	id := api.createProduct("Errores", 0)

	tests := []struct {
		name   string
		path   string
		role   string
		body   any
		status int
		code   string
	}{
		{"cantidad decimal", "/api/v1/stock/movements", "bodeguero", fmt.Sprintf(`{"product_id":%d,"type":"INBOUND","quantity":2.5}`, id), 422, "INVALID_QUANTITY"},
		{"cantidad cero", "/api/v1/stock/movements", "bodeguero", fmt.Sprintf(`{"product_id":%d,"type":"INBOUND","quantity":0}`, id), 422, "INVALID_QUANTITY"},
		{"cantidad texto", "/api/v1/stock/movements", "bodeguero", fmt.Sprintf(`{"product_id":%d,"type":"INBOUND","quantity":"abc"}`, id), 422, "INVALID_QUANTITY"},
		{"cantidad entre comillas", "/api/v1/stock/return", "vendedor", fmt.Sprintf(`{"product_id":%d,"quantity":"5"}`, id), 422, "INVALID_QUANTITY"},
		{"cantidad booleana", "/api/v1/stock/sale", "vendedor", fmt.Sprintf(`{"product_id":%d,"quantity":true}`, id), 422, "INVALID_QUANTITY"},
		{"cantidad desborda saldo", "/api/v1/stock/return", "vendedor", fmt.Sprintf(`{"product_id":%d,"quantity":9223372036854775807}`, id), 201, ""},
		{"segunda entrada desborda", "/api/v1/stock/return", "vendedor", fmt.Sprintf(`{"product_id":%d,"quantity":1}`, id), 422, "INVALID_QUANTITY"},
		{"tipo inválido", "/api/v1/stock/movements", "bodeguero", fmt.Sprintf(`{"product_id":%d,"type":"LOAN","quantity":1}`, id), 400, "VALIDATION"},
		{"sin producto", "/api/v1/stock/movements", "bodeguero", `{"type":"INBOUND","quantity":1}`, 400, "VALIDATION"},
		{"producto inexistente", "/api/v1/stock/movements", "bodeguero", `{"product_id":999,"type":"INBOUND","quantity":1}`, 404, "NOT_FOUND"},
		{"motivo corto", "/api/v1/stock/adjustment", "bodeguero", fmt.Sprintf(`{"product_id":%d,"type":"INBOUND","quantity":1,"reason":"x"}`, id), 422, "INVALID_REASON"},
		{"vendedor no ajusta", "/api/v1/stock/adjustment", "vendedor", fmt.Sprintf(`{"product_id":%d,"type":"INBOUND","quantity":1,"reason":"conteo"}`, id), 403, "FORBIDDEN"},
		{"json roto", "/api/v1/stock/sale", "vendedor", `{"product_id":`, 400, "INVALID_BODY"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, data := api.do(http.MethodPost, tt.path, tt.role, tt.body)
			assert.Equal(t, tt.status, resp.StatusCode, string(data))
			if tt.code != "" {
				assert.Equal(t, tt.code, decodeError(t, data).Code)
			}
		})
	}

	resp, data := api.do(http.MethodGet, fmt.Sprintf("/api/v1/stock/balance/%d", id), "admin", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(data), `"balance":9223372036854775807`)
}

func TestStock_StatementPaging(t *testing.T) {
	api := newAPI(t)
	id := api.createProduct("Extracto", 0)
	for i := 1; i <= 3; i++ {
		resp, _ := api.do(http.MethodPost, "/api/v1/stock/movements", "bodeguero",
			map[string]any{"product_id": id, "type": "INBOUND", "quantity": i})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, data := api.do(http.MethodGet, fmt.Sprintf("/api/v1/stock/statement/%d?limit=2&offset=0", id), "vendedor", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var page dto.StatementResponse
	require.NoError(t, json.Unmarshal(data, &page))
	require.Len(t, page.Items, 2)
	assert.Equal(t, int64(3), page.Items[0].Quantity)
	assert.Nil(t, page.Items[0].Reason)
	assert.Equal(t, 2, page.Page.Limit)

	resp, _ = api.do(http.MethodGet, fmt.Sprintf("/api/v1/stock/statement/%d?limit=abc", id), "vendedor", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp, _ = api.do(http.MethodGet, fmt.Sprintf("/api/v1/stock/statement/%d?offset=-1", id), "vendedor", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProducts_DeleteInUse(t *testing.T) {
	api := newAPI(t)
	used := api.createProduct("Usado", 0)
	free := api.createProduct("Libre", 0)

	resp, _ := api.do(http.MethodPost, "/api/v1/stock/return", "admin", map[string]any{"product_id": used, "quantity": 1})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, data := api.do(http.MethodDelete, fmt.Sprintf("/api/v1/products/%d", used), "admin", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "PRODUCT_IN_USE", decodeError(t, data).Code)

	resp, _ = api.do(http.MethodDelete, fmt.Sprintf("/api/v1/products/%d", free), "admin", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestReports_Exports(t *testing.T) {
	api := newAPI(t)
	id := api.createProduct("Exportable", 2)
	resp, _ := api.do(http.MethodPost, "/api/v1/stock/return", "admin", map[string]any{"product_id": id, "quantity": 4})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, data := api.do(http.MethodGet, fmt.Sprintf("/api/v1/stock/statement/%d/xlsx", id), "vendedor", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), ".xlsx")
	assert.True(t, bytes.HasPrefix(data, []byte("PK")))

	resp, data = api.do(http.MethodGet, "/api/v1/stock/summary/pdf", "vendedor", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))

	resp, data = api.do(http.MethodGet, "/api/v1/stock/summary", "vendedor", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(data), `"balance":4`)
}

func TestOpsEndpoints(t *testing.T) {
	api := newAPI(t)

	resp, data := api.do(http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(data), `"status":"ok"`)

	resp, _ = api.do(http.MethodGet, "/api/v1/stock/summary", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, data = api.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(data), `api_test_http_requests_total{method="GET",path="/health",status="200"} 1`)
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))
}
