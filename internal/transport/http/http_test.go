package httptransport

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/corray333/backend-labs/restaurant/internal/dal/interfaces/iuow"
	foodmemory "github.com/corray333/backend-labs/restaurant/internal/dal/repositories/food/memory"
	ordermemory "github.com/corray333/backend-labs/restaurant/internal/dal/repositories/order/memory"
	"github.com/corray333/backend-labs/restaurant/internal/dal/uow"
	"github.com/corray333/backend-labs/restaurant/internal/service/services/billingsvc"
	"github.com/corray333/backend-labs/restaurant/internal/service/services/menusvc"
	"github.com/corray333/backend-labs/restaurant/internal/service/services/ordersvc"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	orders := ordermemory.NewOrderRepository()
	foods := foodmemory.NewFoodRepository()
	newUOW := func() iuow.IUnitOfWork { return uow.NewMemoryUnitOfWork(orders) }

	orderSvc := ordersvc.MustNewOrderService(
		ordersvc.WithOrderRepository(orders),
		ordersvc.WithCatalog(foods),
		ordersvc.WithUnitOfWork(newUOW),
	)
	billingSvc := billingsvc.MustNewBillingService(
		billingsvc.WithOrderRepository(orders),
		billingsvc.WithCatalog(foods),
		billingsvc.WithUnitOfWork(newUOW),
	)
	menuSvc := menusvc.MustNewMenuService(menusvc.WithFoodRepository(foods))

	transport := NewHTTPTransport(orderSvc, billingSvc, menuSvc)
	transport.RegisterRoutes()

	srv := httptest.NewServer(transport.Handler())
	t.Cleanup(srv.Close)

	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path, body string) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req, err := http.NewRequest(method, srv.URL+path, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}

	result := map[string]any{}
	if len(raw) > 0 && raw[0] == '{' {
		if err := json.Unmarshal(raw, &result); err != nil {
			t.Fatalf("decode %s: %v", raw, err)
		}
	}

	return resp.StatusCode, result
}

func doList(t *testing.T, srv *httptest.Server, path string) []map[string]any {
	t.Helper()

	resp, err := http.Get(srv.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET %s: expected 200, got %d", path, resp.StatusCode)
	}

	var result []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}

	return result
}

func expectError(t *testing.T, status int, body map[string]any, wantStatus int, wantMsg string) {
	t.Helper()

	if status != wantStatus {
		t.Errorf("expected status %d, got %d (%v)", wantStatus, status, body)
	}
	if body["error"] != wantMsg {
		t.Errorf("expected error %q, got %v", wantMsg, body["error"])
	}
}

func createFood(t *testing.T, srv *httptest.Server, name string, price int) string {
	t.Helper()

	status, body := do(t, srv, http.MethodPost, "/api/foods",
		`{"name":"`+name+`","price":`+itoa(price)+`}`)
	if status != http.StatusCreated {
		t.Fatalf("create food: expected 201, got %d (%v)", status, body)
	}

	return body["id"].(string)
}

func itoa(n int) string {
	b, _ := json.Marshal(n)

	return string(b)
}

func TestOrderAndBillingFlow(t *testing.T) {
	srv := newTestServer(t)

	pho := createFood(t, srv, "Pho", 30000)
	tea := createFood(t, srv, "Tea", 10000)

	status, created := do(t, srv, http.MethodPost, "/api/orders",
		`{"table":5,"items":[{"food":"`+pho+`","quantity":2}]}`)
	if status != http.StatusCreated {
		t.Fatalf("create order: expected 201, got %d (%v)", status, created)
	}
	if created["subtotal"] != float64(60000) || created["status"] != "open" {
		t.Errorf("unexpected order: %v", created)
	}
	orderID := created["id"].(string)

	status, second := do(t, srv, http.MethodPost, "/api/orders",
		`{"table":5,"items":[{"food":"`+tea+`","quantity":4,"note":"no sugar"}]}`)
	if status != http.StatusCreated {
		t.Fatalf("create second order: expected 201, got %d", status)
	}

	status, updated := do(t, srv, http.MethodPatch, "/api/orders/"+second["id"].(string)+"/add-items",
		`{"items":[{"food":"`+tea+`","quantity":1}]}`)
	if status != http.StatusOK || updated["subtotal"] != float64(50000) {
		t.Errorf("add items: got %d %v", status, updated)
	}

	status, got := do(t, srv, http.MethodGet, "/api/orders/"+orderID, "")
	if status != http.StatusOK {
		t.Fatalf("get order: expected 200, got %d", status)
	}
	items := got["items"].([]any)
	foodDetails := items[0].(map[string]any)["food"].(map[string]any)
	if foodDetails["name"] != "Pho" {
		t.Errorf("expected resolved food, got %v", foodDetails)
	}

	status, bill := do(t, srv, http.MethodGet, "/api/billing/table/5", "")
	if status != http.StatusOK {
		t.Fatalf("bill: expected 200, got %d", status)
	}
	if bill["total"] != float64(110000) || bill["unpaidOrderCount"] != float64(2) || bill["currency"] != "VND" {
		t.Errorf("unexpected bill: %v", bill)
	}

	status, payment := do(t, srv, http.MethodPost, "/api/billing/table/5/pay", "")
	if status != http.StatusOK {
		t.Fatalf("pay: expected 200, got %d", status)
	}
	if payment["paidCount"] != float64(2) || payment["total"] != float64(110000) ||
		payment["message"] != "All unpaid orders are now paid" || payment["paidAt"] == nil {
		t.Errorf("unexpected payment: %v", payment)
	}

	status, again := do(t, srv, http.MethodPost, "/api/billing/table/5/pay", "")
	if status != http.StatusOK || again["paidCount"] != float64(0) || again["total"] != float64(0) ||
		again["message"] != "No unpaid orders for this table" {
		t.Errorf("expected zero payment, got %d %v", status, again)
	}
	if ids, ok := again["orderIds"].([]any); !ok || len(ids) != 0 {
		t.Errorf("expected empty orderIds, got %v", again["orderIds"])
	}

	status, closed := do(t, srv, http.MethodPatch, "/api/orders/"+orderID+"/add-items",
		`{"items":[{"food":"`+pho+`","quantity":1}]}`)
	expectError(t, status, closed, http.StatusBadRequest, "Cannot add items to a closed order")

	paid := doList(t, srv, "/api/orders?table=5&status=paid")
	if len(paid) != 2 {
		t.Errorf("expected 2 paid orders for table 5, got %d", len(paid))
	}
}

func TestDeletedFoodIsNullInOrder(t *testing.T) {
	srv := newTestServer(t)

	pho := createFood(t, srv, "Pho", 30000)
	_, created := do(t, srv, http.MethodPost, "/api/orders",
		`{"table":1,"items":[{"food":"`+pho+`","quantity":1}]}`)

	status, deleted := do(t, srv, http.MethodDelete, "/api/foods/"+pho, "")
	if status != http.StatusOK || deleted["message"] != "Deleted" {
		t.Fatalf("delete food: got %d %v", status, deleted)
	}

	_, got := do(t, srv, http.MethodGet, "/api/orders/"+created["id"].(string), "")
	item := got["items"].([]any)[0].(map[string]any)
	if item["food"] != nil {
		t.Errorf("expected null food, got %v", item["food"])
	}
	if got["subtotal"] != float64(30000) {
		t.Errorf("expected stored subtotal to stay, got %v", got["subtotal"])
	}
}

func TestErrorResponses(t *testing.T) {
	srv := newTestServer(t)
	pho := createFood(t, srv, "Pho", 30000)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		msg    string
	}{
		{"missing table", http.MethodPost, "/api/orders", `{"items":[{"food":"` + pho + `","quantity":1}]}`, 400, "table and non-empty items[] are required"},
		{"empty items", http.MethodPost, "/api/orders", `{"table":1,"items":[]}`, 400, "table and non-empty items[] are required"},
		{"malformed food id", http.MethodPost, "/api/orders", `{"table":1,"items":[{"food":"nope","quantity":1}]}`, 400, "Invalid food id in items"},
		{"unknown food", http.MethodPost, "/api/orders", `{"table":1,"items":[{"food":"2b1d6f44-8b4e-4a55-9a0b-0f5d1d7e1c11","quantity":1}]}`, 400, "Invalid food id"},
		{"zero quantity", http.MethodPost, "/api/orders", `{"table":1,"items":[{"food":"` + pho + `","quantity":0}]}`, 400, "Invalid quantity in items"},
		{"invalid json", http.MethodPost, "/api/orders", `{"table":`, 400, "Invalid JSON body"},
		{"invalid order id", http.MethodGet, "/api/orders/abc", "", 400, "Invalid id"},
		{"unknown order", http.MethodGet, "/api/orders/2b1d6f44-8b4e-4a55-9a0b-0f5d1d7e1c11", "", 404, "Order not found"},
		{"add items without items", http.MethodPatch, "/api/orders/2b1d6f44-8b4e-4a55-9a0b-0f5d1d7e1c11/add-items", `{}`, 400, "items[] required"},
		{"add items to unknown order", http.MethodPatch, "/api/orders/2b1d6f44-8b4e-4a55-9a0b-0f5d1d7e1c11/add-items", `{"items":[{"food":"` + pho + `","quantity":1}]}`, 404, "Order not found"},
		{"invalid status", http.MethodPatch, "/api/orders/2b1d6f44-8b4e-4a55-9a0b-0f5d1d7e1c11/status", `{"status":"eaten"}`, 400, "Invalid status"},
		{"invalid table", http.MethodGet, "/api/billing/table/abc", "", 400, "Invalid table number"},
		{"zero table", http.MethodPost, "/api/billing/table/0/pay", "", 400, "Invalid table number"},
		{"food without price", http.MethodPost, "/api/foods", `{"name":"Pho"}`, 400, "name and price are required"},
		{"unknown food by id", http.MethodGet, "/api/foods/2b1d6f44-8b4e-4a55-9a0b-0f5d1d7e1c11", "", 404, "Food not found"},
		{"unknown route", http.MethodGet, "/api/nothing", "", 404, "Route not found"},
		{"unsupported method", http.MethodPut, "/api/orders", `{}`, 404, "Route not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := do(t, srv, tt.method, tt.path, tt.body)
			expectError(t, status, body, tt.status, tt.msg)
		})
	}
}

func TestRootAndDocs(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || string(body) != "API is running..." {
		t.Errorf("unexpected root response: %d %q", resp.StatusCode, body)
	}

	resp, err = http.Get(srv.URL + "/swagger/doc.json")
	if err != nil {
		t.Fatalf("GET doc.json: %v", err)
	}
	defer resp.Body.Close()

	var doc map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		t.Fatalf("decode doc: %v", err)
	}
	if doc["openapi"] == nil || doc["paths"] == nil {
		t.Errorf("unexpected document: %v", doc)
	}
}
