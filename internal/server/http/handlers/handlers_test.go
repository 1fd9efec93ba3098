package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	domainErrors "github.com/marketcore/ordersvc/internal/domain/errors"
	"github.com/marketcore/ordersvc/internal/domain/model"
	"github.com/marketcore/ordersvc/internal/domain/repository"
	testhelpers "github.com/marketcore/ordersvc/internal/test"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performJSON(t *testing.T, handler gin.HandlerFunc, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.Handle(method, "/api/orders", handler)
	router.Handle(method, "/api/orders/:id", handler)
	router.Handle(method, "/api/orders/:id/cancel", handler)
	router.Handle(method, "/api/orders/:id/status", handler)
	router.Handle(method, "/api/products", handler)
	router.Handle(method, "/api/products/:id", handler)
	router.Handle(method, "/api/customers/:id", handler)
	router.Handle(method, "/api/reports/sales", handler)

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestOrderCreateSuccess(t *testing.T) {
	var gotCustomer int64
	var gotLines []model.LineRequest
	facade := testhelpers.OrderFacadeStub{
		CreateFn: func(ctx context.Context, customerID int64, lines []model.LineRequest, note *string) (*model.Order, error) {
			gotCustomer = customerID
			gotLines = lines
			return &model.Order{
				ID:         5,
				CustomerID: customerID,
				Status:     model.OrderStatusNew,
				Note:       note,
				NetTotal:   decimal.RequireFromString("270.00"),
				TaxRate:    decimal.RequireFromString("21"),
				GrossTotal: decimal.RequireFromString("326.70"),
				Lines: []model.OrderLine{{
					ProductID:       7,
					Quantity:        3,
					UnitPrice:       decimal.RequireFromString("100.00"),
					DiscountPercent: decimal.RequireFromString("10"),
				}},
			}, nil
		},
	}
	handler := NewOrderHandler(facade)

	discount := decimal.RequireFromString("10")
	note := "deliver after noon"
	resp := performJSON(t, handler.Create, http.MethodPost, "/api/orders", map[string]any{
		"customer_id": 3,
		"note":        note,
		"lines":       []map[string]any{{"product_id": 7, "quantity": 3, "discount_percent": discount}},
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	if gotCustomer != 3 {
		t.Fatalf("expected customer 3, got %d", gotCustomer)
	}
	if len(gotLines) != 1 || gotLines[0].ProductID != 7 || gotLines[0].Quantity != 3 || !gotLines[0].DiscountPercent.Equal(discount) {
		t.Fatalf("unexpected lines passed to facade: %+v", gotLines)
	}

	var body struct {
		ID         int64  `json:"id"`
		Status     string `json:"status"`
		Note       string `json:"note"`
		NetTotal   string `json:"net_total"`
		GrossTotal string `json:"gross_total"`
		Lines      []struct {
			UnitPrice string `json:"unit_price"`
		} `json:"lines"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.ID != 5 || body.Status != "new" || body.Note != note {
		t.Fatalf("unexpected response header fields: %+v", body)
	}
	if body.NetTotal != "270" || body.GrossTotal != "326.7" {
		t.Fatalf("unexpected totals: %+v", body)
	}
	if len(body.Lines) != 1 || body.Lines[0].UnitPrice != "100" {
		t.Fatalf("unexpected lines: %+v", body.Lines)
	}
}

func TestOrderCreateMalformedBody(t *testing.T) {
	handler := NewOrderHandler(testhelpers.OrderFacadeStub{})
	router := gin.New()
	router.POST("/api/orders", handler.Create)
	req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewReader([]byte("{not json")))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestOrderCreateErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"empty order", domainErrors.ErrEmptyOrder, http.StatusUnprocessableEntity},
		{"bad line", domainErrors.ErrInvalidLineItem, http.StatusUnprocessableEntity},
		{"bad discount", domainErrors.ErrInvalidDiscount, http.StatusUnprocessableEntity},
		{"customer missing", domainErrors.ErrCustomerNotFound, http.StatusNotFound},
		{"product missing", domainErrors.ErrProductNotFound, http.StatusNotFound},
		{"busy", domainErrors.ErrBusy, http.StatusServiceUnavailable},
		{"internal", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			facade := testhelpers.OrderFacadeStub{
				CreateFn: func(context.Context, int64, []model.LineRequest, *string) (*model.Order, error) {
					return nil, tt.err
				},
			}
			handler := NewOrderHandler(facade)
			resp := performJSON(t, handler.Create, http.MethodPost, "/api/orders", map[string]any{
				"customer_id": 1,
				"lines":       []map[string]any{{"product_id": 1, "quantity": 1}},
			})
			if resp.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, resp.Code)
			}
			if errors.Is(tt.err, domainErrors.ErrBusy) && resp.Header().Get("Retry-After") == "" {
				t.Fatal("expected Retry-After header")
			}
		})
	}
}

func TestOrderCreateInsufficientStockDetail(t *testing.T) {
	facade := testhelpers.OrderFacadeStub{
		CreateFn: func(context.Context, int64, []model.LineRequest, *string) (*model.Order, error) {
			return nil, &domainErrors.InsufficientStockError{ProductID: 7, Requested: 5, Available: 2}
		},
	}
	handler := NewOrderHandler(facade)
	resp := performJSON(t, handler.Create, http.MethodPost, "/api/orders", map[string]any{
		"customer_id": 1,
		"lines":       []map[string]any{{"product_id": 7, "quantity": 5}},
	})
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.Code)
	}
	var body struct {
		ProductID int64 `json:"product_id"`
		Requested int   `json:"requested"`
		Available int   `json:"available"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.ProductID != 7 || body.Requested != 5 || body.Available != 2 {
		t.Fatalf("unexpected conflict detail: %+v", body)
	}
}

func TestOrderCancel(t *testing.T) {
	handler := NewOrderHandler(testhelpers.OrderFacadeStub{})
	resp := performJSON(t, handler.Cancel, http.MethodPost, "/api/orders/9/cancel", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var body struct {
		ID     int64  `json:"id"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.ID != 9 || body.Status != "cancelled" {
		t.Fatalf("unexpected cancel response: %+v", body)
	}
}

func TestOrderCancelBadID(t *testing.T) {
	handler := NewOrderHandler(testhelpers.OrderFacadeStub{})
	resp := performJSON(t, handler.Cancel, http.MethodPost, "/api/orders/abc/cancel", nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestOrderCancelErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"missing", domainErrors.ErrOrderNotFound, http.StatusNotFound},
		{"already cancelled", domainErrors.ErrAlreadyCancelled, http.StatusConflict},
		{"terminal", &domainErrors.InvalidStateTransitionError{From: model.OrderStatusDelivered, To: model.OrderStatusCancelled}, http.StatusConflict},
		{"busy", domainErrors.ErrBusy, http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			facade := testhelpers.OrderFacadeStub{
				CancelFn: func(context.Context, int64) (*model.Order, error) { return nil, tt.err },
			}
			handler := NewOrderHandler(facade)
			resp := performJSON(t, handler.Cancel, http.MethodPost, "/api/orders/1/cancel", nil)
			if resp.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, resp.Code)
			}
		})
	}
}

func TestOrderChangeStatus(t *testing.T) {
	var gotStatus model.OrderStatus
	facade := testhelpers.OrderFacadeStub{
		ChangeStatusFn: func(ctx context.Context, id int64, status model.OrderStatus) (*model.Order, error) {
			gotStatus = status
			return &model.Order{ID: id, Status: status}, nil
		},
	}
	handler := NewOrderHandler(facade)
	resp := performJSON(t, handler.ChangeStatus, http.MethodPatch, "/api/orders/4/status", map[string]any{"status": "confirmed"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if gotStatus != model.OrderStatusConfirmed {
		t.Fatalf("expected confirmed passed to facade, got %q", gotStatus)
	}
}

func TestOrderChangeStatusUnknown(t *testing.T) {
	handler := NewOrderHandler(testhelpers.OrderFacadeStub{})
	resp := performJSON(t, handler.ChangeStatus, http.MethodPatch, "/api/orders/4/status", map[string]any{"status": "teleported"})
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.Code)
	}
}

func TestOrderChangeStatusForbiddenTransition(t *testing.T) {
	facade := testhelpers.OrderFacadeStub{
		ChangeStatusFn: func(context.Context, int64, model.OrderStatus) (*model.Order, error) {
			return nil, &domainErrors.InvalidStateTransitionError{From: model.OrderStatusNew, To: model.OrderStatusShipped}
		},
	}
	handler := NewOrderHandler(facade)
	resp := performJSON(t, handler.ChangeStatus, http.MethodPatch, "/api/orders/4/status", map[string]any{"status": "shipped"})
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.Code)
	}
	var body struct {
		From string `json:"from"`
		To   string `json:"to"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.From != "new" || body.To != "shipped" {
		t.Fatalf("unexpected transition detail: %+v", body)
	}
}

func TestOrderGet(t *testing.T) {
	handler := NewOrderHandler(testhelpers.OrderFacadeStub{})
	resp := performJSON(t, handler.Get, http.MethodGet, "/api/orders/8", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	facade := testhelpers.OrderFacadeStub{
		OrderFn: func(context.Context, int64) (*model.Order, error) { return nil, domainErrors.ErrOrderNotFound },
	}
	handler = NewOrderHandler(facade)
	resp = performJSON(t, handler.Get, http.MethodGet, "/api/orders/8", nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestOrderList(t *testing.T) {
	var gotFilter repository.OrderFilter
	facade := testhelpers.OrderFacadeStub{
		OrdersFn: func(ctx context.Context, filter repository.OrderFilter) ([]model.Order, error) {
			gotFilter = filter
			return []model.Order{{ID: 1, Status: model.OrderStatusPaid}}, nil
		},
	}
	handler := NewOrderHandler(facade)
	resp := performJSON(t, handler.List, http.MethodGet, "/api/orders?customer_id=3&status=paid", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if gotFilter.CustomerID != 3 || gotFilter.Status != model.OrderStatusPaid {
		t.Fatalf("unexpected filter: %+v", gotFilter)
	}
}

func TestOrderListEmpty(t *testing.T) {
	facade := testhelpers.OrderFacadeStub{
		OrdersFn: func(context.Context, repository.OrderFilter) ([]model.Order, error) { return nil, nil },
	}
	handler := NewOrderHandler(facade)
	resp := performJSON(t, handler.List, http.MethodGet, "/api/orders", nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}
}

func TestOrderListBadFilters(t *testing.T) {
	handler := NewOrderHandler(testhelpers.OrderFacadeStub{})
	resp := performJSON(t, handler.List, http.MethodGet, "/api/orders?customer_id=zero", nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad customer_id, got %d", resp.Code)
	}
	resp = performJSON(t, handler.List, http.MethodGet, "/api/orders?status=teleported", nil)
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for bad status, got %d", resp.Code)
	}
}

func TestCatalogProducts(t *testing.T) {
	var gotOnlyActive bool
	facade := testhelpers.CatalogFacadeStub{
		ProductsFn: func(ctx context.Context, onlyActive bool) ([]model.Product, error) {
			gotOnlyActive = onlyActive
			return []model.Product{{ID: 1, Name: "widget", Active: true}}, nil
		},
	}
	handler := NewCatalogHandler(facade)

	resp := performJSON(t, handler.Products, http.MethodGet, "/api/products", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !gotOnlyActive {
		t.Fatal("expected active-only listing by default")
	}

	resp = performJSON(t, handler.Products, http.MethodGet, "/api/products?all=true", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if gotOnlyActive {
		t.Fatal("expected all=true to include retired products")
	}
}

func TestCatalogProductsEmpty(t *testing.T) {
	facade := testhelpers.CatalogFacadeStub{
		ProductsFn: func(context.Context, bool) ([]model.Product, error) { return nil, nil },
	}
	handler := NewCatalogHandler(facade)
	resp := performJSON(t, handler.Products, http.MethodGet, "/api/products", nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}
}

func TestCatalogProduct(t *testing.T) {
	handler := NewCatalogHandler(testhelpers.CatalogFacadeStub{})
	resp := performJSON(t, handler.Product, http.MethodGet, "/api/products/2", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	facade := testhelpers.CatalogFacadeStub{
		ProductFn: func(context.Context, int64) (*model.Product, error) { return nil, domainErrors.ErrProductNotFound },
	}
	handler = NewCatalogHandler(facade)
	resp = performJSON(t, handler.Product, http.MethodGet, "/api/products/2", nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestCatalogCustomer(t *testing.T) {
	handler := NewCatalogHandler(testhelpers.CatalogFacadeStub{})
	resp := performJSON(t, handler.Customer, http.MethodGet, "/api/customers/2", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	facade := testhelpers.CatalogFacadeStub{
		CustomerFn: func(context.Context, int64) (*model.Customer, error) { return nil, domainErrors.ErrCustomerNotFound },
	}
	handler = NewCatalogHandler(facade)
	resp = performJSON(t, handler.Customer, http.MethodGet, "/api/customers/2", nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestSalesReport(t *testing.T) {
	handler := NewReportHandler(testhelpers.ReportFacadeStub{})
	resp := performJSON(t, handler.Sales, http.MethodGet, "/api/reports/sales", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var rows []struct {
		Status string `json:"status"`
		Orders int64  `json:"orders"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &rows); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(rows) != 1 || rows[0].Status != "new" || rows[0].Orders != 1 {
		t.Fatalf("unexpected report rows: %+v", rows)
	}
}

func TestSalesReportEmpty(t *testing.T) {
	facade := testhelpers.ReportFacadeStub{
		ReportFn: func(context.Context) ([]repository.SalesReportRow, error) { return nil, nil },
	}
	handler := NewReportHandler(facade)
	resp := performJSON(t, handler.Sales, http.MethodGet, "/api/reports/sales", nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}
}
