package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Lixing-Zhang/coffee-shop/internal/models"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

func TestTotals(t *testing.T) {
	tests := []struct {
		name                 string
		items                []models.SaleItemRequest
		subtotal, tax, total string
	}{
		{"single line", []models.SaleItemRequest{line(1, 2, "5.00")}, "10.00", "1.00", "11.00"},
		{"two lines", []models.SaleItemRequest{line(1, 1, "2.50"), line(2, 3, "4.75")}, "16.75", "1.68", "18.43"},
		{"rounds tax half up", []models.SaleItemRequest{line(1, 1, "0.05")}, "0.05", "0.01", "0.06"},
		{"free item", []models.SaleItemRequest{line(1, 4, "0")}, "0", "0", "0"},
		{"rounds unit price to cents", []models.SaleItemRequest{line(1, 1, "4.949")}, "4.95", "0.50", "5.45"},
		{"rounds before multiplying", []models.SaleItemRequest{line(1, 3, "1.005")}, "3.03", "0.30", "3.33"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subtotal, tax, total := Totals(tt.items)
			if !subtotal.Equal(decimal.RequireFromString(tt.subtotal)) {
				t.Errorf("subtotal = %s, want %s", subtotal, tt.subtotal)
			}
			if !tax.Equal(decimal.RequireFromString(tt.tax)) {
				t.Errorf("tax = %s, want %s", tax, tt.tax)
			}
			if !total.Equal(decimal.RequireFromString(tt.total)) {
				t.Errorf("total = %s, want %s", total, tt.total)
			}
			if !total.Equal(subtotal.Add(tax)) {
				t.Error("total must equal subtotal + tax")
			}
		})
	}
}

func TestRecordSale_Latte(t *testing.T) {
	f := newFixture(t, false)
	latte := f.product(t, "Latte", "5.00", 100)

	sale, err := f.sales.RecordSale(context.Background(), models.SaleRequest{
		PaymentMethod: models.PaymentCash,
		Items:         []models.SaleItemRequest{line(latte.ID, 2, "5.00")},
	}, f.user.ID)
	if err != nil {
		t.Fatalf("RecordSale() unexpected error: %v", err)
	}

	if !sale.Subtotal.Equal(decimal.NewFromInt(10)) || !sale.Tax.Equal(decimal.NewFromInt(1)) || !sale.Total.Equal(decimal.NewFromInt(11)) {
		t.Errorf("totals = %s/%s/%s, want 10.00/1.00/11.00", sale.Subtotal, sale.Tax, sale.Total)
	}
	if len(sale.Items) != 1 || !sale.Items[0].TotalPrice.Equal(decimal.NewFromInt(10)) {
		t.Errorf("items = %+v, want one line totalling 10.00", sale.Items)
	}
	if sale.Reference == "" {
		t.Error("expected a receipt reference")
	}
	if !sale.CreatedAt.Equal(f.clock.Now()) {
		t.Errorf("CreatedAt = %v, want %v", sale.CreatedAt, f.clock.Now())
	}
	if got := f.stock(t, latte.ID); got != 98 {
		t.Errorf("stock = %d, want 98", got)
	}
}

func TestRecordSale_SubCentUnitPrice(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	muffin := f.product(t, "Blueberry Muffin", "4.95", 10)

	recorded, err := f.sales.RecordSale(ctx, models.SaleRequest{
		PaymentMethod: models.PaymentDebitCard,
		Items:         []models.SaleItemRequest{line(muffin.ID, 1, "4.949")},
	}, f.user.ID)
	if err != nil {
		t.Fatalf("RecordSale() unexpected error: %v", err)
	}

	sale, err := f.sales.GetSale(ctx, recorded.ID)
	if err != nil {
		t.Fatalf("GetSale() unexpected error: %v", err)
	}

	want := map[string]struct{ got, want decimal.Decimal }{
		"subtotal":   {sale.Subtotal, decimal.RequireFromString("4.95")},
		"tax":        {sale.Tax, decimal.RequireFromString("0.50")},
		"total":      {sale.Total, decimal.RequireFromString("5.45")},
		"unit_price": {sale.Items[0].UnitPrice, decimal.RequireFromString("4.95")},
		"line_total": {sale.Items[0].TotalPrice, decimal.RequireFromString("4.95")},
	}
	for name, v := range want {
		if !v.got.Equal(v.want) {
			t.Errorf("%s = %s, want %s", name, v.got, v.want)
		}
	}
	if !sale.Tax.Equal(sale.Subtotal.Mul(TaxRate).Round(2)) {
		t.Errorf("tax %s is not 10%% of subtotal %s", sale.Tax, sale.Subtotal)
	}
}

func TestRecordSale_RepeatedProductDecrementsCumulatively(t *testing.T) {
	f := newFixture(t, false)
	espresso := f.product(t, "Espresso", "2.50", 10)

	_, err := f.sales.RecordSale(context.Background(), models.SaleRequest{
		PaymentMethod: models.PaymentDebitCard,
		Items: []models.SaleItemRequest{
			line(espresso.ID, 2, "2.50"),
			line(espresso.ID, 3, "2.00"),
		},
	}, f.user.ID)
	if err != nil {
		t.Fatalf("RecordSale() unexpected error: %v", err)
	}
	if got := f.stock(t, espresso.ID); got != 5 {
		t.Errorf("stock = %d, want 5", got)
	}
}

func TestRecordSale_Validation(t *testing.T) {
	f := newFixture(t, false)
	mocha := f.product(t, "Mocha", "5.50", 10)

	tests := []struct {
		name      string
		req       models.SaleRequest
		wantField string
	}{
		{
			name:      "no items",
			req:       models.SaleRequest{PaymentMethod: models.PaymentCash, Items: []models.SaleItemRequest{}},
			wantField: "items",
		},
		{
			name:      "missing items",
			req:       models.SaleRequest{PaymentMethod: models.PaymentCash},
			wantField: "items",
		},
		{
			name:      "zero quantity",
			req:       models.SaleRequest{PaymentMethod: models.PaymentCash, Items: []models.SaleItemRequest{line(mocha.ID, 0, "5.50")}},
			wantField: "items.0.quantity",
		},
		{
			name:      "negative quantity",
			req:       models.SaleRequest{PaymentMethod: models.PaymentCash, Items: []models.SaleItemRequest{line(mocha.ID, 1, "5.50"), line(mocha.ID, -1, "5.50")}},
			wantField: "items.1.quantity",
		},
		{
			name:      "negative price",
			req:       models.SaleRequest{PaymentMethod: models.PaymentCash, Items: []models.SaleItemRequest{line(mocha.ID, 1, "-1")}},
			wantField: "items.0.unit_price",
		},
		{
			name:      "missing price",
			req:       models.SaleRequest{PaymentMethod: models.PaymentCash, Items: []models.SaleItemRequest{{ProductID: mocha.ID, Quantity: 1}}},
			wantField: "items.0.unit_price",
		},
		{
			name:      "missing product",
			req:       models.SaleRequest{PaymentMethod: models.PaymentCash, Items: []models.SaleItemRequest{line(0, 1, "1.00")}},
			wantField: "items.0.product_id",
		},
		{
			name:      "unknown payment method",
			req:       models.SaleRequest{PaymentMethod: "bitcoin", Items: []models.SaleItemRequest{line(mocha.ID, 1, "5.50")}},
			wantField: "payment_method",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.sales.RecordSale(context.Background(), tt.req, f.user.ID)

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("RecordSale() error = %v, want *ValidationError", err)
			}
			if _, ok := verr.Fields[tt.wantField]; !ok {
				t.Errorf("expected error on %q, got %v", tt.wantField, verr.Fields)
			}
		})
	}

	if n := f.count(t, &models.Sale{}); n != 0 {
		t.Errorf("expected no sales persisted, got %d", n)
	}
	if got := f.stock(t, mocha.ID); got != 10 {
		t.Errorf("stock = %d, want 10", got)
	}
}

func TestRecordSale_UnknownProductRollsBack(t *testing.T) {
	f := newFixture(t, false)
	latte := f.product(t, "Latte", "5.00", 100)

	_, err := f.sales.RecordSale(context.Background(), models.SaleRequest{
		PaymentMethod: models.PaymentCash,
		Items: []models.SaleItemRequest{
			line(latte.ID, 1, "5.00"),
			line(latte.ID+100, 1, "5.00"),
		},
	}, f.user.ID)
	if !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("RecordSale() error = %v, want ErrProductNotFound", err)
	}

	if n := f.count(t, &models.Sale{}); n != 0 {
		t.Errorf("sales = %d, want 0", n)
	}
	if n := f.count(t, &models.SaleItem{}); n != 0 {
		t.Errorf("sale items = %d, want 0", n)
	}
	if got := f.stock(t, latte.ID); got != 100 {
		t.Errorf("stock = %d, want 100", got)
	}
}

func TestRecordSale_StockGuard(t *testing.T) {
	tests := []struct {
		name      string
		allowNeg  bool
		wantErr   error
		wantStock int
	}{
		{"guard rejects oversell", false, ErrInsufficientStock, 2},
		{"permissive mode goes negative", true, nil, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.allowNeg)
			toast := f.product(t, "Avocado Toast", "7.50", 2)

			_, err := f.sales.RecordSale(context.Background(), models.SaleRequest{
				PaymentMethod: models.PaymentCreditCard,
				Items:         []models.SaleItemRequest{line(toast.ID, 3, "7.50")},
			}, f.user.ID)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("RecordSale() error = %v, want %v", err, tt.wantErr)
			}
			if got := f.stock(t, toast.ID); got != tt.wantStock {
				t.Errorf("stock = %d, want %d", got, tt.wantStock)
			}
		})
	}
}

func TestListSales_Pagination(t *testing.T) {
	f := newFixture(t, false)
	latte := f.product(t, "Latte", "5.00", 100)

	for i := 0; i < SalesPerPage+2; i++ {
		f.clock.t = f.clock.t.Add(time.Minute)
		if _, err := f.sales.RecordSale(context.Background(), models.SaleRequest{
			PaymentMethod: models.PaymentCash,
			Items:         []models.SaleItemRequest{line(latte.ID, 1, "5.00")},
		}, f.user.ID); err != nil {
			t.Fatalf("RecordSale() unexpected error: %v", err)
		}
	}

	page, err := f.sales.ListSales(context.Background(), 2)
	if err != nil {
		t.Fatalf("ListSales() unexpected error: %v", err)
	}
	if page.Total != int64(SalesPerPage+2) || page.LastPage != 2 || len(page.Data) != 2 {
		t.Errorf("page 2 = %d rows, total %d, last %d", len(page.Data), page.Total, page.LastPage)
	}
	if page.Data[0].User == nil || len(page.Data[0].Items) != 1 || page.Data[0].Items[0].Product == nil {
		t.Error("expected sales to carry user and items with products")
	}
}

func TestGetSale_NotFound(t *testing.T) {
	f := newFixture(t, false)
	if _, err := f.sales.GetSale(context.Background(), 404); !errors.Is(err, ErrSaleNotFound) {
		t.Errorf("GetSale() error = %v, want ErrSaleNotFound", err)
	}
}

func TestExportSales(t *testing.T) {
	f := newFixture(t, false)
	latte := f.product(t, "Latte", "5.00", 100)
	customer := "Ada"

	if _, err := f.sales.RecordSale(context.Background(), models.SaleRequest{
		CustomerName:  &customer,
		PaymentMethod: models.PaymentCash,
		Items:         []models.SaleItemRequest{line(latte.ID, 2, "5.00")},
	}, f.user.ID); err != nil {
		t.Fatalf("RecordSale() unexpected error: %v", err)
	}

	day := models.NewDate(f.clock.Now())
	var buf bytes.Buffer
	if err := f.sales.ExportSales(context.Background(), day, day, &buf); err != nil {
		t.Fatalf("ExportSales() unexpected error: %v", err)
	}

	wb, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer wb.Close()

	rows, err := wb.GetRows("Sales")
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header plus one sale, got %d rows", len(rows))
	}
	if rows[0][0] != "Reference" || rows[1][2] != "Ada" || rows[1][6] != "11" || rows[1][7] != "Mike Cashier" {
		t.Errorf("unexpected rows %v", rows)
	}

	yesterday := models.NewDate(f.clock.Now().AddDate(0, 0, -1))
	if err := f.sales.ExportSales(context.Background(), day, yesterday, &bytes.Buffer{}); !errors.Is(err, ErrInvalidDateRange) {
		t.Errorf("ExportSales() reversed range error = %v, want ErrInvalidDateRange", err)
	}
}
