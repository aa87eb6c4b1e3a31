package cart

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/shop-backend/internal/delivery"
	"github.com/wichananm65/shop-backend/internal/product"
)

func newCartApp(t *testing.T) (*fiber.App, *Service, *product.InMemoryRepository) {
	t.Helper()
	repo := product.NewInMemoryRepository(product.DefaultProducts())
	svc := NewService(NewStore(), repo, delivery.NewCatalog(nil))
	app := fiber.New()
	NewHandler(svc).RegisterPublicRoutes(app)
	return app, svc, repo
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]any) {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer res.Body.Close()

	var out map[string]any
	raw, _ := io.ReadAll(res.Body)
	_ = json.Unmarshal(raw, &out)
	return res.StatusCode, out
}

func TestCartRoutes_Registered(t *testing.T) {
	app, _, _ := newCartApp(t)

	routes := map[string]bool{}
	for _, grp := range app.Stack() {
		for _, r := range grp {
			routes[r.Method+" "+r.Path] = true
		}
	}
	for _, want := range []string{
		"GET /cart-items",
		"POST /cart-items",
		"PUT /cart-items/:productId",
		"DELETE /cart-items/:productId",
	} {
		if !routes[want] {
			t.Fatalf("expected route %q to be registered", want)
		}
	}
}

func TestAddCartItem(t *testing.T) {
	app, _, _ := newCartApp(t)

	status, body := doJSON(t, app, "POST", "/cart-items", `{"productId":"`+socksID+`","quantity":2}`)
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d (%v)", status, body)
	}
	if body["message"] != "Product added to cart" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
	item, _ := body["cartItem"].(map[string]any)
	if item["productId"] != socksID || item["quantity"] != float64(2) || item["deliveryOptionId"] != "1" {
		t.Fatalf("unexpected cart item: %v", item)
	}

	// second add merges past the per-request bound
	status, body = doJSON(t, app, "POST", "/cart-items", `{"productId":"`+socksID+`","quantity":10}`)
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	item, _ = body["cartItem"].(map[string]any)
	if item["quantity"] != float64(12) {
		t.Fatalf("expected merged quantity 12, got %v", item["quantity"])
	}
}

func TestAddCartItem_Errors(t *testing.T) {
	app, _, _ := newCartApp(t)

	cases := []struct {
		name string
		body string
		want int
	}{
		{"quantity too large", `{"productId":"` + socksID + `","quantity":11}`, fiber.StatusBadRequest},
		{"quantity missing", `{"productId":"` + socksID + `"}`, fiber.StatusBadRequest},
		{"quantity not integer", `{"productId":"` + socksID + `","quantity":2.5}`, fiber.StatusBadRequest},
		{"malformed json", `{"productId":`, fiber.StatusBadRequest},
		{"unknown product", `{"productId":"does-not-exist","quantity":1}`, fiber.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := doJSON(t, app, "POST", "/cart-items", tc.body)
			if status != tc.want {
				t.Fatalf("expected %d, got %d (%v)", tc.want, status, body)
			}
			if _, ok := body["message"]; !ok {
				t.Fatalf("expected message in error body, got %v", body)
			}
		})
	}
}

func TestUpdateCartItem(t *testing.T) {
	app, svc, _ := newCartApp(t)
	svc.SeedDefaults(DefaultLines())

	status, body := doJSON(t, app, "PUT", "/cart-items/"+socksID, `{"deliveryOptionId":"3"}`)
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d (%v)", status, body)
	}
	if body["message"] != "Cart item updated" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
	item, _ := body["cartItem"].(map[string]any)
	if item["quantity"] != float64(2) || item["deliveryOptionId"] != "3" {
		t.Fatalf("unexpected cart item: %v", item)
	}

	status, _ = doJSON(t, app, "PUT", "/cart-items/"+socksID, `{"deliveryOptionId":"7"}`)
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for unknown option, got %d", status)
	}
	status, _ = doJSON(t, app, "PUT", "/cart-items/"+socksID, `{"quantity":0}`)
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for quantity 0, got %d", status)
	}
	status, _ = doJSON(t, app, "PUT", "/cart-items/not-in-cart", `{"quantity":3}`)
	if status != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", status)
	}
}

func TestUpdateCartItem_EmptyBody(t *testing.T) {
	app, svc, _ := newCartApp(t)
	svc.SeedDefaults(DefaultLines())

	status, body := doJSON(t, app, "PUT", "/cart-items/"+basketballID, `{}`)
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	item, _ := body["cartItem"].(map[string]any)
	if item["quantity"] != float64(1) || item["deliveryOptionId"] != "2" {
		t.Fatalf("empty update changed the line: %v", item)
	}
}

func TestRemoveCartItem(t *testing.T) {
	app, svc, _ := newCartApp(t)
	svc.SeedDefaults(DefaultLines())

	status, body := doJSON(t, app, "DELETE", "/cart-items/"+socksID, "")
	if status != fiber.StatusOK || body["message"] != "Cart item removed" {
		t.Fatalf("unexpected response %d %v", status, body)
	}
	status, _ = doJSON(t, app, "DELETE", "/cart-items/"+socksID, "")
	if status != fiber.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", status)
	}
}

func TestGetCartItems(t *testing.T) {
	app, svc, repo := newCartApp(t)
	svc.SeedDefaults(DefaultLines())

	res, err := app.Test(httptest.NewRequest("GET", "/cart-items", nil))
	if err != nil {
		t.Fatal(err)
	}
	var plain []map[string]any
	if err := json.NewDecoder(res.Body).Decode(&plain); err != nil {
		t.Fatal(err)
	}
	if len(plain) != 2 {
		t.Fatalf("expected 2 items, got %d", len(plain))
	}
	if _, ok := plain[0]["product"]; ok {
		t.Fatalf("plain listing must not carry a product key: %v", plain[0])
	}

	if err := repo.Delete(t.Context(), basketballID); err != nil {
		t.Fatal(err)
	}
	res, err = app.Test(httptest.NewRequest("GET", "/cart-items?expand=product", nil))
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	var expanded []map[string]any
	if err := json.NewDecoder(res.Body).Decode(&expanded); err != nil {
		t.Fatal(err)
	}
	socks, _ := expanded[0]["product"].(map[string]any)
	if socks["id"] != socksID {
		t.Fatalf("expected socks product, got %v", expanded[0]["product"])
	}
	if v, ok := expanded[1]["product"]; !ok || v != nil {
		t.Fatalf("expected explicit null product, got %v (present=%v)", v, ok)
	}
}
