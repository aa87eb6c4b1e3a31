package delivery

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestCatalog_DefaultOptions(t *testing.T) {
	c := NewCatalog(nil)
	opts := c.ListOptions()
	if len(opts) != 3 {
		t.Fatalf("expected 3 options, got %d", len(opts))
	}
	want := []Option{{"1", 7, 0}, {"2", 3, 499}, {"3", 1, 999}}
	for i, o := range opts {
		if o != want[i] {
			t.Fatalf("option %d: expected %+v, got %+v", i, want[i], o)
		}
	}
}

func TestCatalog_ListIsASnapshot(t *testing.T) {
	c := NewCatalog(nil)
	opts := c.ListOptions()
	opts[0].PriceCents = 12345

	again, _ := c.FindOption("1")
	if again.PriceCents != 0 {
		t.Fatalf("catalog mutated through returned slice: %+v", again)
	}
}

func TestCatalog_FindOption(t *testing.T) {
	c := NewCatalog(nil)
	if o, ok := c.FindOption("2"); !ok || o.DeliveryDays != 3 {
		t.Fatalf("expected option 2 with 3 days, got %+v ok=%v", o, ok)
	}
	if _, ok := c.FindOption("9"); ok {
		t.Fatalf("unknown option must not be found")
	}
	if _, ok := c.FindOption(""); ok {
		t.Fatalf("empty id must not be found")
	}
}

func TestHandler_GetDeliveryOptions(t *testing.T) {
	app := fiber.New()
	NewHandler(NewCatalog(nil)).RegisterPublicRoutes(app)

	res, err := app.Test(httptest.NewRequest("GET", "/delivery-options", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	var got []Option
	if err := json.NewDecoder(res.Body).Decode(&got); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(got) != 3 || got[2].ID != "3" || got[2].PriceCents != 999 {
		t.Fatalf("unexpected body %+v", got)
	}
}
