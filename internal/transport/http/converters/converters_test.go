package converters

import (
	"errors"
	"testing"

	"github.com/corray333/backend-labs/restaurant/internal/service/errs"
	"github.com/google/uuid"
)

func TestItemsFromRequest(t *testing.T) {
	id := uuid.New()

	items, err := ItemsFromRequest([]ItemRequest{{Food: id.String(), Quantity: 3, Note: "spicy"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if items[0].FoodID != id || items[0].Quantity != 3 || items[0].Note != "spicy" {
		t.Errorf("unexpected item: %+v", items[0])
	}

	for _, bad := range []string{"", "42", uuid.Nil.String()} {
		_, err := ItemsFromRequest([]ItemRequest{{Food: id.String(), Quantity: 1}, {Food: bad, Quantity: 1}})
		if !errors.Is(err, errs.ErrValidation) || err.Error() != "Invalid food id in items" {
			t.Errorf("food %q: unexpected error %v", bad, err)
		}
	}
}

func TestParseTable(t *testing.T) {
	if table, err := ParseTable("12"); err != nil || table != 12 {
		t.Errorf("expected 12, got %d %v", table, err)
	}
	for _, bad := range []string{"0", "-3", "abc", "1.5"} {
		if _, err := ParseTable(bad); !errors.Is(err, errs.ErrValidation) {
			t.Errorf("%q: expected validation error, got %v", bad, err)
		}
	}
}

func TestParseID(t *testing.T) {
	if _, err := ParseID("not-a-uuid"); err == nil || err.Error() != "Invalid id" {
		t.Errorf("unexpected error: %v", err)
	}
}
