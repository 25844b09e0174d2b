package errs

import (
	"errors"
	"fmt"
	"testing"
)

func TestKinds(t *testing.T) {
	validation := fmt.Errorf("wrapped: %w", Validation("Invalid status"))
	notFound := NotFound("Order not found")

	if !errors.Is(validation, ErrValidation) || errors.Is(validation, ErrNotFound) {
		t.Errorf("validation error has the wrong kind")
	}
	if !errors.Is(notFound, ErrNotFound) || errors.Is(notFound, ErrValidation) {
		t.Errorf("not found error has the wrong kind")
	}
	if notFound.Error() != "Order not found" {
		t.Errorf("unexpected message %q", notFound.Error())
	}
}
