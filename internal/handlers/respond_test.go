package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	billing "retail-pos-backend/internal/services/billing"
)

func statusFor(err error) int {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	respondError(c, err)
	return w.Code
}

func TestRespondErrorStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{&billing.NotFoundError{Entity: "shop", ID: "x"}, http.StatusNotFound},
		{&billing.ValidationError{Reason: "bad"}, http.StatusBadRequest},
		{&billing.InvalidReferenceError{CustomerID: "x"}, http.StatusBadRequest},
		{&billing.InsufficientStockError{ProductName: "Sugar"}, http.StatusConflict},
		{&billing.InvalidStateError{Reason: "cancelled"}, http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := statusFor(tc.err); got != tc.want {
			t.Errorf("status for %T = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestRespondErrorUnwrapsTypedErrors(t *testing.T) {
	wrapped := errors.Wrap(&billing.InsufficientStockError{
		ProductName: "Sugar 1kg", Available: 1, Requested: 3,
	}, "create sale")
	if got := statusFor(wrapped); got != http.StatusConflict {
		t.Errorf("wrapped stock error status = %d, want %d", got, http.StatusConflict)
	}

	doubly := errors.Wrap(errors.Wrap(&billing.NotFoundError{Entity: "bill", ID: "x"}, "load"), "cancel")
	if got := statusFor(doubly); got != http.StatusNotFound {
		t.Errorf("wrapped not-found status = %d, want %d", got, http.StatusNotFound)
	}
}
