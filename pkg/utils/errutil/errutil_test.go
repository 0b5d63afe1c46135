package errutil_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/takeline-lab/takeline/pkg/utils/errutil"
)

func TestHandle(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the error unmodified", func(t *testing.T) {
		orig := goerr.New("store unreachable", goerr.V("backend", "firestore"))
		got := errutil.Handle(ctx, orig, "failed to run app")
		gt.Value(t, got).Equal(orig)
	})

	t.Run("nil passes through", func(t *testing.T) {
		gt.NoError(t, errutil.Handle(ctx, nil, "nothing happened"))
	})
}

func TestHandleHTTP(t *testing.T) {
	ctx := context.Background()

	t.Run("writes status and message", func(t *testing.T) {
		rec := httptest.NewRecorder()
		errutil.HandleHTTP(ctx, rec, goerr.New("bad input"), http.StatusBadRequest)
		gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
	})

	t.Run("nil error writes nothing", func(t *testing.T) {
		rec := httptest.NewRecorder()
		errutil.HandleHTTP(ctx, rec, nil, http.StatusInternalServerError)
		gt.Value(t, rec.Code).Equal(http.StatusOK)
	})
}
