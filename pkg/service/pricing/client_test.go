package pricing_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/takeline-lab/takeline/pkg/service/pricing"
)

func TestLookup(t *testing.T) {
	t.Run("sends descriptions and decodes candidates", func(t *testing.T) {
		var gotAuth string
		var gotBody map[string]any

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gt.Value(t, r.Method).Equal(http.MethodPost)
			gt.Value(t, r.URL.Path).Equal("/v1/prices/lookup")
			gotAuth = r.Header.Get("Authorization")
			gt.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody)).Required()

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"candidates":[
				{"description":"drywall","unit_cost":12.99,"unit":"SF","source":"catalog-a","confidence":0.92}
			]}`))
		}))
		defer srv.Close()

		svc, err := pricing.New(srv.URL, "test-key")
		gt.NoError(t, err).Required()

		candidates, err := svc.Lookup(context.Background(), []string{"drywall"}, "midwest")
		gt.NoError(t, err).Required()
		gt.Array(t, candidates).Length(1)
		gt.Value(t, candidates[0].UnitCost).Equal(12.99)
		gt.Value(t, candidates[0].Source).Equal("catalog-a")

		gt.Value(t, gotAuth).Equal("Bearer test-key")
		gt.Value(t, gotBody["region"]).Equal("midwest")
	})

	t.Run("formatted prices are sanitized, unpriced candidates dropped", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"candidates":[
				{"description":"studs","unit_cost":"$1,234.56","source":"catalog-a","confidence":0.9},
				{"description":"studs","unit_cost":"3.25","source":"catalog-b","confidence":0.4},
				{"description":"custom beam","unit_cost":"TBD","source":"catalog-a","confidence":0.8},
				{"description":"plates","unit_cost":null,"source":"catalog-a","confidence":0.7}
			]}`))
		}))
		defer srv.Close()

		svc, err := pricing.New(srv.URL, "")
		gt.NoError(t, err).Required()

		candidates, err := svc.Lookup(context.Background(), []string{"studs", "custom beam", "plates"}, "")
		gt.NoError(t, err).Required()
		gt.Array(t, candidates).Length(2)
		gt.Value(t, candidates[0].UnitCost).Equal(1234.56)
		gt.Value(t, candidates[1].UnitCost).Equal(3.25)
	})

	t.Run("non-OK status is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "rate limited", http.StatusTooManyRequests)
		}))
		defer srv.Close()

		svc, err := pricing.New(srv.URL, "")
		gt.NoError(t, err).Required()

		_, err = svc.Lookup(context.Background(), []string{"drywall"}, "")
		gt.Value(t, err).NotNil()
	})

	t.Run("empty input makes no request", func(t *testing.T) {
		called := false
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))
		defer srv.Close()

		svc, err := pricing.New(srv.URL, "")
		gt.NoError(t, err).Required()

		candidates, err := svc.Lookup(context.Background(), nil, "")
		gt.NoError(t, err).Required()
		gt.Array(t, candidates).Length(0)
		gt.Bool(t, called).False()
	})

	t.Run("missing base URL is rejected", func(t *testing.T) {
		_, err := pricing.New("", "key")
		gt.Value(t, err).NotNil()
	})
}
