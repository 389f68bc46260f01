//go:build unit

package eta_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"campus-order-service/internal/infra/eta"
	"campus-order-service/internal/infra/httpclient"
	"campus-order-service/internal/pkg/errs"
	"campus-order-service/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

func TestClient_Predict(t *testing.T) {
	vendorID, slotID := uuid.New(), uuid.New()

	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/predict-eta", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"estimated_minutes": 18,
			"confidence_score":  0.3,
			"factors":           []string{"Peak time: afternoon"},
		})
	}))
	t.Cleanup(srv.Close)

	c := eta.NewClient(httpclient.NewClient(srv.URL, noop.NewTracerProvider().Tracer("test"), srv.Client()), 0, time.Second)
	est, err := c.Predict(context.Background(), shared.ETARequest{
		VendorID: vendorID, SlotID: slotID, CurrentOrders: 4, TimeOfDay: "afternoon", DayOfWeek: "monday",
	})
	require.NoError(t, err)
	assert.Equal(t, shared.ETAEstimate{EstimatedMinutes: 18, Confidence: 0.3}, *est)

	assert.Equal(t, map[string]any{
		"vendor_id":             vendorID.String(),
		"slot_id":               slotID.String(),
		"current_orders":        float64(4),
		"historical_avg_orders": 15.0,
		"time_of_day":           "afternoon",
		"day_of_week":           "monday",
	}, got)
}

func TestClient_PredictFailures(t *testing.T) {
	tracer := noop.NewTracerProvider().Tracer("test")

	t.Run("downstream error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		t.Cleanup(srv.Close)

		_, err := eta.NewClient(httpclient.NewClient(srv.URL, tracer, srv.Client()), 0, time.Second).
			Predict(context.Background(), shared.ETARequest{})
		assert.True(t, errs.Is(err, shared.ErrETAUnavailable), "got %v", err)
	})

	t.Run("timeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(time.Second):
			}
		}))
		t.Cleanup(srv.Close)

		_, err := eta.NewClient(httpclient.NewClient(srv.URL, tracer, srv.Client()), 0, 20*time.Millisecond).
			Predict(context.Background(), shared.ETARequest{})
		assert.True(t, errs.Is(err, shared.ErrETAUnavailable))
	})

	t.Run("rate limited", func(t *testing.T) {
		calls := 0
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			calls++
			_ = json.NewEncoder(w).Encode(map[string]any{"estimated_minutes": 10, "confidence_score": 0.5})
		}))
		t.Cleanup(srv.Close)

		c := eta.NewClient(httpclient.NewClient(srv.URL, tracer, srv.Client()), 1, time.Second)
		_, err := c.Predict(context.Background(), shared.ETARequest{})
		require.NoError(t, err)

		_, err = c.Predict(context.Background(), shared.ETARequest{})
		assert.True(t, errs.Is(err, shared.ErrETAUnavailable))
		assert.Equal(t, 1, calls)
	})
}
