package eta

import (
	"context"
	"net/http"
	"time"

	"campus-order-service/internal/infra/httpclient"
	"campus-order-service/internal/pkg/errs"
	"campus-order-service/internal/usecase/shared"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// historicalAvgOrders is the fixed prior the predictor is fed until order history is tracked.
const historicalAvgOrders = 15.0

type predictRequest struct {
	VendorID            uuid.UUID `json:"vendor_id"`
	SlotID              uuid.UUID `json:"slot_id"`
	CurrentOrders       int       `json:"current_orders"`
	HistoricalAvgOrders float64   `json:"historical_avg_orders"`
	TimeOfDay           string    `json:"time_of_day"`
	DayOfWeek           string    `json:"day_of_week"`
}

type predictResponse struct {
	EstimatedMinutes int      `json:"estimated_minutes"`
	ConfidenceScore  float64  `json:"confidence_score"`
	Factors          []string `json:"factors"`
}

// Client calls the prediction service. Calls beyond the configured rate are
// refused locally instead of queueing behind a slow predictor.
type Client struct {
	http    *httpclient.Client
	limiter *rate.Limiter
	timeout time.Duration
}

func NewClient(http *httpclient.Client, ratePerSec float64, timeout time.Duration) *Client {
	limit := rate.Inf
	burst := 0
	if ratePerSec > 0 {
		limit = rate.Limit(ratePerSec)
		burst = max(1, int(ratePerSec))
	}
	return &Client{
		http:    http,
		limiter: rate.NewLimiter(limit, burst),
		timeout: timeout,
	}
}

func (c *Client) Predict(ctx context.Context, req shared.ETARequest) (*shared.ETAEstimate, error) {
	if !c.limiter.Allow() {
		return nil, errs.Mark(errs.New("eta rate limit exceeded"), shared.ErrETAUnavailable)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	body := predictRequest{
		VendorID:            req.VendorID,
		SlotID:              req.SlotID,
		CurrentOrders:       req.CurrentOrders,
		HistoricalAvgOrders: historicalAvgOrders,
		TimeOfDay:           req.TimeOfDay,
		DayOfWeek:           req.DayOfWeek,
	}
	var res predictResponse
	if err := c.http.Do(ctx, httpclient.Request{Method: http.MethodPost, Path: "/predict-eta", Body: body}, &res); err != nil {
		return nil, errs.Mark(errs.Wrap(err, "predict eta"), shared.ErrETAUnavailable)
	}
	return &shared.ETAEstimate{EstimatedMinutes: res.EstimatedMinutes, Confidence: res.ConfidenceScore}, nil
}
