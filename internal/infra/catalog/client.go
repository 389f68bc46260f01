package catalog

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"campus-order-service/internal/infra/httpclient"
	"campus-order-service/internal/pkg/errs"
	"campus-order-service/internal/usecase/shared"

	"github.com/google/uuid"
)

// slotResponse decodes only what the ledger needs. The vendor service sends
// start_time/end_time without a zone offset, which time.Time cannot parse.
type slotResponse struct {
	ID          uuid.UUID `json:"id"`
	VendorID    uuid.UUID `json:"vendor_id"`
	MaxCapacity int       `json:"max_capacity"`
}

type vendorResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	VendorType string    `json:"vendor_type"`
	Phone      string    `json:"phone"`
}

// Client reads slots and vendors from the vendor service.
type Client struct {
	http    *httpclient.Client
	timeout time.Duration
}

func NewClient(http *httpclient.Client, timeout time.Duration) *Client {
	return &Client{http: http, timeout: timeout}
}

func (c *Client) GetSlot(ctx context.Context, slotID uuid.UUID) (*shared.SlotInfo, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	var res slotResponse
	err := c.http.Do(ctx, httpclient.Request{Method: http.MethodGet, Path: "/slots/" + slotID.String()}, &res)
	if err != nil {
		return nil, notFoundOr(err, "get slot %s", slotID)
	}
	return &shared.SlotInfo{ID: res.ID, VendorID: res.VendorID, MaxCapacity: res.MaxCapacity}, nil
}

func (c *Client) ListVendors(ctx context.Context) ([]shared.VendorInfo, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	var res []vendorResponse
	if err := c.http.Do(ctx, httpclient.Request{Method: http.MethodGet, Path: "/vendors/"}, &res); err != nil {
		return nil, errs.Wrap(err, "list vendors")
	}
	vendors := make([]shared.VendorInfo, 0, len(res))
	for _, v := range res {
		vendors = append(vendors, shared.VendorInfo{ID: v.ID, Phone: v.Phone})
	}
	return vendors, nil
}

// ListSlotsByVendor authenticates as the vendor, the way the vendor service scopes /slots/.
func (c *Client) ListSlotsByVendor(ctx context.Context, vendor shared.VendorInfo) ([]shared.SlotInfo, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	header := http.Header{}
	header.Set("Authorization", "Bearer "+vendor.Phone)

	var res []slotResponse
	if err := c.http.Do(ctx, httpclient.Request{Method: http.MethodGet, Path: "/slots/", Header: header}, &res); err != nil {
		return nil, errs.Wrapf(err, "list slots of vendor %s", vendor.ID)
	}
	slots := make([]shared.SlotInfo, 0, len(res))
	for _, s := range res {
		vendorID := s.VendorID
		if vendorID == uuid.Nil {
			vendorID = vendor.ID
		}
		slots = append(slots, shared.SlotInfo{ID: s.ID, VendorID: vendorID, MaxCapacity: s.MaxCapacity})
	}
	return slots, nil
}

func (c *Client) VendorIDByPhone(ctx context.Context, phone string) (uuid.UUID, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	var res vendorResponse
	err := c.http.Do(ctx, httpclient.Request{Method: http.MethodGet, Path: "/vendors/phone/" + url.PathEscape(phone)}, &res)
	if err != nil {
		return uuid.Nil, notFoundOr(err, "get vendor by phone")
	}
	return res.ID, nil
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

func notFoundOr(err error, format string, args ...any) error {
	wrapped := errs.Wrapf(err, format, args...)
	if httpclient.IsStatus(err, http.StatusNotFound) {
		return errs.Mark(wrapped, shared.ErrCatalogNotFound)
	}
	return wrapped
}
