//go:build e2e

package order_test

import (
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"campus-order-service/internal/domain/user"
	resdto "campus-order-service/internal/handler/dto/response"
	"campus-order-service/tests/common/authtest"
	"campus-order-service/tests/common/dbtest"
	"campus-order-service/tests/common/httptest"
	"campus-order-service/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type OrderE2ETestSuite struct {
	e2e.SharedSuite
}

func TestOrderE2ESuite(t *testing.T) {
	suite.Run(t, new(OrderE2ETestSuite))
}

// seedSlot registers a vendor slot upstream and syncs it into the ledger.
func (s *OrderE2ETestSuite) seedSlot(maxCapacity int) (vendorID, slotID uuid.UUID) {
	vendorID = s.Services.AddVendor(authtest.VendorPhone)
	slotID = s.Services.AddSlot(vendorID, maxCapacity)

	rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/admin/slots/sync", nil, s.Tokens.Admin(s.T()))
	var res resdto.SyncResultResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
	s.Require().Equal(1, res.Slots)
	return vendorID, slotID
}

func orderBody(slotID uuid.UUID) map[string]any {
	return map[string]any{
		"slot_id": slotID,
		"items":   []map[string]any{{"item_id": uuid.New(), "quantity": 1}},
	}
}

func studentToken(s *OrderE2ETestSuite, n int) string {
	return s.Tokens.GenerateToken(s.T(), fmt.Sprintf("+9198%08d", n), user.RoleStudent)
}

func (s *OrderE2ETestSuite) TestOrderLifecycle() {
	s.Run("book, cancel, rebook and complete", func() {
		_, slotID := s.seedSlot(2)
		student := s.Tokens.Student(s.T())

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/orders", orderBody(slotID), student)
		var created resdto.CreateOrderResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &created)
		s.Equal("confirmed", created.Status)
		s.Require().NotNil(created.EstimatedMinutes)
		s.Equal(12, *created.EstimatedMinutes)

		_, available := dbtest.SlotCapacity(s.T(), s.DB, slotID)
		s.Equal(1, available)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/orders", orderBody(slotID), student)
		httptest.AssertErrorCode(s.T(), rec, http.StatusConflict, "duplicate_booking")

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/orders/"+created.OrderID.String()+"/cancel", nil, student)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
		_, available = dbtest.SlotCapacity(s.T(), s.DB, slotID)
		s.Equal(2, available)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/orders/"+created.OrderID.String()+"/cancel", nil, student)
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "invalid_state")

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/orders", orderBody(slotID), student)
		var rebooked resdto.CreateOrderResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &rebooked)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/orders/"+rebooked.OrderID.String()+"/complete", nil, s.Tokens.Vendor(s.T()))
		var completed resdto.OrderStatusResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &completed)
		s.Equal("completed", completed.Status)

		// Completion keeps the unit consumed.
		_, available = dbtest.SlotCapacity(s.T(), s.DB, slotID)
		s.Equal(1, available)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/orders/student?status=completed", nil, student)
		var list resdto.OrderListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &list)
		s.Require().Len(list.Orders, 1)
		s.Equal(rebooked.OrderID, list.Orders[0].ID)
		s.Require().Len(list.Orders[0].Items, 1)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/slots/"+slotID.String()+"/capacity", nil, student)
		var capacity resdto.SlotCapacityResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &capacity)
		s.Equal(2, capacity.MaxCapacity)
		s.Equal(1, capacity.AvailableCapacity)
	})

	s.Run("ETA outage still books the slot", func() {
		_, slotID := s.seedSlot(1)
		s.Services.FailETA(true)

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/orders", orderBody(slotID), s.Tokens.Student(s.T()))
		var created resdto.CreateOrderResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &created)
		s.Nil(created.EstimatedMinutes)
		s.Equal(1, s.Services.ETACalls())

		_, available := dbtest.SlotCapacity(s.T(), s.DB, slotID)
		s.Equal(0, available)
	})

	s.Run("unknown slot is 404 and leaves no order", func() {
		slotID := uuid.New()
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/orders", orderBody(slotID), s.Tokens.Student(s.T()))
		httptest.AssertErrorCode(s.T(), rec, http.StatusNotFound, "slot_not_found")
		s.Equal(0, dbtest.CountOrders(s.T(), s.DB, slotID, ""))
	})

	s.Run("catalog slot without ledger row is reported", func() {
		vendorID := s.Services.AddVendor(authtest.VendorPhone)
		slotID := s.Services.AddSlot(vendorID, 3)

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/orders", orderBody(slotID), s.Tokens.Student(s.T()))
		httptest.AssertErrorCode(s.T(), rec, http.StatusInternalServerError, "reservation_missing")
	})

	s.Run("a full slot refuses further bookings", func() {
		_, slotID := s.seedSlot(1)

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/orders", orderBody(slotID), studentToken(s, 1))
		s.Equal(http.StatusCreated, rec.Code, rec.Body.String())

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/orders", orderBody(slotID), studentToken(s, 2))
		httptest.AssertErrorCode(s.T(), rec, http.StatusConflict, "slot_full")
		s.Equal(1, dbtest.CountOrders(s.T(), s.DB, slotID, "confirmed"))
	})
}

func (s *OrderE2ETestSuite) TestConcurrentBooking() {
	s.Run("exactly capacity students win when losers retry", func() {
		const capacity, students = 3, 12
		_, slotID := s.seedSlot(capacity)

		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			created int
			full    int
		)
		for i := range students {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				token := studentToken(s, 100+n)
				for attempt := 0; attempt < 200; attempt++ {
					rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/orders", orderBody(slotID), token)
					switch {
					case rec.Code == http.StatusCreated:
						mu.Lock()
						created++
						mu.Unlock()
						return
					case rec.Code == http.StatusConflict && rec.Header().Get("Retry-After") != "":
						time.Sleep(5 * time.Millisecond)
					default:
						mu.Lock()
						full++
						mu.Unlock()
						return
					}
				}
			}(i)
		}
		wg.Wait()

		s.Equal(capacity, created)
		s.Equal(students-capacity, full)
		s.Equal(capacity, dbtest.CountOrders(s.T(), s.DB, slotID, "confirmed"))
		_, available := dbtest.SlotCapacity(s.T(), s.DB, slotID)
		s.Equal(0, available)
	})

	s.Run("cancel after full resync does not overflow max", func() {
		_, slotID := s.seedSlot(2)
		token := s.Tokens.Student(s.T())

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/orders", orderBody(slotID), token)
		var created resdto.CreateOrderResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &created)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/admin/slots/sync", nil, s.Tokens.Admin(s.T()))
		s.Equal(http.StatusOK, rec.Code)

		// Full resync restores available to max; the later cancel must not overflow the ledger.
		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/orders/"+created.OrderID.String()+"/cancel", nil, token)
		s.Equal(http.StatusOK, rec.Code, rec.Body.String())

		maxCapacity, available := dbtest.SlotCapacity(s.T(), s.DB, slotID)
		s.Equal(2, maxCapacity)
		s.Equal(2, available)
	})
}
