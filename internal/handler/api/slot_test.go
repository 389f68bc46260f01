//go:build unit

package api_test

import (
	"net/http"
	"time"

	resdto "campus-order-service/internal/handler/dto/response"
	"campus-order-service/internal/pkg/errs"
	"campus-order-service/internal/usecase/commands"
	"campus-order-service/internal/usecase/queries"
	"campus-order-service/tests/common/httptest"

	"github.com/google/uuid"
	"go.uber.org/mock/gomock"
)

func (s *OrderHandlerTestSuite) TestSlotCapacity() {
	s.Run("success: returns ledger counters", func() {
		view := &queries.SlotCapacityView{
			SlotID:            uuid.New(),
			VendorID:          uuid.New(),
			MaxCapacity:       10,
			AvailableCapacity: 3,
			SyncedAt:          time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC),
		}
		s.mockQueries.EXPECT().GetSlotCapacity(gomock.Any(), view.SlotID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/slots/"+view.SlotID.String()+"/capacity", nil, s.tokens.Vendor(s.T()))

		var res resdto.SlotCapacityResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Equal(10, res.MaxCapacity)
		s.Equal(3, res.AvailableCapacity)
	})

	s.Run("error: 404 for unknown slot", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().GetSlotCapacity(gomock.Any(), id).Return(nil, queries.ErrSlotNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/slots/"+id.String()+"/capacity", nil, s.tokens.Student(s.T()))
		httptest.AssertErrorCode(s.T(), rec, http.StatusNotFound, "slot_not_found")
	})
}

func (s *OrderHandlerTestSuite) TestSlotSync() {
	s.Run("success: admin triggers a resync", func() {
		s.mockCommands.EXPECT().SyncCapacity(gomock.Any()).
			Return(&commands.SyncResult{Vendors: 3, SkippedVendors: 1, Slots: 12}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/admin/slots/sync", nil, s.tokens.Admin(s.T()))

		var res resdto.SyncResultResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Equal(resdto.SyncResultResponse{Vendors: 3, SkippedVendors: 1, Slots: 12}, res)
	})

	s.Run("error: 502 when vendor listing fails", func() {
		s.mockCommands.EXPECT().SyncCapacity(gomock.Any()).
			Return(nil, errs.Mark(errs.New("timeout"), errs.ErrCatalogUnavailable)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/admin/slots/sync", nil, s.tokens.Admin(s.T()))
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadGateway, "catalog_unavailable")
	})

	s.Run("error: 403 for non-admins", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/admin/slots/sync", nil, s.tokens.Vendor(s.T()))
		httptest.AssertErrorCode(s.T(), rec, http.StatusForbidden, "forbidden")
	})
}

func (s *OrderHandlerTestSuite) TestHealth() {
	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/health", nil, "")
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"status":"ok"`)
}
