//go:build e2e

package stub

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
)

type vendor struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Phone string    `json:"phone"`
}

// slot mirrors the vendor service payload, naive timestamps included.
type slot struct {
	ID          uuid.UUID `json:"id"`
	VendorID    uuid.UUID `json:"vendor_id"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	MaxCapacity int       `json:"max_capacity"`
	CurrentLoad int       `json:"current_load"`
}

// Services fakes the vendor and prediction services over real HTTP.
type Services struct {
	Vendor *httptest.Server
	AI     *httptest.Server

	mu       sync.Mutex
	vendors  []vendor
	slots    map[uuid.UUID]slot
	etaFails atomic.Bool
	etaCalls atomic.Int32
}

func New(t *testing.T) *Services {
	t.Helper()
	s := &Services{slots: map[uuid.UUID]slot{}}

	vendorMux := http.NewServeMux()
	vendorMux.HandleFunc("GET /vendors/{$}", s.listVendors)
	vendorMux.HandleFunc("GET /vendors/phone/{phone}", s.vendorByPhone)
	vendorMux.HandleFunc("GET /slots/{$}", s.listSlots)
	vendorMux.HandleFunc("GET /slots/{id}", s.getSlot)
	s.Vendor = httptest.NewServer(vendorMux)

	aiMux := http.NewServeMux()
	aiMux.HandleFunc("POST /predict-eta", s.predict)
	s.AI = httptest.NewServer(aiMux)

	t.Cleanup(func() {
		s.Vendor.Close()
		s.AI.Close()
	})
	return s
}

func (s *Services) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vendors = nil
	s.slots = map[uuid.UUID]slot{}
	s.etaFails.Store(false)
	s.etaCalls.Store(0)
}

func (s *Services) AddVendor(phone string) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := vendor{ID: uuid.New(), Name: "vendor " + phone, Phone: phone}
	s.vendors = append(s.vendors, v)
	return v.ID
}

func (s *Services) AddSlot(vendorID uuid.UUID, maxCapacity int) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	sl := slot{
		ID:          uuid.New(),
		VendorID:    vendorID,
		StartTime:   "2025-03-10T12:00:00",
		EndTime:     "2025-03-10T12:30:00",
		MaxCapacity: maxCapacity,
	}
	s.slots[sl.ID] = sl
	return sl.ID
}

func (s *Services) FailETA(fail bool) { s.etaFails.Store(fail) }

func (s *Services) ETACalls() int { return int(s.etaCalls.Load()) }

func (s *Services) listVendors(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, append([]vendor{}, s.vendors...))
}

func (s *Services) vendorByPhone(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	phone := r.PathValue("phone")
	for _, v := range s.vendors {
		if v.Phone == phone {
			writeJSON(w, http.StatusOK, v)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Vendor not found"})
}

// listSlots scopes by the bearer phone like the real service.
func (s *Services) listSlots(w http.ResponseWriter, r *http.Request) {
	phone := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	s.mu.Lock()
	defer s.mu.Unlock()
	var owner uuid.UUID
	for _, v := range s.vendors {
		if v.Phone == phone {
			owner = v.ID
		}
	}
	if owner == uuid.Nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "unknown vendor"})
		return
	}
	res := []slot{}
	for _, sl := range s.slots {
		if sl.VendorID == owner {
			res = append(res, sl)
		}
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Services) getSlot(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Slot not found"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sl, ok := s.slots[id]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Slot not found"})
		return
	}
	writeJSON(w, http.StatusOK, sl)
}

func (s *Services) predict(w http.ResponseWriter, r *http.Request) {
	s.etaCalls.Add(1)
	if s.etaFails.Load() {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": "model offline"})
		return
	}
	var req struct {
		CurrentOrders int `json:"current_orders"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"estimated_minutes": 10 + 2*req.CurrentOrders,
		"confidence_score":  0.75,
		"factors":           []string{"queue"},
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
