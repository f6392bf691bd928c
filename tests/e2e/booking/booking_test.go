//go:build e2e

package booking_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	stdhttptest "net/http/httptest"
	"sync"
	"testing"
	"time"

	"slotbooker/internal/handler/dto/response"
	"slotbooker/tests/common/builder"
	"slotbooker/tests/common/dbtest"
	"slotbooker/tests/common/httptest"
	"slotbooker/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	bookingsURL      = "/v1/bookings"
	adminBookingsURL = "/admin/v1/bookings"
)

type BookingSuite struct {
	e2e.SharedSuite
}

func (s *BookingSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestBookingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(BookingSuite))
}

func bookingHeaders(idempotencyKey, userID string) map[string]string {
	return map[string]string{
		"Idempotency-Key": idempotencyKey,
		"X-User-Id":       userID,
	}
}

func (s *BookingSuite) slotCounters(slotID uuid.UUID) (booked, hold int) {
	err := s.DB.QueryRow(context.Background(),
		"SELECT booked, hold FROM slots WHERE id = $1", slotID).Scan(&booked, &hold)
	require.NoError(s.T(), err)
	return booked, hold
}

// =============================================================================
// TestBookingLifecycle - hold, confirm and cancel against a real database
// =============================================================================

func (s *BookingSuite) TestBookingLifecycle() {
	s.Run("Normal case: hold then confirm moves capacity from hold to booked", func() {
		t := s.T()

		slotID := dbtest.CreateTestSlot(t, s.DB, dbtest.DefaultLocationID, nil,
			time.Now().UTC().Add(24*time.Hour).Truncate(time.Hour), 2, 0, 0)

		reqBody := builder.NewBookingBuilder().WithSlotID(slotID).BuildCreateRequestDTO()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody,
			bookingHeaders("lifecycle-1", "alice"))
		require.Equal(t, http.StatusCreated, w.Code, "Should create hold successfully")

		var created response.CreateBookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
		require.Equal(t, "held", created.Status)
		require.NotNil(t, created.HoldExpiresAt)
		require.False(t, created.Replayed)

		booked, hold := s.slotCounters(slotID)
		require.Equal(t, 0, booked)
		require.Equal(t, 1, hold)

		cw := httptest.PerformRequest(t, s.Router, http.MethodPost,
			bookingsURL+"/"+created.ID.String()+"/confirm", nil, nil)
		require.Equal(t, http.StatusOK, cw.Code)

		var confirmed response.ConfirmBookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, cw.Body, &confirmed))
		require.Equal(t, "confirmed", confirmed.Status)

		booked, hold = s.slotCounters(slotID)
		require.Equal(t, 1, booked)
		require.Equal(t, 0, hold)

		// Confirm again; promotion is idempotent.
		cw2 := httptest.PerformRequest(t, s.Router, http.MethodPost,
			bookingsURL+"/"+created.ID.String()+"/confirm", nil, nil)
		require.Equal(t, http.StatusOK, cw2.Code)

		booked, hold = s.slotCounters(slotID)
		require.Equal(t, 1, booked)
		require.Equal(t, 0, hold)
	})

	s.Run("Normal case: admin cancel releases booked capacity", func() {
		t := s.T()

		slotID := dbtest.CreateTestSlot(t, s.DB, dbtest.DefaultLocationID, nil,
			time.Now().UTC().Add(24*time.Hour).Truncate(time.Hour), 1, 0, 0)

		reqBody := builder.NewBookingBuilder().WithSlotID(slotID).BuildCreateRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody,
			bookingHeaders("cancel-1", "alice"))
		require.Equal(t, http.StatusCreated, w.Code)

		var created response.CreateBookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))

		cw := httptest.PerformRequest(t, s.Router, http.MethodPost,
			bookingsURL+"/"+created.ID.String()+"/confirm", nil, nil)
		require.Equal(t, http.StatusOK, cw.Code)

		pw := httptest.PerformRequest(t, s.Router, http.MethodPatch,
			adminBookingsURL+"/"+created.ID.String(), map[string]any{"action": "cancel"}, nil)
		require.Equal(t, http.StatusOK, pw.Code)

		var view response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, pw.Body, &view))
		require.Equal(t, "cancelled", view.Status)

		booked, hold := s.slotCounters(slotID)
		require.Equal(t, 0, booked)
		require.Equal(t, 0, hold)
	})

	s.Run("Normal case: booking detail reflects the stored customer", func() {
		t := s.T()

		slotID := dbtest.CreateTestSlot(t, s.DB, dbtest.DefaultLocationID, nil,
			time.Now().UTC().Add(24*time.Hour).Truncate(time.Hour), 1, 0, 0)

		reqBody := builder.NewBookingBuilder().
			WithSlotID(slotID).
			WithCustomer("Hanako Sato", "+81-80-9999-0000").
			BuildCreateRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody,
			bookingHeaders("detail-1", "alice"))
		require.Equal(t, http.StatusCreated, w.Code)

		var created response.CreateBookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))

		gw := httptest.PerformRequest(t, s.Router, http.MethodGet,
			bookingsURL+"/"+created.ID.String(), nil, nil)
		require.Equal(t, http.StatusOK, gw.Code)

		var view response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, gw.Body, &view))
		require.Equal(t, "Hanako Sato", view.CustomerName)
		require.Equal(t, "+81-80-9999-0000", view.CustomerPhone)
		require.Equal(t, "user:alice", view.Actor)
		require.Equal(t, slotID, view.SlotID)
	})
}

// =============================================================================
// TestIdempotency - replay and reuse semantics over the wire
// =============================================================================

func (s *BookingSuite) TestIdempotency() {
	s.Run("Normal case: same key and payload replays the original hold", func() {
		t := s.T()

		slotID := dbtest.CreateTestSlot(t, s.DB, dbtest.DefaultLocationID, nil,
			time.Now().UTC().Add(24*time.Hour).Truncate(time.Hour), 3, 0, 0)

		reqBody := builder.NewBookingBuilder().WithSlotID(slotID).BuildCreateRequestDTO()
		headers := bookingHeaders("replay-key", "alice")

		first := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, headers)
		require.Equal(t, http.StatusCreated, first.Code)
		var firstResp response.CreateBookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, first.Body, &firstResp))

		second := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, headers)
		require.Equal(t, http.StatusOK, second.Code, "Replay should return 200, not 201")
		var secondResp response.CreateBookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, second.Body, &secondResp))

		require.Equal(t, firstResp.ID, secondResp.ID)
		require.True(t, secondResp.Replayed)

		_, hold := s.slotCounters(slotID)
		require.Equal(t, 1, hold, "Replay must not take a second unit")
	})

	s.Run("Error case: same key with a different payload is rejected", func() {
		t := s.T()

		slotID := dbtest.CreateTestSlot(t, s.DB, dbtest.DefaultLocationID, nil,
			time.Now().UTC().Add(24*time.Hour).Truncate(time.Hour), 3, 0, 0)

		headers := bookingHeaders("reused-key", "alice")

		first := builder.NewBookingBuilder().WithSlotID(slotID).BuildCreateRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, first, headers)
		require.Equal(t, http.StatusCreated, w.Code)

		altered := builder.NewBookingBuilder().
			WithSlotID(slotID).
			WithCustomer("Someone Else", "+81-70-0000-1111").
			BuildCreateRequestDTO()
		w2 := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, altered, headers)
		httptest.AssertErrorResponse(t, w2, http.StatusConflict, "IDEMPOTENCY_KEY_REUSED")
	})

	s.Run("Normal case: the same key is independent per actor", func() {
		t := s.T()

		slotID := dbtest.CreateTestSlot(t, s.DB, dbtest.DefaultLocationID, nil,
			time.Now().UTC().Add(24*time.Hour).Truncate(time.Hour), 3, 0, 0)

		reqBody := builder.NewBookingBuilder().WithSlotID(slotID).BuildCreateRequestDTO()

		w1 := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody,
			bookingHeaders("shared-key", "alice"))
		require.Equal(t, http.StatusCreated, w1.Code)

		w2 := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody,
			bookingHeaders("shared-key", "bob"))
		require.Equal(t, http.StatusCreated, w2.Code)

		_, hold := s.slotCounters(slotID)
		require.Equal(t, 2, hold)
	})
}

// =============================================================================
// TestCapacity - the ledger never oversells under load
// =============================================================================

func (s *BookingSuite) TestCapacity() {
	s.Run("Error case: holds beyond capacity are rejected", func() {
		t := s.T()

		slotID := dbtest.CreateTestSlot(t, s.DB, dbtest.DefaultLocationID, nil,
			time.Now().UTC().Add(24*time.Hour).Truncate(time.Hour), 2, 0, 0)

		for i, user := range []string{"alice", "bob"} {
			reqBody := builder.NewBookingBuilder().WithSlotID(slotID).BuildCreateRequestDTO()
			w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody,
				bookingHeaders("cap-"+user, user))
			require.Equal(t, http.StatusCreated, w.Code, "hold %d should succeed", i+1)
		}

		reqBody := builder.NewBookingBuilder().WithSlotID(slotID).BuildCreateRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody,
			bookingHeaders("cap-carol", "carol"))
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "SLOT_FULL")

		booked, hold := s.slotCounters(slotID)
		require.Equal(t, 0, booked)
		require.Equal(t, 2, hold)
	})

	s.Run("Normal case: concurrent holds settle at exactly the capacity", func() {
		t := s.T()

		const capacity = 3
		const attempts = 6

		slotID := dbtest.CreateTestSlot(t, s.DB, dbtest.DefaultLocationID, nil,
			time.Now().UTC().Add(24*time.Hour).Truncate(time.Hour), capacity, 0, 0)

		reqBody := builder.NewBookingBuilder().WithSlotID(slotID).BuildCreateRequestDTO()
		payload, err := json.Marshal(reqBody)
		require.NoError(t, err)

		codes := make(chan int, attempts)
		var wg sync.WaitGroup
		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				req := stdhttptest.NewRequest(http.MethodPost, bookingsURL, bytes.NewReader(payload))
				req.Header.Set("Content-Type", "application/json")
				req.Header.Set("Idempotency-Key", "race-"+uuid.NewString())
				req.Header.Set("X-User-Id", "racer-"+uuid.NewString())
				w := stdhttptest.NewRecorder()
				s.Router.ServeHTTP(w, req)
				codes <- w.Code
			}(i)
		}
		wg.Wait()
		close(codes)

		succeeded, rejected := 0, 0
		for code := range codes {
			switch code {
			case http.StatusCreated:
				succeeded++
			case http.StatusConflict:
				rejected++
			default:
				t.Errorf("unexpected status %d", code)
			}
		}
		require.Equal(t, capacity, succeeded)
		require.Equal(t, attempts-capacity, rejected)

		booked, hold := s.slotCounters(slotID)
		require.Equal(t, 0, booked)
		require.Equal(t, capacity, hold)
	})
}

// =============================================================================
// TestHoldExpiry - overdue holds release capacity
// =============================================================================

func (s *BookingSuite) TestHoldExpiry() {
	s.Run("Error case: confirming an overdue hold fails and frees the unit", func() {
		t := s.T()

		slotID := dbtest.CreateTestSlot(t, s.DB, dbtest.DefaultLocationID, nil,
			time.Now().UTC().Add(24*time.Hour).Truncate(time.Hour), 1, 0, 0)

		reqBody := builder.NewBookingBuilder().WithSlotID(slotID).BuildCreateRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody,
			bookingHeaders("expiry-1", "alice"))
		require.Equal(t, http.StatusCreated, w.Code)

		var created response.CreateBookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))

		// Backdate the deadline so the hold is overdue.
		_, err := s.DB.Exec(context.Background(),
			"UPDATE bookings SET hold_expires_at = NOW() - INTERVAL '1 minute' WHERE id = $1", created.ID)
		require.NoError(t, err)

		cw := httptest.PerformRequest(t, s.Router, http.MethodPost,
			bookingsURL+"/"+created.ID.String()+"/confirm", nil, nil)
		httptest.AssertErrorResponse(t, cw, http.StatusConflict, "HOLD_EXPIRED")

		booked, hold := s.slotCounters(slotID)
		require.Equal(t, 0, booked)
		require.Equal(t, 0, hold, "Expiry must release the held unit")

		var status string
		err = s.DB.QueryRow(context.Background(),
			"SELECT status FROM bookings WHERE id = $1", created.ID).Scan(&status)
		require.NoError(t, err)
		require.Equal(t, "expired", status)
	})

	s.Run("Normal case: a fresh hold reclaims capacity freed by expiry", func() {
		t := s.T()

		slotID := dbtest.CreateTestSlot(t, s.DB, dbtest.DefaultLocationID, nil,
			time.Now().UTC().Add(24*time.Hour).Truncate(time.Hour), 1, 0, 0)

		first := builder.NewBookingBuilder().WithSlotID(slotID).BuildCreateRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, first,
			bookingHeaders("reclaim-1", "alice"))
		require.Equal(t, http.StatusCreated, w.Code)

		var created response.CreateBookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))

		_, err := s.DB.Exec(context.Background(),
			"UPDATE bookings SET hold_expires_at = NOW() - INTERVAL '1 minute' WHERE id = $1", created.ID)
		require.NoError(t, err)

		// The overdue hold is released inline before the new hold is placed.
		second := builder.NewBookingBuilder().WithSlotID(slotID).BuildCreateRequestDTO()
		w2 := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, second,
			bookingHeaders("reclaim-2", "bob"))
		require.Equal(t, http.StatusCreated, w2.Code)

		_, hold := s.slotCounters(slotID)
		require.Equal(t, 1, hold)

		var status string
		err = s.DB.QueryRow(context.Background(),
			"SELECT status FROM bookings WHERE id = $1", created.ID).Scan(&status)
		require.NoError(t, err)
		require.Equal(t, "expired", status)
	})
}

// =============================================================================
// TestAdminListing - paging and filters against real rows
// =============================================================================

func (s *BookingSuite) TestAdminListing() {
	s.Run("Normal case: status filter and paging", func() {
		t := s.T()

		slotID := dbtest.CreateTestSlot(t, s.DB, dbtest.DefaultLocationID, nil,
			time.Now().UTC().Add(24*time.Hour).Truncate(time.Hour), 5, 0, 0)

		var confirmedID uuid.UUID
		for i, user := range []string{"alice", "bob", "carol"} {
			reqBody := builder.NewBookingBuilder().WithSlotID(slotID).BuildCreateRequestDTO()
			w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody,
				bookingHeaders("list-"+user, user))
			require.Equal(t, http.StatusCreated, w.Code)

			if i == 0 {
				var created response.CreateBookingResponse
				require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
				confirmedID = created.ID
			}
		}

		cw := httptest.PerformRequest(t, s.Router, http.MethodPost,
			bookingsURL+"/"+confirmedID.String()+"/confirm", nil, nil)
		require.Equal(t, http.StatusOK, cw.Code)

		lw := httptest.PerformRequest(t, s.Router, http.MethodGet,
			adminBookingsURL+"?status=confirmed", nil, nil)
		require.Equal(t, http.StatusOK, lw.Code)

		var listed response.BookingListResponse
		require.NoError(t, httptest.DecodeResponseBody(t, lw.Body, &listed))
		require.Equal(t, int64(1), listed.Total)
		require.Len(t, listed.Items, 1)
		require.Equal(t, confirmedID, listed.Items[0].ID)

		pw := httptest.PerformRequest(t, s.Router, http.MethodGet,
			adminBookingsURL+"?page=1&page_size=2", nil, nil)
		require.Equal(t, http.StatusOK, pw.Code)

		var paged response.BookingListResponse
		require.NoError(t, httptest.DecodeResponseBody(t, pw.Body, &paged))
		require.Equal(t, int64(3), paged.Total)
		require.Len(t, paged.Items, 2)
		require.Equal(t, 2, paged.PageSize)
	})
}
