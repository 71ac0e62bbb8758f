//go:build unit

package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"reservation-engine/internal/handler/api"
	"reservation-engine/internal/pkg/errs"
	"reservation-engine/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type stubAvailabilityQueries struct {
	view       *queries.AvailabilityView
	err        error
	lastParams queries.CheckAvailabilityParams
}

func (s *stubAvailabilityQueries) Check(_ context.Context, params queries.CheckAvailabilityParams) (*queries.AvailabilityView, error) {
	s.lastParams = params
	if s.err != nil {
		return nil, s.err
	}
	return s.view, nil
}

type stubRecurrenceQueries struct {
	occurrences []queries.OccurrenceView
	err         error
	lastParams  queries.PreviewOccurrencesParams
}

func (s *stubRecurrenceQueries) Preview(_ context.Context, params queries.PreviewOccurrencesParams) ([]queries.OccurrenceView, error) {
	s.lastParams = params
	if s.err != nil {
		return nil, s.err
	}
	return s.occurrences, nil
}

type AvailabilityHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	availability *stubAvailabilityQueries
	recurrence   *stubRecurrenceQueries
}

func (s *AvailabilityHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.availability = &stubAvailabilityQueries{}
	s.recurrence = &stubRecurrenceQueries{}
	handler := api.NewAvailabilityHandler(s.availability, s.recurrence)

	s.router.GET("/resources/:id/availability", handler.CheckAvailability)
	s.router.POST("/availability/recurrence-preview", handler.PreviewRecurrence)
}

func TestAvailabilityHandlerSuite(t *testing.T) {
	suite.Run(t, new(AvailabilityHandlerTestSuite))
}

func (s *AvailabilityHandlerTestSuite) TestCheckAvailability() {
	resourceID := uuid.New()
	start := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(3 * time.Hour)

	checkURL := func(q url.Values) string {
		return "/resources/" + resourceID.String() + "/availability?" + q.Encode()
	}
	window := url.Values{
		"start_date": {start.Format(time.RFC3339)},
		"end_date":   {end.Format(time.RFC3339)},
		"party_size": {"2"},
	}

	s.Run("returns the slot list", func() {
		s.SetupTest()
		s.availability.view = &queries.AvailabilityView{
			Resource:    &queries.ResourceView{ID: resourceID, Name: "Studio"},
			IsAvailable: true,
			AvailableSlots: []queries.SlotView{
				{Start: start, End: start.Add(time.Hour), IsAvailable: true, PriceCents: 1200},
			},
		}

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, checkURL(window), nil)
		s.router.ServeHTTP(rec, req)

		s.Equal(http.StatusOK, rec.Code)
		var body map[string]any
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
		s.Equal(true, body["is_available"])
		s.Len(body["available_slots"], 1)

		s.Equal(resourceID, s.availability.lastParams.ResourceID)
		s.Equal(start, s.availability.lastParams.Start)
		s.Equal(int32(2), s.availability.lastParams.PartySize)
	})

	s.Run("requires both window bounds", func() {
		s.SetupTest()
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, checkURL(url.Values{"start_date": {start.Format(time.RFC3339)}}), nil)
		s.router.ServeHTTP(rec, req)

		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("maps query errors to status codes", func() {
		cases := []struct {
			name       string
			err        error
			expectCode int
		}{
			{name: "resource not found", err: errs.ErrResourceNotFound, expectCode: http.StatusNotFound},
			{name: "invalid range", err: errs.ErrInvalidRange, expectCode: http.StatusBadRequest},
			{name: "inactive resource", err: errs.ErrResourceInactive, expectCode: http.StatusConflict},
			{name: "capacity exceeded", err: errs.ErrCapacityExceeded, expectCode: http.StatusConflict},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.SetupTest()
				s.availability.err = tc.err

				rec := httptest.NewRecorder()
				req := httptest.NewRequest(http.MethodGet, checkURL(window), nil)
				s.router.ServeHTTP(rec, req)

				s.Equal(tc.expectCode, rec.Code)
			})
		}
	})
}

func (s *AvailabilityHandlerTestSuite) TestPreviewRecurrence() {
	resourceID := uuid.New()
	start := time.Date(2026, 4, 6, 10, 0, 0, 0, time.UTC)

	body := map[string]any{
		"resource_id":      resourceID,
		"pattern":          "weekly",
		"start_date":       start.Format(time.RFC3339),
		"until":            start.AddDate(0, 1, 0).Format(time.RFC3339),
		"duration_minutes": 90,
		"party_size":       3,
	}

	post := func(payload any) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		s.Require().NoError(json.NewEncoder(&buf).Encode(payload))
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/availability/recurrence-preview", &buf)
		req.Header.Set("Content-Type", "application/json")
		s.router.ServeHTTP(rec, req)
		return rec
	}

	s.Run("returns one entry per occurrence", func() {
		s.SetupTest()
		s.recurrence.occurrences = []queries.OccurrenceView{
			{Date: start, IsAvailable: true},
			{Date: start.AddDate(0, 0, 7), IsAvailable: false},
		}

		rec := post(body)

		s.Equal(http.StatusOK, rec.Code)
		var occurrences []map[string]any
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &occurrences))
		s.Len(occurrences, 2)
		s.Equal(false, occurrences[1]["is_available"])

		s.Equal(90*time.Minute, s.recurrence.lastParams.Duration)
		s.Equal(int32(3), s.recurrence.lastParams.PartySize)
	})

	s.Run("requires a positive duration", func() {
		s.SetupTest()
		bad := map[string]any{}
		for k, v := range body {
			bad[k] = v
		}
		bad["duration_minutes"] = 0

		rec := post(bad)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("an invalid pattern maps to 400", func() {
		s.SetupTest()
		s.recurrence.err = errs.ErrValidation

		rec := post(body)
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}
