package response

import (
	"time"

	"reservation-engine/internal/usecase/queries"
)

type AvailabilityResponse struct {
	Resource       *ResourceResponse  `json:"resource"`
	IsAvailable    bool               `json:"is_available"`
	AvailableSlots []queries.SlotView `json:"available_slots"`
}

func FromAvailabilityView(view *queries.AvailabilityView) *AvailabilityResponse {
	return &AvailabilityResponse{
		Resource:       FromResourceView(view.Resource),
		IsAvailable:    view.IsAvailable,
		AvailableSlots: append([]queries.SlotView(nil), view.AvailableSlots...),
	}
}

type OccurrenceResponse struct {
	Date        time.Time `json:"date"`
	IsAvailable bool      `json:"is_available"`
}

func FromOccurrenceViews(views []queries.OccurrenceView) []OccurrenceResponse {
	out := make([]OccurrenceResponse, len(views))
	for i, v := range views {
		out[i] = OccurrenceResponse{Date: v.Date, IsAvailable: v.IsAvailable}
	}
	return out
}
