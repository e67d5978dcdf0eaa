package api

import (
	"context"
	"net/http"

	"github.com/batyok32/shipyuusell-sub001/internal/client/models"
)

// SupportAPI covers pickups and the contact form.
type SupportAPI struct {
	d Doer
}

func (s *SupportAPI) SchedulePickup(ctx context.Context, r models.PickupRequest) (*models.PickupResult, error) {
	if m := r.Missing(); len(m) > 0 {
		return nil, missing(m...)
	}
	var out models.PickupResult
	if err := s.d.Do(ctx, http.MethodPost, "/warehouse/pickup/schedule/", r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *SupportAPI) Contact(ctx context.Context, m models.ContactMessage) (*models.Message, error) {
	if m.Email == "" || m.Message == "" {
		return nil, missing("email", "message")
	}
	var out models.Message
	if err := s.d.Do(ctx, http.MethodPost, "/contact/", m, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
