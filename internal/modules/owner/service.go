package owner

import (
	"context"
	"strconv"
)

type Service struct {
	requests RequestLister
	names    NameResolver
}

func NewService(requests RequestLister, names NameResolver) *Service {
	return &Service{requests: requests, names: names}
}

// PendingQueue lists pending requests, optionally filtered by date, with
// customer names resolved.
func (s *Service) PendingQueue(ctx context.Context, date string) ([]PendingRequest, error) {
	reqs, err := s.requests.ListPendingRequests(ctx, date)
	if err != nil {
		return nil, err
	}

	out := make([]PendingRequest, 0, len(reqs))
	for _, r := range reqs {
		name, err := s.names.DisplayName(ctx, r.CustomerID)
		if err != nil || name == "" {
			name = "#" + strconv.FormatInt(r.CustomerID, 10)
		}
		out = append(out, PendingRequest{
			GroupID:          r.GroupID,
			Date:             r.Date,
			Hour:             r.Hour,
			CustomerID:       r.CustomerID,
			CustomerName:     name,
			Slots:            r.Slots,
			Services:         r.Services,
			TotalDurationMin: r.TotalDurationMin,
			CreatedAt:        r.CreatedAt,
		})
	}
	return out, nil
}
