package owner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salonbook/internal/domain"
)

type fakeLister struct {
	requests []domain.ReservationRequest
}

func (f *fakeLister) ListPendingRequests(_ context.Context, date string) ([]domain.ReservationRequest, error) {
	var out []domain.ReservationRequest
	for _, r := range f.requests {
		if date == "" || r.Date == date {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeLister) ListApprovedByDate(_ context.Context, _ string, _ bool) ([]domain.Appointment, error) {
	return nil, nil
}

type fakeNames struct {
	names map[int64]string
}

func (f *fakeNames) DisplayName(_ context.Context, id int64) (string, error) {
	name, ok := f.names[id]
	if !ok {
		return "", errors.New("no such user")
	}
	return name, nil
}

func TestPendingQueue(t *testing.T) {
	lister := &fakeLister{requests: []domain.ReservationRequest{
		{
			GroupID:    "2025-06-01_10-00",
			Date:       "2025-06-01",
			Hour:       "10:00",
			CustomerID: 1,
			Slots:      []string{"10:00", "11:00"},
			CreatedAt:  time.Now(),
		},
		{
			GroupID:    "2025-06-02_12-00",
			Date:       "2025-06-02",
			Hour:       "12:00",
			CustomerID: 7,
		},
	}}
	svc := NewService(lister, &fakeNames{names: map[int64]string{1: "Aigerim"}})

	queue, err := svc.PendingQueue(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, queue, 2)

	assert.Equal(t, "Aigerim", queue[0].CustomerName)
	// unresolvable customers fall back to their id
	assert.Equal(t, "#7", queue[1].CustomerName)

	queue, err = svc.PendingQueue(context.Background(), "2025-06-01")
	require.NoError(t, err)
	require.Len(t, queue, 1)
	assert.Equal(t, "2025-06-01_10-00", queue[0].GroupID)
}
