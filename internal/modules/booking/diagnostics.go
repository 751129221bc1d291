package booking

import (
	"context"
	"time"

	"hoteldesk/internal/domain"
	"hoteldesk/internal/pkg/overlap"
)

const maxGridDays = 90

// Dashboard aggregates the booking counters shown on the back-office
// landing page.
func (s *Service) Dashboard(ctx context.Context) (*DashboardStats, error) {
	today := dateOnly(time.Now())
	arrivalStatuses := []domain.BookingStatus{domain.BookingConfirmed, domain.BookingAwaitingPayment}

	total, err := s.store.CountBookings(ctx, ListQuery{})
	if err != nil {
		return nil, err
	}
	active, err := s.store.CountBookings(ctx, ListQuery{Statuses: domain.ActiveBookingStatuses})
	if err != nil {
		return nil, err
	}
	todayCheckIns, err := s.store.CountBookings(ctx, ListQuery{Statuses: arrivalStatuses, CheckInOn: &today})
	if err != nil {
		return nil, err
	}
	todayCheckOuts, err := s.store.CountBookings(ctx, ListQuery{
		Statuses:   []domain.BookingStatus{domain.BookingCheckedIn},
		CheckOutOn: &today,
	})
	if err != nil {
		return nil, err
	}
	weekAhead := today.AddDate(0, 0, 7)
	upcoming, err := s.store.CountBookings(ctx, ListQuery{
		Statuses:    arrivalStatuses,
		CheckInFrom: &today,
		CheckInTo:   &weekAhead,
	})
	if err != nil {
		return nil, err
	}

	statusCounts, err := s.store.StatusCounts(ctx)
	if err != nil {
		return nil, err
	}

	recent, err := s.store.ListBookings(ctx, ListQuery{OrderByRecent: true, Limit: 5})
	if err != nil {
		return nil, err
	}

	attention, err := s.store.ListBookings(ctx, ListQuery{
		Statuses: []domain.BookingStatus{domain.BookingAwaitingPayment},
		Limit:    3,
	})
	if err != nil {
		return nil, err
	}
	if len(attention) < 3 {
		arriving, err := s.store.ListBookings(ctx, ListQuery{
			Statuses:  []domain.BookingStatus{domain.BookingConfirmed},
			CheckInOn: &today,
			Limit:     3 - len(attention),
		})
		if err != nil {
			return nil, err
		}
		attention = append(attention, arriving...)
	}

	return &DashboardStats{
		TotalBookings:    total,
		ActiveBookings:   active,
		TodayCheckIns:    todayCheckIns,
		TodayCheckOuts:   todayCheckOuts,
		UpcomingCheckIns: upcoming,
		StatusCounts:     statusCounts,
		RecentBookings:   recent,
		NeedsAttention:   attention,
	}, nil
}

// Grid builds the rooms-by-days occupancy chart for [start, end], clamping
// inverted or oversized ranges to the 90-day maximum window.
func (s *Service) Grid(ctx context.Context, start, end time.Time, f RoomGridFilter) (*OccupancyGrid, error) {
	start = dateOnly(start)
	end = dateOnly(end)
	if end.Before(start) || int(end.Sub(start).Hours()/24) > maxGridDays {
		end = start.AddDate(0, 0, maxGridDays)
	}
	endExclusive := end.AddDate(0, 0, 1)

	rooms, err := s.store.ListRooms(ctx, f)
	if err != nil {
		return nil, err
	}

	var roomIDs []int64
	if f.RoomTypeID != 0 || f.Floor != 0 || f.Status != "" {
		roomIDs = make([]int64, 0, len(rooms))
		for _, r := range rooms {
			roomIDs = append(roomIDs, r.ID)
		}
	}

	bookings, err := s.store.BookingsInRange(ctx, start, endExclusive, roomIDs)
	if err != nil {
		return nil, err
	}

	spansByRoom := make(map[int64][]GridSpan)
	for _, b := range bookings {
		if !b.Status.Active() && b.Status != domain.BookingCheckedOut {
			continue
		}
		if !overlap.Overlaps(b.CheckInDate, b.CheckOutDate, start, endExclusive) {
			continue
		}
		spanStart, spanEnd := b.CheckInDate, b.CheckOutDate
		if spanStart.Before(start) {
			spanStart = start
		}
		if spanEnd.After(endExclusive) {
			spanEnd = endExclusive
		}
		name := ""
		if b.Customer != nil {
			name = b.Customer.FullName()
		}
		spansByRoom[b.RoomID] = append(spansByRoom[b.RoomID], GridSpan{
			BookingID:    b.ID,
			CustomerName: name,
			Status:       b.Status,
			Start:        spanStart,
			End:          spanEnd,
		})
	}

	rows := make([]GridRow, 0, len(rooms))
	for _, r := range rooms {
		rows = append(rows, GridRow{Room: r, Spans: spansByRoom[r.ID]})
	}

	return &OccupancyGrid{
		Start: start,
		End:   end,
		Days:  int(endExclusive.Sub(start).Hours()/24),
		Rows:  rows,
	}, nil
}

// IntegrityScan compares each room's cached status flag with the
// overlap-derived truth (a checked-in booking holding the room). Rooms under
// maintenance are reported but always considered consistent, since the flag
// is operator-managed there.
func (s *Service) IntegrityScan(ctx context.Context) ([]IntegrityRow, error) {
	rooms, err := s.store.ListRooms(ctx, RoomGridFilter{})
	if err != nil {
		return nil, err
	}
	counts, err := s.store.CheckedInCountsByRoom(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]IntegrityRow, 0, len(rooms))
	for _, r := range rooms {
		held := counts[r.ID]
		consistent := true
		if r.Status != domain.RoomMaintenance {
			consistent = (r.Status == domain.RoomOccupied) == (held > 0)
		}
		rows = append(rows, IntegrityRow{
			RoomID:         r.ID,
			RoomNumber:     r.RoomNumber,
			Flag:           r.Status,
			CheckedInCount: held,
			Consistent:     consistent,
		})
	}
	return rows, nil
}
