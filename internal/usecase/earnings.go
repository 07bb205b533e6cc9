package usecase

import (
	"teach-trade/internal/data/entity"
	"teach-trade/internal/dto/response"
)

// AggregateEarnings sums price_paid over bookings and buckets it by the
// abbreviated month of each booking's creation time. Buckets keep the order
// in which their month was first seen. The label carries no year, so the same
// month of different years lands in one bucket.
//
// Every status counts unless excludeCancelled is set.
func AggregateEarnings(bookings []*entity.Booking, excludeCancelled bool) response.StatsResponse {
	stats := response.StatsResponse{
		MonthlyEarnings: []response.MonthlyEarning{},
	}

	index := make(map[string]int)
	for _, b := range bookings {
		if excludeCancelled && b.Status == entity.BookingStatusCancelled {
			continue
		}

		amount := b.Amount()
		stats.TotalEarnings += amount
		stats.TotalBookingsReceived++

		label := monthLabel(b)
		if i, ok := index[label]; ok {
			stats.MonthlyEarnings[i].Earnings += amount
			continue
		}
		index[label] = len(stats.MonthlyEarnings)
		stats.MonthlyEarnings = append(stats.MonthlyEarnings, response.MonthlyEarning{
			Name:     label,
			Earnings: amount,
		})
	}

	return stats
}

// monthLabel is "Jan" .. "Dec"
func monthLabel(b *entity.Booking) string {
	return b.CreatedAt.Month().String()[:3]
}
