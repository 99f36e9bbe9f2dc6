// Package stats computes fleet-usage metrics over a filtered time window.
// It backs the dashboard and the scheduled usage report. Everything here is
// a pure function of its inputs — rendering, charting, and document export
// are someone else's job.
package stats

import (
	"fmt"
	"sort"
	"time"

	"github.com/flotar/fleet-reserve/internal/domain"
)

// Window selects the reporting period, resolved against "now" at call time.
type Window string

const (
	// Window7Days covers the last seven days up to today.
	Window7Days Window = "7days"
	// Window30Days covers the last thirty days up to today.
	Window30Days Window = "30days"
	// WindowThisMonth covers the current calendar month up to today.
	WindowThisMonth Window = "thisMonth"
	// WindowAll covers the full span of recorded reservations.
	WindowAll Window = "all"
)

// ParseWindow maps a wire value to a Window.
func ParseWindow(s string) (Window, error) {
	switch Window(s) {
	case Window7Days, Window30Days, WindowThisMonth, WindowAll:
		return Window(s), nil
	case "":
		return WindowAll, nil
	default:
		return "", fmt.Errorf("%w: unknown stats window %q", domain.ErrValidation, s)
	}
}

// CountItem is a labelled occurrence count (top users, top destinations).
type CountItem struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// VehicleUsage is the total reserved days attributed to one vehicle.
type VehicleUsage struct {
	VehicleName string `json:"vehicleName"`
	Days        int    `json:"days"`
}

// Stats is the dashboard summary for one reporting period.
type Stats struct {
	// Period is the resolved reporting window.
	Period domain.DateRange `json:"period"`
	// Total is the number of reservations touching the period.
	Total int `json:"total"`
	// AvgDurationDays is the mean inclusive trip length in days.
	AvgDurationDays float64 `json:"avgDurationDays"`
	// HotelRate is the share of reservations requesting lodging,
	// formatted as a percentage with one decimal, e.g. "33.3%".
	HotelRate string `json:"hotelRate"`
	// TopUsers are the five most frequent primary contacts.
	TopUsers []CountItem `json:"topUsers"`
	// TopDestinations are the five most frequent destinations.
	TopDestinations []CountItem `json:"topDestinations"`
	// VehicleUsage lists every vehicle in the set with its total reserved
	// days, most used first.
	VehicleUsage []VehicleUsage `json:"vehicleUsage"`
}

// ResolvePeriod turns a window into a concrete date range.
// For WindowAll the period is the min start..max end across all
// reservations, and ok is false when there are none. The relative windows
// end at today; their start is 7/30 days back or the first of the month.
func ResolvePeriod(w Window, now time.Time, reservations []domain.Reservation) (domain.DateRange, bool) {
	today := domain.NormalizeDate(now)

	if w == WindowAll {
		if len(reservations) == 0 {
			return domain.DateRange{}, false
		}
		period := reservations[0].Trip
		for _, r := range reservations[1:] {
			if r.Trip.Start.Before(period.Start) {
				period.Start = r.Trip.Start
			}
			if r.Trip.End.After(period.End) {
				period.End = r.Trip.End
			}
		}
		return period, true
	}

	period := domain.DateRange{End: today}
	switch w {
	case Window7Days:
		period.Start = today.AddDate(0, 0, -7)
	case Window30Days:
		period.Start = today.AddDate(0, 0, -30)
	case WindowThisMonth:
		period.Start = domain.NewDate(today.Year(), today.Month(), 1)
	}
	return period, true
}

// Summarize aggregates the reservations overlapping the resolved period.
// It returns nil when the filtered set is empty — the caller renders an
// empty state.
func Summarize(reservations []domain.Reservation, w Window, now time.Time) *Stats {
	period, ok := ResolvePeriod(w, now, reservations)
	if !ok {
		return nil
	}

	var included []domain.Reservation
	if w == WindowAll {
		included = reservations
	} else {
		for _, r := range reservations {
			if r.Trip.Overlaps(period) {
				included = append(included, r)
			}
		}
	}
	if len(included) == 0 {
		return nil
	}

	var (
		totalDays    int
		hotelCount   int
		userCounts   = newCounter()
		destCounts   = newCounter()
		vehicleTally = newCounter()
	)
	for _, r := range included {
		days := r.Trip.Days()
		totalDays += days
		userCounts.add(r.Details.Name, 1)
		destCounts.add(r.Details.Destination, 1)
		vehicleTally.add(r.VehicleName, days)
		if r.HotelDetails != nil && r.HotelDetails.Required {
			hotelCount++
		}
	}

	total := len(included)
	usage := make([]VehicleUsage, 0, len(vehicleTally.order))
	for _, item := range vehicleTally.ranked(0) {
		usage = append(usage, VehicleUsage{VehicleName: item.Label, Days: item.Count})
	}

	return &Stats{
		Period:          period,
		Total:           total,
		AvgDurationDays: float64(totalDays) / float64(total),
		HotelRate:       fmt.Sprintf("%.1f%%", float64(hotelCount)/float64(total)*100),
		TopUsers:        userCounts.ranked(5),
		TopDestinations: destCounts.ranked(5),
		VehicleUsage:    usage,
	}
}

// counter tallies occurrences while remembering first-encountered order, so
// ranking ties resolve to whichever label appeared first.
type counter struct {
	counts map[string]int
	order  []string
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(label string, n int) {
	if _, seen := c.counts[label]; !seen {
		c.order = append(c.order, label)
	}
	c.counts[label] += n
}

// ranked returns the labels sorted by descending count, ties in
// first-encountered order, truncated to limit (0 = no limit).
func (c *counter) ranked(limit int) []CountItem {
	items := make([]CountItem, 0, len(c.order))
	for _, label := range c.order {
		items = append(items, CountItem{Label: label, Count: c.counts[label]})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Count > items[j].Count })
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}
