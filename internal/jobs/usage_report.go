// Package jobs holds the scheduled background work driven by cron.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/flotar/fleet-reserve/internal/stats"
)

// StatsSource computes the summary the report is built from.
// Satisfied by *service.StatsService.
type StatsSource interface {
	Summary(window string) (*stats.Stats, error)
}

// ReportSender mails the rendered report. Satisfied by *notify.EmailSender.
type ReportSender interface {
	Send(ctx context.Context, toEmail, subject, body string) error
}

// reportWindow is the period each scheduled report covers.
const reportWindow = string(stats.Window7Days)

// UsageReporter periodically summarizes fleet usage, logs the numbers, and
// optionally mails them. It is registered with a cron scheduler by Schedule.
type UsageReporter struct {
	stats     StatsSource
	sender    ReportSender
	recipient string
	log       *slog.Logger
}

// NewUsageReporter constructs a UsageReporter. With an empty recipient or nil
// sender the report is only logged.
func NewUsageReporter(source StatsSource, sender ReportSender, recipient string, log *slog.Logger) *UsageReporter {
	return &UsageReporter{stats: source, sender: sender, recipient: recipient, log: log}
}

// Schedule registers the reporter on the given cron scheduler. An empty spec
// disables the report.
func (r *UsageReporter) Schedule(c *cron.Cron, spec string) error {
	if spec == "" {
		r.log.Info("usage report disabled")
		return nil
	}
	if _, err := c.AddFunc(spec, r.Run); err != nil {
		return fmt.Errorf("jobs.UsageReporter.Schedule: %w", err)
	}
	r.log.Info("usage report scheduled", "spec", spec)
	return nil
}

// Run executes one report cycle. Errors are logged, never returned: a failed
// report must not take the scheduler down.
func (r *UsageReporter) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	summary, err := r.stats.Summary(reportWindow)
	if err != nil {
		r.log.Error("usage report failed", "error", err)
		return
	}
	if summary == nil {
		r.log.Info("usage report: no reservations in window")
		return
	}

	r.log.Info("usage report",
		"total", summary.Total,
		"avg_duration_days", summary.AvgDurationDays,
		"hotel_rate", summary.HotelRate)

	if r.sender == nil || r.recipient == "" {
		return
	}
	subject := fmt.Sprintf("Reporte de uso de flota al %s", time.Now().Format("02/01/2006"))
	if err := r.sender.Send(ctx, r.recipient, subject, RenderReport(summary)); err != nil {
		r.log.Error("usage report email failed", "to", r.recipient, "error", err)
	}
}

// RenderReport formats a summary as the plain-text report body.
func RenderReport(s *stats.Stats) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Período: %s a %s\n",
		s.Period.Start.Format("02/01/2006"), s.Period.End.Format("02/01/2006"))
	fmt.Fprintf(&b, "Reservas: %d\n", s.Total)
	fmt.Fprintf(&b, "Duración promedio: %.1f días\n", s.AvgDurationDays)
	fmt.Fprintf(&b, "Con hotelería: %s\n", s.HotelRate)

	if len(s.TopDestinations) > 0 {
		b.WriteString("\nDestinos más frecuentes:\n")
		for _, d := range s.TopDestinations {
			fmt.Fprintf(&b, "  %s (%d)\n", d.Label, d.Count)
		}
	}
	if len(s.TopUsers) > 0 {
		b.WriteString("\nUsuarios más frecuentes:\n")
		for _, u := range s.TopUsers {
			fmt.Fprintf(&b, "  %s (%d)\n", u.Label, u.Count)
		}
	}
	if len(s.VehicleUsage) > 0 {
		b.WriteString("\nDías de uso por vehículo:\n")
		for _, v := range s.VehicleUsage {
			fmt.Fprintf(&b, "  %s: %d\n", v.VehicleName, v.Days)
		}
	}
	return b.String()
}
