package jobs_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flotar/fleet-reserve/internal/domain"
	"github.com/flotar/fleet-reserve/internal/jobs"
	"github.com/flotar/fleet-reserve/internal/stats"
)

type mockStatsSource struct {
	summary func(window string) (*stats.Stats, error)
}

func (m *mockStatsSource) Summary(window string) (*stats.Stats, error) {
	return m.summary(window)
}

type mockSender struct {
	sent chan string
	err  error
}

func (m *mockSender) Send(_ context.Context, _, _, body string) error {
	m.sent <- body
	return m.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleStats() *stats.Stats {
	return &stats.Stats{
		Period: domain.DateRange{
			Start: domain.NewDate(2024, time.March, 13),
			End:   domain.NewDate(2024, time.March, 20),
		},
		Total:           3,
		AvgDurationDays: 2.5,
		HotelRate:       "33.3%",
		TopUsers:        []stats.CountItem{{Label: "Laura Pérez", Count: 2}},
		TopDestinations: []stats.CountItem{{Label: "Rosario, Santa Fe", Count: 2}},
		VehicleUsage:    []stats.VehicleUsage{{VehicleName: "Amarok AH437DS", Days: 5}},
	}
}

func TestRenderReport(t *testing.T) {
	body := jobs.RenderReport(sampleStats())

	assert.Contains(t, body, "Período: 13/03/2024 a 20/03/2024")
	assert.Contains(t, body, "Reservas: 3")
	assert.Contains(t, body, "Duración promedio: 2.5 días")
	assert.Contains(t, body, "Con hotelería: 33.3%")
	assert.Contains(t, body, "Rosario, Santa Fe (2)")
	assert.Contains(t, body, "Amarok AH437DS: 5")
}

func TestUsageReporter_Run_MailsReport(t *testing.T) {
	source := &mockStatsSource{
		summary: func(window string) (*stats.Stats, error) {
			assert.Equal(t, "7days", window)
			return sampleStats(), nil
		},
	}
	sender := &mockSender{sent: make(chan string, 1)}
	reporter := jobs.NewUsageReporter(source, sender, "gerencia@example.com", discardLogger())

	reporter.Run()

	select {
	case body := <-sender.sent:
		assert.Contains(t, body, "Reservas: 3")
	case <-time.After(time.Second):
		t.Fatal("report was never mailed")
	}
}

func TestUsageReporter_Run_NoRecipientOnlyLogs(t *testing.T) {
	source := &mockStatsSource{
		summary: func(string) (*stats.Stats, error) { return sampleStats(), nil },
	}
	sender := &mockSender{sent: make(chan string, 1)}
	reporter := jobs.NewUsageReporter(source, sender, "", discardLogger())

	reporter.Run()

	select {
	case <-sender.sent:
		t.Fatal("report should not be mailed without a recipient")
	default:
	}
}

func TestUsageReporter_Run_EmptyWindow(t *testing.T) {
	source := &mockStatsSource{
		summary: func(string) (*stats.Stats, error) { return nil, nil },
	}
	sender := &mockSender{sent: make(chan string, 1)}
	reporter := jobs.NewUsageReporter(source, sender, "gerencia@example.com", discardLogger())

	reporter.Run()

	select {
	case <-sender.sent:
		t.Fatal("nothing to report, nothing should be mailed")
	default:
	}
}

func TestUsageReporter_Run_StatsErrorDoesNotPanic(t *testing.T) {
	source := &mockStatsSource{
		summary: func(string) (*stats.Stats, error) { return nil, errors.New("snapshot unavailable") },
	}
	reporter := jobs.NewUsageReporter(source, nil, "", discardLogger())

	require.NotPanics(t, reporter.Run)
}
