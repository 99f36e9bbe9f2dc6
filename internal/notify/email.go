// Package notify sends transactional email through SendGrid.
// Delivery is best-effort: the reservation is already persisted by the time
// anything here runs, so failures are reported to the caller but must never
// roll anything back.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/flotar/fleet-reserve/internal/domain"
)

// EmailSender delivers reservation confirmations via the SendGrid API.
// With an empty API key the sender is disabled: sends are logged and dropped,
// which keeps local development working without credentials.
type EmailSender struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
	// hotelDesk receives a copy of every confirmation that includes a
	// lodging request, so the reception team can book the rooms.
	hotelDesk string
	log       *slog.Logger
}

// NewEmailSender constructs an EmailSender. Pass an empty apiKey to disable
// sending.
func NewEmailSender(apiKey, fromEmail, fromName, hotelDesk string, log *slog.Logger) *EmailSender {
	s := &EmailSender{fromEmail: fromEmail, fromName: fromName, hotelDesk: hotelDesk, log: log}
	if apiKey != "" {
		s.client = sendgrid.NewSendClient(apiKey)
	}
	return s
}

// ReservationConfirmed emails the booking contact a confirmation of the
// created reservation. When the reservation includes a lodging request the
// hotel desk address is copied in.
func (s *EmailSender) ReservationConfirmed(ctx context.Context, res domain.Reservation) error {
	subject, plain, html := ConfirmationMessage(res)

	if s.client == nil {
		s.log.Info("email sending disabled, dropping confirmation",
			"to", res.Details.Email, "subject", subject)
		return nil
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(res.Details.Name, res.Details.Email)
	msg := mail.NewSingleEmail(from, subject, to, plain, html)
	if s.hotelDesk != "" && res.HotelDetails != nil && res.HotelDetails.Required {
		msg.Personalizations[0].AddTos(mail.NewEmail("", s.hotelDesk))
	}

	resp, err := s.client.SendWithContext(ctx, msg)
	if err != nil {
		return fmt.Errorf("notify.EmailSender.ReservationConfirmed: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("notify.EmailSender.ReservationConfirmed: sendgrid status %d: %s", resp.StatusCode, resp.Body)
	}

	s.log.Info("confirmation email sent", "to", res.Details.Email, "status", resp.StatusCode)
	return nil
}

// Send delivers an arbitrary plain-text message, used by the scheduled usage
// report.
func (s *EmailSender) Send(ctx context.Context, toEmail, subject, body string) error {
	if s.client == nil {
		s.log.Info("email sending disabled, dropping message", "to", toEmail, "subject", subject)
		return nil
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail("", toEmail)
	msg := mail.NewSingleEmail(from, subject, to, body, "")

	resp, err := s.client.SendWithContext(ctx, msg)
	if err != nil {
		return fmt.Errorf("notify.EmailSender.Send: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("notify.EmailSender.Send: sendgrid status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

const dateLayout = "02/01/2006"

// ConfirmationMessage renders the confirmation email for a reservation.
// Exported as a pure function so the rendering is testable without SendGrid.
func ConfirmationMessage(res domain.Reservation) (subject, plain, html string) {
	subject = "Confirmación de Reserva: " + res.VehicleName

	var p strings.Builder
	fmt.Fprintf(&p, "Hola %s,\n\n", res.Details.Name)
	fmt.Fprintf(&p, "Tu reserva para el vehículo %s ha sido confirmada con éxito.\n\n", res.VehicleName)
	p.WriteString("Detalles del Viaje:\n")
	fmt.Fprintf(&p, "  Destino: %s\n", res.Details.Destination)
	fmt.Fprintf(&p, "  Desde: %s\n", res.Trip.Start.Format(dateLayout))
	fmt.Fprintf(&p, "  Hasta: %s\n", res.Trip.End.Format(dateLayout))
	fmt.Fprintf(&p, "  Asistentes (%d): %s\n", len(res.Details.Attendees), strings.Join(res.Details.Attendees, ", "))

	var h strings.Builder
	h.WriteString("<h1>¡Reserva Confirmada!</h1>")
	fmt.Fprintf(&h, "<p>Hola %s,</p>", res.Details.Name)
	fmt.Fprintf(&h, "<p>Tu reserva para el vehículo <strong>%s</strong> ha sido confirmada con éxito.</p>", res.VehicleName)
	h.WriteString("<h3>Detalles del Viaje:</h3><ul>")
	fmt.Fprintf(&h, "<li><strong>Destino:</strong> %s</li>", res.Details.Destination)
	fmt.Fprintf(&h, "<li><strong>Desde:</strong> %s</li>", res.Trip.Start.Format(dateLayout))
	fmt.Fprintf(&h, "<li><strong>Hasta:</strong> %s</li>", res.Trip.End.Format(dateLayout))
	fmt.Fprintf(&h, "<li><strong>Asistentes (%d):</strong> %s</li>",
		len(res.Details.Attendees), strings.Join(res.Details.Attendees, ", "))
	h.WriteString("</ul>")

	if hd := res.HotelDetails; hd != nil && hd.Required {
		p.WriteString("\nSolicitud de Hotelería:\n")
		fmt.Fprintf(&p, "  Check-in: %s\n", hd.CheckIn.Format(dateLayout))
		fmt.Fprintf(&p, "  Check-out: %s\n", hd.CheckOut.Format(dateLayout))

		h.WriteString("<h3>Solicitud de Hotelería:</h3><ul>")
		fmt.Fprintf(&h, "<li><strong>Check-in:</strong> %s</li>", hd.CheckIn.Format(dateLayout))
		fmt.Fprintf(&h, "<li><strong>Check-out:</strong> %s</li>", hd.CheckOut.Format(dateLayout))

		var passengers []string
		for _, pass := range hd.Passengers {
			passengers = append(passengers, pass.Name)
		}
		fmt.Fprintf(&p, "  Pasajeros: %s\n", strings.Join(passengers, ", "))
		fmt.Fprintf(&h, "<li><strong>Pasajeros:</strong> %s</li>", strings.Join(passengers, ", "))

		var rooms []string
		for _, r := range hd.Rooms {
			label := "Single"
			if r.Type == domain.RoomDouble {
				label = "Doble"
			}
			rooms = append(rooms, fmt.Sprintf("%d x %s", r.Quantity, label))
		}
		fmt.Fprintf(&p, "  Habitaciones: %s\n", strings.Join(rooms, ", "))
		fmt.Fprintf(&h, "<li><strong>Habitaciones:</strong> %s</li>", strings.Join(rooms, ", "))

		if hd.Suggestions != "" {
			fmt.Fprintf(&p, "  Sugerencias: %s\n", hd.Suggestions)
			fmt.Fprintf(&h, "<li><strong>Sugerencias:</strong> %s</li>", hd.Suggestions)
		}
		if hd.AccountingAccount != "" {
			fmt.Fprintf(&p, "  Cuenta Contable: %s\n", hd.AccountingAccount)
			fmt.Fprintf(&h, "<li><strong>Cuenta Contable:</strong> %s</li>", hd.AccountingAccount)
		}
		h.WriteString("</ul>")
	}

	p.WriteString("\n¡Que tengas un excelente viaje!\n")
	h.WriteString("<p>¡Que tengas un excelente viaje!</p>")

	return subject, p.String(), h.String()
}
