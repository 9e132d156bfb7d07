package model

import (
	"fmt"
	"strings"
	"time"
)

// Notification types
const (
	TypeReservationConfirmed   = "reservation_confirmed"
	TypeReservationUnfulfilled = "reservation_unfulfilled"
)

// ============================================================================
// KAFKA MESSAGE STRUCTURES (From Booking Service)
// ============================================================================

// ReservationNotification represents the message consumed from the notification topic
type ReservationNotification struct {
	Type            string                      `json:"type" binding:"required"`
	RecipientEmail  string                      `json:"recipient_email"`
	ReservationData NotificationReservationData `json:"reservation_data"`
	Timestamp       time.Time                   `json:"timestamp"`
}

// NotificationReservationData represents reservation data for notifications
type NotificationReservationData struct {
	RequestID        string   `json:"request_id"`
	TrainID          string   `json:"train_id"`
	SeatCount        int      `json:"seat_count"`
	BookingReference string   `json:"booking_reference,omitempty"`
	Seats            []string `json:"seats"`
}

// ============================================================================
// EMAIL TEMPLATES
// ============================================================================

// EmailTemplate represents an email to be sent (logged to console)
type EmailTemplate struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Render picks the email for the notification type. Unknown types return false.
func (n *ReservationNotification) Render(from string) (*EmailTemplate, bool) {
	var email *EmailTemplate
	switch n.Type {
	case TypeReservationConfirmed:
		email = n.GenerateReservationConfirmedEmail()
	case TypeReservationUnfulfilled:
		email = n.GenerateReservationUnfulfilledEmail()
	default:
		return nil, false
	}
	email.From = from
	return email, true
}

// GenerateReservationConfirmedEmail creates simple email content for a confirmed reservation
func (n *ReservationNotification) GenerateReservationConfirmedEmail() *EmailTemplate {
	data := n.ReservationData
	subject := fmt.Sprintf("Reservation Confirmed - %s (%s)", data.TrainID, data.BookingReference)

	body := "Dear passenger,\n\n" +
		"Your seats have been reserved.\n\n" +
		"Train: " + data.TrainID + "\n" +
		"Seats: " + strings.Join(data.Seats, ", ") + "\n" +
		"Booking reference: " + data.BookingReference + "\n\n" +
		"Please quote your booking reference when travelling.\n\n" +
		"Train Booking System"

	return &EmailTemplate{
		To:      n.RecipientEmail,
		Subject: subject,
		Body:    body,
	}
}

// GenerateReservationUnfulfilledEmail creates simple email content when no seats could be reserved
func (n *ReservationNotification) GenerateReservationUnfulfilledEmail() *EmailTemplate {
	data := n.ReservationData
	subject := "Reservation Unavailable - " + data.TrainID

	body := "Dear passenger,\n\n" +
		fmt.Sprintf("We could not reserve %d seat(s) together on train %s.\n", data.SeatCount, data.TrainID) +
		"The train is fully booked for a party of this size.\n" +
		"Please try a smaller party or another train.\n\n" +
		"Train Booking System"

	return &EmailTemplate{
		To:      n.RecipientEmail,
		Subject: subject,
		Body:    body,
	}
}

// ============================================================================
// API DATA TRANSFER OBJECTS (External - JSON tags for HTTP)
// ============================================================================

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Service   string    `json:"service"`
	Timestamp time.Time `json:"timestamp"`
}

// ErrorResponse represents error response structure
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
