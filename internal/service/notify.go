package service

import (
	"fmt"
	"os"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"

	"bibliotec/internal/db"
)

// Notifier sends best-effort reservation emails and SMS. Missing
// provider credentials disable the corresponding channel.
type Notifier struct {
	log *zap.Logger
}

func NewNotifier(log *zap.Logger) *Notifier {
	return &Notifier{log: log}
}

func (n *Notifier) ReservationCreated(user *db.User, book *db.Book) {
	subject := fmt.Sprintf("Reserva confirmada - %s", book.Title)
	body := fmt.Sprintf(
		"Olá %s,\n\nSua reserva do livro \"%s\" (%s) foi confirmada.\n"+
			"Retire o exemplar na biblioteca em até 7 dias.\n\n"+
			"Bibliotec.",
		user.Name, book.Title, book.Author,
	)
	n.send(user, subject, body,
		fmt.Sprintf("Bibliotec: reserva de \"%s\" confirmada. Retirada em até 7 dias.", book.Title))
}

func (n *Notifier) ReservationCancelled(user *db.User, book *db.Book) {
	subject := fmt.Sprintf("Reserva cancelada - %s", book.Title)
	body := fmt.Sprintf(
		"Olá %s,\n\nSua reserva do livro \"%s\" (%s) foi cancelada e o exemplar voltou ao acervo.\n\n"+
			"Bibliotec.",
		user.Name, book.Title, book.Author,
	)
	n.send(user, subject, body,
		fmt.Sprintf("Bibliotec: reserva de \"%s\" cancelada.", book.Title))
}

func (n *Notifier) send(user *db.User, subject, body, sms string) {
	if err := n.sendEmail(user.Email, user.Name, subject, body); err != nil {
		n.log.Warn("reservation email not sent",
			zap.String("email", user.Email), zap.Error(err))
	}
	if user.Phone != nil && *user.Phone != "" {
		if err := n.sendSMS(*user.Phone, sms); err != nil {
			n.log.Warn("reservation sms not sent",
				zap.String("phone", *user.Phone), zap.Error(err))
		}
	}
}

func (n *Notifier) sendEmail(toEmail, toName, subject, plainText string) error {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	fromEmail := os.Getenv("SENDGRID_FROM_EMAIL")
	if apiKey == "" || fromEmail == "" {
		return fmt.Errorf("sendgrid credentials not configured")
	}
	fromName := os.Getenv("SENDGRID_FROM_NAME")
	if fromName == "" {
		fromName = "Bibliotec"
	}

	from := mail.NewEmail(fromName, fromEmail)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, plainText, "")

	client := sendgrid.NewSendClient(apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid send failed: %w", err)
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf("sendgrid returned status %d: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (n *Notifier) sendSMS(toNumber, body string) error {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")
	fromNumber := os.Getenv("TWILIO_FROM_NUMBER")
	if accountSid == "" || authToken == "" || fromNumber == "" {
		return fmt.Errorf("twilio credentials not configured")
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username:   accountSid,
		Password:   authToken,
		AccountSid: accountSid,
	})

	params := &openapi.CreateMessageParams{}
	params.SetTo(toNumber)
	params.SetFrom(fromNumber)
	params.SetBody(body)

	if _, err := client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("twilio send failed: %w", err)
	}
	return nil
}
