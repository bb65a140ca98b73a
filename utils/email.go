package utils

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"github.com/quangtu2509/FE-BE-THsport-sub001/models"
)

// EmailService handles sending transactional emails through SendGrid.
// With an empty API key it degrades to a no-op so local development does
// not need a mail account.
type EmailService struct {
	client *sendgrid.Client
	sender string
}

// NewEmailService initializes and returns a new EmailService instance.
func NewEmailService(apiKey, sender string) *EmailService {
	var client *sendgrid.Client
	if apiKey != "" {
		client = sendgrid.NewSendClient(apiKey)
	}
	return &EmailService{
		client: client,
		sender: sender,
	}
}

// SendEmail sends a basic email to the specified recipient.
func (es *EmailService) SendEmail(toEmail, toName, subject, htmlContent string) error {
	if es.client == nil {
		zap.L().Debug("email service disabled, skipping send", zap.String("to", toEmail))
		return nil
	}
	from := mail.NewEmail("THsport", es.sender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, htmlContent, htmlContent)
	resp, err := es.client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid rejected email: status %d", resp.StatusCode)
	}
	return nil
}

// SendOrderConfirmationEmail sends an order confirmation email to the user.
func (es *EmailService) SendOrderConfirmationEmail(user *models.User, order *models.Order) error {
	subject := "Order Confirmation"
	htmlContent := fmt.Sprintf(
		"<strong>Dear %s,</strong><br><br>Thank you for your purchase! Your order (ID: %s) has been placed successfully.<br><br>Total: <strong>%.0f</strong><br>Payment Method: <strong>%s</strong><br><br>Thank you for shopping with us!",
		user.Name,
		order.ID.Hex(),
		order.Total,
		order.PaymentMethod,
	)
	return es.SendEmail(user.Email, user.Name, subject, htmlContent)
}
