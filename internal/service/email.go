package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"homehub-backend/internal/invitecode"
)

type sendGridEmailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &sendGridEmailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *sendGridEmailService) send(to, toName, subject, plainText, htmlContent string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)

	message := mail.NewSingleEmail(from, subject, recipient, plainText, htmlContent)

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *sendGridEmailService) SendInvitation(ctx context.Context, email, name, code, familyName string) error {
	display := invitecode.Format(code)
	subject := fmt.Sprintf("You are invited to join %s", familyName)
	plain := fmt.Sprintf("Hello %s,\n\nYou have been invited to join the household %s on HomeHub.\n\nEnter this code in the app to join:\n\n    %s\n\nThe code can be used once and expires after a few days.\n\nThe HomeHub Team", name, familyName, display)
	html := fmt.Sprintf(`
		<html>
			<body>
				<p>Hello %s,</p>
				<p>You have been invited to join the household <strong>%s</strong> on HomeHub.</p>
				<p>Enter this code in the app to join:</p>
				<h2>%s</h2>
				<p>The code can be used once and expires after a few days.</p>
			</body>
		</html>
	`, name, familyName, display)
	return s.send(email, name, subject, plain, html)
}

func (s *sendGridEmailService) SendJoinAnnouncement(ctx context.Context, email, name, newMemberName, familyName string) error {
	subject := fmt.Sprintf("%s joined %s", newMemberName, familyName)
	plain := fmt.Sprintf("Hello %s,\n\n%s just joined your household %s on HomeHub.\n\nThe HomeHub Team", name, newMemberName, familyName)
	html := fmt.Sprintf(`
		<html>
			<body>
				<p>Hello %s,</p>
				<p><strong>%s</strong> just joined your household <strong>%s</strong> on HomeHub.</p>
			</body>
		</html>
	`, name, newMemberName, familyName)
	return s.send(email, name, subject, plain, html)
}
