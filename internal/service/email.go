package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"segurauto-backend/internal/config"
	"segurauto-backend/internal/domain"
	"segurauto-backend/internal/logger"
)

type sendGridEmailService struct {
	apiKey    string
	fromEmail string
	fromName  string
	log       *slog.Logger
}

// NewEmailService builds the outbound mail service. With email disabled in
// config, a logging no-op is returned so callers never nil-check.
func NewEmailService(cfg config.EmailConfig) EmailService {
	if !cfg.Enabled {
		return &noopEmailService{log: logger.WithService("email")}
	}
	return &sendGridEmailService{
		apiKey:    cfg.SendGridAPIKey,
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
		log:       logger.WithService("email"),
	}
}

func (s *sendGridEmailService) SendPolicyPurchased(ctx context.Context, to, name string, policy *domain.Policy) error {
	subject := fmt.Sprintf("Your policy %s is active", policy.PolicyNumber)
	plainText := fmt.Sprintf(
		"Hi %s,\n\nYour %s policy %s is active and covers your vehicle until %s.\n\nThank you for choosing SegurAuto.",
		name, policy.Tier, policy.PolicyNumber, policy.ExpiresOn.Format("January 2, 2006"))
	htmlContent := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your <strong>%s</strong> policy <strong>%s</strong> is active and covers your vehicle until %s.</p><p>Thank you for choosing SegurAuto.</p>",
		name, policy.Tier, policy.PolicyNumber, policy.ExpiresOn.Format("January 2, 2006"))
	return s.send(ctx, to, name, subject, plainText, htmlContent)
}

func (s *sendGridEmailService) SendClaimStatusChanged(ctx context.Context, to, name string, claim *domain.Claim) error {
	subject := fmt.Sprintf("Claim %s update: %s", claim.ClaimNumber, claim.Status)
	plainText := fmt.Sprintf(
		"Hi %s,\n\nYour claim %s has moved to status %s.",
		name, claim.ClaimNumber, claim.Status)
	if claim.Status == domain.ClaimStatusApproved && claim.CompensationCents != nil {
		plainText += fmt.Sprintf("\nApproved compensation: %.2f.", float64(*claim.CompensationCents)/100)
	}
	htmlContent := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your claim <strong>%s</strong> has moved to status <strong>%s</strong>.</p>",
		name, claim.ClaimNumber, claim.Status)
	return s.send(ctx, to, name, subject, plainText, htmlContent)
}

func (s *sendGridEmailService) SendPolicyExpiryReminder(ctx context.Context, to, name string, policy *domain.Policy) error {
	subject := fmt.Sprintf("Policy %s expires on %s", policy.PolicyNumber, policy.ExpiresOn.Format("January 2, 2006"))
	plainText := fmt.Sprintf(
		"Hi %s,\n\nYour policy %s expires on %s. Renew to stay covered.",
		name, policy.PolicyNumber, policy.ExpiresOn.Format("January 2, 2006"))
	htmlContent := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your policy <strong>%s</strong> expires on %s. Renew to stay covered.</p>",
		name, policy.PolicyNumber, policy.ExpiresOn.Format("January 2, 2006"))
	return s.send(ctx, to, name, subject, plainText, htmlContent)
}

func (s *sendGridEmailService) SendClaimReviewNudge(ctx context.Context, to string, pendingCount int) error {
	subject := fmt.Sprintf("%d claims awaiting review", pendingCount)
	plainText := fmt.Sprintf("There are %d claims that have been pending review for several days.", pendingCount)
	htmlContent := fmt.Sprintf("<p>There are <strong>%d</strong> claims that have been pending review for several days.</p>", pendingCount)
	return s.send(ctx, to, "", subject, plainText, htmlContent)
}

func (s *sendGridEmailService) send(ctx context.Context, to, toName, subject, plainText, htmlContent string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, htmlContent)

	logger.ExternalServiceCall("sendgrid", "send", "subject", subject)
	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	logger.ExternalServiceResult("sendgrid", "send", err)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

// noopEmailService logs what would have been sent. Used in development and in
// tests of the wider system.
type noopEmailService struct {
	log *slog.Logger
}

func (s *noopEmailService) SendPolicyPurchased(ctx context.Context, to, name string, policy *domain.Policy) error {
	s.log.InfoContext(ctx, "email disabled, skipping purchase confirmation", "to", to, "policy_number", policy.PolicyNumber)
	return nil
}

func (s *noopEmailService) SendClaimStatusChanged(ctx context.Context, to, name string, claim *domain.Claim) error {
	s.log.InfoContext(ctx, "email disabled, skipping claim status notice", "to", to, "claim_number", claim.ClaimNumber)
	return nil
}

func (s *noopEmailService) SendPolicyExpiryReminder(ctx context.Context, to, name string, policy *domain.Policy) error {
	s.log.InfoContext(ctx, "email disabled, skipping expiry reminder", "to", to, "policy_number", policy.PolicyNumber)
	return nil
}

func (s *noopEmailService) SendClaimReviewNudge(ctx context.Context, to string, pendingCount int) error {
	s.log.InfoContext(ctx, "email disabled, skipping review nudge", "to", to, "pending", pendingCount)
	return nil
}
