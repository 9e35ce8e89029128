package services

import (
	"context"

	"github.com/sportall/app-recruit/internal/utils"
)

// EmailSender delivers transactional email
type EmailSender interface {
	Send(ctx context.Context, to, subject, html string) error
	SendVerificationCode(ctx context.Context, to, code string) error
}

// SMSVerifier is the provider-side OTP boundary. The provider, not this
// service, is authoritative for phone codes.
type SMSVerifier interface {
	StartVerification(ctx context.Context, phoneNumber string) (sessionID string, err error)
	CheckVerification(ctx context.Context, phoneNumber, code string) (approved bool, err error)
}

// ResendSender sends email through the Resend API
type ResendSender struct{}

// NewResendSender creates a ResendSender
func NewResendSender() *ResendSender {
	return &ResendSender{}
}

// Send delivers an email
func (s *ResendSender) Send(ctx context.Context, to, subject, html string) error {
	return utils.SendEmail(ctx, to, subject, html)
}

// SendVerificationCode delivers a one-time code email
func (s *ResendSender) SendVerificationCode(ctx context.Context, to, code string) error {
	return utils.SendVerificationCodeEmail(ctx, to, code)
}

// TwilioVerifier verifies phone numbers through Twilio Verify
type TwilioVerifier struct{}

// NewTwilioVerifier creates a TwilioVerifier
func NewTwilioVerifier() *TwilioVerifier {
	return &TwilioVerifier{}
}

// StartVerification opens an OTP session
func (v *TwilioVerifier) StartVerification(ctx context.Context, phoneNumber string) (string, error) {
	return utils.StartPhoneVerification(ctx, phoneNumber)
}

// CheckVerification checks a submitted code
func (v *TwilioVerifier) CheckVerification(ctx context.Context, phoneNumber, code string) (bool, error) {
	return utils.CheckPhoneVerification(ctx, phoneNumber, code)
}
