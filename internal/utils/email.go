package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/sportall/app-recruit/internal/config"
	"github.com/sportall/app-recruit/internal/logging"
	"github.com/sportall/app-recruit/internal/observability"
	"github.com/sportall/app-recruit/internal/utils/httpclient"
	"go.uber.org/zap"
)

type emailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type emailResponse struct {
	ID string `json:"id"`
}

// SendEmail delivers a transactional email via the Resend API
func SendEmail(ctx context.Context, to, subject, html string) error {
	logger := logging.Logger.With(
		zap.String("operation", "send_email"),
		zap.String("to", observability.MaskEmail(to)),
	)

	if config.AppConfig.ResendAPIKey == "" {
		logger.Warn("email provider not configured, skipping send")
		return nil
	}

	body := emailRequest{
		From:    config.AppConfig.ResendFromEmail,
		To:      []string{to},
		Subject: subject,
		HTML:    html,
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal email request: %w", err)
	}

	url := fmt.Sprintf("%s/emails", config.AppConfig.ResendBaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return fmt.Errorf("failed to create email request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+config.AppConfig.ResendAPIKey)
	req.Header.Set("Content-Type", "application/json")

	client := httpclient.GetGlobalPool().Get()
	defer httpclient.GetGlobalPool().Put(client)

	resp, err := client.Do(req)
	if err != nil {
		logger.Error("email request failed", zap.Error(err))
		return fmt.Errorf("email request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read email response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		logger.Error("email provider returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.ByteString("body", respBody))
		return fmt.Errorf("email request failed with status: %d", resp.StatusCode)
	}

	var emailResp emailResponse
	if err := json.Unmarshal(respBody, &emailResp); err != nil {
		logger.Warn("failed to decode email response", zap.Error(err))
	}

	logger.Debug("email sent", zap.String("provider_id", emailResp.ID))
	return nil
}

// SendVerificationCodeEmail delivers a one-time verification code
func SendVerificationCodeEmail(ctx context.Context, to, code string) error {
	html := fmt.Sprintf(
		"<p>Your Sportall verification code is <strong>%s</strong>.</p><p>It expires in 10 minutes.</p>",
		code,
	)
	return SendEmail(ctx, to, "Your verification code", html)
}
