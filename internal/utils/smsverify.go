package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/sportall/app-recruit/internal/config"
	"github.com/sportall/app-recruit/internal/logging"
	"github.com/sportall/app-recruit/internal/observability"
	"github.com/sportall/app-recruit/internal/utils/httpclient"
	"go.uber.org/zap"
)

type verifyStartResponse struct {
	SID    string `json:"sid"`
	Status string `json:"status"`
}

type verifyCheckResponse struct {
	SID    string `json:"sid"`
	Status string `json:"status"`
}

// StartPhoneVerification opens an OTP session with Twilio Verify and
// returns the provider session id
func StartPhoneVerification(ctx context.Context, phoneNumber string) (string, error) {
	logger := logging.Logger.With(
		zap.String("operation", "start_phone_verification"),
		zap.String("phone", observability.MaskPhone(phoneNumber)),
	)

	endpoint := fmt.Sprintf("%s/Services/%s/Verifications",
		config.AppConfig.TwilioVerifyBaseURL, config.AppConfig.TwilioVerifyServiceSID)

	form := url.Values{}
	form.Set("To", phoneNumber)
	form.Set("Channel", "sms")

	respBody, statusCode, err := postTwilioForm(ctx, endpoint, form)
	if err != nil {
		logger.Error("verification start failed", zap.Error(err))
		return "", err
	}
	if statusCode != http.StatusCreated && statusCode != http.StatusOK {
		logger.Error("verification start rejected",
			zap.Int("status_code", statusCode),
			zap.ByteString("body", respBody))
		return "", fmt.Errorf("verification start failed with status: %d", statusCode)
	}

	var startResp verifyStartResponse
	if err := json.Unmarshal(respBody, &startResp); err != nil {
		return "", fmt.Errorf("failed to decode verification response: %w", err)
	}

	logger.Debug("verification session opened", zap.String("session_id", startResp.SID))
	return startResp.SID, nil
}

// CheckPhoneVerification asks Twilio Verify whether a submitted code is
// correct for the given number
func CheckPhoneVerification(ctx context.Context, phoneNumber, code string) (bool, error) {
	logger := logging.Logger.With(
		zap.String("operation", "check_phone_verification"),
		zap.String("phone", observability.MaskPhone(phoneNumber)),
	)

	endpoint := fmt.Sprintf("%s/Services/%s/VerificationCheck",
		config.AppConfig.TwilioVerifyBaseURL, config.AppConfig.TwilioVerifyServiceSID)

	form := url.Values{}
	form.Set("To", phoneNumber)
	form.Set("Code", code)

	respBody, statusCode, err := postTwilioForm(ctx, endpoint, form)
	if err != nil {
		logger.Error("verification check failed", zap.Error(err))
		return false, err
	}
	// Twilio returns 404 when no pending verification exists for the number
	if statusCode == http.StatusNotFound {
		return false, nil
	}
	if statusCode != http.StatusOK {
		logger.Error("verification check rejected",
			zap.Int("status_code", statusCode),
			zap.ByteString("body", respBody))
		return false, fmt.Errorf("verification check failed with status: %d", statusCode)
	}

	var checkResp verifyCheckResponse
	if err := json.Unmarshal(respBody, &checkResp); err != nil {
		return false, fmt.Errorf("failed to decode verification check response: %w", err)
	}

	return checkResp.Status == "approved", nil
}

// postTwilioForm sends an authenticated form POST to the Verify API
func postTwilioForm(ctx context.Context, endpoint string, form url.Values) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(config.AppConfig.TwilioAccountSID, config.AppConfig.TwilioAuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	client := httpclient.GetGlobalPool().Get()
	defer httpclient.GetGlobalPool().Put(client)

	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response: %w", err)
	}
	return body, resp.StatusCode, nil
}
