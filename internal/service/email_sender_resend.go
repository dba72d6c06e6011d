package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/resendlabs/resend-go"
)

// ResendEmailSender delivers password reset codes through the Resend API.
type ResendEmailSender struct {
	Client     *resend.Client
	From       string
	AppBaseURL string
	ResetPath  string
}

func NewResendEmailSender(apiKey string, from string, appBaseURL string) *ResendEmailSender {
	if strings.TrimSpace(apiKey) == "" || strings.TrimSpace(from) == "" {
		return &ResendEmailSender{}
	}
	return &ResendEmailSender{
		Client:     resend.NewClient(apiKey),
		From:       from,
		AppBaseURL: strings.TrimRight(appBaseURL, "/"),
		ResetPath:  "/reset-password",
	}
}

func (s *ResendEmailSender) SendPasswordResetEmail(_ context.Context, email string, code string) error {
	if s.Client == nil {
		return errors.New("email sender not configured")
	}
	link := s.buildResetURL(email, code)
	params := &resend.SendEmailRequest{
		From:    s.From,
		To:      []string{email},
		Subject: "Reset your password",
		Html: fmt.Sprintf(
			"<p>Your password reset code is <strong>%s</strong>.</p><p><a href=\"%s\">Reset Password</a></p><p>The code expires in 15 minutes.</p>",
			code, link,
		),
		Text: fmt.Sprintf("Your password reset code is %s. Reset here: %s (expires in 15 minutes)", code, link),
	}
	_, err := s.Client.Emails.Send(params)
	return err
}

func (s *ResendEmailSender) buildResetURL(email string, code string) string {
	if s.AppBaseURL == "" {
		return code
	}
	return fmt.Sprintf("%s%s?email=%s&code=%s", s.AppBaseURL, s.ResetPath, url.QueryEscape(email), url.QueryEscape(code))
}
