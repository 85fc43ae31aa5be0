package sms

import (
	"context"
	"fmt"
)

type SMSProvider interface {
	SendSMS(ctx context.Context, request *SMSRequest) (*SMSResponse, error)
	Name() string
}

type SMSRequest struct {
	To      string `json:"to"`
	From    string `json:"from"`
	Message string `json:"message"`
	Type    string `json:"type"` // transactional, promotional
}

type SMSResponse struct {
	MessageID string `json:"message_id"`
	Status    string `json:"status"`
}

type Options struct {
	Provider string // twilio, sns

	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string

	AWSRegion string
	SenderID  string
}

// New returns nil, nil when no provider is configured; SMS delivery is then unavailable.
func New(ctx context.Context, opts Options) (SMSProvider, error) {
	switch opts.Provider {
	case "":
		return nil, nil
	case "twilio":
		if opts.TwilioAccountSID == "" || opts.TwilioAuthToken == "" {
			return nil, fmt.Errorf("twilio credentials are not configured")
		}
		return NewTwilioProvider(opts.TwilioAccountSID, opts.TwilioAuthToken, opts.TwilioFromNumber), nil
	case "sns", "aws":
		return NewAWSSNSProvider(ctx, opts.AWSRegion, opts.SenderID)
	default:
		return nil, fmt.Errorf("unknown sms provider %q", opts.Provider)
	}
}
