package email

import (
	"context"
	"net/smtp"
	"strings"
	"testing"
)

func TestSMTPSenderBuildsMessage(t *testing.T) {
	s := NewSMTPSender(&SMTPConfig{
		Host:      "smtp.example.com",
		Port:      587,
		Username:  "u",
		Password:  "p",
		FromEmail: "noreply@example.com",
		FromName:  "Fleet Admin",
	})

	var gotAddr string
	var gotBody string
	s.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr = addr
		gotBody = string(msg)
		if from != "noreply@example.com" || len(to) != 1 || to[0] != "ops@example.com" {
			t.Fatalf("unexpected envelope from=%s to=%v", from, to)
		}
		return nil
	}

	err := s.Send(context.Background(), &Message{To: "ops@example.com", Subject: "Your code", Body: "123456"})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if gotAddr != "smtp.example.com:587" {
		t.Fatalf("addr = %s", gotAddr)
	}
	for _, want := range []string{"From: Fleet Admin <noreply@example.com>", "Subject: Your code", "\r\n\r\n123456"} {
		if !strings.Contains(gotBody, want) {
			t.Fatalf("message missing %q:\n%s", want, gotBody)
		}
	}
}

func TestSMTPSenderNotConfigured(t *testing.T) {
	s := NewSMTPSender(&SMTPConfig{})
	if err := s.Send(context.Background(), &Message{To: "x@example.com"}); err != ErrNotConfigured {
		t.Fatalf("err = %v", err)
	}
}
