// Package identity wraps the managed identity provider (Firebase Auth and the
// Firestore users collection) behind a small interface.
package identity

import (
	"context"
	"errors"
)

var (
	ErrNotConfigured = errors.New("Firebase Admin not configured")
	ErrUserNotFound  = errors.New("User not found")
	ErrEmailExists   = errors.New("email already exists")
	ErrInvalidEmail  = errors.New("invalid email")
	ErrInvalidToken  = errors.New("invalid or expired ID token")
)

// Document is a Firestore user record with its document id under "id".
type Document map[string]interface{}

type Token struct {
	UID      string                 `json:"uid"`
	Email    string                 `json:"email,omitempty"`
	Issuer   string                 `json:"iss"`
	Expires  int64                  `json:"exp"`
	IssuedAt int64                  `json:"iat"`
	Claims   map[string]interface{} `json:"claims,omitempty"`
}

type Provider interface {
	VerifyIDToken(ctx context.Context, idToken string) (*Token, error)
	UpdateEmail(ctx context.Context, uid, email string) error

	ListUsers(ctx context.Context) ([]Document, error)
	GetUser(ctx context.Context, id string) (Document, error)
	UpdateUser(ctx context.Context, id string, data map[string]interface{}) (Document, error)
	DeleteUser(ctx context.Context, id string) error

	Close() error
}

// Disabled is used when no Firebase credentials are configured.
type Disabled struct{}

func (Disabled) VerifyIDToken(context.Context, string) (*Token, error) { return nil, ErrNotConfigured }
func (Disabled) UpdateEmail(context.Context, string, string) error     { return ErrNotConfigured }
func (Disabled) ListUsers(context.Context) ([]Document, error)         { return nil, ErrNotConfigured }
func (Disabled) GetUser(context.Context, string) (Document, error)     { return nil, ErrNotConfigured }
func (Disabled) UpdateUser(context.Context, string, map[string]interface{}) (Document, error) {
	return nil, ErrNotConfigured
}
func (Disabled) DeleteUser(context.Context, string) error { return ErrNotConfigured }
func (Disabled) Close() error                             { return nil }
