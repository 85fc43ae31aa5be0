package identity

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type FirebaseProvider struct {
	auth            *auth.Client
	firestore       *firestore.Client
	usersCollection string
}

func NewFirebaseProvider(ctx context.Context, projectID, credentialsFile, usersCollection string) (*FirebaseProvider, error) {
	var cfg *firebase.Config
	if projectID != "" {
		cfg = &firebase.Config{ProjectID: projectID}
	}

	app, err := firebase.NewApp(ctx, cfg, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get auth client: %w", err)
	}

	fsClient, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get firestore client: %w", err)
	}

	return &FirebaseProvider{
		auth:            authClient,
		firestore:       fsClient,
		usersCollection: usersCollection,
	}, nil
}

func (f *FirebaseProvider) VerifyIDToken(ctx context.Context, idToken string) (*Token, error) {
	tok, err := f.auth.VerifyIDToken(ctx, idToken)
	if err != nil {
		if auth.IsIDTokenExpired(err) || auth.IsIDTokenInvalid(err) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	out := &Token{
		UID:      tok.UID,
		Issuer:   tok.Issuer,
		Expires:  tok.Expires,
		IssuedAt: tok.IssuedAt,
		Claims:   tok.Claims,
	}
	if email, ok := tok.Claims["email"].(string); ok {
		out.Email = email
	}
	return out, nil
}

// UpdateEmail sets the sign-in email and clears its verified flag.
func (f *FirebaseProvider) UpdateEmail(ctx context.Context, uid, email string) error {
	params := (&auth.UserToUpdate{}).Email(email).EmailVerified(false)
	if _, err := f.auth.UpdateUser(ctx, uid, params); err != nil {
		return mapAuthError(err)
	}
	return nil
}

func (f *FirebaseProvider) ListUsers(ctx context.Context) ([]Document, error) {
	iter := f.firestore.Collection(f.usersCollection).Documents(ctx)
	defer iter.Stop()

	var users []Document
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list firestore users: %w", err)
		}
		users = append(users, toDocument(snap))
	}
	return users, nil
}

func (f *FirebaseProvider) GetUser(ctx context.Context, id string) (Document, error) {
	snap, err := f.firestore.Collection(f.usersCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get firestore user: %w", err)
	}
	return toDocument(snap), nil
}

func (f *FirebaseProvider) UpdateUser(ctx context.Context, id string, data map[string]interface{}) (Document, error) {
	doc := f.firestore.Collection(f.usersCollection).Doc(id)
	if _, err := doc.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get firestore user: %w", err)
	}

	clean := make(map[string]interface{}, len(data)+1)
	for k, v := range data {
		if k == "id" {
			continue
		}
		clean[k] = v
	}
	clean["updatedAt"] = time.Now().UTC()

	if _, err := doc.Set(ctx, clean, firestore.MergeAll); err != nil {
		return nil, fmt.Errorf("failed to update firestore user: %w", err)
	}
	return f.GetUser(ctx, id)
}

func (f *FirebaseProvider) DeleteUser(ctx context.Context, id string) error {
	if _, err := f.firestore.Collection(f.usersCollection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete firestore user: %w", err)
	}
	return nil
}

func (f *FirebaseProvider) Close() error {
	return f.firestore.Close()
}

func toDocument(snap *firestore.DocumentSnapshot) Document {
	doc := Document(snap.Data())
	if doc == nil {
		doc = Document{}
	}
	doc["id"] = snap.Ref.ID
	return doc
}

func mapAuthError(err error) error {
	switch {
	case auth.IsUserNotFound(err):
		return fmt.Errorf("%w: %v", ErrUserNotFound, err)
	case auth.IsEmailAlreadyExists(err):
		return fmt.Errorf("%w: %v", ErrEmailExists, err)
	case auth.IsInvalidEmail(err):
		return fmt.Errorf("%w: %v", ErrInvalidEmail, err)
	default:
		return err
	}
}
