package storage

import (
	"context"
	"strings"
	"testing"
)

func TestLocalStorageUploadAndDelete(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalStorage(t.TempDir(), "http://localhost:8080/uploads/")
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}

	resp, err := store.Upload(ctx, &UploadRequest{
		Key:         "drivers/a.png",
		Reader:      strings.NewReader("png-bytes"),
		ContentType: "image/png",
	})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if resp.Size != int64(len("png-bytes")) {
		t.Fatalf("size = %d", resp.Size)
	}
	if resp.URL != "http://localhost:8080/uploads/drivers/a.png" {
		t.Fatalf("url = %s", resp.URL)
	}

	exists, err := store.FileExists(ctx, "drivers/a.png")
	if err != nil || !exists {
		t.Fatalf("FileExists = %v, %v", exists, err)
	}

	if err := store.Delete(ctx, "drivers/a.png"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	// deleting twice is not an error
	if err := store.Delete(ctx, "drivers/a.png"); err != nil {
		t.Fatalf("second Delete: %v", err)
	}
}

func TestLocalStorageRejectsTraversal(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir(), "")
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}
	_, err = store.Upload(context.Background(), &UploadRequest{Key: "../escape.txt", Reader: strings.NewReader("x")})
	if err == nil {
		t.Fatal("expected error for key outside base path")
	}
}

func TestNewUnknownProvider(t *testing.T) {
	if _, err := New(context.Background(), Options{Provider: "ftp"}); err != ErrUnknownProvider {
		t.Fatalf("err = %v", err)
	}
}
