package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"fleetadmin/internal/models"
	"fleetadmin/internal/utils"
	"fleetadmin/internal/validators"
	"fleetadmin/pkg/logger"
)

const testSecret = "test-secret"

func newTestUserService(repo *fakeUserRepo) UserService {
	audit, _ := newTestAudit()
	return NewUserService(repo, newFakeStorage(), 64, TokenConfig{Secret: testSecret, TTL: time.Hour}, audit, logger.NewNop())
}

func signupRequest(email string) *validators.SignupRequest {
	return &validators.SignupRequest{FirstName: "Lia", LastName: "Cruz", Email: email, Password: "Secret#123"}
}

func TestSignupHashesPasswordAndForcesUserRole(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestUserService(repo)

	user, err := svc.Signup(context.Background(), signupRequest("lia@fleet.test"), nil)
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if user.Password == "Secret#123" || !utils.CheckPassword(user.Password, "Secret#123") {
		t.Fatal("password was not hashed with bcrypt")
	}
	if user.Role != models.RoleUser || user.RoleID != 1 {
		t.Fatalf("role = %q/%d", user.Role, user.RoleID)
	}
	if user.ProfileImage != utils.DefaultProfileImage {
		t.Fatalf("profile_image = %q", user.ProfileImage)
	}

	_, err = svc.Signup(context.Background(), signupRequest("lia@fleet.test"), nil)
	assertStatus(t, err, http.StatusConflict, msgUserEmailExists)
}

func TestCreateUserDerivesRoleID(t *testing.T) {
	svc := newTestUserService(newFakeUserRepo())

	user, err := svc.CreateUser(context.Background(), &validators.CreateUserRequest{
		SignupRequest: *signupRequest("ops@fleet.test"),
		Role:          " Terminal Admin ",
	}, nil)
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if user.Role != models.RoleTerminalAdmin || user.RoleID != 3 {
		t.Fatalf("role = %q/%d", user.Role, user.RoleID)
	}
}

func TestLogin(t *testing.T) {
	hash, err := utils.HashPassword("Secret#123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	active := &models.User{Email: "admin@fleet.test", Password: hash, Role: models.RoleSuperAdmin, Status: models.UserStatusActive}
	suspended := &models.User{Email: "gone@fleet.test", Password: hash, Status: models.UserStatusSuspended}
	inactive := &models.User{Email: "idle@fleet.test", Password: hash, Status: models.UserStatusInactive}
	deleted := &models.User{Email: "deleted@fleet.test", Password: hash, Status: models.UserStatusActive, IsDeleted: true}
	repo := newFakeUserRepo(active, suspended, inactive, deleted)
	svc := newTestUserService(repo)
	ctx := context.Background()

	result, err := svc.Login(ctx, &validators.LoginRequest{Email: active.Email, Password: "Secret#123"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	claims, err := utils.ValidateToken(result.Token.AccessToken, testSecret)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != active.ID || claims.Role != string(models.RoleSuperAdmin) || claims.RoleID != 4 {
		t.Fatalf("claims = %+v", claims)
	}
	if repo.lastLogins != 1 {
		t.Fatalf("last login updates = %d", repo.lastLogins)
	}

	tests := []struct {
		name    string
		req     validators.LoginRequest
		status  int
		message string
	}{
		{"wrong password", validators.LoginRequest{Email: active.Email, Password: "nope"}, http.StatusUnauthorized, utils.ErrInvalidCredentials},
		{"unknown email", validators.LoginRequest{Email: "who@fleet.test", Password: "Secret#123"}, http.StatusUnauthorized, utils.ErrInvalidCredentials},
		{"deleted", validators.LoginRequest{Email: deleted.Email, Password: "Secret#123"}, http.StatusUnauthorized, utils.ErrInvalidCredentials},
		{"suspended", validators.LoginRequest{Email: suspended.Email, Password: "Secret#123"}, http.StatusForbidden, msgAccountSuspended},
		{"inactive", validators.LoginRequest{Email: inactive.Email, Password: "Secret#123"}, http.StatusForbidden, msgAccountInactive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(ctx, &tt.req)
			assertStatus(t, err, tt.status, tt.message)
		})
	}
}

func TestUpdateUser(t *testing.T) {
	a := &models.User{Email: "a@fleet.test", Password: "x", Status: models.UserStatusActive}
	b := &models.User{Email: "b@fleet.test", Password: "x", Status: models.UserStatusActive}
	svc := newTestUserService(newFakeUserRepo(a, b))
	ctx := context.Background()

	_, err := svc.UpdateUser(ctx, a.ID, &validators.UpdateUserRequest{Email: strPtr("b@fleet.test")}, nil)
	assertStatus(t, err, http.StatusConflict, msgUserEmailExists)

	updated, err := svc.UpdateUser(ctx, a.ID, &validators.UpdateUserRequest{
		Password: strPtr("Newpass#1"),
		Role:     strPtr("OPERATOR"),
	}, nil)
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if !utils.CheckPassword(updated.Password, "Newpass#1") {
		t.Fatal("password was not re-hashed")
	}
	if updated.Role != models.RoleOperator || updated.RoleID != 2 {
		t.Fatalf("role = %q/%d", updated.Role, updated.RoleID)
	}
}

func TestUpdateUserReplacesImage(t *testing.T) {
	u := &models.User{Email: "a@fleet.test", ProfileImage: "users/old.png", Status: models.UserStatusActive}
	store := newFakeStorage()
	store.uploaded["users/old.png"] = []byte("old")
	audit, _ := newTestAudit()
	svc := NewUserService(newFakeUserRepo(u), store, 64, TokenConfig{Secret: testSecret, TTL: time.Hour}, audit, logger.NewNop())

	updated, err := svc.UpdateUser(context.Background(), u.ID, &validators.UpdateUserRequest{}, pngUpload(t, "new.png"))
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if updated.ProfileImage == "users/old.png" {
		t.Fatal("profile image was not replaced")
	}
	if _, ok := store.uploaded[updated.ProfileImage]; !ok {
		t.Fatalf("new image %q was removed, deleted = %v", updated.ProfileImage, store.deleted)
	}
	if _, ok := store.uploaded["users/old.png"]; ok {
		t.Fatal("old image was not removed")
	}
}

func TestDeleteUserHidesIt(t *testing.T) {
	u := &models.User{Email: "a@fleet.test"}
	svc := newTestUserService(newFakeUserRepo(u))
	ctx := context.Background()

	if _, err := svc.DeleteUser(ctx, u.ID); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	_, err := svc.GetUser(ctx, u.ID)
	assertStatus(t, err, http.StatusNotFound, msgUserNotFound)
}
