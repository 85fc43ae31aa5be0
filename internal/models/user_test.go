package models

import "testing"

func TestRoleIDFor(t *testing.T) {
	tests := []struct {
		role string
		want int
	}{
		{"user", 1},
		{"operator", 2},
		{"terminal admin", 3},
		{"super admin", 4},
		{"  Super Admin ", 4},
		{"OPERATOR", 2},
		{"pilot", 1},
		{"", 1},
	}
	for _, tt := range tests {
		if got := RoleIDFor(tt.role); got != tt.want {
			t.Errorf("RoleIDFor(%q) = %d, want %d", tt.role, got, tt.want)
		}
	}
}

func TestRoleNameFor(t *testing.T) {
	for id, want := range map[int]UserRole{1: RoleUser, 2: RoleOperator, 3: RoleTerminalAdmin, 4: RoleSuperAdmin, 9: RoleUser} {
		if got := RoleNameFor(id); got != want {
			t.Errorf("RoleNameFor(%d) = %q, want %q", id, got, want)
		}
	}
}

func TestApplyRoleDerivesRoleID(t *testing.T) {
	u := &User{Role: " Terminal Admin"}
	u.ApplyRole()
	if u.Role != RoleTerminalAdmin || u.RoleID != 3 {
		t.Fatalf("got role=%q roleid=%d", u.Role, u.RoleID)
	}

	u = &User{Role: "captain"}
	u.ApplyRole()
	if u.Role != RoleUser || u.RoleID != 1 {
		t.Fatalf("unknown role not defaulted: role=%q roleid=%d", u.Role, u.RoleID)
	}
}
