package models

import "testing"

func TestLanding(t *testing.T) {
	tests := []struct {
		name    string
		account *Account
		want    string
	}{
		{"nil account", nil, "/"},
		{"first login wins over role", &Account{Role: RoleAdmin, IsFirstLogin: true}, "/change-password"},
		{"admin", &Account{Role: RoleAdmin}, "/admin-dashboard"},
		{"manager", &Account{Role: RoleManager}, "/manager-dashboard"},
		{"member", &Account{Role: RoleMember}, "/member-dashboard"},
		{"participant", &Account{Role: RoleParticipant}, "/participant-dashboard"},
		{"unknown role", &Account{Role: "guest"}, "/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Landing(tt.account); got != tt.want {
				t.Fatalf("Landing() = %q, want %q", got, tt.want)
			}
		})
	}
}
