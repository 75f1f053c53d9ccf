package models

// Landing paths returned after login.
const (
	LandingChangePassword = "/change-password"
	LandingHome           = "/"
)

var dashboards = map[Role]string{
	RoleAdmin:       "/admin-dashboard",
	RoleManager:     "/manager-dashboard",
	RoleMember:      "/member-dashboard",
	RoleParticipant: "/participant-dashboard",
}

// Landing decides where an authenticated account is sent. Accounts that
// still carry a first-login password must change it before anything else.
func Landing(a *Account) string {
	if a == nil {
		return LandingHome
	}
	if a.IsFirstLogin {
		return LandingChangePassword
	}
	if path, ok := dashboards[a.Role]; ok {
		return path
	}
	return LandingHome
}
