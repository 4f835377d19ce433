package models

import "time"

// Role is the session role carried for attribution. Both roles can perform
// every admin operation; no permission check distinguishes them.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
)

// Session is the record of an authenticated operator, persisted under the
// "session" key while logged in and destroyed on logout.
type Session struct {
	Username    string    `json:"username"`
	DisplayName string    `json:"name"`
	Role        Role      `json:"role"`
	LoginTime   time.Time `json:"login_time"`
}
