package domain

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSuperadmin Role = "superadmin"
)

type User struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	Nama         string `json:"nama"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"role"`
}
