package domain

// Role роль пользователя
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Identity identifies the caller of an operation.
// Supplied by the authentication middleware and passed explicitly to services.
type Identity struct {
	UserID int64
	Role   Role
}

// IsAdmin returns true for administrators
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// CanManage returns true if the caller owns the resource or is an administrator
func (i Identity) CanManage(ownerID int64) bool {
	return i.IsAdmin() || i.UserID == ownerID
}

// IsValidRole проверяет, что строка - известная роль
func IsValidRole(role string) bool {
	return Role(role) == RoleUser || Role(role) == RoleAdmin
}
