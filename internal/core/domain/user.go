package domain

// Role is the closed set of marketplace roles a token can carry.
type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
)

// ParseRole maps a raw role string onto a known Role.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleBuyer:
		return RoleBuyer, true
	case RoleSeller:
		return RoleSeller, true
	}
	return "", false
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok
}

func (r Role) String() string {
	return string(r)
}

// UserRecord is a directory entry. Records are defined at startup and never mutated.
// Either Password (plaintext) or PasswordHash (bcrypt) must be set.
type UserRecord struct {
	Username     string `json:"username"  validate:"required"`
	Password     string `json:"-"         validate:"required_without=PasswordHash"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"role"      validate:"required,oneof=buyer seller"`
}
