package auth

// User is the domain entity. Role is ADMIN for catalog managers;
// plain browsing needs no account at all.
type User struct {
	ID       string
	Name     string
	Email    string
	Password string
	Role     string
}

const RoleAdmin = "ADMIN"
