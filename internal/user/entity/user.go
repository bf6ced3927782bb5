package entity

// User represents an account row in the `users` table. The username is
// the primary key. The password hash never leaves the service layer.
type User struct {
	Username     string  `db:"username" json:"username"`
	FirstName    string  `db:"first_name" json:"firstName"`
	LastName     string  `db:"last_name" json:"lastName"`
	Email        string  `db:"email" json:"email"`
	IsAdmin      bool    `db:"is_admin" json:"isAdmin"`
	PasswordHash *string `db:"password_hash" json:"-"`
}
