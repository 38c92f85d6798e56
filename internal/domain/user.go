package domain

type User struct {
	ID        string `db:"id" json:"id"`
	Username  string `db:"username" json:"username"`
	Email     string `db:"email" json:"email"`
	Hash      string `db:"password_hash" json:"-"`
	FirstName string `db:"first_name" json:"firstName"`
	LastName  string `db:"last_name" json:"lastName"`
	Role      string `db:"role" json:"role"` // USER | ADMIN
	CreatedAt string `db:"created_at" json:"createdAt"`
}
