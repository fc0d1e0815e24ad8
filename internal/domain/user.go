package domain

import "time"

type User struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

func (u User) Owner() Owner {
	return Owner{UserID: u.ID, Email: u.Email}
}
