package user

import "time"

// User - учетная запись. Email постоянный и служит владельцем данных на
// сервере; Username можно менять, он же идентификатор локального хранилища.
type User struct {
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Password  string    `json:"password"` // хэш
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
