package domain

// User is the hydrated user record including the derived friend-id set:
// targets of all outgoing friend edges plus sources of approved inbound ones.
type User struct {
	ID       int    `json:"id" db:"id"`
	Email    string `json:"email" db:"email"`
	Login    string `json:"login" db:"login"`
	Name     string `json:"name" db:"name"`
	Birthday Date   `json:"birthday" db:"birthday"`
	Friends  []int  `json:"friends"`
}

// UserPayload is the request body for creating or updating a user.
type UserPayload struct {
	ID       int    `json:"id"`
	Email    string `json:"email" validate:"required,email"`
	Login    string `json:"login" validate:"required,nowhitespace"`
	Name     string `json:"name"`
	Birthday Date   `json:"birthday" validate:"notfuture"`
}

// User converts the payload into a domain user. A missing display name
// defaults to the login.
func (p UserPayload) User() *User {
	name := p.Name
	if name == "" {
		name = p.Login
	}
	return &User{
		ID:       p.ID,
		Email:    p.Email,
		Login:    p.Login,
		Name:     name,
		Birthday: p.Birthday,
		Friends:  []int{},
	}
}
