package domain

type User struct {
	Id       UserId
	Email    Email
	Name     string
	Password Password // plain text or bcrypt hash, depending on password_storage
	Image    *string
	Admin    bool
}

// to iterate thru layers: handler -> service
type UserUpdateData struct {
	Email    *Email
	Password *Password
	Name     *string
	Image    *string
}

type Credentials struct {
	Email    Email
	Password Password
}

type Registration struct {
	Credentials
	Name string
}

// Session is what the credential service hands out on login/register.
type Session struct {
	Token  string `json:"token"`
	UserId UserId `json:"userId"`
}
