package models

// Credentials carries the username/password pair supplied by the operator
// during registration, login and password changes. The password never
// leaves the process and is excluded from any serialized form.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"-"`
}
