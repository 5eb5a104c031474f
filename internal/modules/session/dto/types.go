package dto

type LoginInput struct {
	Role     string
	Email    string
	Password string
}

type RegisterInput struct {
	Role      string
	FirstName string
	LastName  string
	Email     string
	Mobile    string
	NIC       string
	Password  string
}

// CredentialsInput is an already-issued session to install.
type CredentialsInput struct {
	Token     string
	Role      string
	ID        string
	Email     string
	FirstName string
	LastName  string
}

type UserOutput struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
	Mobile    string
	Role      string
	NIC       string
	Active    *bool
}

type SessionOutput struct {
	Authenticated bool
	Token         string
	User          *UserOutput
	Loading       bool
	Error         string
}
