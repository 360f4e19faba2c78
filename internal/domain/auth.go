package domain

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Registration struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type AuthResult struct {
	AccessToken string   `json:"access_token,omitempty"`
	Message     string   `json:"message,omitempty"`
	User        *Profile `json:"user,omitempty"`
}
