package domain

// AdminClaims is the payload carried by admin tokens
type AdminClaims struct {
	Subject string `json:"sub"`
	Role    string `json:"role"`
}

const RoleAdmin = "admin"

// RegisterRequest carries candidate details for a new attempt
type RegisterRequest struct {
	Name       string `json:"name"`
	Year       string `json:"year"`
	Section    string `json:"section"`
	RollNumber string `json:"rollNumber"`
}

type RegisterResponse struct {
	SessionID  string `json:"sessionId"`
	RollNumber string `json:"rollNumber"`
}
