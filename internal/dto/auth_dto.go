package dto

type RegisterSuperAdminRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *RegisterSuperAdminRequest) Validate() error {
	v := newValidator()
	r.Email = v.email("email", r.Email)
	v.password("password", r.Password)
	return v.err()
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	v := newValidator()
	r.Email = v.email("email", r.Email)
	v.required("password", "Password", r.Password)
	return v.err()
}

// LoginResponse is returned by every login endpoint. CompanyName is set for
// admins, Name for end-users.
type LoginResponse struct {
	ID          uint   `json:"id"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	CompanyName string `json:"companyName,omitempty"`
	Name        string `json:"name,omitempty"`
	Token       string `json:"token"`
}

type ErrorResponse struct {
	Error   bool              `json:"error"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status      string `json:"status"`
	Timestamp   string `json:"timestamp"`
	DB          string `json:"db"`
	TenantPools int    `json:"tenant_pools"`
}
