package dto

import "github.com/zenflow/backend/internal/api/validation"

type RegisterRequest struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	BusinessName string `json:"businessName"`
	BusinessType string `json:"businessType"`
	CEP          string `json:"cep"`
	Phone        string `json:"phone"`
}

func (r RegisterRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.FirstName == "" {
		errors["firstName"] = "First name is required"
	}
	if r.LastName == "" {
		errors["lastName"] = "Last name is required"
	}
	if r.Email == "" {
		errors["email"] = "Email is required"
	} else if !validation.IsValidEmail(r.Email) {
		errors["email"] = "Email format is invalid"
	}
	if r.Password == "" {
		errors["password"] = "Password is required"
	}
	if r.BusinessName == "" {
		errors["businessName"] = "Business name is required"
	}
	if r.BusinessType == "" {
		errors["businessType"] = "Business type is required"
	}
	if r.CEP == "" {
		errors["cep"] = "CEP is required"
	} else if !validation.IsValidCEP(r.CEP) {
		errors["cep"] = "CEP format is invalid"
	}
	if r.Phone == "" {
		errors["phone"] = "Phone is required"
	} else if !validation.IsValidPhone(r.Phone) {
		errors["phone"] = "Phone format is invalid"
	}

	return errors
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Email == "" {
		errors["email"] = "Email is required"
	}
	if r.Password == "" {
		errors["password"] = "Password is required"
	}

	return errors
}

type GoogleLoginRequest struct {
	Credential string `json:"credential"`
}

type RegisterResponse struct {
	Message string  `json:"message"`
	User    UserDTO `json:"user"`
}

type UserDTO struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type LoginResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    LoginUserDTO `json:"user"`
}

type LoginUserDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type GoogleLoginResponse struct {
	Message string        `json:"message"`
	Token   string        `json:"token"`
	User    GoogleUserDTO `json:"user"`
}

type GoogleUserDTO struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
}

type VerifyResponse struct {
	Valid bool     `json:"valid"`
	User  *UserDTO `json:"user,omitempty"`
	Error string   `json:"error,omitempty"`
}
