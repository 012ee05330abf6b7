package dto

import (
	"net/mail"
	"strings"
	"unicode"
	"unicode/utf8"
)

// FieldError is one schema-validation failure, reported per input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type RegisterRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phone_number"`
}

// Validate checks the registration payload and normalizes the phone number
// in place. A nil result means the payload is acceptable.
func (r *RegisterRequest) Validate() []FieldError {
	var errs []FieldError

	if strings.TrimSpace(r.Username) == "" {
		errs = append(errs, FieldError{Field: "username", Message: "Username is required"})
	}
	if msg := checkEmail(r.Email); msg != "" {
		errs = append(errs, FieldError{Field: "email", Message: msg})
	}
	errs = append(errs, checkPassword(r.Password)...)

	// Phone number is optional; format rules apply only when one is supplied.
	if r.PhoneNumber != "" {
		cleaned, msg := normalizePhone(r.PhoneNumber)
		if msg != "" {
			errs = append(errs, FieldError{Field: "phone_number", Message: msg})
		} else {
			r.PhoneNumber = cleaned
		}
	}

	return errs
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() []FieldError {
	var errs []FieldError
	if msg := checkEmail(r.Email); msg != "" {
		errs = append(errs, FieldError{Field: "email", Message: msg})
	}
	if n := utf8.RuneCountInString(r.Password); n < 8 || n > 72 {
		errs = append(errs, FieldError{Field: "password", Message: "Password must be between 8 and 72 characters"})
	}
	return errs
}

// LoginResponse is the successful login body; the token is opaque to clients.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	UserID      int64  `json:"user_id"`
}

func checkEmail(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return "Email is required"
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return "Invalid email address"
	}
	return ""
}

func checkPassword(password string) []FieldError {
	var errs []FieldError
	if n := utf8.RuneCountInString(password); n < 8 || n > 72 {
		errs = append(errs, FieldError{Field: "password", Message: "Password must be between 8 and 72 characters"})
	}
	var hasDigit, hasUpper, hasLower bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		}
	}
	if !hasDigit {
		errs = append(errs, FieldError{Field: "password", Message: "Password must contain at least one digit"})
	}
	if !hasUpper {
		errs = append(errs, FieldError{Field: "password", Message: "Password must contain at least one uppercase letter"})
	}
	if !hasLower {
		errs = append(errs, FieldError{Field: "password", Message: "Password must contain at least one lowercase letter"})
	}
	return errs
}

// normalizePhone strips separators and validates the remainder. The cleaned
// form (leading + preserved) is what gets stored.
func normalizePhone(phone string) (string, string) {
	cleaned := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(phone)
	digitsOnly := strings.TrimPrefix(cleaned, "+")
	for _, r := range digitsOnly {
		if r < '0' || r > '9' {
			return "", "Phone number must contain only digits"
		}
	}
	if len(digitsOnly) < 10 {
		return "", "Phone number is too short"
	}
	if len(digitsOnly) > 15 {
		return "", "Phone number is too long"
	}
	return cleaned, ""
}
