// Package validate checks candidate user records against field constraints
// and cross-record email uniqueness. All checks are pure and deterministic;
// messages are the exact strings surfaced next to form fields.
package validate

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"user-profiles/internal/domain/user"
)

// emailPattern accepts local@domain.tld shapes: at least one character that
// is neither whitespace nor "@" in each of the local part, domain, and TLD.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Candidate is a user record as submitted for creation or edit, before an
// id or timestamps exist.
type Candidate struct {
	Name   string
	Email  string
	Role   user.Role
	Avatar string
}

// Result aggregates per-field validation outcomes. Valid is true iff no
// field produced a message.
type Result struct {
	Valid  bool
	Errors map[string]string
}

// Validator validates candidate user records.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator with the profile email rule registered.
func New() *Validator {
	v := validator.New()
	// RegisterValidation only fails for an empty tag name
	_ = v.RegisterValidation("profile_email", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	return &Validator{validate: v}
}

// Name checks the name constraint: required as typed, trimmed length in
// [2, 50]. A whitespace-only name counts as present but too short. It
// returns the user-facing message, or "" when the name is valid.
func (v *Validator) Name(name string) string {
	if err := v.validate.Var(name, "required"); err != nil {
		return "Name is required"
	}
	trimmed := strings.TrimSpace(name)
	if err := v.validate.Var(trimmed, "min=2"); err != nil {
		return "Name must be at least 2 characters"
	}
	if err := v.validate.Var(trimmed, "max=50"); err != nil {
		return "Name must be less than 50 characters"
	}
	return ""
}

// Email checks the email constraint: required and matching the
// local@domain.tld pattern. It returns the user-facing message, or "".
func (v *Validator) Email(email string) string {
	if err := v.validate.Var(email, "required"); err != nil {
		return "Email is required"
	}
	if err := v.validate.Var(email, "profile_email"); err != nil {
		return "Please enter a valid email address"
	}
	return ""
}

// Role checks that the role is one of the four defined values.
// It returns the user-facing message, or "".
func (v *Validator) Role(role user.Role) string {
	if err := v.validate.Var(string(role), "required"); err != nil {
		return "Role is required"
	}
	if err := v.validate.Var(string(role), "oneof=Admin Manager Developer User"); err != nil {
		return "Please select a valid role"
	}
	return ""
}

// User validates a full candidate record and aggregates field errors.
func (v *Validator) User(c Candidate) Result {
	errs := make(map[string]string)

	if msg := v.Name(c.Name); msg != "" {
		errs["name"] = msg
	}
	if msg := v.Email(c.Email); msg != "" {
		errs["email"] = msg
	}
	if msg := v.Role(c.Role); msg != "" {
		errs["role"] = msg
	}

	return Result{Valid: len(errs) == 0, Errors: errs}
}

// EmailUnique reports whether no record in users carries the same email
// (case-insensitive) under a different id than excludeID. Pass excludeID=""
// during creation; pass the edited record's id during edit so the record
// does not conflict with itself.
func EmailUnique(email string, users []user.User, excludeID string) bool {
	for _, u := range users {
		if strings.EqualFold(u.Email, email) && u.ID != excludeID {
			return false
		}
	}
	return true
}
