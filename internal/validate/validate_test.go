package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"user-profiles/internal/domain/user"
)

func TestName(t *testing.T) {
	v := New()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"valid", "John Doe", ""},
		{"minimum length", "Jo", ""},
		{"maximum length", strings.Repeat("a", 50), ""},
		{"empty", "", "Name is required"},
		{"whitespace only counts as too short", "   ", "Name must be at least 2 characters"},
		{"too short", "J", "Name must be at least 2 characters"},
		{"too short after trimming", " J ", "Name must be at least 2 characters"},
		{"too long", strings.Repeat("a", 51), "Name must be less than 50 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, v.Name(tt.input))
		})
	}
}

func TestEmail(t *testing.T) {
	v := New()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"valid", "john@example.com", ""},
		{"valid with plus", "john+tag@example.co.uk", ""},
		{"empty", "", "Email is required"},
		{"no at sign", "john.example.com", "Please enter a valid email address"},
		{"no tld", "john@example", "Please enter a valid email address"},
		{"whitespace in local part", "jo hn@example.com", "Please enter a valid email address"},
		{"double at sign", "john@@example.com", "Please enter a valid email address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, v.Email(tt.input))
		})
	}
}

func TestRole(t *testing.T) {
	v := New()

	for _, r := range user.Roles() {
		assert.Empty(t, v.Role(r), "role %q should be valid", r)
	}

	assert.Equal(t, "Role is required", v.Role(""))
	assert.Equal(t, "Please select a valid role", v.Role("Superuser"))
	assert.Equal(t, "Please select a valid role", v.Role("admin"), "roles are case-sensitive")
}

func TestUser_Aggregates(t *testing.T) {
	v := New()

	res := v.User(Candidate{})
	assert.False(t, res.Valid)
	assert.Equal(t, "Name is required", res.Errors["name"])
	assert.Equal(t, "Email is required", res.Errors["email"])
	assert.Equal(t, "Role is required", res.Errors["role"])

	res = v.User(Candidate{Name: "Zoe Lee", Email: "zoe@x.com", Role: user.RoleUser})
	assert.True(t, res.Valid)
	assert.Empty(t, res.Errors)
}

func TestUser_AvatarOptional(t *testing.T) {
	v := New()

	res := v.User(Candidate{Name: "Zoe Lee", Email: "zoe@x.com", Role: user.RoleUser, Avatar: ""})
	assert.True(t, res.Valid)
}

func TestEmailUnique(t *testing.T) {
	users := []user.User{{ID: "1", Email: "A@B.com"}}

	assert.False(t, EmailUnique("a@b.com", users, "2"), "case-insensitive match under a different id")
	assert.True(t, EmailUnique("a@b.com", users, "1"), "the edited record does not conflict with itself")
	assert.True(t, EmailUnique("a@b.com", nil, ""))
	assert.False(t, EmailUnique("a@b.com", users, ""), "creation must not reuse an existing email")
}
