package profile

import "user-profiles/internal/domain/user"

// CreateUserRequest represents the submitted form for creating a profile.
type CreateUserRequest struct {
	Name   string
	Email  string
	Role   user.Role
	Avatar string
}

// UpdateUserRequest represents the submitted form for editing a profile.
// The full mutable field set is submitted, as the edit form does.
type UpdateUserRequest struct {
	ID     string
	Name   string
	Email  string
	Role   user.Role
	Avatar string
}

// ListUsersRequest carries the four view-state inputs of the display.
type ListUsersRequest struct {
	Search string
	Role   string
	SortBy user.SortKey
	Order  user.SortOrder
}

// ListUsersResponse is the displayed subset plus the size of the full
// collection, for the "N of M users" header.
type ListUsersResponse struct {
	Users []user.User
	Total int
}
