package store

import (
	"time"

	"github.com/google/uuid"

	"user-profiles/internal/domain/user"
)

// SampleUsers builds the seed collection used by ResetToSampleData. Ids are
// generated once per factory call; the store calls this at construction so
// repeated resets within a session return the same ids. Timestamps are fixed
// constants.
func SampleUsers() []user.User {
	seed := []struct {
		name    string
		email   string
		role    user.Role
		avatar  string
		created time.Time
	}{
		{
			name:    "Alice Johnson",
			email:   "alice.johnson@example.com",
			role:    user.RoleAdmin,
			avatar:  "https://images.unsplash.com/photo-1494790108755-2616b612b786?w=150&h=150&fit=crop&crop=face",
			created: time.Date(2024, time.January, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			name:    "Bob Smith",
			email:   "bob.smith@example.com",
			role:    user.RoleDeveloper,
			avatar:  "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=150&h=150&fit=crop&crop=face",
			created: time.Date(2024, time.January, 16, 14, 20, 0, 0, time.UTC),
		},
		{
			name:    "Carol Davis",
			email:   "carol.davis@example.com",
			role:    user.RoleManager,
			avatar:  "https://images.unsplash.com/photo-1438761681033-6461ffad8d80?w=150&h=150&fit=crop&crop=face",
			created: time.Date(2024, time.January, 17, 9, 15, 0, 0, time.UTC),
		},
		{
			name:    "David Wilson",
			email:   "david.wilson@example.com",
			role:    user.RoleDeveloper,
			avatar:  "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=150&h=150&fit=crop&crop=face",
			created: time.Date(2024, time.January, 18, 16, 45, 0, 0, time.UTC),
		},
		{
			name:    "Eva Brown",
			email:   "eva.brown@example.com",
			role:    user.RoleUser,
			avatar:  "https://images.unsplash.com/photo-1544005313-94ddf0286df2?w=150&h=150&fit=crop&crop=face",
			created: time.Date(2024, time.January, 19, 11, 30, 0, 0, time.UTC),
		},
		{
			name:    "Frank Miller",
			email:   "frank.miller@example.com",
			role:    user.RoleDeveloper,
			avatar:  "https://images.unsplash.com/photo-1500648767791-00dcc994a43e?w=150&h=150&fit=crop&crop=face",
			created: time.Date(2024, time.January, 20, 8, 15, 0, 0, time.UTC),
		},
	}

	users := make([]user.User, len(seed))
	for i, s := range seed {
		users[i] = user.User{
			ID:           uuid.NewString(),
			Name:         s.name,
			Email:        s.email,
			Role:         s.role,
			Avatar:       s.avatar,
			CreatedAt:    s.created,
			LastModified: s.created,
		}
	}
	return users
}
