package policy

import (
	"github.com/trampo-app/trampo/internal/domain/user"
	"github.com/trampo-app/trampo/internal/pkg/errors"
)

// Ownable is implemented by resources that belong to a single user
type Ownable interface {
	OwnerID() string
}

// Owns reports whether userID owns the resource. A nil resource or an empty
// user id never grants access.
func Owns(userID string, resource Ownable) bool {
	if resource == nil || userID == "" {
		return false
	}
	return resource.OwnerID() == userID
}

// RequireOwner returns a forbidden error unless userID owns the resource
func RequireOwner(userID string, resource Ownable, action string) error {
	if !Owns(userID, resource) {
		return errors.Forbidden("You are not allowed to " + action)
	}
	return nil
}

// RequireRole returns a forbidden error unless u has the given role
func RequireRole(u *user.User, role user.Role) error {
	if u == nil || u.Role != role {
		return errors.Forbidden("This action requires role " + string(role))
	}
	return nil
}
