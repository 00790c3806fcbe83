// Package auth holds user-identity types shared by token validators.
package auth

import "github.com/google/uuid"

// Identity represents user information obtained from a token provider.
type Identity struct {
	UserID    uuid.UUID
	Email     string
	Name      *string
	AvatarURL *string
}

// UserIDFromProvider derives a stable user UUID from an OAuth provider name
// and subject id. The same subject always maps to the same UUID.
func UserIDFromProvider(provider, subject string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(provider+":"+subject))
}
