package storage

import "fmt"

// Category names one persisted per-user sequence. The string values are part
// of the storage format and must not change.
type Category string

const (
	CategoryActivities Category = "userActivities"
	CategoryChat       Category = "chatHistory"
	CategoryTheme      Category = "userTheme"
)

// GuestIdentity is the namespace used when no user is signed in.
const GuestIdentity = "guest"

// Key builds the storage key for a category scoped to an identity. Distinct
// identities (including guests) never share a key.
func Key(category Category, identity string) string {
	if identity == "" {
		identity = GuestIdentity
	}
	return fmt.Sprintf("%s_%s", category, identity)
}
