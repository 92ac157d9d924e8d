package redis

import "strconv"

const (
	// KeyPrefix namespaces every adminmarks key
	KeyPrefix = "adminmarks:"
	// KeyPrefixUser is the prefix for per-user keys
	KeyPrefixUser = KeyPrefix + "user:"
	// KeyPrefixItem is the prefix for mirrored content item keys
	KeyPrefixItem = KeyPrefix + "item:"
	// KeyAllItems is the key for the set of all mirrored item IDs
	KeyAllItems = KeyPrefix + "items:all"
	// KeyTypes is the hash of mirrored content types (name -> json)
	KeyTypes = KeyPrefix + "types"
	// KeyUsers is the hash of mirrored users (id -> json)
	KeyUsers = KeyPrefix + "users"
	// KeyTitles is the hash of custom bookmark titles (item id -> title)
	KeyTitles = KeyPrefix + "titles"
)

// BookmarksKey returns the sorted set holding a user's bookmarked item IDs.
// Scores are the user's insertion sequence.
func BookmarksKey(userID string) string {
	return KeyPrefixUser + userID + ":bookmarks"
}

// SequenceKey returns the counter feeding BookmarksKey scores
func SequenceKey(userID string) string {
	return KeyPrefixUser + userID + ":seq"
}

// ItemKey returns the Redis key for a content item by ID
func ItemKey(id int64) string {
	return KeyPrefixItem + strconv.FormatInt(id, 10)
}
