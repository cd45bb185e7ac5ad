package user

import (
	"regexp"

	"lume-api/internal/common"
)

// partitionPrefix namespaces the per-user message tables
const partitionPrefix = "messages_"

// disallowedIdentifierChars matches every character that may not appear in a
// storage identifier. Platform user ids can contain separators like '-'.
var disallowedIdentifierChars = regexp.MustCompile(`[^A-Za-z0-9_]`)

// PartitionName maps a raw user id to the stable name of that user's message
// table. The mapping is deterministic: the same id always yields the same name.
func PartitionName(userID common.UserID) string {
	return partitionPrefix + disallowedIdentifierChars.ReplaceAllString(string(userID), "_")
}
