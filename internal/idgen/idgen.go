// Package idgen provides short, URL-safe identifiers for editor sessions
// and list item keys.
package idgen

import (
	"fmt"

	nanoid "github.com/matoous/go-nanoid/v2"
)

// Prefixes for the kinds of IDs this package hands out.
const (
	SessionPrefix = "ed_"
	ItemPrefix    = "it_"
)

// Alphabet defines the character set used for the random portion of the ID.
var Alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Length is the number of random characters generated (excluding the prefix).
var Length = 12

// GenerateWithPrefix returns a new unique ID with the given prefix.
func GenerateWithPrefix(prefix string) (string, error) {
	id, err := nanoid.Generate(Alphabet, Length)
	if err != nil {
		return "", fmt.Errorf("idgen: %w", err)
	}
	return prefix + id, nil
}

// SessionID returns a new editor session identifier.
func SessionID() (string, error) {
	return GenerateWithPrefix(SessionPrefix)
}

// ItemKey returns a new surrogate key for a list item.
// It panics only if Alphabet or Length have been set to invalid values.
func ItemKey() string {
	id, err := GenerateWithPrefix(ItemPrefix)
	if err != nil {
		panic(err)
	}
	return id
}
