package app

import "github.com/piappstudio/digitaldiary/internal/keys"

// KeyMap is re-exported from the keys package so code that references
// app.KeyMap keeps working.
type KeyMap = keys.KeyMap

// DefaultKeyMap delegates to keys.DefaultKeyMap.
func DefaultKeyMap() *KeyMap {
	return keys.DefaultKeyMap()
}
