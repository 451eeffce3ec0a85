package errors

import (
	"math"
	"strings"
	"unicode"
)

// MsgOddTileCount is the message reported for boards with an odd number of tiles.
const MsgOddTileCount = "Number of tiles must be an even number"

// ValidateGridSize checks that a rows × columns board can be filled with pairs.
//
// Validation rules:
//   - Both dimensions must be positive
//   - The tile count must be even
//   - The tile count must not exceed maxTiles (0 disables the limit)
func ValidateGridSize(rowSize, columnSize, maxTiles int) error {
	if rowSize <= 0 || columnSize <= 0 {
		return New(ErrCodeInvalidGridSize, "grid size must be positive (got %dx%d)", rowSize, columnSize)
	}
	if rowSize > math.MaxInt/columnSize {
		return New(ErrCodeInvalidGridSize, "grid size %dx%d is too large", rowSize, columnSize)
	}

	total := rowSize * columnSize
	if total%2 != 0 {
		return New(ErrCodeInvalidGridSize, MsgOddTileCount)
	}
	if maxTiles > 0 && total > maxTiles {
		return New(ErrCodeInvalidGridSize, "too many tiles: %d (max %d)", total, maxTiles)
	}
	return nil
}

// ValidateThemeID validates a theme identifier before it is used as a file
// name or storage key.
//
// The validation rules are intentionally conservative:
//   - No empty ids
//   - Maximum length of 128 characters
//   - No control characters
//   - No path separators or traversal sequences
func ValidateThemeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "theme id cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidInput, "theme id too long (max 128 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "theme id contains invalid control characters")
		}
	}

	for _, pattern := range []string{"..", "/", "\\"} {
		if strings.Contains(id, pattern) {
			return New(ErrCodeInvalidInput, "theme id contains invalid characters: %q", pattern)
		}
	}

	return nil
}
