package skin

import (
	"fmt"
	"image"
	"regexp"
)

// Model is the player model variant the skin is painted for. It decides
// how wide the arm sprites on the texture atlas are.
type Model string

const (
	ModelDefault Model = "default"
	ModelSlim    Model = "slim"
)

// ArmWidth returns the width of the arm sprites in atlas pixels.
func (m Model) ArmWidth() int {
	if m == ModelSlim {
		return 3
	}

	return 4
}

// Skin is a player's texture atlas together with its model variant.
type Skin struct {
	Image image.Image
	Model Model
}

// Mojang allows up to 16 word characters. The lower bound stays at one
// character since very old accounts with short usernames still exist.
var allowedUsernamesRegex = regexp.MustCompile(`^[a-zA-Z0-9_]{1,16}$`)

func ValidateUsername(username string) error {
	if !allowedUsernamesRegex.MatchString(username) {
		return &InvalidUsernameError{Username: username}
	}

	return nil
}

type InvalidUsernameError struct {
	Username string
}

func (e *InvalidUsernameError) Error() string {
	return fmt.Sprintf("invalid player name %q", e.Username)
}
