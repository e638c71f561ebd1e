package skin

import (
	"bytes"
	_ "embed"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"image"
	"image/png"
	"strings"
	"sync"
)

//go:embed steve.png
var steveSkinBytes []byte

//go:embed alex.png
var alexSkinBytes []byte

var loadFallbackSkins sync.Once
var steveSkin, alexSkin image.Image
var fallbackSkinsErr error

// FallbackModel selects the model variant a player without a custom skin
// renders with. The choice replicates the game client: profiles whose Java
// UUID.hashCode() is even render as the default model, odd ones as slim.
func FallbackModel(profileId string) (Model, error) {
	hash, err := profileHashCode(profileId)
	if err != nil {
		return "", err
	}

	if hash%2 == 0 {
		return ModelDefault, nil
	}

	return ModelSlim, nil
}

// profileHashCode computes Java's UUID.hashCode() for the profile id:
// the XOR of the four 32-bit words of the identifier.
func profileHashCode(profileId string) (uint32, error) {
	raw, err := hex.DecodeString(strings.ReplaceAll(profileId, "-", ""))
	if err != nil {
		return 0, &InvalidProfileIdError{ProfileId: profileId}
	}

	if len(raw) != 16 {
		return 0, &InvalidProfileIdError{ProfileId: profileId}
	}

	hi := binary.BigEndian.Uint64(raw[0:8])
	lo := binary.BigEndian.Uint64(raw[8:16])
	hilo := hi ^ lo

	return uint32(hilo>>32) ^ uint32(hilo), nil
}

func fallbackSkin(model Model) (image.Image, error) {
	loadFallbackSkins.Do(func() {
		steveSkin, fallbackSkinsErr = png.Decode(bytes.NewReader(steveSkinBytes))
		if fallbackSkinsErr != nil {
			return
		}

		alexSkin, fallbackSkinsErr = png.Decode(bytes.NewReader(alexSkinBytes))
	})
	if fallbackSkinsErr != nil {
		return nil, fmt.Errorf("unable to decode the built-in skin: %w", fallbackSkinsErr)
	}

	if model == ModelSlim {
		return alexSkin, nil
	}

	return steveSkin, nil
}

type InvalidProfileIdError struct {
	ProfileId string
}

func (e *InvalidProfileIdError) Error() string {
	return fmt.Sprintf("invalid profile id %q", e.ProfileId)
}
