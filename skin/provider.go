package skin

import (
	"context"
	"image"

	"github.com/wurstmineberg/playerhead/api/mojang"
)

type UuidsProvider interface {
	UsernameToUuid(ctx context.Context, username string) (*mojang.ProfileInfo, error)
}

type ProfilesProvider interface {
	UuidToProfile(ctx context.Context, uuid string) (*mojang.ProfileResponse, error)
	DownloadSkin(ctx context.Context, url string) (image.Image, error)
}

type Emitter interface {
	Emit(topic string, args ...interface{})
}

// Provider ties the Mojang endpoints together into the "give me the skin of
// this player" operation.
type Provider struct {
	Emitter
	UuidsProvider
	ProfilesProvider
}

// GetForPlayer returns the player's texture atlas tagged with its model
// variant. The profileId is optional: when empty, the username is resolved
// through Mojang first. A player without a custom skin receives one of the
// built-in skins, chosen by the parity of the profile id's hash code.
func (p *Provider) GetForPlayer(ctx context.Context, username string, profileId string) (*Skin, error) {
	if err := ValidateUsername(username); err != nil {
		return nil, err
	}

	if profileId == "" {
		profile, err := p.UsernameToUuid(ctx, username)
		p.Emit("skins:usernames:after_call", username, profile, err)
		if err != nil {
			return nil, err
		}

		profileId = profile.Id
	}

	profile, err := p.UuidToProfile(ctx, profileId)
	p.Emit("skins:textures:after_call", profileId, profile, err)
	if err != nil {
		return nil, err
	}

	textures, err := profile.DecodeTextures()
	if err != nil {
		p.Emit("skins:textures:malformed", profileId, err)
		return nil, err
	}

	if textures == nil || textures.Textures == nil || textures.Textures.Skin == nil {
		return p.fallbackForProfile(profileId)
	}

	skinTextures := textures.Textures.Skin
	img, err := p.DownloadSkin(ctx, skinTextures.Url)
	if err != nil {
		return nil, err
	}

	model := ModelDefault
	if skinTextures.Metadata != nil && skinTextures.Metadata.Model == "slim" {
		model = ModelSlim
	}

	return &Skin{Image: img, Model: model}, nil
}

func (p *Provider) fallbackForProfile(profileId string) (*Skin, error) {
	model, err := FallbackModel(profileId)
	if err != nil {
		return nil, err
	}

	img, err := fallbackSkin(model)
	if err != nil {
		return nil, err
	}

	p.Emit("skins:fallback", profileId, string(model))

	return &Skin{Image: img, Model: model}, nil
}
