// Package sprite assembles flat 2D sprites out of Minecraft skin texture
// atlases: an 8x8 head or a 16x32 front-facing body.
package sprite

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/wurstmineberg/playerhead/skin"
)

// The atlas is always 64 pixels wide. Legacy atlases are 32 pixels tall and
// carry right-side limbs only; modern ones are 64 pixels tall with dedicated
// left limbs and a second overlay layer.
const (
	atlasWidth        = 64
	legacyAtlasHeight = 32
	modernAtlasHeight = 64
)

// Base layer regions at their fixed atlas offsets. Arm regions depend on
// the model's arm width and are computed instead.
var (
	headRegion     = image.Rect(8, 8, 16, 16)
	hatRegion      = image.Rect(40, 8, 48, 16)
	torsoRegion    = image.Rect(20, 20, 28, 32)
	rightLegRegion = image.Rect(4, 20, 8, 32)
	leftLegRegion  = image.Rect(20, 52, 24, 64)
)

// Overlay layer regions, present on the modern atlas only.
var (
	jacketRegion     = image.Rect(20, 36, 28, 48)
	rightPantsRegion = image.Rect(4, 36, 8, 48)
	leftPantsRegion  = image.Rect(4, 52, 8, 64)
)

func rightArmRegion(armWidth int) image.Rectangle {
	return image.Rect(44, 20, 44+armWidth, 32)
}

func leftArmRegion(armWidth int) image.Rectangle {
	return image.Rect(36, 52, 36+armWidth, 64)
}

func rightSleeveRegion(armWidth int) image.Rectangle {
	return image.Rect(44, 36, 44+armWidth, 48)
}

func leftSleeveRegion(armWidth int) image.Rectangle {
	return image.Rect(52, 52, 52+armWidth, 64)
}

// Head renders the 8x8 face sprite. Unless disabled, the hat layer is
// alpha-composited over it; the hat region exists on both atlas layouts.
func Head(s *skin.Skin, withHat bool) (*image.NRGBA, error) {
	if err := validateAtlas(s.Image); err != nil {
		return nil, err
	}

	head := crop(s.Image, headRegion)
	if withHat {
		draw.Draw(head, head.Bounds(), s.Image, hatRegion.Min, draw.Over)
	}

	return head, nil
}

// Body assembles the 16x32 front-facing figure: head, torso and four limbs.
// A legacy atlas carries no left limb sprites, so the right ones are pasted
// mirrored. The overlay (hat, jacket, sleeves, pants) exists on the modern
// atlas only and is assembled on its own canvas before being composited
// over the figure; for a legacy atlas no overlay is applied at all.
func Body(s *skin.Skin, withHat bool) (*image.NRGBA, error) {
	if err := validateAtlas(s.Image); err != nil {
		return nil, err
	}

	legacy := s.Image.Bounds().Dy() == legacyAtlasHeight
	armWidth := s.Model.ArmWidth()

	body := image.NewNRGBA(image.Rect(0, 0, 16, 32))
	paste(body, crop(s.Image, headRegion), image.Pt(4, 0))
	paste(body, crop(s.Image, torsoRegion), image.Pt(4, 8))
	paste(body, crop(s.Image, rightLegRegion), image.Pt(4, 20))

	rightArm := crop(s.Image, rightArmRegion(armWidth))
	paste(body, rightArm, image.Pt(4-armWidth, 8))

	if legacy {
		paste(body, flipHorizontal(crop(s.Image, rightLegRegion)), image.Pt(8, 20))
		paste(body, flipHorizontal(rightArm), image.Pt(12, 8))
	} else {
		paste(body, crop(s.Image, leftLegRegion), image.Pt(8, 20))
		paste(body, crop(s.Image, leftArmRegion(armWidth)), image.Pt(12, 8))
	}

	if withHat && !legacy {
		overlay := image.NewNRGBA(body.Bounds())
		paste(overlay, crop(s.Image, hatRegion), image.Pt(4, 0))
		paste(overlay, crop(s.Image, jacketRegion), image.Pt(4, 8))
		paste(overlay, crop(s.Image, rightPantsRegion), image.Pt(4, 20))
		paste(overlay, crop(s.Image, rightSleeveRegion(armWidth)), image.Pt(4-armWidth, 8))
		paste(overlay, crop(s.Image, leftPantsRegion), image.Pt(8, 20))
		paste(overlay, crop(s.Image, leftSleeveRegion(armWidth)), image.Pt(12, 8))
		draw.Draw(body, body.Bounds(), overlay, image.Point{}, draw.Over)
	}

	return body, nil
}

func validateAtlas(img image.Image) error {
	bounds := img.Bounds()
	if bounds.Dx() != atlasWidth || (bounds.Dy() != legacyAtlasHeight && bounds.Dy() != modernAtlasHeight) {
		return &InvalidTextureError{Width: bounds.Dx(), Height: bounds.Dy()}
	}

	return nil
}

func crop(src image.Image, r image.Rectangle) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(dst, dst.Bounds(), src, r.Min, draw.Src)

	return dst
}

// paste transplants the sprite into dst replacing the pixels under it,
// alpha channel included.
func paste(dst *image.NRGBA, src image.Image, at image.Point) {
	bounds := src.Bounds()
	draw.Draw(dst, image.Rect(at.X, at.Y, at.X+bounds.Dx(), at.Y+bounds.Dy()), src, bounds.Min, draw.Src)
}

func flipHorizontal(src *image.NRGBA) *image.NRGBA {
	bounds := src.Bounds()
	dst := image.NewNRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			dst.SetNRGBA(bounds.Min.X+bounds.Max.X-1-x, y, src.NRGBAAt(x, y))
		}
	}

	return dst
}

// InvalidTextureError is returned for a bitmap that is not a skin atlas:
// anything but 64 pixels wide and exactly 32 or 64 pixels tall.
type InvalidTextureError struct {
	Width  int
	Height int
}

func (e *InvalidTextureError) Error() string {
	return fmt.Sprintf("invalid skin texture dimensions %dx%d", e.Width, e.Height)
}
