package sprite

import (
	"image"

	"golang.org/x/image/draw"
)

// Scale resizes the sprite with nearest-neighbor interpolation, keeping the
// hard pixel edges of the source art. Non-positive dimensions preserve the
// source size.
func Scale(src image.Image, width, height int) *image.NRGBA {
	bounds := src.Bounds()
	if width <= 0 {
		width = bounds.Dx()
	}

	if height <= 0 {
		height = bounds.Dy()
	}

	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, bounds, draw.Src, nil)

	return dst
}
