// Package generator renders head and body sprites for whole rosters of
// players and writes them to disk as png files.
package generator

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/wurstmineberg/playerhead/roster"
	"github.com/wurstmineberg/playerhead/skin"
	"github.com/wurstmineberg/playerhead/sprite"
)

const (
	headSize  = 8
	bodyWidth = 16
)

type SkinsProvider interface {
	GetForPlayer(ctx context.Context, username string, profileId string) (*skin.Skin, error)
}

type Emitter interface {
	Emit(name string, args ...interface{})
}

// Options controls where the images land and how large they are.
type Options struct {
	// TargetDir is the directory the png files are written into. It is
	// created when it does not exist yet.
	TargetDir string
	// Width is the output width in pixels. Zero keeps the sprite's
	// natural width: 8 for heads, 16 for full bodies.
	Width int
	// Height is the output height in pixels. Zero derives it from the
	// width: square for heads, twice the width for full bodies.
	Height int
	// FullBody renders the whole body sprite instead of just the head.
	FullBody bool
	// WithHat composites the skin's overlay layers onto the sprite.
	WithHat bool
}

func (o Options) dimensions() (width, height int) {
	width = o.Width
	if width <= 0 {
		width = headSize
		if o.FullBody {
			width = bodyWidth
		}
	}

	height = o.Height
	if height <= 0 {
		height = width
		if o.FullBody {
			height = width * 2
		}
	}

	return width, height
}

type Generator struct {
	Skins   SkinsProvider
	Emitter Emitter
}

// WriteHead renders the sprite for a single player and writes it into
// opts.TargetDir. The file is named after the entry's file id (the
// username when no file id is set) with a png extension.
func (g *Generator) WriteHead(ctx context.Context, entry *roster.Entry, opts Options) (string, error) {
	playerSkin, err := g.Skins.GetForPlayer(ctx, entry.Username, entry.ProfileId)
	if err != nil {
		return "", err
	}

	var img image.Image
	if opts.FullBody {
		img, err = sprite.Body(playerSkin, opts.WithHat)
	} else {
		img, err = sprite.Head(playerSkin, opts.WithHat)
	}

	if err != nil {
		return "", err
	}

	width, height := opts.dimensions()
	scaled := sprite.Scale(img, width, height)

	if err := os.MkdirAll(opts.TargetDir, 0755); err != nil {
		return "", fmt.Errorf("unable to create the target directory: %w", err)
	}

	fileId := entry.FileId
	if fileId == "" {
		fileId = entry.Username
	}

	path := filepath.Join(opts.TargetDir, fileId+".png")
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("unable to create %s: %w", path, err)
	}

	if err := png.Encode(file, scaled); err != nil {
		_ = file.Close()
		return "", fmt.Errorf("unable to encode %s: %w", path, err)
	}

	if err := file.Close(); err != nil {
		return "", fmt.Errorf("unable to write %s: %w", path, err)
	}

	g.Emitter.Emit("heads:written", entry.Username, path)

	return path, nil
}

// Run drains the source and writes an image for every player in it.
// A player that fails does not stop the batch: the failure is emitted
// as a heads:player_failed event and the remaining players are still
// processed. When at least one player failed the returned error
// reports how many.
func (g *Generator) Run(ctx context.Context, source roster.Source, opts Options) error {
	var total, failed int
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		entry, err := source.Next()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return fmt.Errorf("unable to read the players list: %w", err)
		}

		total++
		if _, err := g.WriteHead(ctx, entry, opts); err != nil {
			failed++
			g.Emitter.Emit("heads:player_failed", entry.Username, err)
		}
	}

	if failed > 0 {
		return &PartialFailureError{Failed: failed, Total: total}
	}

	return nil
}

// PartialFailureError is returned by Run when some of the players in
// the batch could not be written.
type PartialFailureError struct {
	Failed int
	Total  int
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("unable to write heads for %d of %d players", e.Failed, e.Total)
}
