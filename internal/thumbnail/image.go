package thumbnail

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"strings"

	"github.com/charmbracelet/lipgloss"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/nfnt/resize"
	"github.com/spf13/afero"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ImageRenderer draws a cover-fit crop of an image file using half-block cells
type ImageRenderer struct {
	fs    afero.Fs
	opts  Options
	cache *lru.Cache[string, string]
}

// NewImageRenderer creates an image renderer reading from fs
func NewImageRenderer(fs afero.Fs, opts Options) (*ImageRenderer, error) {
	opts = opts.normalized()
	cache, err := lru.New[string, string](opts.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create thumbnail cache: %w", err)
	}
	return &ImageRenderer{fs: fs, opts: opts, cache: cache}, nil
}

// Render draws the framed tile for src
func (r *ImageRenderer) Render(src string, selected, focused bool) string {
	return Frame(r.body(src), src, r.opts, selected, focused)
}

// body returns the unframed thumbnail, decoding on first use
func (r *ImageRenderer) body(src string) string {
	key := fmt.Sprintf("%s|%dx%d", src, r.opts.Width, r.opts.Height)
	if body, ok := r.cache.Get(key); ok {
		return body
	}

	var body string
	img, err := r.load(src)
	if err != nil {
		log.Printf("Thumbnail for %s unavailable: %v", src, err)
		body = placeholder(r.opts, "?", lipgloss.Color("236"))
	} else {
		body = halfBlocks(coverFit(img, r.opts.Width, r.opts.Height*2))
	}
	r.cache.Add(key, body)
	return body
}

func (r *ImageRenderer) load(src string) (image.Image, error) {
	f, err := r.fs.Open(src)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// coverFit crops the largest centred region of src with the w:h aspect and
// scales it to exactly w by h pixels
func coverFit(src image.Image, w, h int) image.Image {
	b := src.Bounds()
	sw, sh := b.Dx(), b.Dy()
	if sw == 0 || sh == 0 {
		return image.NewRGBA(image.Rect(0, 0, w, h))
	}

	cw, ch := sw, sw*h/w
	if ch > sh {
		ch = sh
		cw = sh * w / h
	}
	cw, ch = max(cw, 1), max(ch, 1)

	crop := image.NewRGBA(image.Rect(0, 0, cw, ch))
	origin := image.Pt(b.Min.X+(sw-cw)/2, b.Min.Y+(sh-ch)/2)
	draw.Draw(crop, crop.Bounds(), src, origin, draw.Src)

	return resize.Resize(uint(w), uint(h), crop, resize.Bilinear)
}

// halfBlocks renders two pixel rows per line: the upper pixel as the
// foreground of "▀" and the lower one as its background
func halfBlocks(img image.Image) string {
	b := img.Bounds()
	var sb strings.Builder
	for y := b.Min.Y; y+1 < b.Max.Y; y += 2 {
		if y > b.Min.Y {
			sb.WriteByte('\n')
		}
		for x := b.Min.X; x < b.Max.X; x++ {
			sb.WriteString(lipgloss.NewStyle().
				Foreground(hex(img.At(x, y))).
				Background(hex(img.At(x, y+1))).
				Render("▀"))
		}
	}
	return sb.String()
}

func hex(c color.Color) lipgloss.Color {
	r, g, b, _ := c.RGBA()
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8))
}
