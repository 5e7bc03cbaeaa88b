package imaging

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"math"
	"strings"

	types "github.com/Baru2006/EasyRecharge-MM/internal/common/type"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/apperror"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/helper"
	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

const (
	DefaultMaxDimension = 1280
	DefaultMaxBytes     = 5 * 1024 * 1024
	DefaultQuality      = 80

	// refuse to allocate bitmaps beyond this many pixels
	maxSourcePixels = 50_000_000
)

type Options struct {
	MaxDimension int
	MaxBytes     int64 // 0 disables the size check
	Quality      int
}

func DefaultOptions() Options {
	return Options{
		MaxDimension: DefaultMaxDimension,
		MaxBytes:     DefaultMaxBytes,
		Quality:      DefaultQuality,
	}
}

// SlipImage is a preprocessed slip: JPEG bytes plus the bitmap they were
// encoded from.
type SlipImage struct {
	Data        []byte
	Width       int
	Height      int
	Image       image.Image
	ContentType string
}

type Preprocessor struct {
	opts Options
}

func NewPreprocessor(opts Options) *Preprocessor {
	if opts.MaxDimension <= 0 {
		opts.MaxDimension = DefaultMaxDimension
	}
	if opts.Quality < 1 || opts.Quality > 100 {
		opts.Quality = DefaultQuality
	}
	return &Preprocessor{opts: opts}
}

func (p *Preprocessor) Options() Options {
	return p.opts
}

// Process validates, decodes, downscales and re-encodes a slip. Errors are
// *apperror.AppError of kind InvalidFileType, FileTooLarge or
// ImageDecodeError.
func (p *Preprocessor) Process(ctx context.Context, file *types.SlipFile) (*SlipImage, error) {
	if file == nil {
		return nil, apperror.NewMissingSlipError()
	}

	// size first: oversized uploads arrive unread and cannot be sniffed
	size := max(file.Size, int64(len(file.Data)))
	if p.opts.MaxBytes > 0 && size > p.opts.MaxBytes {
		return nil, apperror.NewFileTooLargeError(p.opts.MaxBytes)
	}

	mediaType := helper.DetectContentType(file.ContentType, file.Data)
	if !strings.HasPrefix(mediaType, "image/") {
		return nil, apperror.NewInvalidFileTypeError(mediaType)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src, err := decode(file.Data)
	if err != nil {
		return nil, apperror.NewImageDecodeError(err)
	}

	b := src.Bounds()
	width, height := ScaledSize(b.Dx(), b.Dy(), p.opts.MaxDimension)

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	if width == b.Dx() && height == b.Dy() {
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Over)
	} else {
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: p.opts.Quality}); err != nil {
		return nil, apperror.NewImageDecodeError(err)
	}

	return &SlipImage{
		Data:        buf.Bytes(),
		Width:       width,
		Height:      height,
		Image:       dst,
		ContentType: "image/jpeg",
	}, nil
}

func decode(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, errors.New("empty image")
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, errors.New("image has no dimensions")
	}
	if cfg.Width*cfg.Height > maxSourcePixels {
		return nil, errors.New("image dimensions too large")
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return img, nil
}

// ScaledSize fits (width, height) inside bound on the larger side,
// preserving aspect ratio. The minor side is rounded half-up and never
// drops below 1. Images already within bound are returned unchanged.
func ScaledSize(width, height, bound int) (int, int) {
	if width > height {
		if width > bound {
			height = roundHalfUp(float64(height) * float64(bound) / float64(width))
			width = bound
		}
	} else {
		if height > bound {
			width = roundHalfUp(float64(width) * float64(bound) / float64(height))
			height = bound
		}
	}
	return max(width, 1), max(height, 1)
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
