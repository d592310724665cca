package transformer

import (
	"bytes"
	"errors"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"

	_ "image/gif"
)

const (
	FormatJPEG = "jpeg"
	FormatPNG  = "png"
	FormatWebP = "webp"

	DefaultQuality = 50
)

type Config struct {
	// Format is the output encoding, one of FormatJPEG, FormatPNG
	// or FormatWebP. Empty value means FormatJPEG.
	Format string

	// Quality is the output quality in range 0-100,
	// used by JPEG and WebP encoders. Zero value means DefaultQuality.
	Quality int

	// MaxDimension bounds the width and height of the output image,
	// downscaling with preserved aspect ratio when exceeded.
	// Zero value disables resizing.
	MaxDimension int
}

// ImageTransformer recompresses raw image bytes to the configured
// encoding. Output is byte-identical for the same input and config,
// all used encoders are deterministic.
type ImageTransformer struct{}

var _ Transformer = (*ImageTransformer)(nil)

func NewImageTransformer() Transformer {
	return &ImageTransformer{}
}

func (t *ImageTransformer) Transform(data []byte, config Config) ([]byte, error) {
	img, err := t.decode(data)
	if err != nil {
		return nil, err
	}

	if config.MaxDimension > 0 {
		bounds := img.Bounds()
		if bounds.Dx() > config.MaxDimension || bounds.Dy() > config.MaxDimension {
			img = imaging.Fit(img, config.MaxDimension, config.MaxDimension, imaging.Lanczos)
		}
	}

	return t.encode(img, config)
}

func (t *ImageTransformer) decode(data []byte) (image.Image, error) {
	// chai2010/webp does not register itself in the image package,
	// so WebP input is recognized by its RIFF container header.
	if isWebP(data) {
		img, err := webp.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, ErrCorruptImage
		}
		return img, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		if err == image.ErrFormat {
			return nil, ErrUnsupportedFormat
		}
		return nil, ErrCorruptImage
	}

	return img, nil
}

func (t *ImageTransformer) encode(img image.Image, config Config) ([]byte, error) {
	quality := config.Quality
	if quality == 0 {
		quality = DefaultQuality
	}

	format := config.Format
	if format == "" {
		format = FormatJPEG
	}

	buf := new(bytes.Buffer)
	switch format {
	case FormatJPEG:
		if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, err
		}
	case FormatPNG:
		if err := png.Encode(buf, img); err != nil {
			return nil, err
		}
	case FormatWebP:
		if err := webp.Encode(buf, img, &webp.Options{Quality: float32(quality)}); err != nil {
			return nil, err
		}
	default:
		return nil, ErrUnsupportedFormat
	}

	return buf.Bytes(), nil
}

// ContentType returns the MIME type of images encoded with the given config.
func ContentType(config Config) string {
	switch config.Format {
	case FormatPNG:
		return "image/png"
	case FormatWebP:
		return "image/webp"
	default:
		return "image/jpeg"
	}
}

// Extension returns the file extension of images encoded with the given config.
func Extension(config Config) string {
	switch config.Format {
	case FormatPNG:
		return "png"
	case FormatWebP:
		return "webp"
	default:
		return "jpg"
	}
}

func isWebP(data []byte) bool {
	return len(data) >= 12 &&
		bytes.Equal(data[0:4], []byte("RIFF")) &&
		bytes.Equal(data[8:12], []byte("WEBP"))
}

var (
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrCorruptImage      = errors.New("image data is corrupt")
)
