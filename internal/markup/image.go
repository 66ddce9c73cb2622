package markup

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"strings"

	"github.com/custodia-labs/confrep/internal/core/domain"
)

const defaultImageMIME = "image/png"

// Image renders an inline image as a base64 data URI, preceded by a title
// heading when the image has one.
func Image(img domain.Image) (string, error) {
	if len(img.Data) == 0 {
		return "", fmt.Errorf("%w: image has no data", domain.ErrInvalidInput)
	}

	mime := img.MIMEType
	if mime == "" {
		mime = defaultImageMIME
	}
	if !mimeImage.MatchString(mime) {
		return "", fmt.Errorf("%w: %q is not an image type", domain.ErrInvalidInput, mime)
	}

	alt := img.Alt
	if alt == "" {
		alt = img.Title
	}

	var b strings.Builder
	b.WriteString(heading(titleLevel(img.TitleLevel), img.Title))
	b.WriteString(`<img src="data:` + mime + ";base64,")
	b.WriteString(base64.StdEncoding.EncodeToString(img.Data))
	b.WriteString(`" alt="` + escape(alt) + `" />`)
	return b.String(), nil
}

// ImageFromPicture encodes an in-memory picture (typically a rendered chart)
// as PNG and wraps it in an Image unit.
func ImageFromPicture(pic image.Image, title string) (domain.Image, error) {
	if pic == nil {
		return domain.Image{}, fmt.Errorf("%w: nil picture", domain.ErrInvalidInput)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, pic); err != nil {
		return domain.Image{}, fmt.Errorf("encode png: %w", err)
	}

	return domain.Image{
		Data:     buf.Bytes(),
		MIMEType: defaultImageMIME,
		Title:    title,
	}, nil
}

// ImageFromBytes wraps already-encoded image bytes, sniffing the MIME type.
func ImageFromBytes(data []byte, title string) (domain.Image, error) {
	if len(data) == 0 {
		return domain.Image{}, fmt.Errorf("%w: empty image", domain.ErrInvalidInput)
	}

	mime := http.DetectContentType(data)
	if !mimeImage.MatchString(mime) {
		return domain.Image{}, fmt.Errorf("%w: detected %s, not an image", domain.ErrInvalidInput, mime)
	}

	return domain.Image{Data: data, MIMEType: mime, Title: title}, nil
}
