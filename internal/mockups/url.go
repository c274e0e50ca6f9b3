// Package mockups builds preview image URLs that show a client's name on a support.
package mockups

import (
	"fmt"
	"strings"

	"github.com/angelmondragon/ooh-agent-backend/pkg/config"
)

const (
	DefaultPlaceholderBase = "https://placehold.co"
	DefaultWidth           = 1200
	DefaultHeight          = 800
	DefaultBackground      = "1a365d"
	DefaultForeground      = "ffffff"
	DefaultSupportType     = "Soporte OOH"

	cloudinaryBase = "https://res.cloudinary.com"
)

// Method names the technique a mockup URL was produced with.
type Method string

const (
	MethodPlaceholder Method = "placeholder"
	MethodCloudinary  Method = "cloudinary"
)

// Builder renders mockup URLs. The zero value is not usable; call NewBuilder.
type Builder struct {
	placeholderBase string
	width           int
	height          int
	background      string
	foreground      string
	cloudName       string
	publicID        string
}

// NewBuilder applies defaults for every unset field of cfg.
func NewBuilder(cfg config.MockupsConfig) *Builder {
	b := &Builder{
		placeholderBase: strings.TrimRight(cfg.PlaceholderBaseURL, "/"),
		width:           cfg.Width,
		height:          cfg.Height,
		background:      strings.TrimPrefix(cfg.BackgroundColor, "#"),
		foreground:      strings.TrimPrefix(cfg.TextColor, "#"),
		cloudName:       strings.TrimSpace(cfg.CloudinaryCloudName),
		publicID:        strings.TrimSpace(cfg.CloudinaryPublicID),
	}
	if b.placeholderBase == "" {
		b.placeholderBase = DefaultPlaceholderBase
	}
	if b.width <= 0 {
		b.width = DefaultWidth
	}
	if b.height <= 0 {
		b.height = DefaultHeight
	}
	if b.background == "" {
		b.background = DefaultBackground
	}
	if b.foreground == "" {
		b.foreground = DefaultForeground
	}
	return b
}

// Placeholder returns a flat image with the client name above "type - code".
func (b *Builder) Placeholder(clientName, code, supportType string) string {
	text := EncodeURIComponent(clientName + "\n\n" + supportType + " - " + code)
	return fmt.Sprintf("%s/%dx%d/%s/%s/png?text=%s&font=roboto",
		b.placeholderBase, b.width, b.height, b.background, b.foreground, text)
}

// CloudinaryEnabled reports whether overlay mockups can be produced.
func (b *Builder) CloudinaryEnabled() bool {
	return b.cloudName != "" && b.publicID != ""
}

// Cloudinary overlays the client name on the uploaded base image. Without a
// cloud name or public id it falls back to a generic placeholder.
func (b *Builder) Cloudinary(clientName, publicID string) string {
	if b.cloudName == "" || publicID == "" {
		return b.Placeholder(clientName, "PROTO", "Billboard")
	}
	return fmt.Sprintf("%s/%s/image/upload/l_text:Arial_120_bold:%s,co_white,g_center,y_-50/%s",
		cloudinaryBase, b.cloudName, EncodeURIComponent(clientName), publicID)
}

// URL picks the best configured technique for one support.
func (b *Builder) URL(clientName, code, supportType string) (string, Method) {
	if b.CloudinaryEnabled() {
		return b.Cloudinary(clientName, b.publicID), MethodCloudinary
	}
	if strings.TrimSpace(supportType) == "" {
		supportType = DefaultSupportType
	}
	return b.Placeholder(clientName, code, supportType), MethodPlaceholder
}

const upperHex = "0123456789ABCDEF"

// EncodeURIComponent escapes s like the browser function of the same name:
// everything except letters, digits and -_.!~*'() is percent-encoded as UTF-8.
func EncodeURIComponent(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) * 3)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreserved(c) {
			sb.WriteByte(c)
			continue
		}
		sb.WriteByte('%')
		sb.WriteByte(upperHex[c>>4])
		sb.WriteByte(upperHex[c&15])
	}
	return sb.String()
}

func unreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
