package mockups

import (
	"testing"

	"github.com/angelmondragon/ooh-agent-backend/pkg/config"
	"github.com/stretchr/testify/assert"
)

func TestEncodeURIComponentMatchesBrowser(t *testing.T) {
	cases := map[string]string{
		"Coca-Cola":          "Coca-Cola",
		"Coca Cola\n\nx":     "Coca%20Cola%0A%0Ax",
		"a+b&c=d/e?f":        "a%2Bb%26c%3Dd%2Fe%3Ff",
		"it's (ok)! ~*._":    "it's%20(ok)!%20~*._",
		"Café Martínez":      "Caf%C3%A9%20Mart%C3%ADnez",
		"#1 @home, $5; 100%": "%231%20%40home%2C%20%245%3B%20100%25",
	}
	for in, want := range cases {
		assert.Equal(t, want, EncodeURIComponent(in), in)
	}
}

func TestPlaceholderDefaults(t *testing.T) {
	b := NewBuilder(config.MockupsConfig{})
	got := b.Placeholder("Coca-Cola", "GFG050", "Medianera")
	assert.Equal(t,
		"https://placehold.co/1200x800/1a365d/ffffff/png?text=Coca-Cola%0A%0AMedianera%20-%20GFG050&font=roboto",
		got)
}

func TestPlaceholderHonoursConfig(t *testing.T) {
	b := NewBuilder(config.MockupsConfig{
		PlaceholderBaseURL: "https://img.example.com/",
		Width:              600,
		Height:             400,
		BackgroundColor:    "#000000",
		TextColor:          "ff0000",
	})
	assert.Equal(t,
		"https://img.example.com/600x400/000000/ff0000/png?text=ACME%0A%0AColumna%20-%20C1&font=roboto",
		b.Placeholder("ACME", "C1", "Columna"))
}

func TestCloudinaryOverlayAndFallback(t *testing.T) {
	b := NewBuilder(config.MockupsConfig{CloudinaryCloudName: "ooh-demo", CloudinaryPublicID: "billboards/base"})
	assert.True(t, b.CloudinaryEnabled())
	assert.Equal(t,
		"https://res.cloudinary.com/ooh-demo/image/upload/l_text:Arial_120_bold:Banco%20Naci%C3%B3n,co_white,g_center,y_-50/billboards/base",
		b.Cloudinary("Banco Nación", "billboards/base"))

	url, method := b.URL("ACME", "GFG050", "Medianera")
	assert.Equal(t, MethodCloudinary, method)
	assert.Contains(t, url, "l_text:Arial_120_bold:ACME")

	plain := NewBuilder(config.MockupsConfig{})
	assert.False(t, plain.CloudinaryEnabled())
	assert.Equal(t, plain.Placeholder("ACME", "PROTO", "Billboard"), plain.Cloudinary("ACME", "billboards/base"))
}

func TestURLDefaultsSupportType(t *testing.T) {
	b := NewBuilder(config.MockupsConfig{})
	url, method := b.URL("ACME", "X1", "")
	assert.Equal(t, MethodPlaceholder, method)
	assert.Contains(t, url, "Soporte%20OOH%20-%20X1")
}
