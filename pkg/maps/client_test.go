package maps

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStaticMapURL(t *testing.T) {
	client := NewClient("  key-123 ")
	got := client.StaticMapURL(Point{Lat: -34.6037, Lng: -58.4116})
	assert.Equal(t,
		"https://maps.googleapis.com/maps/api/staticmap?center=-34.6037,-58.4116&zoom=15&size=300x200&markers=color:red|-34.6037,-58.4116&key=key-123",
		got)
}

func TestStaticMapURLWithoutKey(t *testing.T) {
	client := NewClient("")
	assert.False(t, client.Enabled())
	assert.Empty(t, client.StaticMapURL(Point{Lat: 1, Lng: 2}))

	var nilClient *Client
	assert.Empty(t, nilClient.StaticMapURL(Point{}))
}

func TestStaticMapURLOptions(t *testing.T) {
	client := NewClient("k", WithZoom(12), WithSize("600x400"), WithStaticBaseURL("http://maps.local/static"), nil)
	assert.Equal(t,
		"http://maps.local/static?center=1.5,2&zoom=12&size=600x400&markers=color:red|1.5,2&key=k",
		client.StaticMapURL(Point{Lat: 1.5, Lng: 2}))
}

func TestLinkURL(t *testing.T) {
	assert.Equal(t, "https://www.google.com/maps?q=-34.5267,-58.4726", NewClient("").LinkURL(Point{Lat: -34.5267, Lng: -58.4726}))

	var nilClient *Client
	assert.Equal(t, "https://www.google.com/maps?q=0,0", nilClient.LinkURL(Point{}))
}
