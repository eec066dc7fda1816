package ui

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"

	"github.com/yllada/voice-intelligence/common"
)

// IconConfig defines the configuration for icon generation.
type IconConfig struct {
	Size        int
	FillColor   color.RGBA
	BorderColor color.RGBA
	WaveColor   color.RGBA
	// Bars are the waveform bar heights as fractions of the icon size.
	Bars []float64
}

// DefaultTrayIconConfig returns the tray icon: a waveform on a dark disc.
func DefaultTrayIconConfig() IconConfig {
	return IconConfig{
		Size:        common.TrayIconSize,
		FillColor:   color.RGBA{38, 50, 56, 255},    // Blue gray
		BorderColor: color.RGBA{96, 125, 139, 255},  // Lighter blue gray
		WaveColor:   color.RGBA{129, 212, 250, 255}, // Light blue
		Bars:        []float64{0.25, 0.5, 0.7, 0.5, 0.25},
	}
}

// DefaultAppIconConfig returns the larger window icon.
func DefaultAppIconConfig() IconConfig {
	cfg := DefaultTrayIconConfig()
	cfg.Size = 128
	cfg.Bars = []float64{0.2, 0.35, 0.55, 0.7, 0.55, 0.35, 0.2}
	return cfg
}

// IconGenerator generates PNG icons.
type IconGenerator struct {
	config IconConfig
}

// NewIconGenerator creates a new icon generator with the given config.
func NewIconGenerator(config IconConfig) *IconGenerator {
	return &IconGenerator{config: config}
}

// Generate creates a PNG icon and returns the bytes.
func (g *IconGenerator) Generate() []byte {
	size := g.config.Size
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	g.drawDisc(img)
	g.drawWave(img)

	var buf bytes.Buffer
	png.Encode(&buf, img)
	return buf.Bytes()
}

// drawDisc draws the filled circle with a one pixel border.
func (g *IconGenerator) drawDisc(img *image.RGBA) {
	size := float64(g.config.Size)
	center := size / 2
	radius := size/2 - 0.5

	for y := 0; y < g.config.Size; y++ {
		for x := 0; x < g.config.Size; x++ {
			d := math.Hypot(float64(x)+0.5-center, float64(y)+0.5-center)
			switch {
			case d > radius:
			case d > radius-1.5:
				img.Set(x, y, g.config.BorderColor)
			default:
				img.Set(x, y, g.config.FillColor)
			}
		}
	}
}

// drawWave draws vertical bars centred on the icon's horizontal axis.
func (g *IconGenerator) drawWave(img *image.RGBA) {
	n := len(g.config.Bars)
	if n == 0 {
		return
	}
	size := g.config.Size
	// Bars and gaps share the middle 60% of the width.
	slot := float64(size) * 0.6 / float64(2*n-1)
	left := float64(size) * 0.2
	mid := float64(size) / 2

	for i, h := range g.config.Bars {
		x0 := int(left + float64(2*i)*slot)
		x1 := int(left + float64(2*i+1)*slot)
		if x1 == x0 {
			x1 = x0 + 1
		}
		half := h * float64(size) / 2
		for y := int(mid - half); y < int(mid+half); y++ {
			for x := x0; x < x1; x++ {
				if x >= 0 && x < size && y >= 0 && y < size {
					img.Set(x, y, g.config.WaveColor)
				}
			}
		}
	}
}

// GenerateTrayIcon generates the tray icon.
func GenerateTrayIcon() []byte {
	return NewIconGenerator(DefaultTrayIconConfig()).Generate()
}

// GenerateAppIcon generates the window icon.
func GenerateAppIcon() []byte {
	return NewIconGenerator(DefaultAppIconConfig()).Generate()
}
