package imaging

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
)

// Image is a row-major buffer of colors, top row first
type Image struct {
	Width  int
	Height int
	Pixels []Color
}

// NewImage allocates a black image
func NewImage(width, height int) *Image {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Image{
		Width:  width,
		Height: height,
		Pixels: make([]Color, width*height),
	}
}

// At returns the color at column x, row y
func (img *Image) At(x, y int) Color {
	return img.Pixels[y*img.Width+x]
}

// Set stores the color at column x, row y
func (img *Image) Set(x, y int, c Color) {
	img.Pixels[y*img.Width+x] = c
}

// WritePPM serializes the image in plain-text PPM (P3) format
func (img *Image) WritePPM(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", img.Width, img.Height); err != nil {
		return fmt.Errorf("failed to write PPM header: %w", err)
	}
	for _, c := range img.Pixels {
		r, g, b := c.Bytes()
		if _, err := fmt.Fprintf(bw, "%d %d %d\n", r, g, b); err != nil {
			return fmt.Errorf("failed to write PPM pixel: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush PPM output: %w", err)
	}
	return nil
}

// PPM returns the plain-text PPM serialization as a string
func (img *Image) PPM() string {
	var sb strings.Builder
	// strings.Builder never returns a write error
	_ = img.WritePPM(&sb)
	return sb.String()
}

// RGBA converts the image to an 8-bit RGBA image using the PPM quantization
func (img *Image) RGBA() *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			r, g, b := img.At(x, y).Bytes()
			out.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return out
}

// WritePNG encodes the image as PNG
func (img *Image) WritePNG(w io.Writer) error {
	if err := png.Encode(w, img.RGBA()); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}
