// Package preview draws rendered images in the terminal using half-block
// characters, two image rows per terminal row.
package preview

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/df07/go-pathtracer/pkg/core"
)

// upperHalfBlock is drawn with the top pixel as foreground and the bottom pixel as background
const upperHalfBlock = '▀'

// Downsample shrinks img to fit maxWidth x maxHeight with nearest-pixel
// sampling, preserving the aspect ratio. Images that already fit are returned as is.
func Downsample(img *core.HdrImage, maxWidth, maxHeight int) *core.HdrImage {
	if img.Width <= maxWidth && img.Height <= maxHeight {
		return img
	}
	if maxWidth <= 0 || maxHeight <= 0 {
		return core.NewHdrImage(0, 0)
	}

	scale := min(float64(maxWidth)/float64(img.Width), float64(maxHeight)/float64(img.Height))
	width := max(1, int(float64(img.Width)*scale))
	height := max(1, int(float64(img.Height)*scale))

	out := core.NewHdrImage(width, height)
	for y := 0; y < height; y++ {
		srcY := y * img.Height / height
		for x := 0; x < width; x++ {
			srcX := x * img.Width / width
			out.SetPixel(x, y, img.GetPixel(srcX, srcY))
		}
	}
	return out
}

// Draw paints a tone-mapped image (channels in [0,1]) onto screen, scaled
// down to fit. It does not call screen.Show.
func Draw(screen tcell.Screen, img *core.HdrImage, gamma float64) {
	cols, rows := screen.Size()
	screen.Clear()

	small := Downsample(img, cols, rows*2)
	rgba := small.ToRGBA(gamma)

	for cy := 0; cy*2 < small.Height; cy++ {
		for cx := 0; cx < small.Width; cx++ {
			top := rgba.RGBAAt(cx, cy*2)
			style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B)))

			if cy*2+1 < small.Height {
				bottom := rgba.RGBAAt(cx, cy*2+1)
				style = style.Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
			}
			screen.SetContent(cx, cy, upperHalfBlock, nil, style)
		}
	}
}

// Show opens the terminal, draws img and waits until a key is pressed.
// The image is redrawn when the terminal is resized.
func Show(img *core.HdrImage, gamma float64) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create terminal screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal screen: %w", err)
	}
	defer screen.Fini()

	return run(screen, img, gamma)
}

func run(screen tcell.Screen, img *core.HdrImage, gamma float64) error {
	Draw(screen, img, gamma)
	screen.Show()

	for {
		switch screen.PollEvent().(type) {
		case *tcell.EventResize:
			screen.Sync()
			Draw(screen, img, gamma)
			screen.Show()
		case *tcell.EventKey:
			return nil
		case nil:
			// Screen finalized
			return nil
		}
	}
}
