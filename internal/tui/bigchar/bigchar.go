// Package bigchar renders short text such as ticker symbols as large block
// art using half-block characters.
package bigchar

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	padding   = 4
	threshold = uint8(60)
)

var loadedFace font.Face

func init() {
	fnt, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    64,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return
	}
	loadedFace = face
}

// RenderBlock renders text using half-block characters (▀▄█).
// rows is the output height in terminal cells; the width follows the
// glyphs' aspect ratio.
func RenderBlock(text string, rows int) string {
	if text == "" || rows <= 0 || loadedFace == nil {
		return ""
	}

	metrics := loadedFace.Metrics()
	ascent := metrics.Ascent.Ceil()
	descent := metrics.Descent.Ceil()
	advance := font.MeasureString(loadedFace, text).Ceil()

	srcWidth := advance + padding*2
	srcHeight := ascent + descent + padding*2

	srcImg := image.NewGray(image.Rect(0, 0, srcWidth, srcHeight))
	draw.Draw(srcImg, srcImg.Bounds(), &image.Uniform{color.Black}, image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  srcImg,
		Src:  image.White,
		Face: loadedFace,
		Dot:  fixed.P(padding, padding+ascent),
	}
	d.DrawString(text)

	// Half-blocks give two vertical pixels per cell.
	targetHeight := rows * 2
	cols := srcWidth * targetHeight / srcHeight
	if cols < 1 {
		cols = 1
	}

	scaled := scaleDown(srcImg, cols, targetHeight)
	return imageToHalfBlocks(scaled, cols, rows)
}

// scaleDown scales a grayscale image using area averaging
func scaleDown(src *image.Gray, dstWidth, dstHeight int) *image.Gray {
	srcBounds := src.Bounds()
	srcWidth := srcBounds.Max.X
	srcHeight := srcBounds.Max.Y

	dst := image.NewGray(image.Rect(0, 0, dstWidth, dstHeight))

	xRatio := float64(srcWidth) / float64(dstWidth)
	yRatio := float64(srcHeight) / float64(dstHeight)

	for dy := 0; dy < dstHeight; dy++ {
		for dx := 0; dx < dstWidth; dx++ {
			sx1 := int(float64(dx) * xRatio)
			sy1 := int(float64(dy) * yRatio)
			sx2 := min(int(float64(dx+1)*xRatio), srcWidth)
			sy2 := min(int(float64(dy+1)*yRatio), srcHeight)

			var sum, count int
			for sy := sy1; sy < sy2; sy++ {
				for sx := sx1; sx < sx2; sx++ {
					sum += int(src.GrayAt(sx, sy).Y)
					count++
				}
			}

			if count > 0 {
				dst.SetGray(dx, dy, color.Gray{Y: uint8(sum / count)})
			}
		}
	}

	return dst
}

// imageToHalfBlocks converts a grayscale image to half-block art
func imageToHalfBlocks(img *image.Gray, cols, rows int) string {
	var result strings.Builder

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			topOn := brightness(img, col, row*2) > threshold
			bottomOn := brightness(img, col, row*2+1) > threshold

			switch {
			case topOn && bottomOn:
				result.WriteRune('█')
			case topOn:
				result.WriteRune('▀')
			case bottomOn:
				result.WriteRune('▄')
			default:
				result.WriteRune(' ')
			}
		}
		if row < rows-1 {
			result.WriteRune('\n')
		}
	}

	return result.String()
}

func brightness(img *image.Gray, x, y int) uint8 {
	if x < 0 || y < 0 || x >= img.Bounds().Max.X || y >= img.Bounds().Max.Y {
		return 0
	}
	return img.GrayAt(x, y).Y
}

// IsAvailable returns true if the embedded font loaded.
func IsAvailable() bool {
	return loadedFace != nil
}

// Width returns the number of columns RenderBlock would produce.
func Width(text string, rows int) int {
	if text == "" || rows <= 0 || loadedFace == nil {
		return 0
	}
	metrics := loadedFace.Metrics()
	srcWidth := font.MeasureString(loadedFace, text).Ceil() + padding*2
	srcHeight := metrics.Ascent.Ceil() + metrics.Descent.Ceil() + padding*2
	return max(srcWidth*rows*2/srcHeight, 1)
}

// cache for rendered titles; only touched from the UI goroutine.
var cache = make(map[string]string)

// GetCached returns the cached block art for text, rendering it on first
// use. It returns "" when the art would be wider than maxCols.
func GetCached(text string, rows, maxCols int) string {
	if !IsAvailable() || Width(text, rows) > maxCols {
		return ""
	}

	key := fmt.Sprintf("%s/%d", text, rows)
	if cached, ok := cache[key]; ok {
		return cached
	}

	rendered := RenderBlock(text, rows)
	cache[key] = rendered
	return rendered
}
