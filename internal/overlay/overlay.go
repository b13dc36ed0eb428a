package overlay

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/openlkas/openlkas/internal/lane"
	"github.com/openlkas/openlkas/internal/pipeline"
)

// Options controls overlay rendering.
type Options struct {
	// DriftThresholdPx scales the severity color and places the
	// threshold ticks. Should match the pipeline's drift threshold.
	DriftThresholdPx float64

	// LineThickness is the stroke width for boundary lines, in pixels.
	LineThickness int
}

// DefaultOptions returns rendering defaults matching the pipeline defaults.
func DefaultOptions() Options {
	return Options{
		DriftThresholdPx: 50,
		LineThickness:    3,
	}
}

var (
	boundaryColor = color.NRGBA{R: 0, G: 200, B: 255, A: 255}
	centerColor   = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	tickColor     = color.NRGBA{R: 255, G: 255, B: 0, A: 255}
	bannerColor   = color.NRGBA{R: 255, G: 40, B: 40, A: 255}
)

// SeverityColor maps a smoothed offset to a green-to-red gradient,
// saturating at the drift threshold. The blend runs in Lab space so the
// midpoint reads as a plausible amber rather than a muddy brown.
func SeverityColor(smoothedOffset, thresholdPx float64) color.NRGBA {
	sev := 0.0
	if thresholdPx > 0 {
		sev = math.Abs(smoothedOffset) / thresholdPx
	}
	if sev > 1 {
		sev = 1
	}
	green := colorful.Color{R: 0.1, G: 0.8, B: 0.1}
	red := colorful.Color{R: 0.9, G: 0.1, B: 0.1}
	r, g, b := green.BlendLab(red, sev).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

// Render draws the lane estimate and alert status from res onto a copy
// of base and returns the annotated frame. base itself is not modified.
func Render(base image.Image, res pipeline.Result, opts Options) *image.NRGBA {
	dst := imaging.Clone(base)
	b := dst.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return dst
	}

	thickness := opts.LineThickness
	if thickness < 1 {
		thickness = 1
	}

	// Boundaries are drawn over the lower part of the frame, where the
	// region of interest lives.
	top := int(0.6 * float64(h))
	if res.Estimate.Left != nil {
		drawBoundary(dst, *res.Estimate.Left, top, h-1, thickness, boundaryColor)
	}
	if res.Estimate.Right != nil {
		drawBoundary(dst, *res.Estimate.Right, top, h-1, thickness, boundaryColor)
	}

	drawTick(dst, int(math.Round(res.Estimate.FrameCenterX)), h, 18, centerColor)
	if opts.DriftThresholdPx > 0 {
		drawTick(dst, int(math.Round(res.Estimate.FrameCenterX-opts.DriftThresholdPx)), h, 10, tickColor)
		drawTick(dst, int(math.Round(res.Estimate.FrameCenterX+opts.DriftThresholdPx)), h, 10, tickColor)
	}
	if res.Estimate.OffsetValid {
		sev := SeverityColor(res.Drift.SmoothedOffset, opts.DriftThresholdPx)
		drawTick(dst, int(math.Round(res.Estimate.LaneCenterX)), h, 26, sev)
	}

	if res.Drift.AlertActive {
		drawBanner(dst, "LANE DEPARTURE", w)
	} else if res.State == lane.SignalLost {
		drawBanner(dst, "NO LANE SIGNAL", w)
	}

	return dst
}

// drawBoundary plots x = Slope*y + Intercept over rows [yTop, yBottom].
func drawBoundary(dst *image.NRGBA, l lane.Line, yTop, yBottom, thickness int, c color.NRGBA) {
	half := thickness / 2
	for y := yTop; y <= yBottom; y++ {
		x := int(math.Round(l.XAt(float64(y))))
		for dx := -half; dx <= half; dx++ {
			setPixel(dst, x+dx, y, c)
		}
	}
}

// drawTick plots a short vertical marker rising from the bottom edge.
func drawTick(dst *image.NRGBA, x, frameHeight, length int, c color.NRGBA) {
	for y := frameHeight - length; y < frameHeight; y++ {
		setPixel(dst, x-1, y, c)
		setPixel(dst, x, y, c)
		setPixel(dst, x+1, y, c)
	}
}

// drawBanner paints a filled strip across the top of the frame with a
// centered label.
func drawBanner(dst *image.NRGBA, label string, frameWidth int) {
	const bannerHeight = 20
	for y := 0; y < bannerHeight; y++ {
		for x := 0; x < frameWidth; x++ {
			setPixel(dst, x, y, bannerColor)
		}
	}

	face := basicfont.Face7x13
	textWidth := font.MeasureString(face, label).Ceil()
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.White),
		Face: face,
		Dot:  fixed.P((frameWidth-textWidth)/2, bannerHeight-6),
	}
	d.DrawString(label)
}

func setPixel(dst *image.NRGBA, x, y int, c color.NRGBA) {
	if !image.Pt(x, y).In(dst.Bounds()) {
		return
	}
	dst.SetNRGBA(x, y, c)
}
