// Package render draws tracking overlays onto video frames.
package render

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/lasaths/HandyPi/internal/detector"
)

var (
	targetColor   = color.RGBA{R: 255, A: 255}
	keypointColor = color.RGBA{R: 255, G: 255, A: 255}
	textColor     = color.RGBA{G: 255, A: 255}
)

// Target draws a crosshair marker centered on the gesture anchor.
func Target(frame *gocv.Mat, anchor detector.Point, size int) {
	center := image.Point{X: int(anchor.X), Y: int(anchor.Y)}

	gocv.Circle(frame, center, size, targetColor, 2)
	gocv.Circle(frame, center, size/3, targetColor, 2)
	gocv.Line(frame, image.Point{X: center.X - size, Y: center.Y}, image.Point{X: center.X + size, Y: center.Y}, targetColor, 2)
	gocv.Line(frame, image.Point{X: center.X, Y: center.Y - size}, image.Point{X: center.X, Y: center.Y + size}, targetColor, 2)
}

// Keypoints draws a dot at each detected keypoint.
func Keypoints(frame *gocv.Mat, kp *detector.Keypoints) {
	if kp == nil {
		return
	}
	for _, p := range kp.Points {
		gocv.Circle(frame, image.Point{X: int(p.X), Y: int(p.Y)}, 3, keypointColor, -1)
	}
}

// FPS draws the smoothed frame rate in the top-left corner.
func FPS(frame *gocv.Mat, fps float64) {
	gocv.PutText(frame, fmt.Sprintf("%.1f FPS", fps), image.Point{X: 10, Y: 30},
		gocv.FontHersheySimplex, 1.0, textColor, 2)
}
