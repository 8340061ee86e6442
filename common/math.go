package common

// Logical screen size; ebiten scales it to the window.
const (
	BaseWidth  = 640
	BaseHeight = 360
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}
