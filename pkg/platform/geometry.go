package platform

// Offset is a position in logical pixels.
type Offset struct {
	X float64
	Y float64
}

// Size is a width and height in logical pixels.
type Size struct {
	Width  float64
	Height float64
}
