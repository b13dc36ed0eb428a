// Package vision turns raw camera frames into binary edge maps restricted
// to a road-facing region of interest.
//
// The pipeline implemented by BuildEdgeMap is a Canny-style edge detector:
//
//  1. Grayscale conversion (ITU-R BT.601 luminance)
//  2. Gaussian blur with a configurable kernel to suppress pixel noise
//  3. Sobel gradient magnitude and direction
//  4. Non-maximum suppression to thin edges to 1-pixel width
//  5. Double threshold with hysteresis edge linking
//  6. Region-of-interest masking: pixels outside the polygon are zeroed
//
// # Coordinate System
//
// All pixel coordinates are 0-based with (0,0) at the top-left corner,
// X increasing rightward and Y increasing downward. The bottom rows of a
// frame are therefore the road area nearest the vehicle.
//
// # Purity
//
// BuildEdgeMap is a pure function of its inputs: it never mutates the input
// frame and the same frame, region, and options always produce the same
// edge map. It is safe to call concurrently on different frames.
package vision
