// Package detect extracts straight-line segment candidates from a binary
// edge map using a parametric (Hough) line transform.
//
// The transform votes every edge pixel into (rho, theta) space, picks
// local-maximum peaks above a configurable vote threshold, and traces the
// edge pixels along each peak line into concrete segments. Segments are
// produced in descending vote order; no further ordering is guaranteed.
//
// An edge map with no qualifying lines yields an empty sequence. That is a
// normal condition (faded or absent markings), never an error.
//
// The Hough accumulator is O(edgePixels * angles) to fill; callers should
// restrict the edge map to a region of interest first.
package detect
