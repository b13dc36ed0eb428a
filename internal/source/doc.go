// Package source supplies video frames to the detection pipeline.
//
// The only implementation is Dir, which replays a directory of image
// files in lexical order as if it were a recorded drive. Frames are
// optionally downscaled to a working width before detection, since lane
// geometry survives resizing and the edge and voting stages are the
// expensive part of the pipeline.
package source
