// Package cache provides a small thread-safe cache with a soft size limit.
//
// The text rasterizer uses one per call to load each distinct glyph outline
// once, however often the glyph repeats in the line.
package cache
