// Package cache provides a bounded least-recently-used cache.
//
//	masks := cache.New[gstate.Glyph, *image.Alpha](512)
//	masks.Set(g, m)
//	m, ok := masks.Get(g)
//
// A Cache is safe for concurrent use and must not be copied.
package cache
