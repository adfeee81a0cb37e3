// Package canvas provides drawing surfaces for lsystem engines.
//
// Raster draws anti-aliased strokes with gogpu/gg and encodes PNG. SVG keeps
// the vector form of everything painted since the last fill, minus strokes
// that a later background-coloured stroke fully covers. Recorder logs
// paint commands in order and is mostly useful in tests. Multi fans the same
// commands out to several surfaces.
package canvas
