// Package grid converts between the textual character-grid representation and
// a rectangular array of single-character cells, and composites several grids
// into one.
//
// The textual form places a single space between adjacent cells and a line
// break between rows, so a row W cells wide serializes to 2W-1 characters:
//
//	+ + . .
//	. + + .
//
// Decode and Encode are inverse for grids whose rows hold at least one cell,
// which is every grid the renderer produces. A zero-width grid encodes to
// bare line separators, and a single trailing separator is accepted on input,
// so such grids collapse and do not round-trip.
//
// A space cell is the transparency sentinel. Layers meant for stacking must be
// rendered with a space as their fill character.
package grid
