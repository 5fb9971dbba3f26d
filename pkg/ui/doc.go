// Package ui decides how geoascii talks to the terminal.
//
// DetectFormat and Resolve choose between styled and plain output from
// NO_COLOR, the configured color mode and whether the writer is a tty.
// LinePrompter drives the pause between paginated features and Theme
// styles CLI messages such as errors.
package ui
