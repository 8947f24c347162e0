// Package viz draws scenes on a braille terminal canvas and holds the
// lipgloss styles shared by the command line views.
package viz
