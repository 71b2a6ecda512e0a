// Package tui is the core terminal UI engine for a Midnight-Commander
// style full-screen console application: a terminal driver, a keyboard
// decoder, a double-buffered ANSI renderer, a component/screen model with
// a cooperative main loop, and a menu/key-binding dispatch layer.
//
// Concrete screens (file browsers, diff viewers, command pickers) are
// deliberately out of scope; this package only specifies the contracts
// they implement and the machinery that drives them.
package tui
