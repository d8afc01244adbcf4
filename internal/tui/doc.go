// Package tui is the interactive impulse response explorer.
//
// The explorer opens on a menu of presets plus the configured economy.
// Selecting one shows every model parameter with its baseline and shocked
// value; the shocked values form the impulse. Running builds the response
// and charts it.
//
//	←/→   nudge the shocked value      enter  type a value
//	x     clear a parameter's shock    K      cycle the unit kind
//	v     cycle the charted variable   b      toggle the growth path
//	L     toggle log scale             t      cycle the theme
package tui
