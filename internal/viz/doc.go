// Package viz renders impulse responses in the terminal.
//
//   - [Chart]: asciigraph line chart of one variable with its balanced
//     growth path
//   - [Compare]: several responses of the same variable on one chart
//   - [Summary]: lipgloss box with the convergence figures of a response
//
// Colors come from a [Theme]; [GetTheme] falls back to the default theme
// for unknown names.
package viz
