// Package process terminates browser process trees left behind by headless
// PDF rendering.
package process
