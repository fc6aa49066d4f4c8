// Package mpx encodes a stereo audio program into the FM-broadcast
// composite (multiplex) baseband signal: preemphasized and band-limited
// left/right channels, a 19 kHz pilot tone, the stereo difference as
// DSB-SC on the 38 kHz second harmonic, and an optional externally
// generated multiplex stream (e.g. RDS) summed in linearly.
package mpx
