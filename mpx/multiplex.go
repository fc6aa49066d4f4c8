package mpx

// Multiplex combines one band-limited left/right sample pair, the pilot and
// subcarrier oscillator outputs, and one external multiplex sample into one
// composite baseband sample.
//
// The stereo difference rides on the subcarrier as DSB-SC: the subcarrier
// itself carries no discrete spectral line, only the modulated sidebands.
// The external sample is summed linearly and never interacts with the
// stereo encoding. In mono mode neither pilot nor subcarrier is emitted.
func Multiplex(l, r, pilot, subcarrier, ext float64, stereo bool) float64 {
	mono := (l + r) / 2
	if !stereo {
		return mono + ext
	}
	diff := (l - r) / 2
	return mono*MonoLevel + pilot*PilotLevel + diff*subcarrier*StereoLevel + ext
}
