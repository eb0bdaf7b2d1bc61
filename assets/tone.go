package assets

import (
	"encoding/binary"
	"math"
	"math/rand"

	cfg "github.com/automoto/lodis-galaga/config"
)

const toneAmplitude = 0.5

// Tone renders a sound effect as 16-bit little-endian stereo PCM, the
// format audio players read. The frequency slides from StartHz to EndHz
// and the volume decays linearly to silence.
func Tone(t cfg.ToneConfig, sampleRate int, rnd *rand.Rand) []byte {
	n := int(t.Duration * float64(sampleRate))
	if n <= 0 || sampleRate <= 0 {
		return nil
	}
	noise := math.Max(0, math.Min(1, t.Noise))
	buf := make([]byte, n*4)
	phase := 0.0
	for i := 0; i < n; i++ {
		p := float64(i) / float64(n)
		freq := t.StartHz + (t.EndHz-t.StartHz)*p
		phase += 2 * math.Pi * freq / float64(sampleRate)

		v := math.Sin(phase) * (1 - noise)
		if noise > 0 && rnd != nil {
			v += (rnd.Float64()*2 - 1) * noise
		}
		v *= toneAmplitude * (1 - p)

		s := uint16(int16(v * math.MaxInt16))
		binary.LittleEndian.PutUint16(buf[i*4:], s)
		binary.LittleEndian.PutUint16(buf[i*4+2:], s)
	}
	return buf
}
