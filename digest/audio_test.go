// This file is part of emuaudio.
//
// emuaudio is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// emuaudio is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with emuaudio.  If not, see <https://www.gnu.org/licenses/>.

package digest_test

import (
	"testing"

	"github.com/jetsetilly/emuaudio/digest"
	"github.com/jetsetilly/emuaudio/test"
)

func TestEmpty(t *testing.T) {
	dig := digest.NewAudio()
	test.ExpectEquality(t, dig.String(), "0000000000000000000000000000000000000000")
	test.ExpectEquality(t, dig.Samples(), 0)
}

func TestRepeatable(t *testing.T) {
	samples := make([]float32, 100000)
	for i := range samples {
		samples[i] = float32(i%100) / 100
	}

	a := digest.NewAudio()
	a.WriteFloat32(samples)

	// the same stream delivered in different sized chunks
	b := digest.NewAudio()
	for i := 0; i < len(samples); i += 333 {
		b.WriteFloat32(samples[i:min(i+333, len(samples))])
	}

	test.ExpectEquality(t, a.String(), b.String())
	test.ExpectEquality(t, a.Samples(), len(samples))

	// reading the digest does not change it
	test.ExpectEquality(t, a.String(), b.String())

	samples[50000] += 0.5
	c := digest.NewAudio()
	c.WriteFloat32(samples)
	test.ExpectInequality(t, a.String(), c.String())
}

func TestQuantisation(t *testing.T) {
	a := digest.NewAudio()
	a.WriteFloat32([]float32{0.5, -0.25, 1.5})

	b := digest.NewAudio()
	b.WriteInt16([]int16{16384, -8192, 32767})

	test.ExpectEquality(t, a.String(), b.String())
}

func TestReset(t *testing.T) {
	a := digest.NewAudio()
	a.WriteInt16([]int16{1, 2, 3})
	a.ResetDigest()
	test.ExpectEquality(t, a.String(), digest.NewAudio().String())
}
