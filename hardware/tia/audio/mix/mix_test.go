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

package mix_test

import (
	"testing"

	"github.com/jetsetilly/emuaudio/hardware/tia/audio/mix"
	"github.com/jetsetilly/emuaudio/test"
)

func TestMono(t *testing.T) {
	test.ExpectEquality(t, mix.Mono(0, 0), 0)

	// the mix is symmetrical and increases with volume
	prev := int16(0)
	for v := uint8(1); v <= 15; v++ {
		test.ExpectEquality(t, mix.Mono(v, 0), mix.Mono(0, v), v)
		test.ExpectSuccess(t, mix.Mono(v, 0) > prev, v)
		prev = mix.Mono(v, 0)
	}

	// maximum volume is half of full scale
	test.ExpectEquality(t, mix.Mono(15, 15), int16(0x7fff>>1))

	// the mix is not linear. two channels at half volume are louder than
	// one channel at full volume
	test.ExpectSuccess(t, mix.Mono(8, 8) > mix.Mono(15, 0))

	// upper bits of the volume are ignored
	test.ExpectEquality(t, mix.Mono(0xf5, 0), mix.Mono(0x05, 0))
}

func TestStereo(t *testing.T) {
	l, r := mix.Stereo(15, 0)
	test.ExpectEquality(t, l, mix.Mono(15, 0))
	test.ExpectEquality(t, r, 0)

	l, r = mix.Stereo(3, 9)
	test.ExpectEquality(t, l, mix.Mono(3, 0))
	test.ExpectEquality(t, r, mix.Mono(9, 0))
}
