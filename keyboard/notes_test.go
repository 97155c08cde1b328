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

package keyboard_test

import (
	"testing"

	"github.com/jetsetilly/emuaudio/hardware/tia/audio"
	"github.com/jetsetilly/emuaudio/keyboard"
	"github.com/jetsetilly/emuaudio/test"
)

func TestInstrument(t *testing.T) {
	ins := keyboard.NewInstrument()

	w, ok := ins.Writes('z', 10)
	test.DemandSuccess(t, ok)
	test.DemandEquality(t, len(w), 3)
	test.ExpectEquality(t, w[0].Address, audio.AUDC0)
	test.ExpectEquality(t, w[0].Value, 0x04)
	test.ExpectEquality(t, w[1].Address, audio.AUDF0)
	test.ExpectEquality(t, w[2].Address, audio.AUDV0)
	test.ExpectEquality(t, w[2].Value, 0x0f)
	test.ExpectEquality(t, w[2].Cycle, 10)

	// higher keys play higher notes. a lower frequency value is a higher note
	lo, _ := ins.Writes('a', 0)
	hi, _ := ins.Writes(';', 0)
	test.ExpectEquality(t, lo[1].Address, audio.AUDF1)
	test.ExpectSuccess(t, hi[1].Value < lo[1].Value)

	// frequency values fit the five bit register
	for _, k := range "zxcvbnm,./asdfghjkl;" {
		w, ok := ins.Writes(k, 0)
		test.DemandSuccess(t, ok, string(k))
		test.ExpectSuccess(t, w[1].Value <= 0x1f, string(k))
	}

	w, ok = ins.Writes(keyboard.KeySilence, 0)
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, len(w), 2)
	test.ExpectEquality(t, w[0].Value, 0)

	_, ok = ins.Writes('1', 0)
	test.ExpectFailure(t, ok)
}
