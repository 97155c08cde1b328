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

package keyboard

import (
	"strings"

	"github.com/jetsetilly/emuaudio/hardware/tia/audio"
	"github.com/jetsetilly/emuaudio/reglog"
)

// Special keys.
const (
	KeyQuit    = 'q'
	KeySilence = ' '
)

// the keys of the bottom row of a qwerty keyboard play channel 0 and the
// keys of the middle row play channel 1
const (
	channel0Keys = "zxcvbnm,./"
	channel1Keys = "asdfghjkl;"
)

// frequency values for the pure tone (control value 0x04), lowest to
// highest. the TIA divides the 30Khz clock by the value plus one so the
// intervals are uneven
var noteFreqs = [10]uint8{31, 28, 25, 23, 20, 18, 15, 13, 11, 9}

const pureTone = 0x04

// Instrument turns key presses into register writes.
type Instrument struct {
	// the control value used for notes. defaults to a pure tone
	Control uint8

	// volume of notes
	Volume uint8
}

// NewInstrument is the preferred method of initialisation for the Instrument
// type.
func NewInstrument() *Instrument {
	return &Instrument{
		Control: pureTone,
		Volume:  0x0f,
	}
}

// Writes returns the register writes for the key. The writes occur on the
// cycle specified. Returns false if the key does not play a note.
func (ins *Instrument) Writes(key rune, cycle int32) ([]reglog.Write, bool) {
	if key == KeySilence {
		return []reglog.Write{
			{Cycle: cycle, Address: audio.AUDV0, Value: 0},
			{Cycle: cycle, Address: audio.AUDV1, Value: 0},
		}, true
	}

	if i := strings.IndexRune(channel0Keys, key); i >= 0 {
		return []reglog.Write{
			{Cycle: cycle, Address: audio.AUDC0, Value: ins.Control},
			{Cycle: cycle, Address: audio.AUDF0, Value: noteFreqs[i]},
			{Cycle: cycle, Address: audio.AUDV0, Value: ins.Volume},
		}, true
	}

	if i := strings.IndexRune(channel1Keys, key); i >= 0 {
		return []reglog.Write{
			{Cycle: cycle, Address: audio.AUDC1, Value: ins.Control},
			{Cycle: cycle, Address: audio.AUDF1, Value: noteFreqs[i]},
			{Cycle: cycle, Address: audio.AUDV1, Value: ins.Volume},
		}, true
	}

	return nil, false
}

// Help returns a short description of the key layout.
func Help() string {
	return "channel 0: " + channel0Keys + "  channel 1: " + channel1Keys + "  silence: space  quit: q"
}
