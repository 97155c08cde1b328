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

package audio

type channel struct {
	registers Registers

	// which bit of each polynomial counter to use next
	poly4ct int
	poly5ct int
	poly9ct int
	div3ct  uint8

	// the different musical notes available to the 2600 are achieved with a
	// frequency clock. the easiest way to think of this is to think of a
	// filter to the 30Khz clock signal.
	freqCt uint8

	// if bits 2 and 3 of control register are set (ie. mask 0x0c) then we use
	// a 10Khz clock rather than a 30Khz clock.
	useTenKhz bool

	// the value we count to with freqCt in order to generate the correct
	// sound. copied from the frequency register by reactAUDCx()
	freq uint8

	// the different tones are achieved are by adjusting the volume between
	// zero (silence) and the value in the volume register. actualVol is a
	// record of that value.
	actualVol uint8
}

func (ch *channel) String() string {
	return ch.registers.String()
}

// control values 0x00 and 0x0b set the output to the volume register
func (ch *channel) constantVolume() bool {
	return ch.registers.Control == 0x00 || ch.registers.Control == 0x0b
}

// tick should be called at a frequency of 30Khz. the tenKhz argument is true
// on every third call.
func (ch *channel) tick(tenKhz bool) {
	// filter out 30Khz signal if channel is set to use the 10Khz signal
	if ch.useTenKhz && !tenKhz {
		return
	}

	// nothing to do. volume has already been changed with reactAUDCx()
	if ch.constantVolume() {
		return
	}

	// tick main frequency clock
	if ch.freqCt == ch.freq || ch.freqCt == 31 {
		ch.freqCt = 0
	} else {
		ch.freqCt++
	}

	// update output volume only when the counter reaches the target frequency value
	if ch.freqCt != ch.freq {
		return
	}

	// the 5-bit polynomial clock toggles volume on change of bit. note the
	// current bit so we can compare
	prevBit5 := poly5bit[ch.poly5ct]

	ch.poly5ct++
	if ch.poly5ct >= len(poly5bit) {
		ch.poly5ct = 0
	}

	control := ch.registers.Control

	// check for clock tick
	if (control&0x02 == 0x0) ||
		((control&0x01 == 0x0) && div31[ch.poly5ct] != 0) ||
		((control&0x01 == 0x1) && poly5bit[ch.poly5ct] != 0) ||
		((control&0x0f == 0xf) && poly5bit[ch.poly5ct] != prevBit5) {

		switch {
		case control&0x04 == 0x04:
			// pure clock
			if control&0x0f == 0x0f {
				// poly5/div3
				if poly5bit[ch.poly5ct] != prevBit5 {
					ch.div3ct++
					if ch.div3ct == 3 {
						ch.div3ct = 0
						ch.toggle()
					}
				}
			} else {
				ch.toggle()
			}

		case control&0x08 == 0x08:
			switch {
			case control == 0x08:
				ch.poly9ct++
				if ch.poly9ct >= len(poly9bit) {
					ch.poly9ct = 0
				}
				ch.follow(poly9bit[ch.poly9ct])
			case control&0x02 != 0:
				if ch.actualVol != 0 || control&0x01 == 0x01 {
					ch.actualVol = 0
				} else {
					ch.actualVol = ch.registers.Volume
				}
			default:
				// poly5 counter has already been advanced
				ch.follow(poly5bit[ch.poly5ct])
			}

		default:
			ch.poly4ct++
			if ch.poly4ct >= len(poly4bit) {
				ch.poly4ct = 0
			}
			ch.follow(poly4bit[ch.poly4ct])
		}
	}
}

func (ch *channel) toggle() {
	if ch.actualVol != 0 {
		ch.actualVol = 0
	} else {
		ch.actualVol = ch.registers.Volume
	}
}

// output volume follows the polynomial bit
func (ch *channel) follow(bit uint8) {
	if bit != 0 {
		ch.actualVol = ch.registers.Volume
	} else {
		ch.actualVol = 0
	}
}
