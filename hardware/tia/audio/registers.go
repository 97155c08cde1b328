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

import "fmt"

// Addresses of the TIA audio registers.
const (
	AUDC0 = 0x15
	AUDC1 = 0x16
	AUDF0 = 0x17
	AUDF1 = 0x18
	AUDV0 = 0x19
	AUDV1 = 0x1a
)

// RegisterOrder is the fixed order in which the audio registers are
// serialised.
var RegisterOrder = [...]uint16{AUDC0, AUDC1, AUDF0, AUDF1, AUDV0, AUDV1}

// Registers of a single audio channel. The values are masked to the number of
// bits used by the TIA.
type Registers struct {
	Control uint8
	Freq    uint8
	Volume  uint8
}

func (reg Registers) String() string {
	return fmt.Sprintf("%04b @ %05b ^ %04b", reg.Control, reg.Freq, reg.Volume)
}

// setRegister writes a value to one of the six audio registers. Addresses that
// are not audio registers are ignored.
func (au *TIASound) setRegister(addr uint16, value uint8) {
	switch addr {
	case AUDC0:
		au.channel0.registers.Control = value & 0x0f
		au.channel0.reactAUDCx()
	case AUDC1:
		au.channel1.registers.Control = value & 0x0f
		au.channel1.reactAUDCx()
	case AUDF0:
		au.channel0.registers.Freq = value & 0x1f
		au.channel0.reactAUDCx()
	case AUDF1:
		au.channel1.registers.Freq = value & 0x1f
		au.channel1.reactAUDCx()
	case AUDV0:
		au.channel0.registers.Volume = value & 0x0f
		au.channel0.reactAUDCx()
	case AUDV1:
		au.channel1.registers.Volume = value & 0x0f
		au.channel1.reactAUDCx()
	}
}

func (au *TIASound) getRegister(addr uint16) uint8 {
	switch addr {
	case AUDC0:
		return au.channel0.registers.Control
	case AUDC1:
		return au.channel1.registers.Control
	case AUDF0:
		return au.channel0.registers.Freq
	case AUDF1:
		return au.channel1.registers.Freq
	case AUDV0:
		return au.channel0.registers.Volume
	case AUDV1:
		return au.channel1.registers.Volume
	}
	return 0
}

// changing the value of an AUDx register causes some side effects
func (ch *channel) reactAUDCx() {
	ch.freq = ch.registers.Freq

	// from TIASound.c: when bits D2 and D3 are set, the input source is
	// switched to the 1.19MHz clock, so the '30KHz' source clock is reduced
	// to approximately 10KHz."
	ch.useTenKhz = ch.registers.Control&0x0c == 0x0c

	if ch.constantVolume() {
		ch.actualVol = ch.registers.Volume
	} else if ch.actualVol != 0 {
		// a channel that is currently outputting picks up the new volume
		// immediately. a silent channel waits for the next toggle
		ch.actualVol = ch.registers.Volume
	}
}
