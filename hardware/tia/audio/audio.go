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

import (
	"strings"

	"github.com/jetsetilly/emuaudio/hardware/tia/audio/mix"
)

// SampleFreq is the native sample rate of the TIA sound model, or 15700*2.
// The true value is double the horizontal scan rate of the machine:
//
// 31468.52 for NTSC
// 31250 for PAL
const SampleFreq = 31400

// TIASound is a model of the two TIA audio channels.
type TIASound struct {
	// From the "Stella Programmer's Guide":
	//
	// "There are two audio circuits for generating sound. They are identical but
	// completely independent and can be operated simultaneously [...]"
	channel0 channel
	channel1 channel

	// number of output channels and whether the two TIA channels are hard
	// panned when the output is stereo
	channels int
	hardPan  bool

	// number of native ticks per output frame and the fractional tick count
	// carried between frames
	ticksPerFrame float64
	tickAcc       float64

	// counts 30Khz ticks. every third tick is also a 10Khz tick
	div3 int
}

// NewTIASound is the preferred method of initialisation for the TIASound
// type. Output is mono at the native sample rate.
func NewTIASound() *TIASound {
	au := &TIASound{
		channels:      1,
		ticksPerFrame: 1.0,
	}
	return au
}

func (au *TIASound) String() string {
	s := strings.Builder{}
	s.WriteString("ch0: ")
	s.WriteString(au.channel0.String())
	s.WriteString("  ch1: ")
	s.WriteString(au.channel1.String())
	return s.String()
}

// Name returns the name of the sound chip.
func (au *TIASound) Name() string {
	return "TIA"
}

// Reset the registers and the internal state of both channels. The output
// configuration is not changed.
func (au *TIASound) Reset() {
	au.channel0 = channel{}
	au.channel1 = channel{}
	au.tickAcc = 0
	au.div3 = 0
}

// Channels sets the number of output channels. Values other than 2 are
// treated as mono. When extra is true and output is stereo, channel 0 is
// sent to the left and channel 1 to the right. Otherwise both sides receive
// the mono mix.
func (au *TIASound) Channels(n int, extra bool) {
	if n == 2 {
		au.channels = 2
	} else {
		au.channels = 1
	}
	au.hardPan = extra
}

// OutputFrequency sets the rate at which Process() produces frames. A value
// of zero or less selects the native rate.
func (au *TIASound) OutputFrequency(hz float64) {
	if hz <= 0 {
		hz = SampleFreq
	}
	au.ticksPerFrame = SampleFreq / hz
}

// Get returns the value of an audio register. Unknown addresses return zero.
func (au *TIASound) Get(addr uint16) uint8 {
	return au.getRegister(addr)
}

// Set an audio register. The change takes effect with the next frame produced
// by Process(). Unknown addresses are ignored.
func (au *TIASound) Set(addr uint16, value uint8) {
	au.setRegister(addr, value)
}

// Process fills buf with the number of frames specified. buf must have room
// for frames * the number of output channels.
func (au *TIASound) Process(buf []int16, frames int) {
	for i := range frames {
		au.tickAcc += au.ticksPerFrame
		for au.tickAcc >= 1.0 {
			au.tickAcc--
			au.tick()
		}

		v0 := au.channel0.actualVol
		v1 := au.channel1.actualVol

		if au.channels == 2 {
			if au.hardPan {
				buf[i*2], buf[i*2+1] = mix.Stereo(v0, v1)
			} else {
				m := mix.Mono(v0, v1)
				buf[i*2], buf[i*2+1] = m, m
			}
		} else {
			buf[i] = mix.Mono(v0, v1)
		}
	}
}

func (au *TIASound) tick() {
	au.div3++
	tenKhz := au.div3 == 3
	if tenKhz {
		au.div3 = 0
	}
	au.channel0.tick(tenKhz)
	au.channel1.tick(tenKhz)
}
