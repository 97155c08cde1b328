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

package sound

// Chip is the interface to a sound chip model.
type Chip interface {
	// name of the chip. used to identify save state sections
	Name() string

	// reset registers and internal state
	Reset()

	// number of output channels (1 or 2). extra selects the alternative
	// stereo mode of the chip, if it has one
	Channels(n int, extra bool)

	// the rate in Hz at which Process() should produce frames
	OutputFrequency(hz float64)

	Get(addr uint16) uint8
	Set(addr uint16, value uint8)

	// fill buf with the number of frames using the current register state.
	// buf has room for frames * channels samples
	Process(buf []int16, frames int)
}
