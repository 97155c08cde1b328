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

// from TIASound.c:
//
// "Initialze the bit patterns for the polynomials.  The 4bit and 5bit patterns
// are the identical ones used in the tia chip.  Though the patterns could be
// packed with 8 bits per byte, using only a single bit per byte keeps the math
// simple, which is important for efficient processing".
var poly4bit = [15]uint8{1, 1, 0, 1, 1, 1, 0, 0, 0, 0, 1, 0, 1, 0, 0}
var poly5bit = [31]uint8{0, 0, 1, 0, 1, 1, 0, 0, 1, 1, 1, 1, 1, 0, 0,
	0, 1, 1, 0, 1, 1, 1, 0, 1, 0, 1, 0, 0, 0, 0, 1}

// from TIASound.c:
//
// "I've treated the 'Div by 31' counter as another polynomial because of the
// way it operates.  It does not have a 50% duty cycle, but instead has a 13:18
// ratio (of course, 13+18 = 31).  This could also be implemented by using
// counters".
var div31 = [31]uint8{0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}

// Fries used a random number generator for the 9 bit polynomial. the table
// here is generated by a 9 bit LFSR (taps 9 and 5) so that output is
// repeatable between runs.
var poly9bit [511]uint8

func init() {
	lfsr := uint16(0x1ff)
	for i := range poly9bit {
		poly9bit[i] = uint8(lfsr & 0x01)
		bit := (lfsr ^ (lfsr >> 4)) & 0x01
		lfsr = (lfsr >> 1) | (bit << 8)
	}
}
