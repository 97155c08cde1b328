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
	"testing"

	"github.com/jetsetilly/emuaudio/test"
)

func TestPoly9(t *testing.T) {
	// a maximal length 9 bit LFSR produces 256 ones and 255 zeros in a period
	var ones int
	for _, b := range poly9bit {
		test.DemandSuccess(t, b == 0 || b == 1)
		ones += int(b)
	}
	test.ExpectEquality(t, ones, 256)
}

func TestPolyPatterns(t *testing.T) {
	var ones int
	for _, b := range poly4bit {
		ones += int(b)
	}
	test.ExpectEquality(t, ones, 8)

	ones = 0
	for _, b := range poly5bit {
		ones += int(b)
	}
	test.ExpectEquality(t, ones, 16)

	// 13:18 duty cycle
	ones = 0
	for _, b := range div31 {
		ones += int(b)
	}
	test.ExpectEquality(t, ones, 2)
}
