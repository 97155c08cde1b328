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

package console_test

import (
	"testing"

	"github.com/jetsetilly/emuaudio/console"
	"github.com/jetsetilly/emuaudio/test"
)

func TestLookup(t *testing.T) {
	spec, err := console.Lookup("pal")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, spec.ID, "PAL")
	test.ExpectEquality(t, spec.FrameRate, 50.0)

	spec, err = console.Lookup("NTSC")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, spec.CyclesPerFrame(), 19912)

	_, err = console.Lookup("SECAM")
	test.ExpectFailure(t, err)
}
