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

package sdlaudio

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/jetsetilly/emuaudio/test"
)

func TestEncode(t *testing.T) {
	src := []float32{0.0, 0.5, -1.0}
	dst := make([]byte, len(src)*4)
	encode(dst, src)

	for i := range src {
		v := math.Float32frombits(binary.NativeEndian.Uint32(dst[i*4:]))
		test.ExpectEquality(t, v, src[i], i)
	}
}
