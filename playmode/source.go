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

package playmode

import (
	"io"

	"github.com/jetsetilly/emuaudio/keyboard"
	"github.com/jetsetilly/emuaudio/reglog"
)

// source of register writes, one video frame at a time. io.EOF ends
// playback
type source interface {
	next() (reglog.Frame, error)
}

type logSource struct {
	r *reglog.Reader
}

func (src *logSource) next() (reglog.Frame, error) {
	return src.r.Next()
}

// keySource turns key presses received since the previous frame into writes
// at the start of the frame
type keySource struct {
	keys <-chan rune
	ins  *keyboard.Instrument
}

func (src *keySource) next() (reglog.Frame, error) {
	var f reglog.Frame
	for {
		select {
		case k, ok := <-src.keys:
			if !ok || k == keyboard.KeyQuit {
				return f, io.EOF
			}
			if w, ok := src.ins.Writes(k, 0); ok {
				f.Writes = append(f.Writes, w...)
			}
		default:
			return f, nil
		}
	}
}
