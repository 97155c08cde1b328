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
	"github.com/jetsetilly/emuaudio/emulation"
	"github.com/jetsetilly/emuaudio/logger"
)

func (pl *playmode) eventHandler() emulation.State {
	select {
	case <-pl.intChan:
		logger.Log(pl.p.Env, "playmode", "interrupted")
		pl.p.Emulation.SetState(emulation.Ending)
	default:
	}
	return pl.p.Emulation.State()
}
