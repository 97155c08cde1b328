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

// Package sound sits between the emulated CPU and a sound chip model.
//
// Writes to the chip registers are not applied immediately. Each write is
// timestamped with the time since the previous write and placed in a
// regqueue.Queue. Once per video frame ProcessAudio() replays the pending
// writes at their correct relative positions while the chip model renders
// the samples for the frame. The registers of the chip model are therefore
// the applied state and the queue holds the pending state.
//
// Sound is safe for concurrent use. The emulation goroutine calls Set() and
// ProcessAudio() while a host audio device may be inspecting the state on
// another goroutine.
package sound
