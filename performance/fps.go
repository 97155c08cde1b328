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

package performance

import (
	"time"

	"github.com/jetsetilly/emuaudio/console"
)

// CalcFPS takes the the number of frames and duration (in seconds) and returns
// the frames-per-second and the accuracy of that value as a percentage.
func CalcFPS(spec console.Spec, numFrames int, duration float64) (fps float64, accuracy float64) {
	if duration <= 0 {
		return 0, 0
	}
	fps = float64(numFrames) / duration
	accuracy = 100 * float64(numFrames) / (duration * spec.FrameRate)
	return fps, accuracy
}

// Meter measures the frame rate over a fixed interval.
type Meter struct {
	interval time.Duration
	start    time.Time
	frames   int
}

// NewMeter is the preferred method of initialisation for the Meter type.
func NewMeter(interval time.Duration) *Meter {
	return &Meter{
		interval: interval,
	}
}

// Frame should be called at the end of every frame with the current time.
// Returns the measured frame rate and true once the interval has elapsed.
func (m *Meter) Frame(now time.Time) (float64, bool) {
	if m.start.IsZero() {
		m.start = now
		return 0, false
	}

	m.frames++

	elapsed := now.Sub(m.start)
	if elapsed < m.interval {
		return 0, false
	}

	fps := float64(m.frames) / elapsed.Seconds()
	m.start = now
	m.frames = 0
	return fps, true
}
