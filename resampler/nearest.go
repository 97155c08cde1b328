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

package resampler

// nearestNeighbour outputs the source frame that is current at the time of
// each destination frame.
type nearestNeighbour struct {
	source
	timeIndex int
}

func newNearestNeighbour(from Format, to Format, next NextFragmentCallback) *nearestNeighbour {
	return &nearestNeighbour{
		source: source{
			from: from,
			to:   to,
			next: next,
		},
	}
}

// FillFragment implements the Resampler interface.
func (r *nearestNeighbour) FillFragment(buf []float32, frames int) {
	if !r.start(buf, frames) {
		return
	}

	for i := range frames {
		l, rt := r.current()
		r.write(buf, i, l, rt)

		r.timeIndex += r.from.SampleRate
		if r.timeIndex >= r.to.SampleRate {
			r.advance(r.timeIndex / r.to.SampleRate)
			r.timeIndex %= r.to.SampleRate
		}
	}
}
