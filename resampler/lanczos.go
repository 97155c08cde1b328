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

import "math"

func lanczosKernel(x float64, a int) float64 {
	if x == 0 {
		return 1.0
	}
	fa := float64(a)
	if x <= -fa || x >= fa {
		return 0.0
	}
	px := math.Pi * x
	return fa * math.Sin(px) * math.Sin(px/fa) / (px * px)
}

// history of source samples for one channel. the index points to the oldest
// sample
type history struct {
	data  []float32
	index int
}

func (h *history) shift(v float32) {
	h.data[h.index] = v
	h.index++
	if h.index >= len(h.data) {
		h.index = 0
	}
}

func (h *history) convolute(kernel []float32) float32 {
	var sum float32
	for j, k := range kernel {
		sum += k * h.data[(h.index+j)%len(h.data)]
	}
	return sum
}

// lanczos interpolates between source frames with a windowed sinc kernel.
type lanczos struct {
	source

	a          int
	kernelSize int

	// one kernel for every fractional offset produced by the conversion ratio
	kernels     []float32
	kernelCount int
	kernelIndex int

	timeIndex int

	left  history
	right history
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func newLanczos(a int, from Format, to Format, next NextFragmentCallback) *lanczos {
	r := &lanczos{
		source: source{
			from: from,
			to:   to,
			next: next,
		},
		a:          a,
		kernelSize: 2 * a,
	}

	r.left.data = make([]float32, r.kernelSize)
	r.right.data = make([]float32, r.kernelSize)

	r.kernelCount = to.SampleRate / gcd(from.SampleRate, to.SampleRate)
	r.kernels = make([]float32, r.kernelCount*r.kernelSize)

	timeIndex := 0
	for i := range r.kernelCount {
		center := float64(timeIndex) / float64(to.SampleRate)
		kernel := r.kernels[i*r.kernelSize : (i+1)*r.kernelSize]
		for j := range kernel {
			kernel[j] = float32(lanczosKernel(center-float64(j)+float64(a-1), a))
		}
		timeIndex = (timeIndex + from.SampleRate) % to.SampleRate
	}

	return r
}

// FillFragment implements the Resampler interface.
func (r *lanczos) FillFragment(buf []float32, frames int) {
	if !r.start(buf, frames) {
		return
	}

	for i := range frames {
		kernel := r.kernels[r.kernelIndex*r.kernelSize : (r.kernelIndex+1)*r.kernelSize]
		r.kernelIndex++
		if r.kernelIndex >= r.kernelCount {
			r.kernelIndex = 0
		}

		if r.from.Stereo {
			r.write(buf, i, r.left.convolute(kernel), r.right.convolute(kernel))
		} else {
			v := r.left.convolute(kernel)
			r.write(buf, i, v, v)
		}

		r.timeIndex += r.from.SampleRate
		if shift := r.timeIndex / r.to.SampleRate; shift > 0 {
			r.timeIndex -= shift * r.to.SampleRate
			r.shiftSamples(shift)
		}
	}
}

func (r *lanczos) shiftSamples(n int) {
	for range n {
		l, rt := r.current()
		r.left.shift(l)
		if r.from.Stereo {
			r.right.shift(rt)
		}
		r.advance(1)
	}
}
