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

// Package resampler converts fragments of 16 bit samples produced at one
// sample rate into float32 samples at another sample rate.
//
// Three qualities are available: nearest neighbour, and windowed sinc
// (Lanczos) interpolation with a kernel parameter of two or three. The
// Lanczos kernels are precomputed for every fractional offset that the
// conversion ratio can produce so conversion itself is a short convolution per
// output sample.
//
// Source fragments are requested through a NextFragmentCallback when the
// current fragment has been consumed. If the callback returns nil (an
// underrun) then the current fragment is replayed.
package resampler
