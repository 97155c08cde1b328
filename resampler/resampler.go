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

import (
	"fmt"
	"strings"
)

// Quality of the resampling.
type Quality int

// List of valid Quality values.
const (
	NearestNeighbour Quality = iota
	Lanczos2
	Lanczos3
)

// QualityList is the list of quality names accepted by ParseQuality().
var QualityList = []string{"NEAREST", "LANCZOS2", "LANCZOS3"}

func (q Quality) String() string {
	if int(q) < 0 || int(q) >= len(QualityList) {
		return fmt.Sprintf("quality(%d)", int(q))
	}
	return QualityList[q]
}

// ParseQuality converts a name from QualityList to a Quality value. The
// comparison is case insensitive.
func ParseQuality(s string) (Quality, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for i, q := range QualityList {
		if s == q {
			return Quality(i), nil
		}
	}
	return NearestNeighbour, fmt.Errorf("resampler: unknown quality (%s)", s)
}

// Format describes one side of the conversion.
type Format struct {
	SampleRate int

	// the number of frames in a fragment. a stereo frame is two samples
	FragmentSize int

	Stereo bool
}

func (f Format) channels() int {
	if f.Stereo {
		return 2
	}
	return 1
}

func (f Format) String() string {
	if f.Stereo {
		return fmt.Sprintf("%dHz stereo (%d)", f.SampleRate, f.FragmentSize)
	}
	return fmt.Sprintf("%dHz mono (%d)", f.SampleRate, f.FragmentSize)
}

// NextFragmentCallback returns the next fragment of source data. It should
// return nil if no fragment is available.
type NextFragmentCallback func() []int16

// Resampler implementations fill a buffer with samples at the destination rate.
type Resampler interface {
	// FillFragment fills buf with the number of frames specified. buf must
	// have room for frames * number of destination channels
	FillFragment(buf []float32, frames int)

	// Underruns returns the number of times a source fragment was not
	// available when it was needed
	Underruns() int
}

// New creates a Resampler of the requested quality.
func New(q Quality, from Format, to Format, next NextFragmentCallback) Resampler {
	switch q {
	case Lanczos2:
		return newLanczos(2, from, to, next)
	case Lanczos3:
		return newLanczos(3, from, to, next)
	}
	return newNearestNeighbour(from, to, next)
}

// source is the part of the resampler that deals with the consumption of
// source fragments and writing of the destination buffer.
type source struct {
	from Format
	to   Format
	next NextFragmentCallback

	fragment      []int16
	fragmentIndex int
	underruns     int
}

func (s *source) Underruns() int {
	return s.underruns
}

// start makes sure there is a current fragment. returns false if there is
// none and the buffer has been filled with silence.
func (s *source) start(buf []float32, frames int) bool {
	if s.fragment != nil {
		return true
	}

	s.fragment = s.next()
	if s.fragment == nil {
		clear(buf[:frames*s.to.channels()])
		return false
	}

	s.fragmentIndex = 0
	return true
}

// current frame of the source as left and right values in the range -1 to 1
func (s *source) current() (float32, float32) {
	if s.from.Stereo {
		return float32(s.fragment[s.fragmentIndex*2]) / 32768.0, float32(s.fragment[s.fragmentIndex*2+1]) / 32768.0
	}
	v := float32(s.fragment[s.fragmentIndex]) / 32768.0
	return v, v
}

// advance source by n frames, requesting new fragments as required
func (s *source) advance(n int) {
	s.fragmentIndex += n
	for s.fragmentIndex >= s.from.FragmentSize {
		s.fragmentIndex -= s.from.FragmentSize
		if f := s.next(); f != nil {
			s.fragment = f
		} else {
			s.underruns++
		}
	}
}

// write a destination frame. a stereo source written to a mono destination is
// the average of the two channels
func (s *source) write(buf []float32, i int, l float32, r float32) {
	if s.to.Stereo {
		buf[i*2] = clamp(l)
		buf[i*2+1] = clamp(r)
		return
	}
	buf[i] = clamp((l + r) / 2)
}

func clamp(v float32) float32 {
	return min(max(v, -1.0), 1.0)
}
