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

// Package console contains the definitions of the NTSC and PAL console
// timings that matter to the audio sub-system.
package console

import (
	"fmt"
	"strings"
)

// SpecList is the list of specifications that the console may adopt.
var SpecList = []string{"NTSC", "PAL"}

// the number of CPU cycles in a single scanline
const CyclesPerScanline = 76

// Spec is used to define the two console specifications.
type Spec struct {
	ID string

	// the clock frequency of the CPU in Hz. register write timestamps are
	// measured in CPU cycles and this value converts them to seconds
	CPUClock float64

	// the nominal number of frames per second
	FrameRate float64

	// the total number of scanlines for the entire frame
	ScanlinesTotal int
}

// NTSC is the specification for NTSC consoles.
var NTSC = Spec{
	ID:             "NTSC",
	CPUClock:       1193191.67,
	FrameRate:      60.0,
	ScanlinesTotal: 262,
}

// PAL is the specification for PAL consoles.
var PAL = Spec{
	ID:             "PAL",
	CPUClock:       1182298.0,
	FrameRate:      50.0,
	ScanlinesTotal: 312,
}

func (spec Spec) String() string {
	return spec.ID
}

// CyclesPerFrame returns the number of CPU cycles in a full frame.
func (spec Spec) CyclesPerFrame() int {
	return spec.ScanlinesTotal * CyclesPerScanline
}

// Lookup the specification with the ID. The comparison is case insensitive.
func Lookup(id string) (Spec, error) {
	switch strings.ToUpper(id) {
	case "NTSC":
		return NTSC, nil
	case "PAL":
		return PAL, nil
	}
	return Spec{}, fmt.Errorf("console: unknown specification (%s)", id)
}
