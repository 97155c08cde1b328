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

// Package modalflag wraps the flag package from the standard library so that
// a command line can select a program mode and then supply flags specific to
// that mode.
//
// Arguments are given once with NewArgs() and then consumed layer by layer.
// Each layer starts with NewMode(), declares its flags and sub-modes, and
// ends with Parse():
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubMode("RENDER", "render a register log to a WAV file")
//	md.AddSubMode("PLAY", "play a register log or the keyboard")
//	if r, err := md.Parse(); r != modalflag.ParseContinue {
//		return err
//	}
//
//	switch md.Mode() {
//	case "RENDER":
//		md.NewMode()
//		rate := md.AddInt("rate", 48000, "output sample rate")
//		...
//	}
//
// The first sub-mode added is the default and is selected when the first
// non-flag argument does not name a sub-mode. Sub-mode names are case
// insensitive.
package modalflag
