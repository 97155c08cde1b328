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

// Package audio implements a model of the TIA sound generator. The
// implementation is taken almost directly from Ron Fries' original
// implementation, found in TIASound.c (easily searchable). The bit patterns
// are taken from there and the channels are mixed in the same way.
//
// Like the Fries' implementation, the TIASound type is driven by a Process()
// function that fills a buffer with the requested number of samples. The
// register state applied before the call to Process() is used for every
// sample produced by that call. Timing of register changes is the
// responsibility of the caller.
//
// Some modifications were made to Fries' alogorithm in accordance to similar
// modifications made to the TIASnd.cxx file of the Stella emulator v5.1.3.
// TIASound.c is published under the GNU Library GPL v2.0 and Stella is
// published under the GNU GPL v2.0
package audio
