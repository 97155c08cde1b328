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

// Package digest creates a fingerprint of a stream of audio. Two renders of
// the same register log produce the same digest.
package digest

import (
	"crypto/sha1"
	"fmt"
	"math"
)

// the length of the buffer. the previous digest value occupies the start of
// the buffer so that the digest depends on the entire stream
const audioBufferLength = 1024 * sha1.Size

const audioBufferStart = sha1.Size

// Audio is a running digest of a stream of host audio.
type Audio struct {
	digest   [sha1.Size]byte
	buffer   []byte
	bufferCt int
	samples  int
}

// NewAudio is the preferred method of initialisation for the Audio type.
func NewAudio() *Audio {
	dig := &Audio{
		buffer: make([]byte, audioBufferLength),
	}
	dig.ResetDigest()
	return dig
}

// String returns the digest as a hexadecimal string. Any samples waiting in
// the buffer are included.
func (dig *Audio) String() string {
	if dig.bufferCt == audioBufferStart {
		return fmt.Sprintf("%x", dig.digest)
	}
	return fmt.Sprintf("%x", sha1.Sum(dig.buffer[:dig.bufferCt]))
}

// Samples returns the number of samples seen since the last reset.
func (dig *Audio) Samples() int {
	return dig.samples
}

// ResetDigest returns the digest to its initial state.
func (dig *Audio) ResetDigest() {
	clear(dig.digest[:])
	clear(dig.buffer)
	dig.bufferCt = audioBufferStart
	dig.samples = 0
}

// WriteFloat32 adds the samples to the digest. Samples are quantised to 16
// bits first so that the digest is not sensitive to floating point noise.
func (dig *Audio) WriteFloat32(samples []float32) {
	for _, s := range samples {
		v := int16(min(max(math.Round(float64(s)*math.MaxInt16), math.MinInt16), math.MaxInt16))
		dig.write(uint16(v))
	}
}

// WriteInt16 adds the samples to the digest.
func (dig *Audio) WriteInt16(samples []int16) {
	for _, s := range samples {
		dig.write(uint16(s))
	}
}

func (dig *Audio) write(v uint16) {
	dig.buffer[dig.bufferCt] = uint8(v)
	dig.buffer[dig.bufferCt+1] = uint8(v >> 8)
	dig.bufferCt += 2
	dig.samples++
	if dig.bufferCt >= audioBufferLength {
		dig.flush()
	}
}

func (dig *Audio) flush() {
	dig.digest = sha1.Sum(dig.buffer[:dig.bufferCt])
	copy(dig.buffer, dig.digest[:])
	dig.bufferCt = audioBufferStart
}
