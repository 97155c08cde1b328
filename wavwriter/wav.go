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

// Package wavwriter allows writing of audio data to disk as a 16 bit PCM WAV
// file. Note that audio data is buffered in memory in its entirity, and
// written to disk when Close() is called.
package wavwriter

import (
	"fmt"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/jetsetilly/emuaudio/logger"
)

const bitDepth = 16

// wav audio format for uncompressed PCM data
const formatPCM = 1

// WavWriter collects audio frames and writes them to a WAV file.
type WavWriter struct {
	perm     logger.Permission
	filename string
	buffer   *audio.IntBuffer
}

// New is the preferred method of initialisation for the WavWriter type.
func New(perm logger.Permission, filename string, sampleRate int, stereo bool) (*WavWriter, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("wavwriter: invalid sample rate (%d)", sampleRate)
	}

	channels := 1
	if stereo {
		channels = 2
	}

	aw := &WavWriter{
		perm:     perm,
		filename: filename,
		buffer: &audio.IntBuffer{
			Format: &audio.Format{
				NumChannels: channels,
				SampleRate:  sampleRate,
			},
			SourceBitDepth: bitDepth,
		},
	}

	return aw, nil
}

func (aw *WavWriter) String() string {
	return fmt.Sprintf("%s (%d frames)", aw.filename, aw.Frames())
}

// Frames returns the number of frames collected so far.
func (aw *WavWriter) Frames() int {
	return len(aw.buffer.Data) / aw.buffer.Format.NumChannels
}

// WriteFloat32 adds interleaved samples in the range -1 to 1.
func (aw *WavWriter) WriteFloat32(samples []float32) {
	for _, s := range samples {
		v := math.Round(float64(s) * math.MaxInt16)
		aw.buffer.Data = append(aw.buffer.Data, int(min(max(v, math.MinInt16), math.MaxInt16)))
	}
}

// WriteInt16 adds interleaved 16 bit samples.
func (aw *WavWriter) WriteInt16(samples []int16) {
	for _, s := range samples {
		aw.buffer.Data = append(aw.buffer.Data, int(s))
	}
}

// Close writes the collected audio to disk.
func (aw *WavWriter) Close() (rerr error) {
	f, err := os.Create(aw.filename)
	if err != nil {
		return fmt.Errorf("wavwriter: %w", err)
	}
	defer func() {
		err := f.Close()
		if err != nil && rerr == nil {
			rerr = fmt.Errorf("wavwriter: %w", err)
		}
	}()

	enc := wav.NewEncoder(f, aw.buffer.Format.SampleRate, bitDepth, aw.buffer.Format.NumChannels, formatPCM)

	logger.Logf(aw.perm, "wavwriter", "writing audio to %s", aw.filename)

	if err := enc.Write(aw.buffer); err != nil {
		return fmt.Errorf("wavwriter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("wavwriter: %w", err)
	}

	return nil
}
