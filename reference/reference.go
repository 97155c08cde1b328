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

// Package reference loads recordings of real hardware, or of another
// emulator, so that they can be compared with the output of the audio
// pipeline. WAV and MP3 files are supported.
package reference

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jetsetilly/emuaudio/logger"
)

const logTag = "reference"

// ErrUnsupportedFormat is returned by Load() for files that are not WAV or
// MP3 files.
var ErrUnsupportedFormat = errors.New("unsupported format")

// PCM is mono audio data. Values are in the range -1 to 1.
type PCM struct {
	SampleRate int

	// mono data, taken from the left channel in the case of stereo source
	// files
	Data []float32
}

// Duration of the recording in seconds.
func (p PCM) Duration() float64 {
	if p.SampleRate == 0 {
		return 0
	}
	return float64(len(p.Data)) / float64(p.SampleRate)
}

// Load a recording. The format is decided by the file extension.
func Load(perm logger.Permission, filename string) (PCM, error) {
	f, err := os.Open(filename)
	if err != nil {
		return PCM{}, fmt.Errorf("reference: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".wav":
		logger.Logf(perm, logTag, "loading from wav file: %s", filename)
		return decodeWAV(f)
	case ".mp3":
		logger.Logf(perm, logTag, "loading from mp3 file: %s", filename)
		return decodeMP3(f)
	}

	return PCM{}, fmt.Errorf("reference: %w (%s)", ErrUnsupportedFormat, filepath.Ext(filename))
}

func decodeWAV(r io.ReadSeeker) (PCM, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return PCM{}, fmt.Errorf("reference: wav: not a valid wav file")
	}

	// load all data at once
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return PCM{}, fmt.Errorf("reference: wav: %w", err)
	}
	floatBuf := buf.AsFloat32Buffer()

	// scale from the range of the source bit depth
	scale := float32(math.Pow(2, float64(dec.BitDepth)-1))

	chans := max(int(dec.NumChans), 1)
	p := PCM{
		SampleRate: int(dec.SampleRate),
		Data:       make([]float32, 0, len(floatBuf.Data)/chans),
	}

	// copy first channel only of data stream
	for i := 0; i < len(floatBuf.Data); i += chans {
		p.Data = append(p.Data, floatBuf.Data[i]/scale)
	}

	return p, nil
}

func decodeMP3(r io.Reader) (PCM, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return PCM{}, fmt.Errorf("reference: mp3: %w", err)
	}

	p := PCM{
		SampleRate: dec.SampleRate(),
	}

	// "The stream is always formatted as 16bit (little endian) 2 channels even
	// if the source is single channel MP3"
	chunk := make([]byte, 4096)
	for {
		n, err := io.ReadFull(dec, chunk)

		// four bytes per frame. only the left channel is used
		for i := 0; i+1 < n; i += 4 {
			v := int16(uint16(chunk[i]) | uint16(chunk[i+1])<<8)
			p.Data = append(p.Data, float32(v)/32768.0)
		}

		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			break
		}
		if err != nil {
			return PCM{}, fmt.Errorf("reference: mp3: %w", err)
		}
	}

	return p, nil
}

// Difference is the result of Compare().
type Difference struct {
	// number of samples compared
	Samples int

	// root mean square of the difference between the two signals
	RMS float64

	// largest absolute difference of any one sample
	Peak float64
}

func (d Difference) String() string {
	return fmt.Sprintf("%d samples: rms %.5f peak %.5f", d.Samples, d.RMS, d.Peak)
}

// Compare two recordings. The recordings must have the same sample rate.
// Comparison stops at the end of the shorter recording.
func Compare(a PCM, b PCM) (Difference, error) {
	if a.SampleRate != b.SampleRate {
		return Difference{}, fmt.Errorf("reference: sample rates differ (%d and %d)", a.SampleRate, b.SampleRate)
	}

	var d Difference
	d.Samples = min(len(a.Data), len(b.Data))
	if d.Samples == 0 {
		return d, nil
	}

	var sum float64
	for i := range d.Samples {
		v := float64(a.Data[i] - b.Data[i])
		sum += v * v
		d.Peak = max(d.Peak, math.Abs(v))
	}
	d.RMS = math.Sqrt(sum / float64(d.Samples))

	return d, nil
}
