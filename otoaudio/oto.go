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

// Package otoaudio plays audio through the host audio device using the oto
// library. The oto player pulls audio on its own goroutine through the Read()
// function, which in turn pulls from the rate adapter.
package otoaudio

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/jetsetilly/emuaudio/logger"
	"github.com/jetsetilly/emuaudio/ratematch"
)

// size of the oto buffer. short enough to keep latency down, long enough to
// avoid underruns on a busy machine
const bufferDuration = 50 * time.Millisecond

// Source is the part of the rate adapter required by the player.
type Source interface {
	FillAudio(buf []float32, frames int)
}

// reader converts float frames from the Source into little endian bytes
type reader struct {
	src      Source
	channels int
	buf      []float32
}

func (r *reader) Read(p []byte) (int, error) {
	frames := len(p) / (4 * r.channels)
	if frames == 0 {
		return 0, nil
	}

	n := frames * r.channels
	if len(r.buf) < n {
		r.buf = make([]float32, n)
	}
	r.src.FillAudio(r.buf, frames)

	for i, v := range r.buf[:n] {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(v))
	}

	return n * 4, nil
}

// Audio is an oto player.
type Audio struct {
	ctx    *oto.Context
	player *oto.Player
}

// NewAudio opens the host audio device and starts playback. There can only
// be one oto context for the lifetime of the program.
func NewAudio(perm logger.Permission, adapter *ratematch.Adapter) (*Audio, error) {
	channels := 1
	if adapter.OutputStereo() {
		channels = 2
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   adapter.HostRate(),
		ChannelCount: channels,
		Format:       oto.FormatFloat32LE,
		BufferSize:   bufferDuration,
	})
	if err != nil {
		return nil, fmt.Errorf("otoaudio: %w", err)
	}
	<-ready

	aud := &Audio{
		ctx: ctx,
	}
	aud.player = ctx.NewPlayer(&reader{
		src:      adapter,
		channels: channels,
	})
	aud.player.Play()

	logger.Logf(perm, "otoaudio", "playing at %dHz (%d channels)", adapter.HostRate(), channels)

	return aud, nil
}

// Close stops playback.
func (aud *Audio) Close() error {
	if err := aud.player.Close(); err != nil {
		return fmt.Errorf("otoaudio: %w", err)
	}
	return nil
}
