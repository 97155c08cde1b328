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

// Package sdlaudio plays audio through the host audio device using SDL. Unlike
// the otoaudio package, audio is pushed to the device queue. Push() should be
// called regularly, for example every time a fragment is added to the audio
// queue.
package sdlaudio

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/jetsetilly/emuaudio/logger"
	"github.com/jetsetilly/emuaudio/ratematch"
	"github.com/veandco/go-sdl2/sdl"
)

// the buffer length is important to get right. unfortunately, there's no
// special way (that I know of) that can tells us what the ideal value is. we
// don't want it to be long because we can introduce unnecessary lag between
// the audio and video signal; by the same token we don't want it too short
// because the device queue will run dry.
//
// the following value has been discovered through trial and error. the precise
// value is not critical.
const bufferLength = 512

// the number of buffers to keep in the device queue
const queuedBuffers = 3

// Source is the part of the rate adapter required by the player.
type Source interface {
	FillAudio(buf []float32, frames int)
}

// Audio outputs sound using SDL
type Audio struct {
	perm logger.Permission

	id   sdl.AudioDeviceID
	spec sdl.AudioSpec

	src      Source
	channels int

	buf   []float32
	bytes []byte
}

// NewAudio is the preferred method of initialisation for the Audio type.
func NewAudio(perm logger.Permission, adapter *ratematch.Adapter) (*Audio, error) {
	if err := sdl.InitSubSystem(sdl.INIT_AUDIO); err != nil {
		return nil, fmt.Errorf("sdlaudio: %w", err)
	}

	aud := &Audio{
		perm:     perm,
		src:      adapter,
		channels: 1,
	}
	if adapter.OutputStereo() {
		aud.channels = 2
	}

	spec := &sdl.AudioSpec{
		Freq:     int32(adapter.HostRate()),
		Format:   sdl.AUDIO_F32SYS,
		Channels: uint8(aud.channels),
		Samples:  uint16(bufferLength),
	}

	var err error
	aud.id, err = sdl.OpenAudioDevice("", false, spec, &aud.spec, 0)
	if err != nil {
		sdl.QuitSubSystem(sdl.INIT_AUDIO)
		return nil, fmt.Errorf("sdlaudio: %w", err)
	}

	aud.buf = make([]float32, bufferLength*aud.channels)
	aud.bytes = make([]byte, len(aud.buf)*4)

	sdl.PauseAudioDevice(aud.id, false)

	logger.Logf(perm, "sdlaudio", "playing at %dHz (%d channels)", aud.spec.Freq, aud.spec.Channels)

	return aud, nil
}

// Push audio to the device until the device queue is full.
func (aud *Audio) Push() error {
	for sdl.GetQueuedAudioSize(aud.id) < uint32(queuedBuffers*len(aud.bytes)) {
		aud.src.FillAudio(aud.buf, bufferLength)
		encode(aud.bytes, aud.buf)
		if err := sdl.QueueAudio(aud.id, aud.bytes); err != nil {
			return fmt.Errorf("sdlaudio: %w", err)
		}
	}
	return nil
}

// Close the audio device.
func (aud *Audio) Close() error {
	sdl.CloseAudioDevice(aud.id)
	sdl.QuitSubSystem(sdl.INIT_AUDIO)
	return nil
}

// the AUDIO_F32SYS format uses the native byte order
func encode(dst []byte, src []float32) {
	for i, v := range src {
		binary.NativeEndian.PutUint32(dst[i*4:], math.Float32bits(v))
	}
}
