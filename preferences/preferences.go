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

// Package preferences contains the audio preferences. The values are
// persisted with the prefs package and can be overridden on the command line.
package preferences

import (
	"fmt"

	"github.com/jetsetilly/emuaudio/prefs"
	"github.com/jetsetilly/emuaudio/resampler"
	"github.com/jetsetilly/emuaudio/resources"
)

// Preferences for the audio sub-system.
type Preferences struct {
	dsk *prefs.Disk

	// quality of the resampler. one of the values in resampler.QualityList
	ResampleQuality prefs.String

	// the frame rate to configure the audio for. a value of zero means that
	// the nominal frame rate of the console specification is used
	FrameRate prefs.Float

	// sample rate of the host audio device
	SampleRate prefs.Int

	// whether the host audio device should be opened in stereo
	Stereo prefs.Bool

	// number of frames in each fragment of the audio queue
	FragmentSize prefs.Int

	// number of fragments in the audio queue
	QueueCapacity prefs.Int

	// number of register writes that can be pending at once
	RegQueueCapacity prefs.Int
}

func (p *Preferences) String() string {
	return p.dsk.String()
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type.
func NewPreferences() (*Preferences, error) {
	pth, err := resources.JoinPath(prefs.DefaultPrefsFile)
	if err != nil {
		return nil, err
	}
	return newPreferences(pth)
}

func newPreferences(pth string) (*Preferences, error) {
	p := &Preferences{}
	p.SetDefaults()

	p.ResampleQuality.SetHookPre(func(v prefs.Value) error {
		_, err := resampler.ParseQuality(v.(string))
		return err
	})
	p.SampleRate.SetHookPre(func(v prefs.Value) error {
		if v.(int) < 8000 {
			return fmt.Errorf("preferences: sample rate too low (%d)", v.(int))
		}
		return nil
	})
	positive := func(v prefs.Value) error {
		if v.(int) < 1 {
			return fmt.Errorf("preferences: value must be positive (%d)", v.(int))
		}
		return nil
	}
	p.FragmentSize.SetHookPre(positive)
	p.QueueCapacity.SetHookPre(positive)
	p.RegQueueCapacity.SetHookPre(positive)

	var err error
	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}

	for _, e := range []struct {
		key string
		p   prefs.Pref
	}{
		{"audio.resampleQuality", &p.ResampleQuality},
		{"audio.frameRate", &p.FrameRate},
		{"audio.sampleRate", &p.SampleRate},
		{"audio.stereo", &p.Stereo},
		{"audio.fragmentSize", &p.FragmentSize},
		{"audio.queueCapacity", &p.QueueCapacity},
		{"audio.regQueueCapacity", &p.RegQueueCapacity},
	} {
		if err := p.dsk.Add(e.key, e.p); err != nil {
			return nil, err
		}
	}

	if err := p.dsk.Load(); err != nil {
		return nil, err
	}

	return p, nil
}

// SetDefaults reverts all settings to default values.
func (p *Preferences) SetDefaults() {
	p.ResampleQuality.Set(resampler.Lanczos2.String())
	p.FrameRate.Set(0.0)
	p.SampleRate.Set(48000)
	p.Stereo.Set(false)
	p.FragmentSize.Set(512)
	p.QueueCapacity.Set(20)
	p.RegQueueCapacity.Set(512)
}

// Quality returns the resampler quality. An invalid value in the preferences
// results in the default quality.
func (p *Preferences) Quality() resampler.Quality {
	q, err := resampler.ParseQuality(p.ResampleQuality.String())
	if err != nil {
		return resampler.Lanczos2
	}
	return q
}

// Set the preference with the key to the value.
func (p *Preferences) Set(key string, value string) error {
	return p.dsk.Set(key, value)
}

// Load preferences from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load()
}

// Save preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}
