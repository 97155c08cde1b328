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

package performance_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jetsetilly/emuaudio/console"
	"github.com/jetsetilly/emuaudio/performance"
	"github.com/jetsetilly/emuaudio/test"
)

func TestCalcFPS(t *testing.T) {
	fps, accuracy := performance.CalcFPS(console.PAL, 100, 4.0)
	test.ExpectEquality(t, fps, 25.0)
	test.ExpectEquality(t, accuracy, 50.0)

	fps, _ = performance.CalcFPS(console.PAL, 100, 0)
	test.ExpectEquality(t, fps, 0.0)
}

func TestMeter(t *testing.T) {
	m := performance.NewMeter(time.Second)
	now := time.Now()

	_, ok := m.Frame(now)
	test.ExpectFailure(t, ok)

	// 50 frames in one second
	frame := time.Second / 50
	for i := 1; i < 50; i++ {
		_, ok = m.Frame(now.Add(frame * time.Duration(i)))
		test.DemandFailure(t, ok, i)
	}
	fps, ok := m.Frame(now.Add(time.Second))
	test.DemandSuccess(t, ok)
	test.ExpectApproximate(t, fps, 50.0, 1e-9)

	// measurement restarts
	_, ok = m.Frame(now.Add(time.Second + frame))
	test.ExpectFailure(t, ok)
}

func TestParseProfileString(t *testing.T) {
	p, err := performance.ParseProfileString("cpu, Mem")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p, performance.ProfileCPU|performance.ProfileMem)

	p, err = performance.ParseProfileString("none")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p, performance.ProfileNone)

	p, err = performance.ParseProfileString("all")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p, performance.ProfileAll)

	_, err = performance.ParseProfileString("gpu")
	test.ExpectFailure(t, err)
}

func TestRunProfiler(t *testing.T) {
	header := filepath.Join(t.TempDir(), "test")

	var ran bool
	err := performance.RunProfiler(performance.ProfileMem, header, func() error {
		ran = true
		return nil
	})
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, ran)

	_, err = os.Stat(header + "_mem.profile")
	test.ExpectSuccess(t, err)
	_, err = os.Stat(header + "_cpu.profile")
	test.ExpectFailure(t, err)
}
