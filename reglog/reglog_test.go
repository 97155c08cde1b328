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

package reglog_test

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/jetsetilly/emuaudio/reglog"
	"github.com/jetsetilly/emuaudio/test"
)

const example = `# pure tone
0 0x15 0x04

0 0x17 16
10 0x19 0x0f
frame
frame
  # indented comment
100 0x19 0
`

func TestReadAll(t *testing.T) {
	frames, err := reglog.ReadAll(strings.NewReader(example))
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(frames), 3)

	test.DemandEquality(t, len(frames[0].Writes), 3)
	test.ExpectEquality(t, frames[0].Writes[0], reglog.Write{Cycle: 0, Address: 0x15, Value: 0x04})
	test.ExpectEquality(t, frames[0].Writes[1], reglog.Write{Cycle: 0, Address: 0x17, Value: 16})
	test.ExpectEquality(t, frames[0].Writes[2], reglog.Write{Cycle: 10, Address: 0x19, Value: 0x0f})

	// an empty frame is still a frame
	test.ExpectEquality(t, len(frames[1].Writes), 0)

	// writes without a frame marker at the end of the log
	test.DemandEquality(t, len(frames[2].Writes), 1)
	test.ExpectEquality(t, frames[2].Writes[0].Cycle, 100)
}

func TestReaderEOF(t *testing.T) {
	rd := reglog.NewReader(strings.NewReader("frame\n"))
	_, err := rd.Next()
	test.ExpectSuccess(t, err)
	_, err = rd.Next()
	test.ExpectSuccess(t, errors.Is(err, io.EOF))

	frames, err := reglog.ReadAll(strings.NewReader("# nothing\n"))
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, len(frames), 0)
}

func TestSyntaxErrors(t *testing.T) {
	for _, s := range []string{
		"0 0x15",
		"0 0x15 0x04 0x05",
		"x 0x15 0x04",
		"0 0x10000 0x04",
		"0 0x15 0x100",
		"frames",
	} {
		_, err := reglog.ReadAll(strings.NewReader("frame\n" + s + "\n"))
		test.ExpectSuccess(t, errors.Is(err, reglog.ErrSyntax), s)
		test.ExpectSuccess(t, strings.Contains(err.Error(), "line 2"), s)
	}
}

func TestWriter(t *testing.T) {
	var b strings.Builder
	wr := reglog.NewWriter(&b, "recorded\nfrom keyboard")
	test.DemandSuccess(t, wr.WriteFrame(reglog.Frame{Writes: []reglog.Write{
		{Cycle: 5, Address: 0x19, Value: 0x0f},
	}}))
	test.DemandSuccess(t, wr.WriteFrame(reglog.Frame{}))
	test.DemandSuccess(t, wr.Flush())

	test.ExpectEquality(t, b.String(), "# recorded\n# from keyboard\n5 0x19 0xf\nframe\nframe\n")

	frames, err := reglog.ReadAll(strings.NewReader(b.String()))
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(frames), 2)
	test.ExpectEquality(t, frames[0].Writes[0].Value, 0x0f)
}
