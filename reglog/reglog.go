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

// Package reglog reads and writes logs of sound register writes. A log is a
// text file with one write per line:
//
//	<cycle> <address> <value>
//
// Numbers are decimal or hexadecimal with a 0x prefix. The cycle is the CPU
// cycle of the write counted from the start of the video frame. A line
// containing only the word "frame" ends the current video frame. Blank lines
// and lines starting with # are ignored.
//
// For example, a single frame containing a pure tone:
//
//	# pure tone
//	0 0x15 0x04
//	0 0x17 0x10
//	10 0x19 0x0f
//	frame
package reglog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// FrameMarker is the line that ends a video frame.
const FrameMarker = "frame"

// ErrSyntax is wrapped by errors returned for malformed lines.
var ErrSyntax = errors.New("syntax error")

// Write is a single register write.
type Write struct {
	Cycle   int32
	Address uint16
	Value   uint8
}

func (w Write) String() string {
	return fmt.Sprintf("%d %#04x %#02x", w.Cycle, w.Address, w.Value)
}

// Frame is the list of writes for one video frame. An empty frame is valid.
type Frame struct {
	Writes []Write
}

// Reader reads frames from a log one at a time.
type Reader struct {
	scanner *bufio.Scanner
	line    int
}

// NewReader is the preferred method of initialisation for the Reader type.
func NewReader(r io.Reader) *Reader {
	return &Reader{
		scanner: bufio.NewScanner(r),
	}
}

// Next returns the next frame. Writes at the end of the log that are not
// followed by a frame marker are returned as a final frame. Returns io.EOF
// when there are no more frames.
func (r *Reader) Next() (Frame, error) {
	var f Frame
	var pending bool

	for r.scanner.Scan() {
		r.line++

		s := strings.TrimSpace(r.scanner.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}

		if s == FrameMarker {
			return f, nil
		}

		w, err := parseWrite(s)
		if err != nil {
			return Frame{}, fmt.Errorf("reglog: line %d: %w", r.line, err)
		}
		f.Writes = append(f.Writes, w)
		pending = true
	}

	if err := r.scanner.Err(); err != nil {
		return Frame{}, fmt.Errorf("reglog: %w", err)
	}

	if pending {
		return f, nil
	}

	return Frame{}, io.EOF
}

func parseWrite(s string) (Write, error) {
	fields := strings.Fields(s)
	if len(fields) != 3 {
		return Write{}, fmt.Errorf("%w: expected three fields (%s)", ErrSyntax, s)
	}

	cycle, err := strconv.ParseInt(fields[0], 0, 32)
	if err != nil {
		return Write{}, fmt.Errorf("%w: cycle: %w", ErrSyntax, err)
	}
	addr, err := strconv.ParseUint(fields[1], 0, 16)
	if err != nil {
		return Write{}, fmt.Errorf("%w: address: %w", ErrSyntax, err)
	}
	value, err := strconv.ParseUint(fields[2], 0, 8)
	if err != nil {
		return Write{}, fmt.Errorf("%w: value: %w", ErrSyntax, err)
	}

	return Write{
		Cycle:   int32(cycle),
		Address: uint16(addr),
		Value:   uint8(value),
	}, nil
}

// ReadAll reads every frame in the log.
func ReadAll(r io.Reader) ([]Frame, error) {
	rd := NewReader(r)

	var frames []Frame
	for {
		f, err := rd.Next()
		if errors.Is(err, io.EOF) {
			return frames, nil
		}
		if err != nil {
			return nil, err
		}
		frames = append(frames, f)
	}
}

// Writer writes frames in the log format.
type Writer struct {
	w   *bufio.Writer
	err error
}

// NewWriter is the preferred method of initialisation for the Writer type.
// An optional comment is written at the start of the log.
func NewWriter(w io.Writer, comment string) *Writer {
	wr := &Writer{w: bufio.NewWriter(w)}
	for _, c := range strings.Split(comment, "\n") {
		if c != "" {
			wr.printf("# %s\n", c)
		}
	}
	return wr
}

func (wr *Writer) printf(format string, args ...any) {
	if wr.err != nil {
		return
	}
	_, wr.err = fmt.Fprintf(wr.w, format, args...)
}

// WriteFrame writes the writes of the frame followed by a frame marker.
func (wr *Writer) WriteFrame(f Frame) error {
	for _, w := range f.Writes {
		wr.printf("%s\n", w)
	}
	wr.printf("%s\n", FrameMarker)
	if wr.err != nil {
		return fmt.Errorf("reglog: %w", wr.err)
	}
	return nil
}

// Flush must be called when all frames have been written.
func (wr *Writer) Flush() error {
	if wr.err != nil {
		return fmt.Errorf("reglog: %w", wr.err)
	}
	if err := wr.w.Flush(); err != nil {
		return fmt.Errorf("reglog: %w", err)
	}
	return nil
}
