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

// Package savestate encodes and decodes the binary sections used by save
// states. All values are little endian. Strings are stored as a uint32
// length followed by the bytes of the string.
//
// Both the Encoder and the Decoder remember the first error encountered.
// Subsequent operations do nothing and the error is returned by Err().
package savestate

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// MaxStringLen is the longest string that will be decoded.
const MaxStringLen = 1024

// ErrStringTooLong is returned by the Decoder if the length of a string
// exceeds MaxStringLen.
var ErrStringTooLong = errors.New("string too long")

// Encoder writes values to an io.Writer.
type Encoder struct {
	w   io.Writer
	err error
}

// NewEncoder is the preferred method of initialisation for the Encoder type.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

func (e *Encoder) write(v any) {
	if e.err != nil {
		return
	}
	if err := binary.Write(e.w, binary.LittleEndian, v); err != nil {
		e.err = fmt.Errorf("savestate: %w", err)
	}
}

// String writes the length of the string followed by the string.
func (e *Encoder) String(s string) {
	e.write(uint32(len(s)))
	e.write([]byte(s))
}

// Uint8 writes a single byte.
func (e *Encoder) Uint8(v uint8) {
	e.write(v)
}

// Int32 writes a signed 32 bit value.
func (e *Encoder) Int32(v int32) {
	e.write(v)
}

// Err returns the first error encountered by the Encoder.
func (e *Encoder) Err() error {
	return e.err
}

// Decoder reads values from an io.Reader.
type Decoder struct {
	r   io.Reader
	err error
}

// NewDecoder is the preferred method of initialisation for the Decoder type.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

func (d *Decoder) read(v any) {
	if d.err != nil {
		return
	}
	if err := binary.Read(d.r, binary.LittleEndian, v); err != nil {
		d.err = fmt.Errorf("savestate: %w", err)
	}
}

// String reads a string written by Encoder.String(). Returns the empty string
// on error.
func (d *Decoder) String() string {
	var n uint32
	d.read(&n)
	if d.err != nil {
		return ""
	}
	if n > MaxStringLen {
		d.err = fmt.Errorf("savestate: %w (%d bytes)", ErrStringTooLong, n)
		return ""
	}
	b := make([]byte, n)
	d.read(b)
	if d.err != nil {
		return ""
	}
	return string(b)
}

// Uint8 reads a single byte.
func (d *Decoder) Uint8() uint8 {
	var v uint8
	d.read(&v)
	return v
}

// Int32 reads a signed 32 bit value.
func (d *Decoder) Int32() int32 {
	var v int32
	d.read(&v)
	return v
}

// Err returns the first error encountered by the Decoder.
func (d *Decoder) Err() error {
	return d.err
}
