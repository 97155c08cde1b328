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

package audioqueue

// Writer packs runs of samples of any length into the fragments of a Queue.
// A fragment is enqueued as soon as it is full.
type Writer struct {
	q        *Queue
	fragment []int16
	pos      int
}

// NewWriter is the preferred method of initialisation for the Writer type.
// The Writer becomes the producer for the Queue. There can only be one
// producer for a queue.
func NewWriter(q *Queue) *Writer {
	return &Writer{
		q:        q,
		fragment: q.Enqueue(nil),
	}
}

// Write interleaved samples to the queue. The number of samples should be a
// multiple of the number of channels in the queue.
func (w *Writer) Write(samples []int16) {
	for len(samples) > 0 {
		n := copy(w.fragment[w.pos:], samples)
		samples = samples[n:]
		w.pos += n
		if w.pos == len(w.fragment) {
			w.fragment = w.q.Enqueue(w.fragment)
			w.pos = 0
		}
	}
}

// Buffered returns the number of samples waiting for the current fragment to
// fill.
func (w *Writer) Buffered() int {
	return w.pos
}

// Flush pads the current fragment with silence and enqueues it. Does nothing
// if the current fragment is empty.
func (w *Writer) Flush() {
	if w.pos == 0 {
		return
	}
	clear(w.fragment[w.pos:])
	w.fragment = w.q.Enqueue(w.fragment)
	w.pos = 0
}
