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

// Package regqueue implements a bounded queue of sound register writes. Each
// write is timestamped with the time that elapsed since the previous write to
// the same chip.
//
// The queue never grows. Enqueuing a write when the queue is full drops the
// write and logs a warning; existing entries are never overwritten.
package regqueue

import (
	"fmt"

	"github.com/jetsetilly/emuaudio/logger"
)

// DefaultCapacity is a sensible capacity for a single sound chip.
const DefaultCapacity = 512

// RegisterWrite is a single write to a sound register.
type RegisterWrite struct {
	Address uint16
	Value   uint8

	// time in seconds since the previous write to the chip
	Delta float64
}

func (w RegisterWrite) String() string {
	return fmt.Sprintf("%#04x=%#02x (+%.6fs)", w.Address, w.Value, w.Delta)
}

// Queue of register writes. Fixed capacity ring buffer.
type Queue struct {
	perm logger.Permission

	buffer []RegisterWrite
	head   int
	tail   int
	size   int
}

// NewQueue is the preferred method of initialisation for the Queue type. A
// capacity of less than one is treated as one.
func NewQueue(perm logger.Permission, capacity int) *Queue {
	return &Queue{
		perm:   perm,
		buffer: make([]RegisterWrite, max(capacity, 1)),
	}
}

func (q *Queue) String() string {
	return fmt.Sprintf("%d/%d writes %.6fs", q.size, len(q.buffer), q.Duration())
}

// Enqueue adds a write to the back of the queue. If the queue is full the
// write is dropped.
func (q *Queue) Enqueue(w RegisterWrite) {
	if q.size == len(q.buffer) {
		logger.Logf(q.perm, "regqueue", "queue full: dropping write %s", w)
		return
	}

	q.buffer[q.tail] = w
	q.tail++
	if q.tail == len(q.buffer) {
		q.tail = 0
	}
	q.size++
}

// Dequeue removes the write at the front of the queue. Does nothing if the
// queue is empty.
func (q *Queue) Dequeue() {
	if q.size == 0 {
		return
	}

	q.head++
	if q.head == len(q.buffer) {
		q.head = 0
	}
	q.size--
}

// Front returns the write at the front of the queue. The returned pointer
// refers to the queue storage and can be used to modify the Delta field of
// the write.
//
// Calling Front() on an empty queue is a programming error and will panic.
func (q *Queue) Front() *RegisterWrite {
	if q.size == 0 {
		panic("regqueue: front of empty queue")
	}
	return &q.buffer[q.head]
}

// Duration returns the sum of the deltas of all queued writes.
func (q *Queue) Duration() float64 {
	var d float64
	i := q.head
	for range q.size {
		d += q.buffer[i].Delta
		i++
		if i == len(q.buffer) {
			i = 0
		}
	}
	return d
}

// Clear the queue. The underlying storage is not touched.
func (q *Queue) Clear() {
	q.head = 0
	q.tail = 0
	q.size = 0
}

// Size returns the number of writes in the queue.
func (q *Queue) Size() int {
	return q.size
}

// Capacity returns the maximum number of writes the queue can hold.
func (q *Queue) Capacity() int {
	return len(q.buffer)
}
