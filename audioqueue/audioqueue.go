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

// Package audioqueue implements a queue of fixed size audio fragments shared
// between a producer (the emulation) and a consumer (the resampler pulling
// for a host audio device).
//
// Fragments are never allocated after the queue is created. The producer and
// the consumer each hold one fragment outside of the queue and swap it for
// another on every call to Enqueue() and Dequeue(). The first fragment for
// each side is obtained by passing nil.
//
// The design follows the AudioQueue in the Stella emulator.
package audioqueue

import (
	"errors"
	"fmt"
	"sync"

	"github.com/jetsetilly/emuaudio/logger"
)

// ErrUnknownFragment is returned by CloseSink() if the consumer returns a
// fragment when it has already been given back.
var ErrUnknownFragment = errors.New("unknown fragment")

// ErrMissingFragment is returned by CloseSink() if the consumer does not
// return the fragment it holds.
var ErrMissingFragment = errors.New("missing fragment")

// Queue of audio fragments.
type Queue struct {
	perm logger.Permission

	crit sync.Mutex

	fragmentSize int
	stereo       bool

	// the ring of queued fragments
	fragments [][]int16
	next      int
	size      int

	// the initial fragments for the producer and the consumer
	firstEnqueue []int16
	firstDequeue []int16

	ignoreOverflows bool
	overflows       int

	onFragmentEnqueued func()
}

// NewQueue is the preferred method of initialisation for the Queue type. The
// fragment size is the number of frames in each fragment. A stereo frame is
// two samples.
func NewQueue(perm logger.Permission, fragmentSize int, capacity int, stereo bool) *Queue {
	q := &Queue{
		perm:         perm,
		fragmentSize: max(fragmentSize, 1),
		stereo:       stereo,
		fragments:    make([][]int16, max(capacity, 1)),
	}

	n := q.fragmentSize
	if stereo {
		n *= 2
	}

	for i := range q.fragments {
		q.fragments[i] = make([]int16, n)
	}
	q.firstEnqueue = make([]int16, n)
	q.firstDequeue = make([]int16, n)

	return q
}

func (q *Queue) String() string {
	q.crit.Lock()
	defer q.crit.Unlock()
	return fmt.Sprintf("%d/%d fragments of %d (%d overflows)", q.size, len(q.fragments), q.fragmentSize, q.overflows)
}

// FragmentSize returns the number of frames in each fragment.
func (q *Queue) FragmentSize() int {
	return q.fragmentSize
}

// IsStereo returns true if fragments contain interleaved stereo frames.
func (q *Queue) IsStereo() bool {
	return q.stereo
}

// Capacity returns the number of fragments the queue can hold.
func (q *Queue) Capacity() int {
	return len(q.fragments)
}

// Size returns the number of fragments in the queue.
func (q *Queue) Size() int {
	q.crit.Lock()
	defer q.crit.Unlock()
	return q.size
}

// Overflows returns the number of fragments dropped because the queue was
// full.
func (q *Queue) Overflows() int {
	q.crit.Lock()
	defer q.crit.Unlock()
	return q.overflows
}

// IgnoreOverflows stops overflows from being logged. Useful when the
// consumer is known to be slower than the producer.
func (q *Queue) IgnoreOverflows(ignore bool) {
	q.crit.Lock()
	defer q.crit.Unlock()
	q.ignoreOverflows = ignore
}

// SetOnFragmentEnqueued sets a function to be called every time a fragment
// is enqueued. The function is called with the queue unlocked.
func (q *Queue) SetOnFragmentEnqueued(f func()) {
	q.crit.Lock()
	defer q.crit.Unlock()
	q.onFragmentEnqueued = f
}

// Enqueue a filled fragment and return an empty fragment to fill next. If
// the queue is full the oldest fragment is dropped.
//
// The first call must be with a nil fragment, which returns the producer's
// first fragment. Calling Enqueue(nil) more than once will panic.
func (q *Queue) Enqueue(fragment []int16) []int16 {
	q.crit.Lock()

	if fragment == nil {
		defer q.crit.Unlock()
		if q.firstEnqueue == nil {
			panic("audioqueue: producer fragment has already been requested")
		}
		f := q.firstEnqueue
		q.firstEnqueue = nil
		return f
	}

	idx := (q.next + q.size) % len(q.fragments)
	empty := q.fragments[idx]
	q.fragments[idx] = fragment

	if q.size < len(q.fragments) {
		q.size++
	} else {
		q.next = (q.next + 1) % len(q.fragments)
		q.overflows++
		if !q.ignoreOverflows {
			logger.Log(q.perm, "audioqueue", "overflow: dropping oldest fragment")
		}
	}

	f := q.onFragmentEnqueued
	q.crit.Unlock()

	if f != nil {
		f()
	}

	return empty
}

// Dequeue the oldest fragment, giving back a fragment that has been
// consumed. Returns nil if the queue is empty, in which case the consumer
// keeps the fragment it has.
//
// The first call must be with a nil fragment. Calling Dequeue(nil) after the
// consumer's first fragment has been used will panic.
func (q *Queue) Dequeue(fragment []int16) []int16 {
	q.crit.Lock()
	defer q.crit.Unlock()

	if q.size == 0 {
		return nil
	}

	if fragment == nil {
		if q.firstDequeue == nil {
			panic("audioqueue: consumer fragment has already been requested")
		}
		fragment = q.firstDequeue
		q.firstDequeue = nil
	}

	idx := q.next
	q.next = (q.next + 1) % len(q.fragments)
	q.size--

	f := q.fragments[idx]
	q.fragments[idx] = fragment
	return f
}

// CloseSink is called by the consumer when it stops. The fragment it holds
// is returned to the queue so that a new consumer can start with
// Dequeue(nil). A nil fragment is allowed if the consumer never received one.
func (q *Queue) CloseSink(fragment []int16) error {
	q.crit.Lock()
	defer q.crit.Unlock()

	if q.firstDequeue != nil {
		if fragment != nil {
			return fmt.Errorf("audioqueue: %w", ErrUnknownFragment)
		}
		return nil
	}

	if fragment == nil {
		return fmt.Errorf("audioqueue: %w", ErrMissingFragment)
	}
	q.firstDequeue = fragment
	return nil
}
