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

// Package limiter provides a rough and ready way of limiting events to a fixed
// rate.
//
// A new FpsLimiter can be created with:
//
//	fps := limiter.NewFPSLimiter(60)
//	defer fps.Close()
//
// Operations can then be stalled with the Wait() function. For example:
//
//	for {
//		fps.Wait()
//		runFrame()
//	}
package limiter

import (
	"sync/atomic"
	"time"
)

// this is a really rough attempt at frame rate limiting. probably only any
// good if base performance of the machine is well above the required rate.

// FpsLimiter will trigger every frames per second
type FpsLimiter struct {
	// time.Duration stored as int64
	secondsPerFrame atomic.Int64

	tick chan bool
	done chan bool
}

// NewFPSLimiter is the preferred method of initialisation for FpsLimiter type
func NewFPSLimiter(framesPerSecond float64) *FpsLimiter {
	lim := &FpsLimiter{
		tick: make(chan bool),
		done: make(chan bool),
	}
	lim.SetLimit(framesPerSecond)

	// run ticker concurrently
	go func() {
		adjust := time.Duration(0)
		t := time.Now()
		for {
			select {
			case lim.tick <- true:
			case <-lim.done:
				return
			}

			spf := time.Duration(lim.secondsPerFrame.Load())
			time.Sleep(max(spf-adjust, 0))

			// carry any oversleep into the next frame
			nt := time.Now()
			adjust = nt.Sub(t) - spf + adjust
			adjust = min(max(adjust, -spf), spf)
			t = nt
		}
	}()

	return lim
}

// SetLimit changes the limit at which the FpsLimiter waits. Values of zero or
// less are ignored.
func (lim *FpsLimiter) SetLimit(framesPerSecond float64) {
	if framesPerSecond <= 0 {
		return
	}
	lim.secondsPerFrame.Store(int64(float64(time.Second) / framesPerSecond))
}

// Limit returns the current limit in frames per second.
func (lim *FpsLimiter) Limit() float64 {
	return float64(time.Second) / float64(lim.secondsPerFrame.Load())
}

// Wait will block until trigger
func (lim *FpsLimiter) Wait() {
	<-lim.tick
}

// HasWaited will return true if time has already elapsed and false it it is
// still yet to happen
func (lim *FpsLimiter) HasWaited() bool {
	select {
	case <-lim.tick:
		return true
	default:
		// default case means that the channel receiving case doesn't block
		return false
	}
}

// Close stops the limiter. Wait() must not be called after Close().
func (lim *FpsLimiter) Close() {
	close(lim.done)
}
