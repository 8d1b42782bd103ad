package circuit_breaker

import (
	"errors"
	"sync"
	"time"
)

type Status uint8

const (
	Closed   Status = 1
	Open     Status = 2
	HalfOpen Status = 3
)

var ErrOpenCB = errors.New("circuit breaker is open")

type CircuitBreaker interface {
	Call(service func() error) error
	Reset()
}

type circuitBreaker struct {
	mu    sync.Mutex
	state Status

	// window holds the outcome of the last windowSize calls, true on failure.
	window     []bool
	windowSize int
	pos        int

	// failureRatio of the window at which the breaker opens.
	failureRatio float64

	// cooldown before an Open breaker lets a probe call through.
	cooldown time.Duration
	openedAt time.Time

	// recoveryCalls successful probes in a row close the breaker again.
	recoveryCalls int
	successCount  int
}

func New(windowSize int, cooldown time.Duration, failureRatio float64, recoveryCalls int) CircuitBreaker {
	return &circuitBreaker{
		state:         Closed,
		window:        make([]bool, windowSize),
		windowSize:    windowSize,
		failureRatio:  failureRatio,
		cooldown:      cooldown,
		recoveryCalls: recoveryCalls,
	}
}

func (cb *circuitBreaker) Call(service func() error) error {
	cb.mu.Lock()
	if cb.state == Open {
		if time.Since(cb.openedAt) <= cb.cooldown {
			cb.mu.Unlock()
			return ErrOpenCB
		}
		cb.state = HalfOpen
		cb.successCount = 0
	}
	cb.mu.Unlock()

	err := service()

	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.window[cb.pos] = err != nil
	cb.pos = (cb.pos + 1) % cb.windowSize

	if cb.state == HalfOpen {
		if err != nil {
			cb.state = Open
			cb.successCount = 0
			cb.openedAt = time.Now()
		} else {
			cb.successCount++
			if cb.successCount >= cb.recoveryCalls {
				cb.Reset()
			}
		}
		return err
	}

	fails := 0
	for _, failed := range cb.window {
		if failed {
			fails++
		}
	}
	if float64(fails)/float64(cb.windowSize) >= cb.failureRatio {
		cb.state = Open
		cb.successCount = 0
		cb.openedAt = time.Now()
	}

	return err
}

func (cb *circuitBreaker) Reset() {
	for i := range cb.window {
		cb.window[i] = false
	}
	cb.pos = 0
	cb.successCount = 0
	cb.state = Closed
}
