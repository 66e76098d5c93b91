// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"sync"
	"time"
)

// RunConcurrently starts one goroutine per worker, each calling fn with
// its worker number, and waits up to timeout for all of them to return.
// Every non-nil error is reported with t.Errorf; a hang fails the test
// with t.Fatalf instead of blocking the test binary.
//
//	testutil.RunConcurrently(t, 64, 10*time.Second, func(worker int) error {
//		if got := merkle.HashLeaf(payload); got != want {
//			return fmt.Errorf("worker %d: got %s", worker, got)
//		}
//		return nil
//	})
func RunConcurrently(t interface {
	Helper()
	Errorf(format string, args ...any)
	Fatalf(format string, args ...any)
}, workers int, timeout time.Duration, fn func(worker int) error) {
	t.Helper()

	errs := make(chan error, workers)
	var group sync.WaitGroup
	for worker := range workers {
		group.Add(1)
		go func() {
			defer group.Done()
			if err := fn(worker); err != nil {
				errs <- err
			}
		}()
	}

	done := make(chan struct{})
	go func() {
		group.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout): //nolint:realclock test hang prevention
		t.Fatalf("timed out after %v waiting for %d workers", timeout, workers)
	}

	close(errs)
	for err := range errs {
		t.Errorf("%v", err)
	}
}
