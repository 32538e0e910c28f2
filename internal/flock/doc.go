// Package flock provides cross-platform advisory file locking.
//
// Locks are exclusive and non-blocking: a second holder fails immediately
// instead of queueing. Locks are tied to the open file, so closing the file
// or exiting the process drops them.
//
// Usage:
//
//	file, _ := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600)
//	if err := flock.Exclusive(file.Fd()); err != nil {
//	    if flock.IsContention(err) {
//	        // held by someone else
//	    }
//	}
//	defer flock.Unlock(file.Fd())
package flock
