package messaging

import "context"

// deliver hands v to a subscriber channel. It gives up and returns false
// once done is cancelled, so a stopped consumer never blocks the client.
func deliver[T any](done context.Context, ch chan T, v T) bool {
	select {
	case ch <- v:
		return true
	case <-done.Done():
		return false
	}
}
