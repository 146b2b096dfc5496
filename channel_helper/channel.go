package channel_helper

// WriteToChannelAndBufferLatest sends without ever blocking the producer.
// When the channel is full the oldest buffered value is discarded so the
// consumer always catches up to the freshest data.
func WriteToChannelAndBufferLatest[T any](ch chan T, v T) {
	select {
	case ch <- v:
		return
	default:
	}

	// full: drop one stale entry and retry once
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- v:
	default:
	}
}
