package queue

// Queue is a FIFO queue. It is not thread safe.
type Queue[E any] interface {
	Len() int64
	// Enqueue appends the item to the tail.
	Enqueue(item E)
	// Dequeue removes and returns the head item. Returns false if empty.
	Dequeue() (E, bool)
	// Peek returns the head item without removing it.
	Peek() (E, bool)
	// Reset drops all items but keeps the allocated buffer.
	Reset()
}
