package queue

const defaultFIFOQueueCap = 16

var _ Queue[int] = (*ringQueue[int])(nil)

// ringQueue is an auto growth ring buffer.
// The buffer length is always a power of 2, so the index
// wraps by mask.
type ringQueue[E any] struct {
	buf  []E
	head uint64 // read cursor
	tail uint64 // write cursor
}

func (q *ringQueue[E]) Len() int64 {
	return int64(q.tail - q.head)
}

func (q *ringQueue[E]) mask() uint64 {
	return uint64(len(q.buf)) - 1
}

func (q *ringQueue[E]) grow() {
	n := len(q.buf) << 1
	if n == 0 {
		n = defaultFIFOQueueCap
	}
	buf := make([]E, n)
	size := q.tail - q.head
	for i := uint64(0); i < size; i++ {
		buf[i] = q.buf[(q.head+i)&q.mask()]
	}
	q.buf, q.head, q.tail = buf, 0, size
}

func (q *ringQueue[E]) Enqueue(item E) {
	if q.tail-q.head >= uint64(len(q.buf)) {
		q.grow()
	}
	q.buf[q.tail&q.mask()] = item
	q.tail++
}

func (q *ringQueue[E]) Dequeue() (item E, ok bool) {
	if q.head == q.tail {
		return item, false
	}
	idx := q.head & q.mask()
	item = q.buf[idx]
	var zero E
	q.buf[idx] = zero // release reference
	q.head++
	return item, true
}

func (q *ringQueue[E]) Peek() (item E, ok bool) {
	if q.head == q.tail {
		return item, false
	}
	return q.buf[q.head&q.mask()], true
}

func (q *ringQueue[E]) Reset() {
	clear(q.buf)
	q.head, q.tail = 0, 0
}

// NewFIFOQueue creates a FIFO queue, the capacity is rounded
// up to the next power of 2.
func NewFIFOQueue[E any](capacity ...int) Queue[E] {
	c := defaultFIFOQueueCap
	if len(capacity) > 0 && capacity[0] > 0 {
		c = capacity[0]
	}
	n := 1
	for n < c {
		n <<= 1
	}
	return &ringQueue[E]{
		buf: make([]E, n),
	}
}
