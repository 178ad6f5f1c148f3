package memory

import (
	"github.com/cockroachdb/errors"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/vkngwrapper/frameshell/memutils"
)

// chunkList is an intrusive list of chunks that live until the allocator is destroyed. The
// allocator's mutex guards it.
type chunkList struct {
	count int
	head  *Chunk
	tail  *Chunk
}

func (l *chunkList) Validate() error {
	declaredCount := l.count
	actualCount := 0

	for chunk := l.head; chunk != nil; chunk = chunk.next {
		actualCount++
	}

	if declaredCount != actualCount {
		return errors.Errorf("the listed number of chunks in the list (%d) does not match the actual number of chunks (%d)", declaredCount, actualCount)
	}

	return nil
}

func (l *chunkList) AddStatistics(stats *memutils.Statistics) {
	for chunk := l.head; chunk != nil; chunk = chunk.next {
		stats.AddChunk(chunk.size)
	}
}

func (l *chunkList) BuildStatsString(writer *jwriter.Writer) {
	s := writer.Array()
	defer s.End()

	for chunk := l.head; chunk != nil; chunk = chunk.next {
		o := s.Object()
		chunk.printParameters(&o)
		o.End()
	}
}

func (l *chunkList) IsEmpty() bool {
	return l.count == 0
}

func (l *chunkList) Push(chunk *Chunk) {
	if l.count == 0 {
		l.head = chunk
		l.tail = chunk
		l.count = 1
		return
	}

	chunk.prev = l.tail
	l.tail.next = chunk

	l.tail = chunk
	l.count++
}

// Drain empties the list and returns its chunks in allocation order
func (l *chunkList) Drain() []*Chunk {
	chunks := make([]*Chunk, 0, l.count)
	for chunk := l.head; chunk != nil; {
		next := chunk.next
		chunk.prev = nil
		chunk.next = nil
		chunks = append(chunks, chunk)
		chunk = next
	}

	l.head = nil
	l.tail = nil
	l.count = 0

	return chunks
}

// Remove unlinks chunk and reports whether it was part of the list
func (l *chunkList) Remove(chunk *Chunk) bool {
	found := false
	for listed := l.head; listed != nil; listed = listed.next {
		if listed == chunk {
			found = true
			break
		}
	}
	if !found {
		return false
	}

	if chunk.prev != nil {
		chunk.prev.next = chunk.next
	} else {
		l.head = chunk.next
	}
	if chunk.next != nil {
		chunk.next.prev = chunk.prev
	} else {
		l.tail = chunk.prev
	}

	chunk.prev = nil
	chunk.next = nil
	l.count--
	return true
}
