package memutils

import (
	"math"

	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
)

// Statistics summarizes the chunks held by one pool of an allocator
type Statistics struct {
	ChunkCount int
	ChunkBytes int

	ChunkSizeMin int
	ChunkSizeMax int
}

func (s *Statistics) Clear() {
	s.ChunkCount = 0
	s.ChunkBytes = 0
	s.ChunkSizeMin = math.MaxInt
	s.ChunkSizeMax = 0
}

func (s *Statistics) AddChunk(size int) {
	s.ChunkCount++
	s.ChunkBytes += size

	if size < s.ChunkSizeMin {
		s.ChunkSizeMin = size
	}

	if size > s.ChunkSizeMax {
		s.ChunkSizeMax = size
	}
}

func (s *Statistics) AddStatistics(other *Statistics) {
	s.ChunkCount += other.ChunkCount
	s.ChunkBytes += other.ChunkBytes

	if other.ChunkSizeMin < s.ChunkSizeMin {
		s.ChunkSizeMin = other.ChunkSizeMin
	}

	if other.ChunkSizeMax > s.ChunkSizeMax {
		s.ChunkSizeMax = other.ChunkSizeMax
	}
}

// PrintJson writes the statistics as fields of an already-open JSON object
func (s *Statistics) PrintJson(json *jwriter.ObjectState) {
	json.Name("ChunkCount").Int(s.ChunkCount)
	json.Name("ChunkBytes").Int(s.ChunkBytes)

	if s.ChunkCount > 0 {
		json.Name("ChunkSizeMin").Int(s.ChunkSizeMin)
		json.Name("ChunkSizeMax").Int(s.ChunkSizeMax)
	}
}
