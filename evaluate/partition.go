package evaluate

import (
	"slices"

	"github.com/RoaringBitmap/roaring/v2"
)

// Partition groups point indices by cluster label.
type Partition struct {
	labels  []int
	members map[int]*roaring.Bitmap
}

// NewPartition builds the partition induced by labels.
func NewPartition(labels []int) *Partition {
	p := &Partition{
		members: make(map[int]*roaring.Bitmap),
	}

	for i, l := range labels {
		bm, ok := p.members[l]
		if !ok {
			bm = roaring.New()
			p.members[l] = bm
			p.labels = append(p.labels, l)
		}
		bm.Add(uint32(i))
	}

	slices.Sort(p.labels)
	return p
}

// Len returns the number of distinct labels.
func (p *Partition) Len() int { return len(p.labels) }

// Labels returns the distinct labels in ascending order.
func (p *Partition) Labels() []int { return slices.Clone(p.labels) }

// Members returns the indices carrying label, or nil for an unknown label.
// The bitmap must not be modified.
func (p *Partition) Members(label int) *roaring.Bitmap { return p.members[label] }

// Size returns the number of points carrying label.
func (p *Partition) Size(label int) int {
	bm, ok := p.members[label]
	if !ok {
		return 0
	}
	return int(bm.GetCardinality())
}

// Sizes returns the cluster sizes in label order.
func (p *Partition) Sizes() []int {
	sizes := make([]int, len(p.labels))
	for i, l := range p.labels {
		sizes[i] = p.Size(l)
	}
	return sizes
}
