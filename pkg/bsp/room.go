package bsp

import "github.com/jumpstat/jumpstat/pkg/geom"

// Room builds the clip data of a single open box surrounded by solid. Every
// hull of the only model shares the same tree. Handy for synthetic levels.
func Room(mins, maxs geom.Vector3) *Data {
	data := &Data{}

	for axis := 0; axis < 3; axis++ {
		var low, high [3]float64
		low[axis] = 1
		high[axis] = -1

		data.Planes = append(data.Planes,
			Plane{Normal: low, Distance: mins[axis]},
			Plane{Normal: high, Distance: -maxs[axis]},
		)
	}

	last := int32(len(data.Planes) - 1)
	for i := int32(0); i <= last; i++ {
		inside := i + 1
		if i == last {
			inside = ContentsEmpty
		}
		data.ClipNodes = append(data.ClipNodes, ClipNode{
			Plane:    i,
			Children: [2]int32{inside, ContentsSolid},
		})
	}

	data.Models = []Model{{HeadNodes: [HullCount]int32{0, 0, 0, 0}}}
	return data
}
