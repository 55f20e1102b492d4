package bsp

import "fmt"

// Raw collision records as a level decoder hands them over.

type Plane struct {
	Normal   [3]float64 `json:"normal" cbor:"normal"`
	Distance float64    `json:"distance" cbor:"distance"`
}

// ClipNode splits space along a plane. Children are node indices when
// non-negative, otherwise the content id of a leaf.
type ClipNode struct {
	Plane    int32    `json:"plane" cbor:"plane"`
	Children [2]int32 `json:"children" cbor:"children"`
}

// HullCount is the number of collision hulls every model carries.
const HullCount = 4

// PlayerHull is the hull sized for a standing player.
const PlayerHull = 1

type Model struct {
	HeadNodes [HullCount]int32 `json:"headNodes" cbor:"headNodes"`
}

type Data struct {
	Planes    []Plane    `json:"planes" cbor:"planes"`
	ClipNodes []ClipNode `json:"clipNodes" cbor:"clipNodes"`
	Models    []Model    `json:"models" cbor:"models"`
}

// Engine content ids, stored directly in negative child references.
const (
	_              = iota
	ContentsEmpty  = -iota
	ContentsSolid  = -iota
	ContentsWater  = -iota
	ContentsSlime  = -iota
	ContentsLava   = -iota
	ContentsSky    = -iota
	ContentsOrigin = -iota
	ContentsClip   = -iota
)

type ContentKind uint8

const (
	KindEmpty ContentKind = iota
	KindSolid
	KindOther
)

// Content is what a leaf of the clip tree is filled with. Raw keeps the
// engine id so water, lava and friends stay distinguishable.
type Content struct {
	Kind ContentKind
	Raw  int32
}

var (
	Empty = Content{Kind: KindEmpty, Raw: ContentsEmpty}
	Solid = Content{Kind: KindSolid, Raw: ContentsSolid}
)

// DecodeLeaf turns a negative child reference into a content value.
func DecodeLeaf(child int32) Content {
	switch child {
	case ContentsEmpty:
		return Empty
	case ContentsSolid:
		return Solid
	}
	return Content{Kind: KindOther, Raw: child}
}

// Blocking reports whether a point inside this content counts as blocked.
// Anything that is not open space does.
func (c Content) Blocking() bool {
	return c.Kind != KindEmpty
}

func (c Content) String() string {
	switch c.Kind {
	case KindEmpty:
		return "empty"
	case KindSolid:
		return "solid"
	}
	return fmt.Sprintf("other(%d)", c.Raw)
}
