package relations

// typeIndex maps an exact type tag to the participants of that type that
// currently hold at least one edge.
type typeIndex struct {
	byTag map[TypeTag]*handleSet
}

func newTypeIndex() *typeIndex {
	return &typeIndex{byTag: make(map[TypeTag]*handleSet)}
}

func (x *typeIndex) insert(tag TypeTag, h handle) {
	set := x.byTag[tag]
	if set == nil {
		set = newHandleSet()
		x.byTag[tag] = set
	}
	set.Add(h)
}

func (x *typeIndex) delete(tag TypeTag, h handle) {
	if set := x.byTag[tag]; set != nil {
		set.Delete(h)
	}
}

func (x *typeIndex) members(tag TypeTag) []handle {
	return x.byTag[tag].Items()
}

func (x *typeIndex) count(tag TypeTag) int {
	return x.byTag[tag].Len()
}

func (x *typeIndex) counts() map[TypeTag]int {
	out := make(map[TypeTag]int, len(x.byTag))
	for tag, set := range x.byTag {
		if n := set.Len(); n > 0 {
			out[tag] = n
		}
	}
	return out
}
