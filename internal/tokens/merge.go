package tokens

// Merge returns a new tree holding base with incoming layered on top.
//
// For every key in incoming: when both sides are trees they merge
// recursively; when either side is a leaf, or the incoming node is a
// Replacement, the incoming value replaces the existing one wholesale. Keys
// that exist on one side only are carried through. Neither argument is
// modified and the result never contains Replacement markers.
func Merge(base, incoming Tree) Tree {
	out := base.Plain()
	if out == nil {
		out = Tree{}
	}
	mergeInto(out, incoming)
	return out
}

// mergeInto layers incoming onto dst, which must be exclusively owned by the caller.
func mergeInto(dst, incoming Tree) {
	for key, node := range incoming {
		switch in := node.(type) {
		case Leaf:
			dst[key] = in
		case Replacement:
			dst[key] = Tree(in).Plain()
		case Tree:
			existing, ok := dst[key].(Tree)
			if !ok {
				dst[key] = in.Plain()
				continue
			}
			mergeInto(existing, in)
		}
	}
}
