package dts

// Marker identifies the last header seen at a nesting depth.
// Node headers set NodeName and, when present, UnitAddress; label overrides
// set only Label (including its '&').
type Marker struct {
	NodeName    string
	UnitAddress string
	Label       string
}

// tracker follows brace nesting and remembers one marker per depth.
type tracker struct {
	depth   int
	markers []*Marker // indexed by depth, nil when nothing was filed
}

func (t *tracker) reset() {
	t.depth = 0
	clear(t.markers)
	t.markers = t.markers[:0]
}

func (t *tracker) at(depth int) (Marker, bool) {
	if depth < 0 || depth >= len(t.markers) || t.markers[depth] == nil {
		return Marker{}, false
	}
	return *t.markers[depth], true
}

// previous returns the marker of the preceding sibling at the current depth.
func (t *tracker) previous() (Marker, bool) {
	return t.at(t.depth)
}

// parent returns the marker filed one level up.
func (t *tracker) parent() (Marker, bool) {
	return t.at(t.depth - 1)
}

// open files m (when not nil) at the current depth and descends one level.
func (t *tracker) open(m *Marker) {
	if m != nil {
		for len(t.markers) <= t.depth {
			t.markers = append(t.markers, nil)
		}
		saved := *m
		t.markers[t.depth] = &saved
	}
	t.depth++
}

// close drops the markers at and below the depth being left and ascends one
// level. It returns false, leaving the depth at zero, when there is no open
// block.
func (t *tracker) close() bool {
	if len(t.markers) > t.depth {
		clear(t.markers[t.depth:])
		t.markers = t.markers[:t.depth]
	}
	if t.depth == 0 {
		return false
	}
	t.depth--
	return true
}
