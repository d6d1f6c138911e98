package patch

// ReversePatch swaps old/new file names, headers, and hunk direction so that
// applying the result undoes p. Within each run of changed lines, the
// removals are listed before the additions.
func ReversePatch(p Patch) Patch {
	out := Patch{
		Index:       p.Index,
		OldFileName: p.NewFileName,
		NewFileName: p.OldFileName,
		OldHeader:   p.NewHeader,
		NewHeader:   p.OldHeader,
		Hunks:       make([]Hunk, len(p.Hunks)),
	}
	for i, h := range p.Hunks {
		rh := Hunk{
			OldStart: h.NewStart,
			OldLines: h.NewLines,
			NewStart: h.OldStart,
			NewLines: h.OldLines,
			Lines:    make([]string, 0, len(h.Lines)),
		}
		var dels, adds []string
		var cur *[]string
		flush := func() {
			rh.Lines = append(append(rh.Lines, dels...), adds...)
			dels, adds = nil, nil
		}
		for _, l := range h.Lines {
			var op byte
			if len(l) > 0 {
				op = l[0]
			}
			switch {
			case op == '-':
				adds, cur = append(adds, "+"+l[1:]), &adds
			case op == '+':
				dels, cur = append(dels, "-"+l[1:]), &dels
			case op == '\\' && cur != nil:
				*cur = append(*cur, l)
			default:
				flush()
				rh.Lines, cur = append(rh.Lines, l), nil
			}
		}
		flush()
		out.Hunks[i] = rh
	}
	return out
}

// ReversePatches reverses each patch and reverses the sequence order.
func ReversePatches(patches []Patch) []Patch {
	out := make([]Patch, len(patches))
	for i, p := range patches {
		out[len(patches)-1-i] = ReversePatch(p)
	}
	return out
}
