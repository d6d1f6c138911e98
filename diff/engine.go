package diff

// diffTokens runs the Myers shortest-edit-script algorithm over oldTokens and
// newTokens under tz's equality rule, following spec §4.2: trivial cases,
// greedy common-prefix extraction per diagonal, run-length-merged components
// stored in a pooled arena, and early termination the moment a complete path
// is found.
func diffTokens(rawOld, rawNew string, oldTokens, newTokens []string, tz tokenizer, o *options) []Change {
	pool := acquirePool(o)

	oldTokens = removeEmpty(oldTokens)
	newTokens = removeEmpty(newTokens)

	switch {
	case len(oldTokens) == 0 && len(newTokens) == 0:
		return nil
	case len(oldTokens) == 0:
		return tz.postProcess([]Change{{Value: rawNew, Count: len(newTokens), Added: true}}, o)
	case len(newTokens) == 0:
		return tz.postProcess([]Change{{Value: rawOld, Count: len(oldTokens), Removed: true}}, o)
	}

	n, m := len(oldTokens), len(newTokens)
	maxD := n + m
	if o.maxEditLength >= 0 && o.maxEditLength < maxD {
		maxD = o.maxEditLength
	}

	size := 2*maxD + 1
	v := pool.reset(size)
	offset := maxD

	v[offset] = extractCommon(path{oldPos: -1, last: -1, ok: true}, 0, oldTokens, newTokens, tz, o, pool)
	if v[offset].oldPos+1 >= n && v[offset].oldPos+1 >= m {
		return materialize(v[offset].last, oldTokens, newTokens, tz, o, pool)
	}

	minKConsider, maxKConsider := -maxD, maxD

	for d := 1; d <= maxD; d++ {
		lo, hi := max(-d, minKConsider), min(d, maxKConsider)
		for k := lo; k <= hi; k++ {
			if (k-d)%2 != 0 {
				continue
			}

			var removePath, addPath path
			if k-1 >= -maxD {
				removePath = v[k-1+offset]
			}
			if k+1 <= maxD {
				addPath = v[k+1+offset]
			}

			canAdd := addPath.ok && addPath.oldPos-k >= 0 && addPath.oldPos-k < m
			canRemove := removePath.ok && removePath.oldPos+1 < n

			if !canAdd && !canRemove {
				v[k+offset] = path{}
				continue
			}

			var base path
			if !canRemove || (canAdd && addPath.oldPos >= removePath.oldPos) {
				base = extendPath(addPath, true, false, 0, o, pool)
			} else {
				base = extendPath(removePath, false, true, 1, o, pool)
			}
			base = extractCommon(base, k, oldTokens, newTokens, tz, o, pool)
			v[k+offset] = base

			newPos := base.oldPos - k
			if base.oldPos+1 >= n && newPos+1 >= m {
				return materialize(base.last, oldTokens, newTokens, tz, o, pool)
			}
			if base.oldPos+1 >= n {
				maxKConsider = min(maxKConsider, k-1)
			}
			if newPos+1 >= m {
				minKConsider = max(minKConsider, k+1)
			}
		}
	}

	return nil
}

// extendPath emits one new component extending p: if p's tail already has the
// same (added, removed) flags and one_change_per_token is not set, the tail's
// run is replaced by a one-longer copy; otherwise a fresh single-token
// component is pushed.
func extendPath(p path, added, removed bool, oldInc int, o *options, pool *Pool) path {
	count := uint32(1)
	prev := p.last
	if p.last >= 0 && !o.oneChangePerToken {
		tail := pool.arena.nodes[p.last]
		if tail.added() == added && tail.removed() == removed {
			count = tail.count + 1
			prev = tail.previous()
		}
	}
	idx := pool.arena.push(count, added, removed, prev)
	return path{oldPos: p.oldPos + oldInc, last: idx, ok: true}
}

// extractCommon advances p along diagonal diag for as long as tokens match,
// accumulating matched tokens into a single context component unless
// one_change_per_token requests one component per token.
func extractCommon(p path, diag int, oldTokens, newTokens []string, tz tokenizer, o *options, pool *Pool) path {
	n, m := len(oldTokens), len(newTokens)
	oldPos := p.oldPos
	newPos := oldPos - diag
	last := p.last

	for oldPos+1 < n && newPos+1 < m && tz.equals(oldTokens[oldPos+1], newTokens[newPos+1], o) {
		oldPos++
		newPos++
		if !o.oneChangePerToken && last >= 0 {
			tail := pool.arena.nodes[last]
			if !tail.added() && !tail.removed() {
				pool.arena.setCount(last, tail.count+1)
				continue
			}
		}
		last = pool.arena.push(1, false, false, last)
	}

	return path{oldPos: oldPos, last: last, ok: true}
}

// materialize walks the accepted tail's previous chain to build the
// component run in forward order, then turns each component into a Change by
// slicing the corresponding token window.
func materialize(tail int32, oldTokens, newTokens []string, tz tokenizer, o *options, pool *Pool) []Change {
	var chain []int32
	for idx := tail; idx >= 0; {
		chain = append(chain, idx)
		idx = pool.arena.nodes[idx].previous()
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}

	oldPos, newPos := 0, 0
	changes := make([]Change, 0, len(chain))
	for _, idx := range chain {
		c := pool.arena.nodes[idx]
		count := int(c.count)

		var toks []string
		if c.removed() {
			toks = oldTokens[oldPos : oldPos+count]
			oldPos += count
		} else {
			if !c.added() && o.useLongestToken {
				toks = make([]string, count)
				for i := 0; i < count; i++ {
					a, b := oldTokens[oldPos+i], newTokens[newPos+i]
					if len(a) > len(b) {
						toks[i] = a
					} else {
						toks[i] = b
					}
				}
			} else {
				toks = newTokens[newPos : newPos+count]
			}
			newPos += count
			if !c.added() {
				oldPos += count
			}
		}

		changes = append(changes, Change{
			Value:   tz.join(toks),
			Count:   count,
			Added:   c.added(),
			Removed: c.removed(),
		})
	}

	return tz.postProcess(changes, o)
}
