package grammar

// ElementIndex is the position information Analyze assigns to a
// SyntaxElement: its index among elements of the same referenced type
// (IndexByType) and its index among all indexed elements in the enclosing
// context (ChildIndex). Either is nil when ambiguous; the emitter must
// then fall back to a list-valued or textual accessor.
type ElementIndex struct {
	IndexByType *int
	ChildIndex  *int
}

// Analysis is the output of Analyze: per-run side tables keyed by element
// identity (the *SyntaxElement pointer itself), built at the start of a
// run, read-only afterward, and never reused across runs.
type Analysis struct {
	index     map[*SyntaxElement]ElementIndex
	singleton map[*SyntaxElement]bool
}

// Index returns the ElementIndex computed for e, or the zero value
// (both fields nil) if e was never visited by Analyze.
func (a *Analysis) Index(e *SyntaxElement) ElementIndex {
	return a.index[e]
}

// IsSingleton reports whether e is guaranteed to be the only element of its
// referenced type reachable in its enclosing context.
func (a *Analysis) IsSingleton(e *SyntaxElement) bool {
	return a.singleton[e]
}

// counter tracks how many elements of one type (or overall) have been seen
// along a traversal path, plus whether that count is still trustworthy.
type counter struct {
	count     int
	ambiguous bool
}

// ctx is the mutable traversal state threaded through one rule context (the
// whole alternative list for an unlabeled rule, or a single alternative for
// a labeled one).
type ctx struct {
	child  counter
	byType map[string]counter
}

func newCtx() *ctx {
	return &ctx{byType: make(map[string]counter)}
}

func (c *ctx) clone() *ctx {
	cp := &ctx{child: c.child, byType: make(map[string]counter, len(c.byType))}
	for k, v := range c.byType {
		cp.byType[k] = v
	}
	return cp
}

// typeKey returns the per-type counter key for an indexable element, and
// whether the element is indexable at all. Literal, TokenRef, and RuleRef
// are addressable by name in a generated parse-tree context and so receive
// both a ChildIndex and an IndexByType; CharSet and Dot elements are not
// addressed by name in ANTLR-generated contexts and receive neither.
func typeKey(e *SyntaxElement) (key string, indexable bool) {
	switch e.Kind {
	case KindLiteral:
		return "'" + e.Literal + "'", true
	case KindTokenRef, KindRuleRef:
		return e.RefName, true
	default:
		return "", false
	}
}

// Analyze traverses every parser rule in g and returns the resulting
// annotations. Lexer rules are not indexed: ElementIndex only matters for
// addressing children of a generated parser-rule context.
func Analyze(g *Grammar) *Analysis {
	a := &Analysis{
		index:     make(map[*SyntaxElement]ElementIndex),
		singleton: make(map[*SyntaxElement]bool),
	}

	for _, rule := range g.ParserRules {
		analyzeRule(rule, a)
	}

	return a
}

func analyzeRule(rule *Rule, a *Analysis) {
	if rule.Body == nil {
		return
	}

	if rule.Body.AllLabeled() {
		// Each labeled alternative is its own context: singleton status and
		// indices do not cross alternative boundaries.
		for _, alt := range rule.Body.Alternatives {
			c := newCtx()
			analyzeElements(alt.Elements, c, a, false, false)
			markSingletons(alt.Elements, a)
		}
		return
	}

	// Unlabeled (or single-alternative): the whole list is one context, and
	// an element is a singleton only if it is the only one of its type
	// across every reachable alternative.
	c := newCtx()
	if len(rule.Body.Alternatives) <= 1 {
		if len(rule.Body.Alternatives) == 1 {
			analyzeElements(rule.Body.Alternatives[0].Elements, c, a, false, false)
			markSingletons(rule.Body.Alternatives[0].Elements, a)
		}
		return
	}

	// More than one unlabeled alternative: analyze each branch from a fresh
	// context (branches of the top-level alternation don't share document
	// position with each other any more than branches of a nested block
	// do), then mark singletons over the union of all branches' elements.
	for _, alt := range rule.Body.Alternatives {
		branch := newCtx()
		analyzeElements(alt.Elements, branch, a, false, false)
	}
	markSingletonsAcross(rule.Body.Alternatives, a)
}

// markSingletons marks every indexable element of elems whose type appears
// exactly once among elems as a singleton.
func markSingletons(elems []*SyntaxElement, a *Analysis) {
	markSingletonsAcross([]*Alternative{{Elements: elems}}, a)
}

// markSingletonsAcross marks an element singleton iff its type occurs
// exactly once across every alternative's elements combined (recursing into
// blocks, since a block's contents are still reachable elements of the
// enclosing context).
func markSingletonsAcross(alts []*Alternative, a *Analysis) {
	counts := map[string]int{}
	var all []*SyntaxElement

	var walk func(elems []*SyntaxElement)
	walk = func(elems []*SyntaxElement) {
		for _, e := range elems {
			if key, ok := typeKey(e); ok {
				counts[key]++
				all = append(all, e)
			}
			if e.Kind == KindBlock && e.Block != nil {
				for _, blockAlt := range e.Block.Alternatives {
					walk(blockAlt.Elements)
				}
			}
		}
	}
	for _, alt := range alts {
		walk(alt.Elements)
	}

	for _, e := range all {
		key, _ := typeKey(e)
		if counts[key] == 1 {
			a.singleton[e] = true
		}
	}
}

// analyzeElements walks elems in document order, threading c through them,
// and recurses into Block elements. inOptional/inRepeated reflect whether an
// enclosing element (or block) already makes every element beneath it
// optional/repeated.
func analyzeElements(elems []*SyntaxElement, c *ctx, a *Analysis, inOptional, inRepeated bool) {
	for _, e := range elems {
		optional := inOptional || e.Suffix.Optional()
		repeated := inRepeated || e.Suffix.Repeated()

		switch e.Kind {
		case KindLiteral, KindTokenRef, KindRuleRef:
			assignIndex(e, c, a, optional, repeated)
		case KindBlock:
			analyzeBlock(e, c, a, optional, repeated)
		case KindCharSet, KindDot, KindEmpty:
			// Not addressed by name in a generated context; no index to
			// assign, and they don't participate in sibling counters.
		}
	}
}

func assignIndex(e *SyntaxElement, c *ctx, a *Analysis, optional, repeated bool) {
	key, ok := typeKey(e)
	if !ok {
		return
	}

	var childIdx, typeIdx *int

	if repeated {
		c.child.ambiguous = true
		tc := c.byType[key]
		tc.ambiguous = true
		c.byType[key] = tc
		// childIdx, typeIdx stay nil: a repeated element's own index is
		// unknown, not merely ambiguous for siblings.
	} else {
		if !c.child.ambiguous {
			ci := c.child.count
			childIdx = &ci
		}
		c.child.count++
		if optional {
			c.child.ambiguous = true
		}

		tc := c.byType[key]
		if !tc.ambiguous {
			ti := tc.count
			typeIdx = &ti
		}
		tc.count++
		if optional {
			tc.ambiguous = true
		}
		c.byType[key] = tc
	}

	a.index[e] = ElementIndex{IndexByType: typeIdx, ChildIndex: childIdx}
}

// analyzeBlock handles `(a | b | ...)`: each branch is analyzed from a copy
// of the incoming context, then the branches are merged back into c
// (unanimous vote if branches agree, else max with ambiguous forced true;
// ambiguity always OR-ed; a branch that never touched a given type does
// not vote on it).
func analyzeBlock(e *SyntaxElement, c *ctx, a *Analysis, optional, repeated bool) {
	if e.Block == nil {
		return
	}

	type branchResult struct {
		child  counter
		byType map[string]counter
	}

	before := c.clone()
	var results []branchResult
	for _, alt := range e.Block.Alternatives {
		branch := before.clone()
		analyzeElements(alt.Elements, branch, a, optional, repeated)
		results = append(results, branchResult{child: branch.child, byType: branch.byType})
	}

	if len(results) == 0 {
		return
	}

	// Merge the child counter: every branch always votes (the overall
	// child counter is touched by every reachable element).
	childCounts := make([]int, len(results))
	childAmbiguous := false
	for i, r := range results {
		childCounts[i] = r.child.count
		childAmbiguous = childAmbiguous || r.child.ambiguous
	}
	c.child = mergeVotes(childCounts, childAmbiguous, before.child.count)

	// Merge per-type counters: union of keys touched by any branch; a
	// branch "votes" on a key only if its count for that key differs from
	// the pre-block count (i.e. it actually mentions that type).
	mergedByType := make(map[string]counter, len(before.byType))
	for k, v := range before.byType {
		mergedByType[k] = v
	}

	allKeys := map[string]bool{}
	for _, r := range results {
		for k := range r.byType {
			allKeys[k] = true
		}
	}

	for key := range allKeys {
		beforeCount := before.byType[key].count
		var votes []int
		ambiguous := false
		for _, r := range results {
			rc, mentioned := r.byType[key]
			if !mentioned || rc.count == beforeCount {
				continue
			}
			votes = append(votes, rc.count)
			ambiguous = ambiguous || rc.ambiguous
		}
		if len(votes) == 0 {
			continue
		}
		mergedByType[key] = mergeVotes(votes, ambiguous, beforeCount)
	}

	c.byType = mergedByType
}

// mergeVotes implements "the merged counter count equals the unanimous vote
// (if all branches agree), else max(counts) with ambiguous = true;
// ambiguity is OR-ed [already folded into seedAmbiguous]".
func mergeVotes(counts []int, seedAmbiguous bool, fallback int) counter {
	if len(counts) == 0 {
		return counter{count: fallback, ambiguous: seedAmbiguous}
	}

	unanimous := true
	max := counts[0]
	for _, n := range counts[1:] {
		if n != counts[0] {
			unanimous = false
		}
		if n > max {
			max = n
		}
	}

	if unanimous {
		return counter{count: counts[0], ambiguous: seedAmbiguous}
	}
	return counter{count: max, ambiguous: true}
}
