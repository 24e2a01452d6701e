package smt

// diff.go implements a difference-logic decision procedure: a sound
// and complete check for conjunctions of atoms of the shape
// `(var + k) REL (var' + k')`, via the classical reduction to a
// single-source shortest-path problem (Cormen et al., "Systems of
// difference constraints"). This is the tractable fragment of linear
// integer arithmetic that spec.md's loop-counter and invariant
// arithmetic (c <= y, r = x + c, c < y, ...) falls into once equality
// substitution (normalize.go) has eliminated the non-difference
// equalities. It is not general LIA — see solver.go's fallback for
// anything outside this fragment, and DESIGN.md for why a full
// (e.g. omega-test) procedure was not attempted.

// affine recognizes Var, IntLit and (Var +/- IntLit) shapes. ok is
// false for anything else (multiplication, division, multi-variable
// sums), signaling the caller to fall back to bounded search.
func affine(t Term) (name string, constant int, ok bool) {
	switch n := t.(type) {
	case IntLit:
		return "", n.Value, true
	case Var:
		return n.Name, 0, true
	case ArithTerm:
		if len(n.Args) != 2 {
			return "", 0, false
		}
		a, b := n.Args[0], n.Args[1]
		switch n.Op {
		case Add:
			if v, ok := a.(Var); ok {
				if lit, ok := b.(IntLit); ok {
					return v.Name, lit.Value, true
				}
			}
			if v, ok := b.(Var); ok {
				if lit, ok := a.(IntLit); ok {
					return v.Name, lit.Value, true
				}
			}
		case Sub:
			if v, ok := a.(Var); ok {
				if lit, ok := b.(IntLit); ok {
					return v.Name, -lit.Value, true
				}
			}
		}
	}
	return "", 0, false
}

// diffEdge is a constraint `to - from <= weight` in the Bellman-Ford
// reduction (an edge from `from` to `to` carrying `weight`).
type diffEdge struct {
	from, to string
	weight   int
}

const zeroNode = "" // the virtual reference node representing the constant 0

// asDiffEdges converts one relational atom into one or two diffEdges.
// ok is false if atom isn't a difference-logic atom (e.g. involves
// multiplication, or is a disequality), signaling the caller to give
// up on the exact decision procedure for the whole conjunction.
func asDiffEdges(atom Term) ([]diffEdge, bool) {
	rel, isRel := atom.(RelTerm)
	if !isRel {
		return nil, false
	}
	lname, lc, lok := affine(rel.Lhs)
	rname, rc, rok := affine(rel.Rhs)
	if !lok || !rok {
		return nil, false
	}
	// lhs - rhs compares against rc - lc once both sides' variables are
	// moved to one side: (lname + lc) REL (rname + rc)
	//   lname - rname REL (rc - lc)
	k := rc - lc
	switch rel.Op {
	case Le:
		return []diffEdge{{rname, lname, k}}, true
	case Lt:
		return []diffEdge{{rname, lname, k - 1}}, true
	case Ge:
		return []diffEdge{{lname, rname, -k}}, true
	case Gt:
		return []diffEdge{{lname, rname, -k - 1}}, true
	case Eq:
		return []diffEdge{{rname, lname, k}, {lname, rname, -k}}, true
	default: // Neq has no single-edge encoding
		return nil, false
	}
}

// diffSolve runs Bellman-Ford from the virtual zero node over edges,
// returning (satisfiable, assignment). A negative-weight cycle
// reachable from zeroNode means the conjunction is unsatisfiable.
func diffSolve(edges []diffEdge) (bool, map[string]int) {
	nodes := map[string]bool{zeroNode: true}
	for _, e := range edges {
		nodes[e.from] = true
		nodes[e.to] = true
	}
	dist := make(map[string]int, len(nodes))
	for n := range nodes {
		dist[n] = 0 // zeroNode has an implicit 0-weight edge to every node
	}

	n := len(nodes)
	for i := 0; i < n; i++ {
		changed := false
		for _, e := range edges {
			if dist[e.from]+e.weight < dist[e.to] {
				dist[e.to] = dist[e.from] + e.weight
				changed = true
			}
		}
		if !changed {
			break
		}
		if i == n-1 && changed {
			return false, nil // relaxation still possible after |V|-1 rounds: negative cycle
		}
	}
	// dist is a solution only up to a common offset: shift it so the
	// zero node, which stands for the constant 0, really is 0.
	base := dist[zeroNode]
	delete(dist, zeroNode)
	for name := range dist {
		dist[name] -= base
	}
	return true, dist
}
