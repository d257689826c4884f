package plan

// buildHierarchy assembles the flat, document-ordered sequence of
// classified items into parent/child trees.
//
// A single left-to-right pass maintains a stack of parent candidates.
// Candidates that cannot parent the current item are popped; the item
// then attaches to the remaining top candidate, or becomes a new root.
// Same-kind items can never parent each other, so consecutive epics or
// consecutive issues end up as siblings.
func buildHierarchy(items []*Item) []*Item {
	if len(items) == 0 {
		return nil
	}

	var roots []*Item
	var stack []*Item

	for _, item := range items {
		for len(stack) > 0 && !stack[len(stack)-1].Kind.CanParent(item.Kind) {
			stack = stack[:len(stack)-1]
		}

		if len(stack) > 0 {
			parent := stack[len(stack)-1]
			parent.SubItems = append(parent.SubItems, item)
		} else {
			roots = append(roots, item)
		}

		if item.Kind == KindEpic || item.Kind == KindIssue {
			stack = append(stack, item)
		}
	}

	return roots
}
