package compiler

// EmptyList returns the canonical "no content" element: an empty, non-nil
// List, never a bare nil/null (spec.md §4.7: "empty children of a tag
// become empty_list, never a null"). Direct port of original_source's
// element_ext.rs CompiledElement::empty_list.
func EmptyList() CompiledElement {
	return List{}
}

// ListFrom conditionally wraps content so the result is always a List or
// BlockList: if content is already one of those, it is returned unchanged;
// otherwise it is wrapped as a single-element List. Direct port of
// original_source's element_ext.rs CompiledElement::list_from.
func ListFrom(content CompiledElement) CompiledElement {
	switch content.(type) {
	case List, BlockList:
		return content
	default:
		return List{content}
	}
}

// AsIcuNode unwraps a CompiledElement known to carry an ICU node, panicking
// otherwise — this is the "programming error" case spec.md §7 calls out
// explicitly ("attempting to convert a non-ICU compiled node to IcuNode").
// Direct port of original_source's element_ext.rs `impl From<CompiledElement>
// for IcuNode`.
func AsIcuNode(el CompiledElement) IcuNode {
	if ne, ok := el.(NodeElement); ok {
		if icu, ok := ne.Node.(IcuCompiledNode); ok {
			return icu.Icu
		}
	}
	panic("compiler: converting a non-ICU compiled element to IcuNode is not possible")
}
