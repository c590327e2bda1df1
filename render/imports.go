package render

import "sort"

// Imports collects the dependencies a generated file's header needs to
// declare, kept alphabetically sorted and de-duplicated by insertion so
// repeated Add calls while walking the graph never emit a path twice.
// A target's EmitHeader accumulates into one of these as it discovers
// what the body actually uses, instead of hardcoding a fixed require
// list that over- or under-states what the output depends on.
type Imports struct {
	List []string
}

// Add inserts path into the import list if not already present.
func (i *Imports) Add(path string) {
	idx := sort.SearchStrings(i.List, path)
	if idx < len(i.List) && i.List[idx] == path {
		return
	}
	i.List = append(i.List, "")
	copy(i.List[idx+1:], i.List[idx:])
	i.List[idx] = path
}
