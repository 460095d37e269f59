package core

import "github.com/sahilm/fuzzy"

// QueryMatch is one fuzzy-ranked plan item.
type QueryMatch struct {
	Item  NodeRef `json:"item"`
	Score int     `json:"score"`
}

// QueryItems fuzzy-matches term against every plan item's id and title and
// returns matches ranked best first. An empty term returns every item in
// plan order with a zero score.
func QueryItems(doc *StateDocument, term string) []QueryMatch {
	var refs []NodeRef
	WalkPlan(doc.Workflow.Plan, func(item *WorkflowItem, path []*WorkflowItem) {
		refs = append(refs, nodeRef(item, path))
	})

	if term == "" {
		out := make([]QueryMatch, len(refs))
		for i, ref := range refs {
			out[i] = QueryMatch{Item: ref}
		}
		return out
	}

	haystack := make([]string, len(refs))
	for i, ref := range refs {
		haystack[i] = ref.ID + " " + ref.Title
	}

	matches := fuzzy.Find(term, haystack)
	out := make([]QueryMatch, 0, len(matches))
	for _, m := range matches {
		out = append(out, QueryMatch{Item: refs[m.Index], Score: m.Score})
	}
	return out
}
