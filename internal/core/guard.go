package core

// AssertRoute recomputes the route for the document and verifies that the
// requested skill is the one the workflow expects next. This is the
// protocol enforcement point: exactly one route is legal at any moment,
// derived entirely from accumulated task statuses.
//
// The document is never mutated. On mismatch the returned error carries
// both skill names and the next item's title, to be surfaced verbatim.
func AssertRoute(doc *StateDocument, requestedSkill string, allowComplete bool) (Resolution, error) {
	res := Resolve(doc)
	if res.Complete() {
		if allowComplete {
			return res, nil
		}
		return res, ErrWorkflowComplete()
	}

	expected := res.ExpectedSkill()
	if expected == "" {
		expected = "none"
	}
	if expected != requestedSkill {
		return res, ErrRouteMismatch(expected, requestedSkill, res.NextItem.Title)
	}
	return res, nil
}
