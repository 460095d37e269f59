package checkpoint

import (
	"fmt"
	"strings"
)

// BuildSubject renders one commit subject line:
//
//	<type>(<scope>): <summary> [tag]
//
// The summary is the checkpoint key with separators humanized. When the
// subject exceeds maxLen the summary is truncated with an ellipsis; the
// tag is never shortened, it is what makes split batches traceable.
func BuildSubject(commitType, scope, checkpoint, tag string, maxLen int) string {
	summary := humanize(checkpoint)
	prefix := fmt.Sprintf("%s(%s): ", commitType, scope)
	suffix := ""
	if tag != "" {
		suffix = " [" + tag + "]"
	}

	subject := prefix + summary + suffix
	if maxLen <= 0 || len(subject) <= maxLen {
		return subject
	}

	budget := maxLen - len(prefix) - len(suffix)
	if budget < 4 {
		// Pathological config; keep the structural parts intact.
		return prefix + "..." + suffix
	}
	return prefix + summary[:budget-3] + "..." + suffix
}

// batchTag names the group on every commit and adds an index only when the
// group was split across commits, e.g. "scripts 2/3".
func batchTag(group string, index, total int) string {
	if total <= 1 {
		return group
	}
	return fmt.Sprintf("%s %d/%d", group, index, total)
}

func humanize(key string) string {
	key = strings.ReplaceAll(key, "-", " ")
	key = strings.ReplaceAll(key, "_", " ")
	return strings.Join(strings.Fields(key), " ")
}
