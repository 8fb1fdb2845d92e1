package gemini

import "sort"

// nestedValue walks arrays by index. Missing paths and JSON nulls report false.
func nestedValue(root any, path ...int) (any, bool) {
	cur := root
	for _, idx := range path {
		arr, ok := cur.([]any)
		if !ok || idx < 0 || idx >= len(arr) {
			return nil, false
		}
		cur = arr[idx]
	}
	if cur == nil {
		return nil, false
	}

	return cur, true
}

func nestedString(root any, path ...int) (string, bool) {
	v, ok := nestedValue(root, path...)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func nestedArray(root any, path ...int) ([]any, bool) {
	v, ok := nestedValue(root, path...)
	if !ok {
		return nil, false
	}
	arr, ok := v.([]any)
	return arr, ok
}

func nestedNumber(root any, path ...int) (float64, bool) {
	v, ok := nestedValue(root, path...)
	if !ok {
		return 0, false
	}
	n, ok := v.(float64)
	return n, ok
}

// collectStrings returns up to limit distinct accepted strings, depth-first in document order.
func collectStrings(root any, accept func(string) bool, limit int) []string {
	var out []string
	if limit <= 0 {
		return out
	}

	seen := make(map[string]struct{})
	stack := []any{root}
	for len(stack) > 0 && len(out) < limit {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch node := v.(type) {
		case string:
			if _, dup := seen[node]; dup || !accept(node) {
				continue
			}
			seen[node] = struct{}{}
			out = append(out, node)
		case []any:
			for i := len(node) - 1; i >= 0; i-- {
				stack = append(stack, node[i])
			}
		case map[string]any:
			keys := make([]string, 0, len(node))
			for k := range node {
				keys = append(keys, k)
			}
			sort.Sort(sort.Reverse(sort.StringSlice(keys)))
			for _, k := range keys {
				stack = append(stack, node[k])
			}
		}
	}

	return out
}
