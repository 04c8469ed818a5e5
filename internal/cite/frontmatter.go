package cite

import "strings"

// SplitFrontMatter separates a leading `---` fenced YAML block from
// the chapter body. When no front matter is present the content comes
// back unchanged with ok = false.
func SplitFrontMatter(content string) (meta, body string, ok bool) {
	lines := strings.Split(content, "\n")
	if len(lines) == 0 || strings.TrimRight(lines[0], " \t") != "---" {
		return "", content, false
	}

	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], " \t") == "---" {
			meta = strings.Join(lines[1:i], "\n")
			body = strings.Join(lines[i+1:], "\n")
			return meta, body, true
		}
	}
	// Unterminated fence: not front matter.
	return "", content, false
}
