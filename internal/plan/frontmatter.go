package plan

import (
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

const frontMatterFence = "---"

// extractFrontMatter pulls an optional YAML front matter block from the
// start of the document. It returns the decoded metadata and the document
// with the block removed.
//
// A malformed YAML body is never fatal: the block is still stripped, a
// warning is logged, and empty metadata is returned. A missing block
// returns the content unchanged.
func extractFrontMatter(content string) (map[string]any, string) {
	normalized := strings.ReplaceAll(content, "\r\n", "\n")

	if !strings.HasPrefix(normalized, frontMatterFence+"\n") {
		return map[string]any{}, content
	}

	rest := normalized[len(frontMatterFence)+1:]
	idx := strings.Index(rest, "\n"+frontMatterFence+"\n")
	body := ""
	remainder := ""
	if idx >= 0 {
		body = rest[:idx]
		remainder = rest[idx+len(frontMatterFence)+2:]
	} else if strings.HasSuffix(rest, "\n"+frontMatterFence) {
		body = rest[:len(rest)-len(frontMatterFence)-1]
	} else {
		// No closing fence; not a front matter block.
		return map[string]any{}, content
	}

	metadata := map[string]any{}
	if err := yaml.Unmarshal([]byte(body), &metadata); err != nil {
		log.Warn("failed to parse work plan front matter", "err", err)
		return map[string]any{}, strings.TrimLeft(remainder, "\n")
	}
	if metadata == nil {
		metadata = map[string]any{}
	}

	return metadata, strings.TrimLeft(remainder, "\n")
}
