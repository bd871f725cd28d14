package render

import (
	"bytes"

	"github.com/adrg/frontmatter"
)

// SplitFrontMatter separates a leading front matter block from the markdown
// body. Sources without front matter, or with a block that does not parse,
// come back whole with nil metadata.
func SplitFrontMatter(source []byte) (map[string]any, []byte) {
	var meta map[string]any
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return nil, source
	}
	if len(meta) == 0 {
		meta = nil
	}
	return meta, body
}
