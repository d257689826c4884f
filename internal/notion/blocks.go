package notion

// Block is a Notion content block. Exactly one of the typed payload
// fields is set, matching the block's Type discriminator.
type Block struct {
	Object    string     `json:"object"`
	Type      string     `json:"type"`
	Heading1  *TextBlock `json:"heading_1,omitempty"`
	Heading2  *TextBlock `json:"heading_2,omitempty"`
	Heading3  *TextBlock `json:"heading_3,omitempty"`
	Paragraph *TextBlock `json:"paragraph,omitempty"`
	Bulleted  *TextBlock `json:"bulleted_list_item,omitempty"`
	ToDo      *ToDoBlock `json:"to_do,omitempty"`
	Divider   *struct{}  `json:"divider,omitempty"`
}

// TextBlock carries the rich text of a heading, paragraph, or list item.
type TextBlock struct {
	RichText []RichText `json:"rich_text"`
}

// ToDoBlock is a checkbox list item.
type ToDoBlock struct {
	RichText []RichText `json:"rich_text"`
	Checked  bool       `json:"checked"`
}

// RichText is a single run of styled text.
type RichText struct {
	Type        string       `json:"type"`
	Text        TextContent  `json:"text"`
	Annotations *Annotations `json:"annotations,omitempty"`
}

// TextContent is the literal content of a rich text run.
type TextContent struct {
	Content string `json:"content"`
	Link    *Link  `json:"link,omitempty"`
}

// Link is an external URL attached to a rich text run.
type Link struct {
	URL string `json:"url"`
}

// Annotations are non-default styling flags. Defaults are omitted from
// the wire payload entirely.
type Annotations struct {
	Bold   bool   `json:"bold,omitempty"`
	Italic bool   `json:"italic,omitempty"`
	Color  string `json:"color,omitempty"`
}

// Text builds a plain rich text run.
func Text(content string) RichText {
	return RichText{Type: "text", Text: TextContent{Content: content}}
}

// BoldText builds a bolded rich text run.
func BoldText(content string) RichText {
	return RichText{
		Type:        "text",
		Text:        TextContent{Content: content},
		Annotations: &Annotations{Bold: true},
	}
}

// Heading builds a heading block at level 1-3. Deeper levels clamp to 3,
// the deepest heading Notion supports.
func Heading(level int, text string) Block {
	tb := &TextBlock{RichText: []RichText{Text(text)}}
	switch level {
	case 1:
		return Block{Object: "block", Type: "heading_1", Heading1: tb}
	case 2:
		return Block{Object: "block", Type: "heading_2", Heading2: tb}
	default:
		return Block{Object: "block", Type: "heading_3", Heading3: tb}
	}
}

// Paragraph builds a paragraph block.
func Paragraph(runs ...RichText) Block {
	return Block{Object: "block", Type: "paragraph", Paragraph: &TextBlock{RichText: runs}}
}

// Bullet builds a bulleted list item.
func Bullet(text string) Block {
	return Block{Object: "block", Type: "bulleted_list_item", Bulleted: &TextBlock{RichText: []RichText{Text(text)}}}
}

// Todo builds a checkbox list item.
func Todo(text string, checked bool) Block {
	return Block{Object: "block", Type: "to_do", ToDo: &ToDoBlock{RichText: []RichText{Text(text)}, Checked: checked}}
}

// Divider builds a horizontal divider.
func Divider() Block {
	return Block{Object: "block", Type: "divider", Divider: &struct{}{}}
}
