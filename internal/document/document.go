package document

import "strings"

// FooterText is the fixed annotation appended to every exported document.
const FooterText = "Generado con DocentIA - Recupera tu tiempo"

// Block is one structural unit of a Document. The set of implementations is
// closed: Heading, BulletItem, NumberedItem and Paragraph.
type Block interface {
	// Text returns the block's plain text without any markup.
	Text() string
	block()
}

// Heading is a section title. Level 0 is reserved for the document title.
type Heading struct {
	Level   int
	Content string
}

// BulletItem is an unordered list entry.
type BulletItem struct {
	Content string
}

// NumberedItem is an ordered list entry with its source number stripped.
type NumberedItem struct {
	Content string
}

// Paragraph is a sequence of runs sharing one line.
type Paragraph struct {
	Runs []Run
}

// Run is a contiguous span of text with a single emphasis state.
type Run struct {
	Text string
	Bold bool
}

func (h Heading) Text() string      { return h.Content }
func (b BulletItem) Text() string   { return b.Content }
func (n NumberedItem) Text() string { return n.Content }

// Text concatenates the paragraph's runs in order.
func (p Paragraph) Text() string {
	var sb strings.Builder
	for _, r := range p.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

func (Heading) block()      {}
func (BulletItem) block()   {}
func (NumberedItem) block() {}
func (Paragraph) block()    {}

// Footer is presentation metadata rendered after the last block.
type Footer struct {
	Text   string
	Align  string // "center", "start", "end"
	SizePt int
	Color  string // hex RGB without '#'
}

// DefaultFooter returns the DocentIA footer: centered, 9pt, gray.
func DefaultFooter() Footer {
	return Footer{
		Text:   FooterText,
		Align:  "center",
		SizePt: 9,
		Color:  "808080",
	}
}

// Document is an ordered list of blocks with a title and footer.
// Blocks[0] is the title heading when the document was built by the converter.
type Document struct {
	Title  string
	Blocks []Block
	Footer Footer
}

// New starts a document whose first block is the level-0 title heading.
func New(title string) Document {
	return Document{
		Title:  title,
		Blocks: []Block{Heading{Level: 0, Content: title}},
		Footer: DefaultFooter(),
	}
}

// Append adds a block at the end of the document.
func (d *Document) Append(b Block) {
	d.Blocks = append(d.Blocks, b)
}

// Content returns the blocks after the title heading.
func (d Document) Content() []Block {
	if len(d.Blocks) > 0 {
		if h, ok := d.Blocks[0].(Heading); ok && h.Level == 0 {
			return d.Blocks[1:]
		}
	}
	return d.Blocks
}

// PlainText joins the text of every content block, one per line.
func (d Document) PlainText() string {
	var sb strings.Builder
	for _, b := range d.Content() {
		t := b.Text()
		if t == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(t)
	}
	return sb.String()
}
