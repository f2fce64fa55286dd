package document

import "testing"

func TestNew_TitleIsLevelZeroHeading(t *testing.T) {
	doc := New("Unidad 3")
	if len(doc.Blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(doc.Blocks))
	}
	h, ok := doc.Blocks[0].(Heading)
	if !ok {
		t.Fatalf("expected Heading, got %T", doc.Blocks[0])
	}
	if h.Level != 0 || h.Content != "Unidad 3" {
		t.Errorf("expected Heading{0, %q}, got %+v", "Unidad 3", h)
	}
	if doc.Footer != DefaultFooter() {
		t.Errorf("expected default footer, got %+v", doc.Footer)
	}
}

func TestDefaultFooter(t *testing.T) {
	f := DefaultFooter()
	if f.Text != "Generado con DocentIA - Recupera tu tiempo" {
		t.Errorf("unexpected footer text %q", f.Text)
	}
	if f.Align != "center" || f.SizePt != 9 || f.Color != "808080" {
		t.Errorf("unexpected footer styling %+v", f)
	}
}

func TestContentSkipsTitle(t *testing.T) {
	doc := New("T")
	doc.Append(BulletItem{Content: "a"})
	doc.Append(NumberedItem{Content: "b"})

	content := doc.Content()
	if len(content) != 2 {
		t.Fatalf("expected 2 content blocks, got %d", len(content))
	}
	if content[0].Text() != "a" || content[1].Text() != "b" {
		t.Errorf("unexpected content %v", content)
	}
}

func TestContentWithoutTitle(t *testing.T) {
	doc := Document{Blocks: []Block{Heading{Level: 1, Content: "x"}}}
	if len(doc.Content()) != 1 {
		t.Errorf("expected heading level 1 to be kept as content")
	}
}

func TestParagraphText(t *testing.T) {
	p := Paragraph{Runs: []Run{{Text: "Hola "}, {Text: "mundo", Bold: true}, {Text: "!"}}}
	if got := p.Text(); got != "Hola mundo!" {
		t.Errorf("expected %q, got %q", "Hola mundo!", got)
	}
}

func TestPlainText(t *testing.T) {
	doc := New("Doc")
	doc.Append(Heading{Level: 1, Content: "Intro"})
	doc.Append(Paragraph{Runs: []Run{{Text: "uno"}}})
	doc.Append(Paragraph{})
	doc.Append(BulletItem{Content: "dos"})

	want := "Intro\nuno\ndos"
	if got := doc.PlainText(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
