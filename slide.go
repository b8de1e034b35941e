package md2deck

import "strings"

// Slide is one heading section of the source document.
// A sealed Slide always has a non-empty Title.
type Slide struct {
	Title      string
	Subtitle   string
	Blocks     []Block
	Notes      string
	Background string
}

// BlockKind identifies the variant of a Block.
type BlockKind string

// Block kinds.
const (
	KindParagraph BlockKind = "paragraph"
	KindBullets   BlockKind = "bullets"
	KindImage     BlockKind = "image"
	KindCode      BlockKind = "code"
	KindTable     BlockKind = "table"
)

// Block is one typed unit of slide content.
// The concrete types are Paragraph, Bullets, Image, Code and Table.
// A fragment of a split block has the same concrete type as its source.
type Block interface {
	Kind() BlockKind
	isBlock()
}

// Paragraph holds one logical paragraph. Text may contain embedded newlines.
type Paragraph struct {
	Text string
}

// BulletKind distinguishes unordered from numbered list markers.
type BulletKind string

// Bullet marker kinds.
const (
	BulletPlain    BulletKind = "bullet"
	BulletNumbered BulletKind = "numbered"
)

// MaxIndentLevel is the deepest bullet nesting level.
const MaxIndentLevel = 3

// BulletItem is one line of a Bullets block.
type BulletItem struct {
	Text        string
	Kind        BulletKind
	IndentLevel int // 0..MaxIndentLevel
}

// Bullets holds a run of consecutive bullet lines. Never empty.
type Bullets struct {
	Items []BulletItem
}

// SizingMode controls how an image fills its box.
type SizingMode string

// Image sizing modes. SizingDefault leaves the choice to the renderer.
const (
	SizingDefault SizingMode = ""
	SizingCover   SizingMode = "cover"
	SizingContain SizingMode = "contain"
)

// Image references a picture by path.
type Image struct {
	AltText string
	Path    string
	Sizing  SizingMode
}

// Code holds fenced code lines joined by newlines, fence markers stripped.
type Code struct {
	Text     string
	Language string
}

// Table holds pipe-delimited rows. Row lengths may differ.
type Table struct {
	Rows [][]string
}

func (Paragraph) Kind() BlockKind { return KindParagraph }
func (Bullets) Kind() BlockKind   { return KindBullets }
func (Image) Kind() BlockKind     { return KindImage }
func (Code) Kind() BlockKind      { return KindCode }
func (Table) Kind() BlockKind     { return KindTable }

func (Paragraph) isBlock() {}
func (Bullets) isBlock()   {}
func (Image) isBlock()     {}
func (Code) isBlock()      {}
func (Table) isBlock()     {}

// textLines splits block text into display lines, ignoring the trailing
// separator a split head keeps.
func textLines(text string) []string {
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
