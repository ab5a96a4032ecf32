package model

// BlockType tags the variant held by a Block.
type BlockType string

const (
	BlockParagraph    BlockType = "Paragraph"
	BlockTable        BlockType = "Table"
	BlockPageBreak    BlockType = "PageBreak"
	BlockSectionBreak BlockType = "SectionBreak"
	BlockImage        BlockType = "Image"
)

// Block is a tagged union over the content that can appear, in order,
// within a Section, a table Cell, a header/footer, or speaker notes.
// At most one of Paragraph/Table/Image is non-nil, selected by Type;
// PageBreak and SectionBreak blocks carry none.
type Block struct {
	Type BlockType `json:"type"`

	Paragraph *Paragraph `json:"paragraph,omitempty"`
	Table     *Table     `json:"table,omitempty"`
	Image     *ImageRef  `json:"image,omitempty"`
}

// ImageRef is the Image block variant: a reference into Document.Resources
// plus optional alt text and rendering dimensions (pixels at 96 dpi,
// converted from the drawing's EMU extents).
type ImageRef struct {
	ResourceID string `json:"resource_id"`
	Alt        string `json:"alt,omitempty"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
}

// NewParagraphBlock wraps p as a Block.
func NewParagraphBlock(p *Paragraph) Block { return Block{Type: BlockParagraph, Paragraph: p} }

// NewTableBlock wraps t as a Block.
func NewTableBlock(t *Table) Block { return Block{Type: BlockTable, Table: t} }

// NewImageBlock wraps an image reference as a Block.
func NewImageBlock(img *ImageRef) Block { return Block{Type: BlockImage, Image: img} }

// NewPageBreakBlock returns a PageBreak block.
func NewPageBreakBlock() Block { return Block{Type: BlockPageBreak} }

// NewSectionBreakBlock returns a SectionBreak block.
func NewSectionBreakBlock() Block { return Block{Type: BlockSectionBreak} }
