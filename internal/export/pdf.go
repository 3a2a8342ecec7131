package export

import (
	"bytes"
	"fmt"
	"image"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/example/annotator/internal/annotation"
	"github.com/example/annotator/internal/geom"
	"github.com/example/annotator/internal/theme"
)

type pdfConfig struct {
	title  string
	author string
	vector annotation.Document
}

// PDFOption modifies PDF output.
type PDFOption func(*pdfConfig)

// WithTitle sets the document title metadata.
func WithTitle(t string) PDFOption { return func(c *pdfConfig) { c.title = t } }

// WithAuthor sets the document author metadata.
func WithAuthor(a string) PDFOption { return func(c *pdfConfig) { c.author = a } }

// WithVectorAnnotations draws doc as PDF vector shapes over the image
// instead of relying on the annotations already being rasterized into it.
func WithVectorAnnotations(doc annotation.Document) PDFOption {
	return func(c *pdfConfig) { c.vector = doc }
}

// PDF writes a single page PDF sized to img (one pixel per point) with img
// as its full-page content.
func PDF(w io.Writer, img image.Image, opts ...PDFOption) error {
	var cfg pdfConfig
	for _, o := range opts {
		o(&cfg)
	}
	size := img.Bounds().Size()
	if size.X <= 0 || size.Y <= 0 {
		return fmt.Errorf("pdf: empty image")
	}
	data, err := EncodePNG(img)
	if err != nil {
		return err
	}
	pw, ph := float64(size.X), float64(size.Y)
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: pw, Ht: ph},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator("annotator", true)
	if cfg.title != "" {
		pdf.SetTitle(cfg.title, true)
	}
	if cfg.author != "" {
		pdf.SetAuthor(cfg.author, true)
	}
	pdf.AddPage()

	imgOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("surface", imgOpts, bytes.NewReader(data))
	pdf.ImageOptions("surface", 0, 0, pw, ph, false, imgOpts, 0, "")

	if len(cfg.vector) > 0 {
		drawVector(pdf, cfg.vector)
	}
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("pdf: %w", err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("pdf: %w", err)
	}
	return nil
}

func drawVector(pdf *gofpdf.Fpdf, doc annotation.Document) {
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetLineCapStyle("round")
	pdf.SetLineJoinStyle("round")
	for _, o := range doc {
		col, err := theme.ParseColor(o.Color)
		if err != nil {
			col = theme.Default().Foreground
		}
		pdf.SetDrawColor(int(col.R), int(col.G), int(col.B))
		pdf.SetTextColor(int(col.R), int(col.G), int(col.B))
		pdf.SetAlpha(float64(col.A)/255, "Normal")
		pdf.SetLineWidth(o.StrokeWidth)

		switch o.Kind {
		case annotation.KindDraw, annotation.KindLine:
			for i := 1; i < len(o.Points); i++ {
				a, b := o.Points[i-1], o.Points[i]
				pdf.Line(a.X, a.Y, b.X, b.Y)
			}
		case annotation.KindArrow:
			if len(o.Points) < 2 {
				continue
			}
			tail, tip := o.Points[0], o.Points[1]
			pdf.Line(tail.X, tail.Y, tip.X, tip.Y)
			if tail != tip {
				for _, end := range geom.ArrowHead(tail, tip) {
					pdf.Line(tip.X, tip.Y, end.X, end.Y)
				}
			}
		case annotation.KindRectangle:
			n := geom.Normalize(o)
			pdf.Rect(n.X, n.Y, n.Width, n.Height, "D")
		case annotation.KindCircle:
			c, r := geom.Circle(o)
			pdf.Circle(c.X, c.Y, r, "D")
		case annotation.KindText:
			pdf.SetFont("Helvetica", "", o.FontSize)
			pdf.Text(o.X, o.Y, tr(o.Text))
		}
	}
	pdf.SetAlpha(1, "Normal")
}
