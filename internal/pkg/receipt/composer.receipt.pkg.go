package receipt

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"

	types "github.com/Baru2006/EasyRecharge-MM/internal/common/type"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/apperror"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/helper"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/imaging"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"
)

const DefaultBrand = "BasseinPay"

var (
	colorBrand   = color.RGBA{R: 0x00, G: 0x88, B: 0xcc, A: 0xff}
	colorText    = color.RGBA{R: 0x1c, G: 0x1c, B: 0x1e, A: 0xff}
	colorMuted   = color.RGBA{R: 0x8a, G: 0x8a, B: 0x8e, A: 0xff}
	colorDivider = color.RGBA{R: 0xe0, G: 0xe0, B: 0xe0, A: 0xff}

	// brand blue at 5% opacity
	colorWatermark = color.NRGBA{R: 0x00, G: 0x88, B: 0xcc, A: 13}
)

const watermarkAngle = -0.3

type Receipt struct {
	Data     []byte
	Width    int
	Height   int
	FileName string
}

type Composer struct {
	brand string
	fonts *fontSet
}

func NewComposer(brand string) (*Composer, error) {
	if brand == "" {
		brand = DefaultBrand
	}
	fonts, err := loadFonts()
	if err != nil {
		return nil, err
	}
	return &Composer{brand: brand, fonts: fonts}, nil
}

func (c *Composer) FileName(orderID string) string {
	return fmt.Sprintf("%s-%s.png", c.brand, orderID)
}

// Compose renders the receipt PNG. Any failure is a ReceiptGenerationError
// and no partial output is returned.
func (c *Composer) Compose(ctx context.Context, details types.OrderDetails, slip *imaging.SlipImage) (*Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperror.NewReceiptGenerationError(err)
	}

	var slipImg image.Image
	if slip != nil && slip.Image != nil {
		slipImg = slip.Image
	}

	layout := NewLayout(len(details.Items), 0, 0)
	if slipImg != nil {
		b := slipImg.Bounds()
		layout = NewLayout(len(details.Items), b.Dx(), b.Dy())
	}

	canvas, err := c.render(details, slipImg, layout)
	if err != nil {
		return nil, apperror.NewReceiptGenerationError(err)
	}

	if err := ctx.Err(); err != nil {
		return nil, apperror.NewReceiptGenerationError(err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, apperror.NewReceiptGenerationError(err)
	}

	return &Receipt{
		Data:     buf.Bytes(),
		Width:    Width,
		Height:   layout.Height(),
		FileName: c.FileName(details.OrderID),
	}, nil
}

func (c *Composer) render(details types.OrderDetails, slip image.Image, layout Layout) (*image.RGBA, error) {
	height := layout.Height()
	canvas := image.NewRGBA(image.Rect(0, 0, Width, height))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	faces := c.fonts.newFaces()
	defer faces.close()

	p := &painter{dst: canvas, faces: faces}

	y := float64(Padding)

	// header
	y += headerBrandGap
	p.centered(c.brand, bold, 36, colorBrand, y)
	y += headerTypeGap
	y += LineHeight
	p.centered(details.Type.ToString(), bold, 28, colorText, y)
	y += headerDateGap
	p.centered(details.Date, regular, 18, colorMuted, y)
	y += headerTailGap

	// rows
	for _, item := range details.Items {
		p.left(item.Label, medium, 20, colorMuted, Padding, y)
		p.rightTruncated(helper.ValueOrNA(item.Value), bold, 22, colorText, Width-Padding, y, ValueMaxWidth)
		y += LineHeight
	}

	// total
	y += dividerGap
	fillRect(canvas, Padding, y, Width-Padding, y+2, colorDivider)
	y += totalGap
	p.left("Total Paid", bold, BaseFontSize, colorText, Padding, y)
	p.right(details.TotalDisplay, bold, 32, colorBrand, Width-Padding, y)
	y += totalSpacer

	if slip != nil {
		p.left("Payment Slip", medium, 20, colorMuted, Padding, y)
		y += slipLabelGap
		slipW, slipH := layout.SlipRenderWidth(), layout.SlipRenderHeight()
		left := Padding + (ContentWidth-slipW)/2
		dst := image.Rect(int(math.Round(left)), int(math.Round(y)), int(math.Round(left+slipW)), int(math.Round(y+slipH)))
		draw.ApproxBiLinear.Scale(canvas, dst, slip, slip.Bounds(), draw.Over, nil)
		y += slipH + Padding
	}

	if err := p.watermark(c.brand, Width/2, y-100); err != nil {
		return nil, err
	}

	footerY := float64(height - Padding)
	p.centered("Order ID: "+details.OrderID, regular, 16, colorMuted, footerY-10)
	p.centered(fmt.Sprintf("Thank you for using %s!", c.brand), regular, 16, colorMuted, footerY+10)

	return canvas, p.err
}

// painter keeps the first font error so drawing code stays linear.
type painter struct {
	dst   *image.RGBA
	faces *faces
	err   error
}

func (p *painter) face(w weight, size float64) font.Face {
	if p.err != nil {
		return nil
	}
	face, err := p.faces.get(w, size)
	if err != nil {
		p.err = err
		return nil
	}
	return face
}

func (p *painter) text(face font.Face, s string, col color.Color, x, y float64) {
	d := &font.Drawer{
		Dst:  p.dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  point(x, y),
	}
	d.DrawString(s)
}

func (p *painter) left(s string, w weight, size float64, col color.Color, x, y float64) {
	if face := p.face(w, size); face != nil {
		p.text(face, s, col, x, y)
	}
}

func (p *painter) right(s string, w weight, size float64, col color.Color, x, y float64) {
	if face := p.face(w, size); face != nil {
		p.text(face, s, col, x-measure(face, s), y)
	}
}

func (p *painter) rightTruncated(s string, w weight, size float64, col color.Color, x, y, maxWidth float64) {
	if face := p.face(w, size); face != nil {
		s = truncate(face, s, maxWidth)
		p.text(face, s, col, x-measure(face, s), y)
	}
}

func (p *painter) centered(s string, w weight, size float64, col color.Color, y float64) {
	if face := p.face(w, size); face != nil {
		p.text(face, s, col, (Width-measure(face, s))/2, y)
	}
}

// watermark draws s rotated about (cx, cy).
func (p *painter) watermark(s string, cx, cy float64) error {
	face := p.face(bold, 100)
	if face == nil {
		return p.err
	}

	metrics := face.Metrics()
	sw := int(math.Ceil(measure(face, s))) + 2
	sh := (metrics.Ascent + metrics.Descent).Ceil() + 2
	if sw <= 0 || sh <= 0 {
		return nil
	}

	src := image.NewNRGBA(image.Rect(0, 0, sw, sh))
	d := &font.Drawer{
		Dst:  src,
		Src:  image.NewUniform(colorWatermark),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(1), Y: metrics.Ascent + fixed.I(1)},
	}
	d.DrawString(s)

	sin, cos := math.Sincos(watermarkAngle)
	hw, hh := float64(sw)/2, float64(sh)/2
	m := f64.Aff3{
		cos, -sin, cx - (cos*hw - sin*hh),
		sin, cos, cy - (sin*hw + cos*hh),
	}
	draw.BiLinear.Transform(p.dst, m, src, src.Bounds(), draw.Over, nil)
	return nil
}

func fillRect(dst *image.RGBA, x0, y0, x1, y1 float64, col color.Color) {
	r := image.Rect(int(x0), int(math.Round(y0)), int(x1), int(math.Round(y1)))
	draw.Draw(dst, r, image.NewUniform(col), image.Point{}, draw.Src)
}

func point(x, y float64) fixed.Point26_6 {
	return fixed.Point26_6{
		X: fixed.Int26_6(math.Round(x * 64)),
		Y: fixed.Int26_6(math.Round(y * 64)),
	}
}
