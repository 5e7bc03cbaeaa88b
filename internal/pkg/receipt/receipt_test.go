package receipt

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/Baru2006/EasyRecharge-MM/internal/common/enum"
	types "github.com/Baru2006/EasyRecharge-MM/internal/common/type"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/apperror"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/imaging"
)

func sampleDetails(items int) types.OrderDetails {
	d := types.OrderDetails{
		OrderID:      "BP-1700000000000-abc123",
		Type:         enum.SIM_RECHARGE,
		CreatedAt:    time.Date(2024, 3, 1, 14, 5, 0, 0, time.UTC),
		Date:         "3/1/2024, 2:05:00 PM",
		Total:        2400,
		TotalDisplay: "2,400 MMK",
	}
	for i := 0; i < items; i++ {
		d.Items = append(d.Items, types.OrderItem{Label: "Label", Value: "Value"})
	}
	return d
}

func TestLayoutHeightGrowsWithItems(t *testing.T) {
	prev := NewLayout(0, 0, 0).Height()
	for n := 1; n <= 12; n++ {
		h := NewLayout(n, 0, 0).Height()
		if h <= prev {
			t.Fatalf("height with %d items = %d, not greater than %d", n, h, prev)
		}
		prev = h
	}
}

func TestLayoutHeightGrowsWithSlip(t *testing.T) {
	none := NewLayout(3, 0, 0).Height()
	short := NewLayout(3, 600, 800).Height()
	tall := NewLayout(3, 600, 900).Height()

	if short <= none {
		t.Fatalf("slip did not add height: %d <= %d", short, none)
	}
	if tall <= short {
		t.Fatalf("taller slip did not add height: %d <= %d", tall, short)
	}
}

func TestLayoutHeightWithoutSlip(t *testing.T) {
	// 40 + 158.4 + 3*38.4 + 120 + 40 + 40 = 513.6
	if got := NewLayout(3, 0, 0).Height(); got != 514 {
		t.Fatalf("Height() = %d, want 514", got)
	}
}

func TestSlipRenderHeight(t *testing.T) {
	l := NewLayout(1, 310, 620)
	if got := l.SlipRenderHeight(); got != 1240 {
		t.Fatalf("SlipRenderHeight() = %v, want 1240", got)
	}
	if NewLayout(1, 0, 10).HasSlip() {
		t.Fatal("zero width slip should not count")
	}
}

func TestLayoutCapsThinSlip(t *testing.T) {
	l := NewLayout(3, 1, 1280)
	if got := l.SlipRenderHeight(); got != MaxSlipHeight {
		t.Fatalf("SlipRenderHeight() = %v, want %v", got, MaxSlipHeight)
	}
	if w := l.SlipRenderWidth(); w < 1 || w > ContentWidth {
		t.Fatalf("SlipRenderWidth() = %v, want within [1, %d]", w, ContentWidth)
	}

	limit := NewLayout(3, 0, 0).Height() + slipLabelGap + MaxSlipHeight + Padding + 1
	if h := l.Height(); h > limit {
		t.Fatalf("Height() = %d, want at most %d", h, limit)
	}
	// below the cap a taller slip still makes a taller receipt
	if NewLayout(3, 900, 1600).Height() <= NewLayout(3, 900, 1200).Height() {
		t.Fatal("9:16 slip should be taller than 3:4")
	}
	if got := NewLayout(3, 600, 800).SlipRenderWidth(); got != ContentWidth {
		t.Fatalf("SlipRenderWidth() = %v, want %d", got, ContentWidth)
	}
}

func TestComposeThinProcessedSlip(t *testing.T) {
	thin := image.NewGray(image.Rect(0, 0, 1, 4000))
	var raw bytes.Buffer
	if err := png.Encode(&raw, thin); err != nil {
		t.Fatalf("encode: %v", err)
	}
	file := &types.SlipFile{FileName: "thin.png", ContentType: "image/png", Size: int64(raw.Len()), Data: raw.Bytes()}

	slip, err := imaging.NewPreprocessor(imaging.DefaultOptions()).Process(context.Background(), file)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	c, err := NewComposer("BasseinPay")
	if err != nil {
		t.Fatalf("NewComposer: %v", err)
	}
	rc, err := c.Compose(context.Background(), sampleDetails(3), slip)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}

	limit := NewLayout(3, 0, 0).Height() + slipLabelGap + MaxSlipHeight + Padding + 1
	if rc.Height > limit {
		t.Fatalf("Height = %d, want at most %d", rc.Height, limit)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(rc.Data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.Width != Width || cfg.Height != rc.Height {
		t.Fatalf("png %dx%d, want %dx%d", cfg.Width, cfg.Height, Width, rc.Height)
	}
}

func TestTruncateFitsWidth(t *testing.T) {
	fonts, err := loadFonts()
	if err != nil {
		t.Fatalf("loadFonts: %v", err)
	}
	faces := fonts.newFaces()
	defer faces.close()

	face, err := faces.get(bold, 22)
	if err != nil {
		t.Fatalf("face: %v", err)
	}

	long := "https://www.facebook.com/some.really.long.profile.name/posts/1234567890123456789"
	got := truncate(face, long, ValueMaxWidth)
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("truncate(%q) = %q, want ellipsis", long, got)
	}
	if w := measure(face, got); w > ValueMaxWidth {
		t.Fatalf("truncated width = %v, want <= %d", w, ValueMaxWidth)
	}

	short := "09123456789"
	if got := truncate(face, short, ValueMaxWidth); got != short {
		t.Fatalf("truncate(%q) = %q, want unchanged", short, got)
	}
}

func TestComposeProducesPNG(t *testing.T) {
	c, err := NewComposer("")
	if err != nil {
		t.Fatalf("NewComposer: %v", err)
	}

	details := sampleDetails(3)
	details.Items[2].Value = ""

	rc, err := c.Compose(context.Background(), details, nil)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if rc.FileName != "BasseinPay-BP-1700000000000-abc123.png" {
		t.Fatalf("FileName = %q", rc.FileName)
	}

	img, err := png.Decode(bytes.NewReader(rc.Data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != Width || img.Bounds().Dy() != NewLayout(3, 0, 0).Height() {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	if rc.Height != img.Bounds().Dy() {
		t.Fatalf("Height = %d, image height %d", rc.Height, img.Bounds().Dy())
	}
}

func TestComposeWithSlip(t *testing.T) {
	c, err := NewComposer("BasseinPay")
	if err != nil {
		t.Fatalf("NewComposer: %v", err)
	}

	bitmap := image.NewRGBA(image.Rect(0, 0, 300, 600))
	for y := 0; y < 600; y++ {
		for x := 0; x < 300; x++ {
			bitmap.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	slip := &imaging.SlipImage{Image: bitmap, Width: 300, Height: 600}

	rc, err := c.Compose(context.Background(), sampleDetails(4), slip)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	want := NewLayout(4, 300, 600).Height()
	if rc.Height != want {
		t.Fatalf("Height = %d, want %d", rc.Height, want)
	}

	img, err := png.Decode(bytes.NewReader(rc.Data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	// a pixel in the middle of the slip area is the slip colour
	top := Padding + headerHeight + LineHeight*4 + totalHeight + slipLabelGap
	r, g, b, _ := img.At(Width/2, int(top)+600).RGBA()
	if r>>8 < 150 || g>>8 > 80 || b>>8 > 80 {
		t.Fatalf("slip pixel = %d,%d,%d, want red", r>>8, g>>8, b>>8)
	}
}

func TestComposeCancelled(t *testing.T) {
	c, err := NewComposer("")
	if err != nil {
		t.Fatalf("NewComposer: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = c.Compose(ctx, sampleDetails(1), nil)
	if !errors.Is(err, apperror.ErrReceiptGeneration) {
		t.Fatalf("err = %v, want ReceiptGenerationError", err)
	}
}
