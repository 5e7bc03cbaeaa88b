package receipt

import (
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

type weight int

const (
	regular weight = iota
	medium
	bold
)

type fontSet struct {
	fonts map[weight]*opentype.Font
}

func loadFonts() (*fontSet, error) {
	sources := map[weight][]byte{
		regular: goregular.TTF,
		medium:  gomedium.TTF,
		bold:    gobold.TTF,
	}

	set := &fontSet{fonts: make(map[weight]*opentype.Font, len(sources))}
	for w, src := range sources {
		f, err := opentype.Parse(src)
		if err != nil {
			return nil, fmt.Errorf("failed to parse font: %w", err)
		}
		set.fonts[w] = f
	}
	return set, nil
}

// faces are not safe for concurrent use, so each render builds its own.
type faces struct {
	set   *fontSet
	cache map[faceKey]font.Face
}

type faceKey struct {
	weight weight
	size   float64
}

func (s *fontSet) newFaces() *faces {
	return &faces{set: s, cache: map[faceKey]font.Face{}}
}

func (f *faces) get(w weight, size float64) (font.Face, error) {
	key := faceKey{weight: w, size: size}
	if face, ok := f.cache[key]; ok {
		return face, nil
	}
	face, err := opentype.NewFace(f.set.fonts[w], &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}
	f.cache[key] = face
	return face, nil
}

func (f *faces) close() {
	for _, face := range f.cache {
		face.Close()
	}
}

func measure(face font.Face, s string) float64 {
	return float64(font.MeasureString(face, s)) / 64
}

// truncate shortens s until s+"..." fits maxWidth.
func truncate(face font.Face, s string, maxWidth float64) string {
	if measure(face, s) <= maxWidth {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && measure(face, string(runes)+"...") > maxWidth {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
