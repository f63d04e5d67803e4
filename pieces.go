package main

import (
	"image/color"
	"runtime"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/remeh/sizedwaitgroup"

	"chessview/bview"
)

// Piece types are two characters: side then letter, "wK" through "bP".
const spriteSize = 128

var (
	spriteMu     sync.Mutex
	pieceSprites = make(map[bview.PieceType]*ebiten.Image)
)

func allPieceTypes() []bview.PieceType {
	var out []bview.PieceType
	for _, side := range []string{"w", "b"} {
		for _, letter := range []string{"K", "Q", "R", "B", "N", "P"} {
			out = append(out, bview.PieceType(side+letter))
		}
	}
	return out
}

// preRenderPieceSprites builds every sprite up front, in parallel, so
// the first move never stalls on sprite generation.
func preRenderPieceSprites() {
	swg := sizedwaitgroup.New(runtime.NumCPU())
	for _, pt := range allPieceTypes() {
		swg.Add()
		go func(pt bview.PieceType) {
			defer swg.Done()
			img := renderPieceSprite(pt)
			spriteMu.Lock()
			pieceSprites[pt] = img
			spriteMu.Unlock()
		}(pt)
	}
	swg.Wait()
}

func hasVisual(pt bview.PieceType) bool {
	spriteMu.Lock()
	defer spriteMu.Unlock()
	return pieceSprites[pt] != nil
}

func pieceSprite(pt bview.PieceType) *ebiten.Image {
	spriteMu.Lock()
	defer spriteMu.Unlock()
	return pieceSprites[pt]
}

// renderPieceSprite draws a stylized piece silhouette. Shapes are
// simple primitives; readability at small sizes beats fidelity.
func renderPieceSprite(pt bview.PieceType) *ebiten.Image {
	if len(pt) != 2 {
		return nil
	}
	img := ebiten.NewImage(spriteSize, spriteSize)

	fill := color.RGBA{240, 238, 230, 255}
	line := color.RGBA{40, 40, 40, 255}
	if pt[0] == 'b' {
		fill = color.RGBA{55, 50, 48, 255}
		line = color.RGBA{210, 210, 210, 255}
	}

	const (
		s    = float32(spriteSize)
		cx   = s / 2
		base = s * 0.82
	)

	// Common base plinth.
	vector.DrawFilledRect(img, s*0.22, base, s*0.56, s*0.10, fill, true)

	switch pt[1] {
	case 'P':
		vector.DrawFilledCircle(img, cx, s*0.42, s*0.16, fill, true)
		vector.DrawFilledRect(img, s*0.38, s*0.50, s*0.24, s*0.34, fill, true)
	case 'R':
		vector.DrawFilledRect(img, s*0.30, s*0.30, s*0.40, s*0.54, fill, true)
		for i := 0; i < 3; i++ {
			x := s*0.28 + float32(i)*s*0.16
			vector.DrawFilledRect(img, x, s*0.18, s*0.12, s*0.14, fill, true)
		}
	case 'N':
		vector.DrawFilledRect(img, s*0.34, s*0.44, s*0.32, s*0.40, fill, true)
		vector.DrawFilledCircle(img, s*0.42, s*0.34, s*0.18, fill, true)
		vector.DrawFilledRect(img, s*0.52, s*0.20, s*0.16, s*0.12, fill, true)
		vector.DrawFilledCircle(img, s*0.46, s*0.32, s*0.035, line, true)
	case 'B':
		vector.DrawFilledCircle(img, cx, s*0.38, s*0.17, fill, true)
		vector.DrawFilledRect(img, s*0.38, s*0.48, s*0.24, s*0.36, fill, true)
		vector.DrawFilledCircle(img, cx, s*0.17, s*0.05, fill, true)
		vector.StrokeLine(img, cx-s*0.08, s*0.44, cx+s*0.08, s*0.30, 3, line, true)
	case 'Q':
		vector.DrawFilledRect(img, s*0.32, s*0.40, s*0.36, s*0.44, fill, true)
		for i := 0; i < 3; i++ {
			x := s*0.32 + float32(i)*s*0.18
			vector.DrawFilledCircle(img, x, s*0.26, s*0.07, fill, true)
		}
		vector.DrawFilledCircle(img, cx, s*0.36, s*0.16, fill, true)
	case 'K':
		vector.DrawFilledRect(img, s*0.32, s*0.40, s*0.36, s*0.44, fill, true)
		vector.DrawFilledCircle(img, cx, s*0.38, s*0.16, fill, true)
		vector.DrawFilledRect(img, cx-s*0.025, s*0.10, s*0.05, s*0.20, fill, true)
		vector.DrawFilledRect(img, cx-s*0.09, s*0.155, s*0.18, s*0.05, fill, true)
	default:
		img.Deallocate()
		return nil
	}
	return img
}
