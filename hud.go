package main

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hako/durafmt"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	hudPrinter    = message.NewPrinter(language.AmericanEnglish)
	shortUnits, _ = durafmt.DefaultUnitsCoder.Decode("y:yrs,wk:wks,d:d,h:h,m:m,s:s,ms:ms,us:us")
)

// drawHUD overlays the debug readout: where the camera is, how far out
// it is zoomed, and what the session is doing.
func drawHUD(screen *ebiten.Image, g *Game) {
	pos := g.sess.Board.Position()
	var b strings.Builder

	fmt.Fprintf(&b, "pos  %s , %s\n",
		humanize.BigCommaf(pos.X.Float()),
		humanize.BigCommaf(pos.Y.Float()))
	fmt.Fprintf(&b, "scale %.4g  (ln %.2f)\n",
		g.sess.ScaleFloat(), g.sess.Board.Scale().LnFloat())

	if rem := g.sess.TransitionRemaining(); rem > 0 {
		fmt.Fprintf(&b, "transition %s left\n",
			durafmt.Parse(rem).LimitFirstN(2).Format(shortUnits))
	}
	if g.sess.Board.HasMomentum() {
		v := g.sess.Board.PanVelocity()
		fmt.Fprintf(&b, "momentum %.1f,%.1f zoom %.2f\n",
			v.X, v.Y, g.sess.Board.ScaleVelocity())
	}
	if g.throttled {
		b.WriteString("idle throttle\n")
	}

	hudPrinter.Fprintf(&b, "game %d  move %d  anims %d\n",
		g.match.gameCount+1, g.match.moveCount, len(g.sess.Animations()))
	fmt.Fprintf(&b, "fps %.0f", ebiten.ActualFPS())

	ebitenutil.DebugPrintAt(screen, b.String(), 8, 8)
}
