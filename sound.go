package main

import (
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

const maxSounds = 16

var (
	soundMu      sync.Mutex
	audioContext *audio.Context
	soundPlayers = make(map[*audio.Player]struct{})

	movePCM    []byte
	capturePCM []byte
)

// initSoundContext creates the audio context and pre-renders the two
// move tones. Moves play a short single note; captures a falling pair.
func initSoundContext() {
	audioContext = audio.NewContext(44100)
	rate := audioContext.SampleRate()
	movePCM = renderTones(rate, []float64{523.25}, 70)
	capturePCM = renderTones(rate, []float64{392.0, 261.63}, 80)
}

func playMoveSound(capture bool) {
	if !gs.Sound || audioContext == nil {
		return
	}
	pcm := movePCM
	if capture {
		pcm = capturePCM
	}
	if pcm == nil {
		return
	}

	p := audioContext.NewPlayerFromBytes(pcm)
	p.SetVolume(0.2)

	soundMu.Lock()
	for sp := range soundPlayers {
		if !sp.IsPlaying() {
			sp.Close()
			delete(soundPlayers, sp)
		}
	}
	if len(soundPlayers) >= maxSounds {
		soundMu.Unlock()
		p.Close()
		return
	}
	soundPlayers[p] = struct{}{}
	soundMu.Unlock()

	p.Play()
}

// renderTones concatenates sine notes into little-endian 16-bit PCM,
// with a linear fade-out per note to avoid clicks.
func renderTones(rate int, freqs []float64, durMS int) []byte {
	buf := make([]byte, 0, len(freqs)*rate*durMS/1000*2)
	for _, f := range freqs {
		for _, v := range synthSine(f, rate, durMS) {
			buf = append(buf, byte(v), byte(v>>8))
		}
	}
	return buf
}

// synthSine generates a sine wave for the given frequency and duration.
func synthSine(freq float64, rate, durMS int) []int16 {
	n := rate * durMS / 1000
	samples := make([]int16, n)
	for i := 0; i < n; i++ {
		v := math.Sin(2 * math.Pi * freq * float64(i) / float64(rate))
		env := 1 - float64(i)/float64(n)
		samples[i] = int16(v * env * math.MaxInt16)
	}
	return samples
}
