package main

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	dark "github.com/thiagokokada/dark-mode-go"
)

type Settings struct {
	FOVPref     float64 `json:"fovPref"`
	Perspective bool    `json:"perspective"`
	Vsync       bool    `json:"vsync"`
	Sound       bool    `json:"sound"`
	ShowHUD     bool    `json:"showHUD"`
	Theme       string  `json:"theme"`
	MoveDelayMS int     `json:"moveDelayMS"`
	LastPGN     string  `json:"lastPGN"`
}

var gs = Settings{
	FOVPref:     0.5,
	Vsync:       true,
	Sound:       true,
	ShowHUD:     true,
	MoveDelayMS: 1200,
}

func loadSettings() bool {
	path := filepath.Join(baseDir, "settings.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return false
	}
	gs = s
	if gs.MoveDelayMS <= 0 {
		gs.MoveDelayMS = 1200
	}
	if gs.FOVPref < 0 || gs.FOVPref > 1 {
		gs.FOVPref = 0.5
	}
	return true
}

func applySettings(g *Game) {
	ebiten.SetVsyncEnabled(gs.Vsync)
	g.sess.Cam.SetFOVPref(gs.FOVPref)
	g.sess.SetPerspective(gs.Perspective)
	applyTheme()
}

// applyTheme resolves the board palette. An explicit setting wins;
// otherwise the OS appearance decides.
func applyTheme() {
	theme := gs.Theme
	if theme == "" {
		darkMode, err := dark.IsDarkMode()
		if err == nil && darkMode {
			theme = "dark"
		} else {
			theme = "light"
		}
	}
	setBoardTheme(theme)
}

func saveSettings() {
	data, err := json.MarshalIndent(gs, "", "  ")
	if err != nil {
		log.Printf("save settings: %v", err)
		return
	}
	path := filepath.Join(baseDir, "settings.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		log.Printf("save settings: %v", err)
	}
}
