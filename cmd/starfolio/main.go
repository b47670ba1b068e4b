package main

import (
	"context"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/NimaJafariComp/NimaJafariComp.github.io/core/content"
	game_log "github.com/NimaJafariComp/NimaJafariComp.github.io/internal/log"
	"github.com/NimaJafariComp/NimaJafariComp.github.io/internal/prefs"
	"github.com/NimaJafariComp/NimaJafariComp.github.io/internal/profile"
	"github.com/NimaJafariComp/NimaJafariComp.github.io/internal/soundtrack"
	"github.com/NimaJafariComp/NimaJafariComp.github.io/internal/ui"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatal(err)
	}
	logger := game_log.New(os.Stdout, game_log.LevelFromString(cfg.LogLevel))

	p, err := content.Load(cfg.ContentPath)
	if err != nil {
		logger.Fatalf("%v", err)
	}

	store := prefs.Open(cfg.PrefsPath, logger)
	defer store.Close()

	var player *soundtrack.Player
	if p.Audio.Enabled {
		// A bad track path still leaves a working player on the crackle loop.
		player, err = soundtrack.New(p.Audio, cfg.Soundtrack, store, logger)
		if err != nil {
			logger.Warnf("%v", err)
		}
		defer player.Close()
	}

	var stats <-chan profile.Result
	user := cfg.GitHub.User
	if user == "" {
		user = p.Meta.GitHubUser
	}
	if user != "" {
		client := profile.NewClient(cfg.GitHub.BaseURL, cfg.GitHub.Timeout, logger)
		stats = client.FetchAsync(context.Background(), user)
	}

	g := ui.New(ui.Options{
		Content: p,
		Config:  cfg,
		Prefs:   store,
		Player:  player,
		Profile: stats,
		Logger:  logger,
	})

	// Window settings are ignored under wasm, where ebiten uses the page canvas.
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(p.Meta.Name)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
