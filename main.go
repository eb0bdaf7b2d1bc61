package main

import (
	"context"
	"flag"
	"image"
	"io"
	"log"
	"os"
	"time"

	"github.com/automoto/lodis-galaga/config"
	"github.com/automoto/lodis-galaga/debuglog"
	"github.com/automoto/lodis-galaga/scenes"
	"github.com/automoto/lodis-galaga/systems"
	"github.com/hajimehoshi/ebiten/v2"
)

type Scene interface {
	Update()
	Draw(screen *ebiten.Image)
}

type Game struct {
	bounds image.Rectangle
	scene  Scene
}

// ChangeScene switches to a new scene
func (g *Game) ChangeScene(scene interface{}) {
	g.scene = scene.(Scene)
}

func NewGame() *Game {
	g := &Game{
		bounds: image.Rectangle{},
	}

	if config.Debug.SkipMenu {
		g.scene = scenes.NewShooterScene(g, scenes.DefaultPlayer())
	} else {
		g.scene = scenes.NewPlayerScene(g)
	}

	return g
}

func (g *Game) Update() error {
	g.scene.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	g.bounds = image.Rect(0, 0, config.C.Width, config.C.Height)
	return config.C.Width, config.C.Height
}

// startRemoteLog mirrors log output to the log server. It returns nil when
// remote logging is off for this host.
func startRemoteLog(host string) *debuglog.Logger {
	c := debuglog.DefaultConfig(host)
	config.DebugLog = c
	if !c.Enabled {
		return nil
	}
	logger := debuglog.New(c, debuglog.NewWebSocketTransport(c.ServerURL), systems.Store())
	if c.KeepOriginal {
		log.SetOutput(io.MultiWriter(os.Stderr, logger))
	} else {
		log.SetOutput(logger)
	}
	log.Printf("[debuglog] forwarding logs to %s", c.ServerURL)
	return logger
}

func main() {
	skipMenu := flag.Bool("skip-menu", false, "Skip the player entry form")
	strict := flag.Bool("strict", false, "Log silently dropped draws as warnings")
	grid := flag.Bool("grid", false, "Show the collision grid overlay")
	showPerf := flag.Bool("perf", false, "Show the performance panel")
	autoProfile := flag.Bool("profile", false, "Capture a CPU profile when the frame rate drops")
	assetDir := flag.String("assets", "", "Directory of PNG and sound overrides")
	logHost := flag.String("loghost", "", "Host of the remote log server (empty = off)")
	flag.Parse()

	config.Debug.SkipMenu = *skipMenu
	config.Debug.Strict = *strict
	config.Debug.ShowGrid = *grid
	config.Debug.ShowPerf = *showPerf
	config.Debug.AutoProfile = *autoProfile
	config.Debug.AssetDir = *assetDir

	ebiten.SetWindowSize(config.C.Width, config.C.Height)
	ebiten.SetWindowTitle("Lodis Galaga")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeOnlyFullscreenEnabled)

	// Initialize persistence and load saved settings
	if err := systems.InitPersistence(); err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
	}
	if saved, err := systems.LoadSettings(); err == nil && saved != nil {
		systems.ApplySavedSettingsGlobal(saved)
	}

	var remote *debuglog.Logger
	if *logHost != "" {
		remote = startRemoteLog(*logHost)
	}

	err := ebiten.RunGame(NewGame())

	if remote != nil {
		log.SetOutput(os.Stderr)
		if n := remote.Pending(); n > 0 {
			log.Printf("[debuglog] flushing %d pending entries", n)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if cerr := remote.Close(ctx); cerr != nil {
			log.Printf("Warning: Could not flush remote logs: %v", cerr)
		}
		cancel()
	}
	if err != nil {
		log.Fatal(err)
	}
}
