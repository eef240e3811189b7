package main

import (
	"context"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/mtomcal/stick-rumble-client/config"
	"github.com/mtomcal/stick-rumble-client/network"
	"github.com/mtomcal/stick-rumble-client/scenes"
)

type Scene interface {
	Update()
	Draw(screen *ebiten.Image)
}

type Game struct {
	scene Scene
}

func (g *Game) Update() error {
	g.scene.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	return config.C.Width, config.C.Height
}

func main() {
	flag.StringVar(&config.C.ServerAddress, "server", config.C.ServerAddress, "game server host:port")
	flag.Parse()

	client := network.NewClient()
	client.Connect(context.Background(), config.C.ServerAddress)

	game := &Game{scene: scenes.NewArenaScene(client)}

	ebiten.SetWindowSize(config.C.Width, config.C.Height)
	ebiten.SetWindowTitle("Stick Rumble")

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}

	client.Disconnect()
}
