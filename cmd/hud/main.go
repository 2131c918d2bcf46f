package main

import "github.com/jacksonbarkworth-cmyk/playerHUDapp/cmd/hud/root"

func main() {
	root.Execute()
}
