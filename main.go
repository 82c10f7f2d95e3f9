package main

import "mpeg2-bot/app"

func main() {
	app.Run()
}
