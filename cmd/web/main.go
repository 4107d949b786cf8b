package main

import "github.com/Kentemie/Nimbus/internal/app"

func main() {
	app.Run()
}
