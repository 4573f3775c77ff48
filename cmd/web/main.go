package main

import "github.com/visipakalpojumi/backend/internal/app"

func main() {
	app.Run()
}
