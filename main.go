package main

import (
	"mergington.dev/activities/cmd/app"
)

func main() {
	app.Run()
}
