package main

import (
	"github.com/corray333/backend-labs/restaurant/internal/app"
	"github.com/corray333/backend-labs/restaurant/internal/config"
)

func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
