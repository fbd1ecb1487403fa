package main

import (
	"hotelier/config"
	"hotelier/di"
	"hotelier/shared/logger"

	_ "hotelier/docs"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
