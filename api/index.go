package handler

import (
	"hotelier/config"
	"hotelier/di"
	"hotelier/shared/logger"
	"net/http"

	_ "hotelier/docs"
)

func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	handler := di.InitializeService()
	handler.ServeHTTP(w, r)
}
