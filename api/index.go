package api

import (
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"techstore/app"
	"techstore/config"
)

var (
	application *app.App
	initErr     error
	once        sync.Once
)

func initApp() {
	once.Do(func() {
		gin.SetMode(gin.ReleaseMode)

		cfg := config.LoadConfig()
		logger, err := config.NewLogger(cfg)
		if err != nil {
			initErr = err
			return
		}
		application, initErr = app.New(cfg, logger)
	})
}

// Handler is the serverless entry point. Sessions live only as long as the
// function instance that created them.
func Handler(w http.ResponseWriter, r *http.Request) {
	initApp()
	if initErr != nil {
		log.Println("Failed to initialize application:", initErr)
		http.Error(w, `{"success":false,"message":"Service unavailable"}`, http.StatusServiceUnavailable)
		return
	}
	application.Router.ServeHTTP(w, r)
}
