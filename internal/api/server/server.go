package server

import (
	"net/http"

	"github.com/wb-go/wbf/ginext"

	"github.com/avraam311/bg-remover/internal/api/handlers"
	"github.com/avraam311/bg-remover/internal/api/handlers/images"
	"github.com/avraam311/bg-remover/internal/middlewares"
)

func NewRouter(ginMode string, handlerIm *images.Handler) *ginext.Engine {
	e := ginext.New(ginMode)
	e.HandleMethodNotAllowed = true

	e.Use(middlewares.CORSMiddleware())
	e.Use(middlewares.RequestIDMiddleware())
	e.Use(ginext.Logger())
	e.Use(ginext.Recovery())

	api := e.Group("/api")
	{
		api.POST("/remove-background/", handlerIm.RemoveBackground)
		api.GET("/health", handlers.Health)
	}

	return e
}

func NewServer(addr string, router *ginext.Engine) *http.Server {
	return &http.Server{
		Addr:    addr,
		Handler: router,
	}
}
