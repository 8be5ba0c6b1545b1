package app

import (
	"hash/maphash"
	"math/rand/v2"
	"net/http"
	"strings"

	"github.com/tobz1000/mines/internal/handlers"
	"github.com/tobz1000/mines/internal/middleware"
)

func createRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func (a *App) routes(games handlers.Games) http.Handler {
	base := strings.TrimRight(a.cfg.BasePath, "/")
	game := handlers.NewGameHandler(a.logger, games, a.ws)

	router := http.NewServeMux()
	router.HandleFunc("POST "+base+"/new", game.NewGame)
	router.HandleFunc("POST "+base+"/turn", game.Turn)
	router.HandleFunc("POST "+base+"/status", game.Status)
	router.HandleFunc("GET "+base+"/status", game.StatusQuery)
	router.HandleFunc("GET "+base+"/{id}/connect", game.ConnectWS)

	return middleware.Wrap(
		router,
		middleware.Logging(a.logger),
		middleware.Cors(),
	)
}
