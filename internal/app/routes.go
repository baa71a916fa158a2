package app

import (
	"hash/maphash"
	"math/rand/v2"
	"net/http"

	"github.com/vancomm/minesweeper-agent/internal/handlers"
)

func createRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func (a *App) loadRoutes() {
	auth := handlers.NewAuth(a.logger, a.db, a.cookies, a.jwt)
	game := handlers.NewGameHandler(a.logger, a.db, a.cookies, a.ws, createRand())
	leaderboard := handlers.NewLeaderboard(a.logger, a.db)

	a.router.HandleFunc("/status", auth.Status).Methods(http.MethodGet)
	a.router.HandleFunc("/register", auth.Register).Methods(http.MethodPost)
	a.router.HandleFunc("/login", auth.Login).Methods(http.MethodPost)
	a.router.HandleFunc("/logout", auth.Logout).Methods(http.MethodPost)

	a.router.HandleFunc("/game", game.NewGame).Methods(http.MethodPost)
	a.router.HandleFunc("/game/{id}", game.Fetch).Methods(http.MethodGet)
	a.router.HandleFunc("/game/{id}/move", game.MakeAMove).Methods(http.MethodPost)
	a.router.HandleFunc("/game/{id}/forfeit", game.Forfeit).Methods(http.MethodPost)
	a.router.HandleFunc("/game/{id}/hint", game.Hint).Methods(http.MethodGet)
	a.router.HandleFunc("/game/{id}/auto", game.Auto).Methods(http.MethodPost)
	a.router.HandleFunc("/game/{id}/connect", game.ConnectWS)

	a.router.HandleFunc("/leaderboard", leaderboard.Get).Methods(http.MethodGet)
}
