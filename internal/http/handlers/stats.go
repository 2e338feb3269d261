package handlers

import (
	"net/http"
)

// StatsSummary reports how many images each generation path has served.
func (a *App) StatsSummary(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, a.Images.Stats())
}
