package restapi

import (
	"net/http"

	"viewer.bysykkel.dev/internal/clock"
	"viewer.bysykkel.dev/internal/models"
)

// currentTimeHandler writes the server's notion of now, the same clock that
// stamps every response envelope.
func (api *RestAPI) currentTimeHandler(w http.ResponseWriter, r *http.Request) {
	clk := api.Clock
	if clk == nil {
		clk = clock.RealClock{}
	}

	timeData := models.NewCurrentTimeData(clk.Now())
	response := models.NewEntryResponse(timeData, clk)

	api.sendResponse(w, r, response)
}
