package webui

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"viewer.bysykkel.dev/internal/appconf"
	"viewer.bysykkel.dev/internal/stations"
)

func TestTableHandlerRendersRows(t *testing.T) {
	webUI := newTestWebUI(t, appconf.Development, mergedEvents()...)

	rr := serve(t, webUI, "/")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))

	body := rr.Body.String()
	for _, header := range []string{"<th>ID</th>", "<th>Name</th>", "<th>Address</th>", "<th>No. bikes available</th>"} {
		assert.Contains(t, body, header)
	}
	assert.Contains(t, body, `<tr><td>1</td><td>Bogstadveien</td><td>Bogstadveien 27</td><td class="count">5</td></tr>`)
	assert.Contains(t, body, `<td class="count"></td>`, "station without a count renders blank")
	assert.Contains(t, body, "Tom &amp; Jerry&#39;s &lt;plass&gt;")
	assert.Less(t, strings.Index(body, "Bogstadveien 27"), strings.Index(body, "Kirkeveien 64"), "rows keep feed order")
	assert.Contains(t, body, "Updated 2024-06-15T14:29:00Z")
	assert.NotContains(t, body, `class="error"`)
}

func TestTableHandlerErrorReplacesTable(t *testing.T) {
	events := append(mergedEvents(), stations.Event{Kind: stations.AvailabilityFailed, Message: "Not Found"})
	webUI := newTestWebUI(t, appconf.Development, events...)

	rr := serve(t, webUI, "/")

	body := rr.Body.String()
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, body, `<p class="error">Not Found</p>`)
	assert.NotContains(t, body, "<table>")
	assert.NotContains(t, body, "Updated")
}

func TestTableHandlerBeforeFirstLoad(t *testing.T) {
	webUI := newTestWebUI(t, appconf.Development)

	rr := serve(t, webUI, "/")

	body := rr.Body.String()
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, body, "<table>")
	assert.NotContains(t, body, "<td>")
}

func TestTableHandlerOnlyServesRoot(t *testing.T) {
	webUI := newTestWebUI(t, appconf.Development, mergedEvents()...)

	rr := serve(t, webUI, "/elsewhere")

	assert.Equal(t, http.StatusNotFound, rr.Code)
}
