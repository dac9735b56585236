package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/pid2go/internal/configuration"
	"github.com/markusressel/pid2go/internal/loops"
	"github.com/markusressel/pid2go/internal/util"
	"github.com/qdm12/reprint"
)

type (
	LoopDetails struct {
		loops.Snapshot
		Config configuration.LoopConfig `json:"config"`
	}

	LoopHistory struct {
		Id     string    `json:"id"`
		Values []float64 `json:"values"`
		Min    float64   `json:"min"`
		Max    float64   `json:"max"`
		Avg    float64   `json:"avg"`
	}

	SetPointRequest struct {
		SetPoint *float64 `json:"setPoint"`
	}
)

func registerLoopEndpoints(rest *echo.Echo) {
	group := rest.Group("/loop")

	group.GET("/", getLoops)
	group.GET("/:"+urlParamId+"/", getLoop)
	group.GET("/:"+urlParamId+"/history/", getLoopHistory)
	group.PUT("/:"+urlParamId+"/setpoint/", setLoopSetPoint)
	group.POST("/:"+urlParamId+"/reset/", resetLoop)
}

// returns the state of all running loops, ordered by id
func getLoops(c echo.Context) error {
	items := loops.LoopMap.Items()
	data := make([]loops.Snapshot, 0, len(items))
	for _, id := range util.SortedKeys(items) {
		data = append(data, items[id].Snapshot())
	}
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}

func getLoop(c echo.Context) error {
	id := c.Param(urlParamId)
	loop, exists := loops.LoopMap.Get(id)
	if !exists {
		return returnNotFound(c, id)
	}

	config := reprint.This(loop.GetConfig()).(configuration.LoopConfig)
	data := LoopDetails{
		Snapshot: loop.Snapshot(),
		Config:   config,
	}
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}

func getLoopHistory(c echo.Context) error {
	id := c.Param(urlParamId)
	loop, exists := loops.LoopMap.Get(id)
	if !exists {
		return returnNotFound(c, id)
	}

	values := loop.History()
	data := LoopHistory{
		Id:     id,
		Values: values,
		Min:    util.Min(values),
		Max:    util.Max(values),
		Avg:    util.Avg(values),
	}
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}

func setLoopSetPoint(c echo.Context) error {
	id := c.Param(urlParamId)
	loop, exists := loops.LoopMap.Get(id)
	if !exists {
		return returnNotFound(c, id)
	}

	var request SetPointRequest
	if err := c.Bind(&request); err != nil {
		return returnBadRequest(c, errors.New("request body must be a json object containing 'setPoint'"))
	}
	if request.SetPoint == nil {
		return returnBadRequest(c, errors.New("missing value for 'setPoint'"))
	}

	loop.SetSetPoint(*request.SetPoint)
	return c.JSONPretty(http.StatusOK, loop.Snapshot(), indentationChar)
}

func resetLoop(c echo.Context) error {
	id := c.Param(urlParamId)
	loop, exists := loops.LoopMap.Get(id)
	if !exists {
		return returnNotFound(c, id)
	}

	loop.Reset()
	return c.JSONPretty(http.StatusOK, loop.Snapshot(), indentationChar)
}
