package controllers

import (
	"github.com/gin-gonic/gin"
)

func (h *Handler) ShowDashboard(c *gin.Context) {
	dash, err := h.Reports.Dashboard(c.Request.Context())
	if err != nil {
		h.serverError(c, "build dashboard", err)
		return
	}

	degree, err := dash.DegreeChart.PlotlyJSON()
	if err != nil {
		h.serverError(c, "encode degree chart", err)
		return
	}
	program, err := dash.ProgramChart.PlotlyJSON()
	if err != nil {
		h.serverError(c, "encode program chart", err)
		return
	}
	batch, err := dash.BatchChart.PlotlyJSON()
	if err != nil {
		h.serverError(c, "encode batch chart", err)
		return
	}

	h.render(c, "index.html", gin.H{
		"Dashboard":    dash,
		"ChartDegree":  degree,
		"ChartProgram": program,
		"ChartBatch":   batch,
	})
}
