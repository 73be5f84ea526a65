package services

import (
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"resumefit/analyzer/internal/models"
)

// ChartRenderer builds renderable chart objects from already-extracted
// signals. No parsing happens here; charts are rebuilt per request and never
// stored.
type ChartRenderer interface {
	RenderScoreBar(score int) *charts.Bar
	RenderSkillRadar(skills models.SkillScoreList) *charts.Radar
}

type chartRenderer struct{}

func NewChartRenderer() ChartRenderer {
	return &chartRenderer{}
}

// RenderScoreBar implements ChartRenderer. A single horizontal bar on a
// fixed 0-100 axis, labeled with the numeric value.
func (c *chartRenderer) RenderScoreBar(score int) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Resume Match Score"}),
		charts.WithYAxisOpts(opts.YAxis{Max: 100}),
	)

	bar.SetXAxis([]string{"Resume Match"}).
		AddSeries("match", []opts.BarData{{Value: score}},
			charts.WithLabelOpts(opts.Label{
				Show:      opts.Bool(true),
				Position:  "right",
				Formatter: "{c}%",
			}),
		)
	bar.XYReversal()

	return bar
}

// RenderSkillRadar implements ChartRenderer. One axis per skill on a fixed
// 0-100 scale, in source order. An empty skill list has no axes to draw and
// yields nil instead of a degenerate chart.
func (c *chartRenderer) RenderSkillRadar(skills models.SkillScoreList) *charts.Radar {
	if len(skills) == 0 {
		return nil
	}

	indicators := make([]*opts.Indicator, 0, len(skills))
	values := make([]float64, 0, len(skills))
	for _, skill := range skills {
		indicators = append(indicators, &opts.Indicator{Name: skill.Name, Max: 100})
		values = append(values, skill.Score)
	}

	radar := charts.NewRadar()
	radar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Skills Overview"}),
		charts.WithRadarComponentOpts(opts.RadarComponent{Indicator: indicators}),
	)
	radar.AddSeries("Proficiency", []opts.RadarData{{Value: values}})

	return radar
}
