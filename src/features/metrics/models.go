package metrics

import "strconv"

// ChartData represents data for Chart.js charts.
type ChartData struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// Dataset represents a Chart.js dataset.
type Dataset struct {
	Label           string    `json:"label"`
	Data            []float64 `json:"data"`
	BackgroundColor []string  `json:"backgroundColor,omitempty"`
	BorderColor     []string  `json:"borderColor,omitempty"`
}

// GenreChartData converts genre metrics to chart format.
func (o *Overview) GenreChartData() *ChartData {
	labels := make([]string, len(o.GenreCounts))
	data := make([]float64, len(o.GenreCounts))
	colors := make([]string, len(o.GenreCounts))

	colorPalette := []string{
		"#FF6384", "#36A2EB", "#FFCE56", "#4BC0C0", "#9966FF",
		"#FF9F40", "#C9CBCF",
	}

	for i, metric := range o.GenreCounts {
		labels[i] = metric.Key
		data[i] = float64(metric.Value)
		colors[i] = colorPalette[i%len(colorPalette)]
	}

	return &ChartData{
		Labels: labels,
		Datasets: []Dataset{{
			Label:           "Songs by Genre",
			Data:            data,
			BackgroundColor: colors,
		}},
	}
}

// YearBarData converts the year distribution to bar chart format. Unknown
// years are left out and the rest come in ascending order.
func (o *Overview) YearBarData() *ChartData {
	var labels []string
	var data []float64
	for _, metric := range o.YearDistribution {
		if _, err := strconv.Atoi(metric.Key); err != nil {
			continue
		}
		labels = append(labels, metric.Key)
		data = append(data, float64(metric.Value))
	}

	return &ChartData{
		Labels: labels,
		Datasets: []Dataset{{
			Label:           "Songs by Year",
			Data:            data,
			BackgroundColor: []string{"#36A2EB"},
		}},
	}
}
