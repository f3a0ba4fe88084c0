// Package weather implements the weather provider against the
// OpenWeatherMap API.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/homeboard/core/internal/domain/entities"
	"github.com/homeboard/core/internal/infrastructure/config"
	"github.com/homeboard/core/internal/infrastructure/logger"
)

const forecastDays = 5

// Client calls the OpenWeatherMap current-conditions and 5-day/3-hour
// forecast endpoints.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *logger.Logger
}

// NewClient creates an OpenWeatherMap client
func NewClient(cfg config.WeatherConfig, log *logger.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    cfg.BaseURL,
		logger:     log.WithComponent("openweather"),
	}
}

type currentResponse struct {
	Name string `json:"name"`
	Sys  struct {
		Country string `json:"country"`
	} `json:"sys"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
		Pressure int     `json:"pressure"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Weather []struct {
		Main string `json:"main"`
		Icon string `json:"icon"`
	} `json:"weather"`
}

// CurrentWeather fetches current conditions for the city
func (c *Client) CurrentWeather(ctx context.Context, city string, units entities.Units, apiKey string) (*entities.WeatherDetails, error) {
	if apiKey == "" {
		return nil, entities.ErrMissingAPIKey
	}

	var data currentResponse
	if err := c.get(ctx, "/weather", city, units, apiKey, &data); err != nil {
		return nil, err
	}

	details := &entities.WeatherDetails{
		Temp:     int(math.Round(data.Main.Temp)),
		Humidity: data.Main.Humidity,
		Wind:     int(math.Round(data.Wind.Speed)),
		Pressure: data.Main.Pressure,
		City:     data.Name,
		Country:  data.Sys.Country,
	}
	if len(data.Weather) > 0 {
		details.Condition = data.Weather[0].Main
		details.Icon = data.Weather[0].Icon
	} else {
		details.Condition = "N/A"
		details.Icon = "01d"
	}
	return details, nil
}

type forecastSample struct {
	DtTxt string  `json:"dt_txt"`
	Pop   float64 `json:"pop"`
	Main  struct {
		TempMin float64 `json:"temp_min"`
		TempMax float64 `json:"temp_max"`
	} `json:"main"`
	Weather []struct {
		Icon string `json:"icon"`
	} `json:"weather"`
}

type forecastResponse struct {
	List []forecastSample `json:"list"`
}

// Forecast fetches the 3-hour forecast and aggregates it into 5 daily
// entries.
func (c *Client) Forecast(ctx context.Context, city string, units entities.Units, apiKey string) ([]entities.ForecastDay, error) {
	if apiKey == "" {
		return nil, entities.ErrMissingAPIKey
	}

	var data forecastResponse
	if err := c.get(ctx, "/forecast", city, units, apiKey, &data); err != nil {
		return nil, err
	}

	return aggregateForecast(data.List), nil
}

func (c *Client) get(ctx context.Context, path, city string, units entities.Units, apiKey string, out interface{}) error {
	q := url.Values{}
	q.Set("q", city)
	q.Set("appid", apiKey)
	q.Set("units", string(units))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to build weather request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.logger.LogUpstreamCall("openweathermap", path, float64(time.Since(start).Milliseconds()), err)
	if err != nil {
		return fmt.Errorf("%w: %v", entities.ErrWeatherUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: upstream returned %d", entities.ErrWeatherUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: bad response body: %v", entities.ErrWeatherUnavailable, err)
	}
	return nil
}

// aggregateForecast groups 3-hour samples by calendar date, taking the
// min/max temperature across each day, the mean precipitation
// probability, and the midday sample's icon as representative.
func aggregateForecast(samples []forecastSample) []entities.ForecastDay {
	type bucket struct {
		min, max   float64
		popSum     float64
		count      int
		icon       string
		iconOffset float64 // hours from midday of the chosen icon sample
	}

	buckets := make(map[string]*bucket)
	var order []string

	for _, s := range samples {
		ts, err := time.Parse("2006-01-02 15:04:05", s.DtTxt)
		if err != nil {
			continue
		}
		day := ts.Format("2006-01-02")

		b, ok := buckets[day]
		if !ok {
			b = &bucket{min: s.Main.TempMin, max: s.Main.TempMax, iconOffset: 24}
			buckets[day] = b
			order = append(order, day)
		}

		if s.Main.TempMin < b.min {
			b.min = s.Main.TempMin
		}
		if s.Main.TempMax > b.max {
			b.max = s.Main.TempMax
		}
		b.popSum += s.Pop
		b.count++

		if len(s.Weather) > 0 {
			offset := math.Abs(float64(ts.Hour()) - 12)
			if offset < b.iconOffset {
				b.iconOffset = offset
				b.icon = s.Weather[0].Icon
			}
		}
	}

	sort.Strings(order)
	if len(order) > forecastDays {
		order = order[:forecastDays]
	}

	days := make([]entities.ForecastDay, 0, len(order))
	for _, day := range order {
		b := buckets[day]
		pop := 0
		if b.count > 0 {
			pop = int(math.Round(b.popSum / float64(b.count) * 100))
		}
		days = append(days, entities.ForecastDay{
			DateISO: day,
			Icon:    b.icon,
			Min:     int(math.Round(b.min)),
			Max:     int(math.Round(b.max)),
			Pop:     pop,
		})
	}
	return days
}
