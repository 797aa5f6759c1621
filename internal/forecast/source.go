package forecast

import (
	"fmt"
	"log/slog"
)

type forecastSink interface {
	SetForecast(value int64)
}

// Source runs forecasts and pushes the next-week net change into a wallet.
type Source struct {
	maxWeeks   int
	thresholds Thresholds
	logger     *slog.Logger
}

func NewSource(maxWeeks int, th Thresholds, logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.Default()
	}
	return &Source{maxWeeks: maxWeeks, thresholds: th, logger: logger}
}

func (s *Source) Run(req Request) (Result, error) {
	weeks, err := Compute(req, s.maxWeeks)
	if err != nil {
		return Result{}, fmt.Errorf("Run: %w", err)
	}
	return Result{
		Weeks:   weeks,
		Summary: Summarize(req.CurrentBalance, weeks),
		Alerts:  Alerts(weeks, s.thresholds),
	}, nil
}

// Push computes the forecast and hands the next-week value to sink.
// A nil sink is logged and skipped; the result is still returned.
func (s *Source) Push(sink forecastSink, req Request) (Result, error) {
	res, err := s.Run(req)
	if err != nil {
		return Result{}, fmt.Errorf("Push: %w", err)
	}

	if sink == nil {
		s.logger.Warn("forecast computed without a sink", "weeks", req.Weeks)
		return res, nil
	}
	sink.SetForecast(res.NextWeek())

	if len(res.Alerts) > 0 {
		s.logger.Info("forecast raised alerts", "count", len(res.Alerts))
	}
	return res, nil
}
