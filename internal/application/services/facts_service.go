package services

import (
	"time"
)

// defaultFunFacts is the built-in rotation shown on the fun-facts widget
var defaultFunFacts = []string{
	"A group of flamingos is called a flamboyance! 🦩",
	"Honey never spoils - it can last thousands of years! 🍯",
	"A day on Venus is longer than its year! 🪐",
	"Octopuses have three hearts! 🐙",
}

// FunFactService rotates through a fixed fact list on a time interval,
// so every display shows the same fact at the same moment.
type FunFactService struct {
	facts    []string
	interval time.Duration
	epoch    time.Time
}

// NewFunFactService creates a new fun fact service
func NewFunFactService(interval time.Duration) *FunFactService {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &FunFactService{
		facts:    defaultFunFacts,
		interval: interval,
		epoch:    time.Unix(0, 0),
	}
}

// Current returns the fact for the given moment and its index
func (s *FunFactService) Current(now time.Time) (string, int) {
	idx := int(now.Sub(s.epoch)/s.interval) % len(s.facts)
	if idx < 0 {
		idx += len(s.facts)
	}
	return s.facts[idx], idx
}

// All returns the full rotation
func (s *FunFactService) All() []string {
	return append([]string(nil), s.facts...)
}
