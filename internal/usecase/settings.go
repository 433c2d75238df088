package usecase

import (
	"time"

	"github.com/polkiloo/bistro/internal/config"
	"github.com/polkiloo/bistro/internal/domain/model"
)

const (
	fallbackPageSize  = 20
	fallbackMaxPage   = 100
	defaultTopSellers = 5
)

// Settings carries the tunables shared by use cases.
type Settings struct {
	Location        *time.Location
	DefaultPageSize int
	MaxPageSize     int
}

// NewSettings extracts use case settings from application config.
func NewSettings(cfg *config.Config) Settings {
	return Settings{
		Location:        cfg.Location,
		DefaultPageSize: cfg.DefaultPageSize,
		MaxPageSize:     cfg.MaxPageSize,
	}
}

func (s Settings) location() *time.Location {
	if s.Location == nil {
		return time.Local
	}
	return s.Location
}

// normalizePage applies defaults to non-positive values and clamps the limit.
func (s Settings) normalizePage(page model.Page) model.Page {
	def, max := s.DefaultPageSize, s.MaxPageSize
	if max <= 0 {
		max = fallbackMaxPage
	}
	if def <= 0 {
		def = fallbackPageSize
	}
	if def > max {
		def = max
	}
	if page.Number < 1 {
		page.Number = 1
	}
	if page.Limit < 1 {
		page.Limit = def
	}
	if page.Limit > max {
		page.Limit = max
	}
	return page
}

func paginate[T any](all []T, page model.Page) []T {
	start := page.Offset()
	if start >= len(all) {
		return []T{}
	}
	end := len(all)
	if page.Limit > 0 && start+page.Limit < end {
		end = start + page.Limit
	}
	return all[start:end]
}
