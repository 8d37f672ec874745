package metrics

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/contre95/songshelf/src/music"
	"github.com/dustin/go-humanize"
)

// Backlog is anything holding songs that are not yet finalized.
type Backlog interface {
	Len() int
}

// Service provides metrics functionality for the music library.
type Service struct {
	stats     music.LibraryStats
	additions Backlog
	deletions Backlog
}

// NewService creates a new metrics service. Either backlog may be nil.
func NewService(stats music.LibraryStats, additions, deletions Backlog) *Service {
	return &Service{
		stats:     stats,
		additions: additions,
		deletions: deletions,
	}
}

// Metric represents a single metric data point.
type Metric struct {
	Type  string `json:"type"`
	Key   string `json:"key"`
	Value int    `json:"value"`
}

// Overview holds every figure shown on the stats page.
type Overview struct {
	TotalSongs       int      `json:"total_songs"`
	TotalDuration    int      `json:"total_duration"`
	Playtime         string   `json:"playtime"`
	GenreCounts      []Metric `json:"genre_counts"`
	YearDistribution []Metric `json:"year_distribution"`
	PendingAdditions int      `json:"pending_additions"`
	StagedDeletions  int      `json:"staged_deletions"`
}

// Overview collects the library figures. Individual query failures are
// logged and leave the figure at zero.
func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	slog.Debug("Overview service called")
	data := &Overview{}

	total, err := s.stats.GetSongsCount(ctx)
	if err != nil {
		slog.Error("Overview failed", "error", err)
		return nil, fmt.Errorf("counting songs: %w", err)
	}
	data.TotalSongs = total

	if d, err := s.stats.GetTotalDuration(ctx); err != nil {
		slog.Warn("Failed to get total duration", "error", err)
	} else {
		data.TotalDuration = d
	}
	data.Playtime = FormatPlaytime(data.TotalDuration)

	if genres, err := s.stats.GetGenreDistribution(ctx); err != nil {
		slog.Warn("Failed to get genre distribution", "error", err)
	} else {
		data.GenreCounts = convertMapToMetrics(genres, "genre_counts")
		sort.SliceStable(data.GenreCounts, func(i, j int) bool {
			if data.GenreCounts[i].Value != data.GenreCounts[j].Value {
				return data.GenreCounts[i].Value > data.GenreCounts[j].Value
			}
			return data.GenreCounts[i].Key < data.GenreCounts[j].Key
		})
	}

	if years, err := s.stats.GetYearDistribution(ctx); err != nil {
		slog.Warn("Failed to get year distribution", "error", err)
	} else {
		data.YearDistribution = convertMapToMetrics(years, "year_distribution")
		sort.Slice(data.YearDistribution, func(i, j int) bool {
			return data.YearDistribution[i].Key < data.YearDistribution[j].Key
		})
	}

	data.PendingAdditions = s.PendingAdditions()
	data.StagedDeletions = s.StagedDeletions()
	return data, nil
}

// SongsCount returns the number of stored songs.
func (s *Service) SongsCount(ctx context.Context) (int, error) {
	return s.stats.GetSongsCount(ctx)
}

// PendingAdditions returns the length of the additions queue.
func (s *Service) PendingAdditions() int {
	if s.additions == nil {
		return 0
	}
	return s.additions.Len()
}

// StagedDeletions returns the number of songs on the deletion stack.
func (s *Service) StagedDeletions() int {
	if s.deletions == nil {
		return 0
	}
	return s.deletions.Len()
}

// FormatPlaytime renders seconds as "h:mm:ss (about N hours)".
func FormatPlaytime(seconds int) string {
	if seconds <= 0 {
		return "0:00:00"
	}
	d := time.Duration(seconds) * time.Second
	clock := fmt.Sprintf("%d:%02d:%02d", seconds/3600, seconds%3600/60, seconds%60)
	var zero time.Time
	approx := strings.TrimSpace(humanize.RelTime(zero, zero.Add(d), "", ""))
	return fmt.Sprintf("%s (%s)", clock, approx)
}

// convertMapToMetrics converts a map[string]int to []Metric
func convertMapToMetrics(data map[string]int, metricType string) []Metric {
	metrics := make([]Metric, 0, len(data))
	for key, value := range data {
		metrics = append(metrics, Metric{
			Type:  metricType,
			Key:   key,
			Value: value,
		})
	}
	return metrics
}
