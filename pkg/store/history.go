package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jumpstat/jumpstat/pkg/report"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Entity struct {
	ID uint `gorm:"primaryKey"`
}

// A single analysis of a replay
type Run struct {
	Entity

	// Fingerprint of the replay's samples
	Fingerprint string `gorm:"not null;size:16;index"`
	Replay      string
	Level       string
	Ticks       int
	Created     time.Time

	Segments []*SegmentRecord `gorm:"foreignKey:RunID"`
}

type SegmentRecord struct {
	Entity
	RunID uint `gorm:"not null"`

	StartTick    int
	EndTick      int
	Duration     float64
	AirTicks     int
	EdgeTicks    int
	Jumps        int
	Ducks        int
	TakeoffSpeed float64
	PeakSpeed    float64
	LandingSpeed float64
	Efficiency   float64
}

// History records every analysis run in a SQLite database.
type History struct {
	db *gorm.DB
}

func InitDB(path string) (*History, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(&Run{}, &SegmentRecord{})
	if err != nil {
		return nil, fmt.Errorf("failed to migrate %s: %w", path, err)
	}

	return &History{db: db}, nil
}

func (h *History) Close() error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Record stores a report as a new run.
func (h *History) Record(ctx context.Context, result *report.Report) (*Run, error) {
	run := Run{
		Fingerprint: result.Fingerprint,
		Replay:      result.Replay,
		Level:       result.Level,
		Ticks:       result.Ticks,
		Created:     time.Now(),
	}

	for _, segment := range result.Segments {
		run.Segments = append(run.Segments, &SegmentRecord{
			StartTick:    segment.StartTick,
			EndTick:      segment.EndTick,
			Duration:     segment.Duration,
			AirTicks:     segment.AirTicks,
			EdgeTicks:    segment.EdgeTicks,
			Jumps:        segment.Jumps,
			Ducks:        segment.Ducks,
			TakeoffSpeed: segment.TakeoffSpeed,
			PeakSpeed:    segment.PeakSpeed,
			LandingSpeed: segment.LandingSpeed,
			Efficiency:   segment.Efficiency,
		})
	}

	err := h.db.WithContext(ctx).Create(&run).Error
	if err != nil {
		return nil, err
	}

	return &run, nil
}

// Runs lists recorded runs oldest first, optionally only those of one
// replay fingerprint.
func (h *History) Runs(ctx context.Context, fingerprint string) ([]Run, error) {
	var runs []Run

	query := h.db.WithContext(ctx).Preload("Segments").Order("id")
	if fingerprint != "" {
		query = query.Where(&Run{Fingerprint: fingerprint})
	}

	err := query.Find(&runs).Error
	if err != nil {
		return nil, err
	}

	return runs, nil
}
