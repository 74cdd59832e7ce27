package db

import (
	"context"
	"fmt"
)

// Stats summarizes the state of the alumni collection.
type Stats struct {
	TotalProfiles     int            `json:"total_profiles"`
	WithLinkedIn      int            `json:"with_linkedin"`
	ByIndustry        map[string]int `json:"by_industry"`
	AverageConfidence float64        `json:"average_confidence"`
	TotalTasks        int            `json:"total_tasks"`
	RunningTasks      int            `json:"running_tasks"`
}

// GetStats computes collection-wide statistics.
func (db *DB) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{ByIndustry: make(map[string]int)}

	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*),
		        COUNT(*) FILTER (WHERE linkedin_url IS NOT NULL AND linkedin_url <> ''),
		        COALESCE(AVG(confidence_score), 0)
		 FROM profiles`,
	).Scan(&stats.TotalProfiles, &stats.WithLinkedIn, &stats.AverageConfidence)
	if err != nil {
		return nil, fmt.Errorf("failed to count profiles: %w", err)
	}

	rows, err := db.pool.Query(ctx,
		`SELECT COALESCE(industry, 'Unknown'), COUNT(*) FROM profiles GROUP BY industry`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count profiles by industry: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var industry string
		var count int
		if err := rows.Scan(&industry, &count); err != nil {
			return nil, fmt.Errorf("failed to scan industry count: %w", err)
		}
		stats.ByIndustry[industry] = count
	}

	err = db.pool.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE status = 'running') FROM collection_tasks`,
	).Scan(&stats.TotalTasks, &stats.RunningTasks)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}

	return stats, nil
}
