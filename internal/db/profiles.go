package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/alumni-research/internal/types"
)

const profileColumns = `id, full_name, graduation_year, current_position, work_history,
	        education_history, location, industry, linkedin_url, confidence_score,
	        data_sources, updated_at`

// UpsertProfile inserts a profile or, when one with the same full name
// (case-insensitive) already exists, updates it in place. Data sources are
// appended, never replaced, so provenance history survives re-research.
// The stored confidence score becomes the incoming pass's score.
func (db *DB) UpsertProfile(ctx context.Context, profile *types.Profile) (*types.Profile, error) {
	currentPosition, err := marshalNullable(profile.CurrentPosition)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal current position: %w", err)
	}
	workHistory, err := marshalNullable(profile.WorkHistory)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal work history: %w", err)
	}
	education, err := marshalNullable(profile.Education)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal education history: %w", err)
	}
	dataSources, err := marshalNullable(profile.DataSources)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal data sources: %w", err)
	}

	var industry *string
	if profile.Industry != nil {
		s := string(*profile.Industry)
		industry = &s
	}

	row := db.pool.QueryRow(ctx,
		`INSERT INTO profiles (full_name, graduation_year, current_position, work_history,
		                       education_history, location, industry, linkedin_url,
		                       confidence_score, data_sources, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
		 ON CONFLICT ((lower(full_name))) DO UPDATE SET
		   graduation_year   = COALESCE(EXCLUDED.graduation_year, profiles.graduation_year),
		   current_position  = COALESCE(EXCLUDED.current_position, profiles.current_position),
		   work_history      = COALESCE(EXCLUDED.work_history, profiles.work_history),
		   education_history = COALESCE(EXCLUDED.education_history, profiles.education_history),
		   location          = COALESCE(EXCLUDED.location, profiles.location),
		   industry          = COALESCE(EXCLUDED.industry, profiles.industry),
		   linkedin_url      = COALESCE(EXCLUDED.linkedin_url, profiles.linkedin_url),
		   confidence_score  = EXCLUDED.confidence_score,
		   data_sources      = COALESCE(profiles.data_sources, '[]'::jsonb) || COALESCE(EXCLUDED.data_sources, '[]'::jsonb),
		   updated_at        = NOW()
		 RETURNING `+profileColumns,
		profile.FullName, zeroToNull(profile.GraduationYear), currentPosition, workHistory,
		education, nullIfEmpty(profile.Location), industry, nullIfEmpty(profile.LinkedInURL),
		profile.ConfidenceScore, dataSources,
	)

	saved, err := scanProfile(row)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert profile %s: %w", profile.FullName, err)
	}
	return saved, nil
}

// GetProfileByName retrieves a profile by case-insensitive full name.
// Returns nil without error when no profile exists.
func (db *DB) GetProfileByName(ctx context.Context, fullName string) (*types.Profile, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE lower(full_name) = lower($1)`,
		fullName,
	)
	profile, err := scanProfile(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile by name: %w", err)
	}
	return profile, nil
}

// GetProfileByID retrieves a profile by ID. Returns nil without error when
// no profile exists.
func (db *DB) GetProfileByID(ctx context.Context, id uuid.UUID) (*types.Profile, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE id = $1`,
		id,
	)
	profile, err := scanProfile(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile by id: %w", err)
	}
	return profile, nil
}

// AppendDataSource appends one provenance record to a profile and moves the
// profile's confidence score to the record's score.
func (db *DB) AppendDataSource(ctx context.Context, profileID uuid.UUID, record types.DataSourceRecord) error {
	recordJSON, err := json.Marshal([]types.DataSourceRecord{record})
	if err != nil {
		return fmt.Errorf("failed to marshal data source record: %w", err)
	}

	result, err := db.pool.Exec(ctx,
		`UPDATE profiles
		 SET data_sources = COALESCE(data_sources, '[]'::jsonb) || $2,
		     confidence_score = $3,
		     updated_at = NOW()
		 WHERE id = $1`,
		profileID, recordJSON, record.ConfidenceScore,
	)
	if err != nil {
		return fmt.Errorf("failed to append data source: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("profile not found: %s", profileID)
	}
	return nil
}

// ProfileFilters holds optional filters for searching profiles. All present
// filters are ANDed; the zero value matches everything.
type ProfileFilters struct {
	Name              string
	Industry          string
	Company           string
	Location          string
	GraduationYearMin int
	GraduationYearMax int
	Limit             int
}

// SearchProfiles retrieves profiles matching the filters, most recently
// updated first. Every filter value is passed as a query parameter.
func (db *DB) SearchProfiles(ctx context.Context, filters ProfileFilters) ([]types.Profile, error) {
	query, args := buildProfileSearchQuery(filters)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search profiles: %w", err)
	}
	defer rows.Close()

	var profiles []types.Profile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, *profile)
	}
	return profiles, nil
}

// buildProfileSearchQuery assembles the filtered SELECT with positional
// parameters. Split out so the query construction is testable without a
// live database.
func buildProfileSearchQuery(filters ProfileFilters) (string, []any) {
	if filters.Limit <= 0 {
		filters.Limit = 100
	}

	query := `SELECT ` + profileColumns + ` FROM profiles WHERE 1=1`
	args := []any{}
	argNum := 1

	if filters.Name != "" {
		query += fmt.Sprintf(" AND full_name ILIKE $%d", argNum)
		args = append(args, "%"+filters.Name+"%")
		argNum++
	}
	if filters.Industry != "" {
		query += fmt.Sprintf(" AND industry = $%d", argNum)
		args = append(args, filters.Industry)
		argNum++
	}
	if filters.Company != "" {
		query += fmt.Sprintf(" AND (current_position->>'company' ILIKE $%d OR work_history::text ILIKE $%d)", argNum, argNum)
		args = append(args, "%"+filters.Company+"%")
		argNum++
	}
	if filters.Location != "" {
		query += fmt.Sprintf(" AND location ILIKE $%d", argNum)
		args = append(args, "%"+filters.Location+"%")
		argNum++
	}
	if filters.GraduationYearMin != 0 {
		query += fmt.Sprintf(" AND graduation_year >= $%d", argNum)
		args = append(args, filters.GraduationYearMin)
		argNum++
	}
	if filters.GraduationYearMax != 0 {
		query += fmt.Sprintf(" AND graduation_year <= $%d", argNum)
		args = append(args, filters.GraduationYearMax)
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY updated_at DESC LIMIT $%d", argNum)
	args = append(args, filters.Limit)

	return query, args
}

// scanProfile reads one profile row, decoding the JSONB columns.
func scanProfile(row pgx.Row) (*types.Profile, error) {
	var (
		profile         types.Profile
		graduationYear  *int
		currentPosition []byte
		workHistory     []byte
		education       []byte
		location        *string
		industry        *string
		linkedInURL     *string
		dataSources     []byte
	)

	err := row.Scan(&profile.ID, &profile.FullName, &graduationYear, &currentPosition,
		&workHistory, &education, &location, &industry, &linkedInURL,
		&profile.ConfidenceScore, &dataSources, &profile.LastUpdated)
	if err != nil {
		return nil, err
	}

	if graduationYear != nil {
		profile.GraduationYear = *graduationYear
	}
	if location != nil {
		profile.Location = *location
	}
	if industry != nil {
		ind := types.Industry(*industry)
		profile.Industry = &ind
	}
	if linkedInURL != nil {
		profile.LinkedInURL = *linkedInURL
	}
	if len(currentPosition) > 0 {
		var position types.JobPosition
		if err := json.Unmarshal(currentPosition, &position); err == nil {
			profile.CurrentPosition = &position
		}
	}
	if len(workHistory) > 0 {
		if err := json.Unmarshal(workHistory, &profile.WorkHistory); err != nil {
			return nil, fmt.Errorf("failed to decode work history: %w", err)
		}
	}
	if len(education) > 0 {
		if err := json.Unmarshal(education, &profile.Education); err != nil {
			return nil, fmt.Errorf("failed to decode education history: %w", err)
		}
	}
	if len(dataSources) > 0 {
		if err := json.Unmarshal(dataSources, &profile.DataSources); err != nil {
			return nil, fmt.Errorf("failed to decode data sources: %w", err)
		}
	}

	return &profile, nil
}

// marshalNullable marshals v to JSON, mapping nil pointers and empty
// slices to SQL NULL so COALESCE keeps existing column values on upsert.
func marshalNullable(v any) ([]byte, error) {
	switch value := v.(type) {
	case *types.JobPosition:
		if value == nil {
			return nil, nil
		}
	case []types.JobPosition:
		if len(value) == 0 {
			return nil, nil
		}
	case []types.Education:
		if len(value) == 0 {
			return nil, nil
		}
	case []types.DataSourceRecord:
		if len(value) == 0 {
			return nil, nil
		}
	}
	return json.Marshal(v)
}

func zeroToNull(n int) *int {
	if n == 0 {
		return nil
	}
	return &n
}
