// Package types provides shared domain types for the alumni research pipeline.
package types

import (
	"fmt"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Source type constants for DataSourceRecord
const (
	SourceWebResearch = "web-research"
	SourceManual      = "manual"
)

// JobPosition is one entry in a profile's work history.
type JobPosition struct {
	Title     string     `json:"title" validate:"required"`
	Company   string     `json:"company" validate:"required"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	IsCurrent bool       `json:"is_current"`
	Industry  *Industry  `json:"industry,omitempty"`
	Location  string     `json:"location,omitempty"`
}

// Education is one entry in a profile's education history.
type Education struct {
	Institution    string `json:"institution" validate:"required"`
	Degree         string `json:"degree,omitempty"`
	FieldOfStudy   string `json:"field_of_study,omitempty"`
	GraduationYear int    `json:"graduation_year,omitempty"`
	StartYear      int    `json:"start_year,omitempty"`
}

// DataSourceRecord is the provenance record for one accepted research pass.
// Records are append-only; a profile accumulates one per accepted pass.
type DataSourceRecord struct {
	SourceType      string    `json:"source_type" validate:"required,oneof=web-research manual"`
	SourceURL       string    `json:"source_url,omitempty"`
	CollectedAt     time.Time `json:"collected_at"`
	ConfidenceScore float64   `json:"confidence_score" validate:"gte=0,lte=1"`
}

// Profile is a verified alumni profile. ConfidenceScore is always the score
// of the most recent accepted data source, never an aggregate.
type Profile struct {
	ID              uuid.UUID          `json:"id,omitempty"`
	FullName        string             `json:"full_name" validate:"required,min=2"`
	GraduationYear  int                `json:"graduation_year,omitempty"`
	CurrentPosition *JobPosition       `json:"current_position,omitempty"`
	WorkHistory     []JobPosition      `json:"work_history,omitempty"`
	Education       []Education        `json:"education_history,omitempty"`
	Location        string             `json:"location,omitempty"`
	Industry        *Industry          `json:"industry,omitempty"`
	LinkedInURL     string             `json:"linkedin_url,omitempty"`
	ConfidenceScore float64            `json:"confidence_score" validate:"gte=0,lte=1"`
	LastUpdated     time.Time          `json:"last_updated,omitempty"`
	DataSources     []DataSourceRecord `json:"data_sources,omitempty"`
}

// ProfileSummary is a lightweight view of a profile for task results.
type ProfileSummary struct {
	ID              uuid.UUID `json:"id,omitempty"`
	FullName        string    `json:"full_name"`
	Industry        *Industry `json:"industry,omitempty"`
	Location        string    `json:"location,omitempty"`
	LinkedInURL     string    `json:"linkedin_url,omitempty"`
	ConfidenceScore float64   `json:"confidence_score"`
}

// Validate validates the Profile using the validator.
func (p *Profile) Validate() error {
	validate := validator.New()
	if err := validate.Struct(p); err != nil {
		return err
	}
	if p.Industry != nil && !IsValidIndustry(string(*p.Industry)) {
		return fmt.Errorf("industry %q is not a member of the closed enum", *p.Industry)
	}
	for i, job := range p.WorkHistory {
		if job.IsCurrent && job.EndDate != nil {
			return fmt.Errorf("work_history[%d]: current job cannot have an end date", i)
		}
		if job.StartDate != nil && job.EndDate != nil && job.StartDate.After(*job.EndDate) {
			return fmt.Errorf("work_history[%d]: start date after end date", i)
		}
	}
	return nil
}

// AddJobPosition appends a position, maintaining the current-position pointer
// and most-recent-first ordering.
func (p *Profile) AddJobPosition(job JobPosition) {
	if job.IsCurrent {
		for i := range p.WorkHistory {
			p.WorkHistory[i].IsCurrent = false
		}
		copied := job
		p.CurrentPosition = &copied
	}
	p.WorkHistory = append(p.WorkHistory, job)
	sort.SliceStable(p.WorkHistory, func(i, j int) bool {
		ti, tj := time.Time{}, time.Time{}
		if p.WorkHistory[i].StartDate != nil {
			ti = *p.WorkHistory[i].StartDate
		}
		if p.WorkHistory[j].StartDate != nil {
			tj = *p.WorkHistory[j].StartDate
		}
		return ti.After(tj)
	})
}

// AddEducation appends an education entry, most recent graduation first.
func (p *Profile) AddEducation(edu Education) {
	p.Education = append(p.Education, edu)
	sort.SliceStable(p.Education, func(i, j int) bool {
		return p.Education[i].GraduationYear > p.Education[j].GraduationYear
	})
}

// Summary returns the task-result view of the profile.
func (p *Profile) Summary() ProfileSummary {
	return ProfileSummary{
		ID:              p.ID,
		FullName:        p.FullName,
		Industry:        p.Industry,
		Location:        p.Location,
		LinkedInURL:     p.LinkedInURL,
		ConfidenceScore: p.ConfidenceScore,
	}
}
