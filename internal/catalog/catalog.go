package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"

	// DefaultPath matches the repository layout the prompts file ships in.
	DefaultPath = "tools/prompts.json"
)

// Job is one unit of work: a prompt that produces one skill document at Path.
// Path doubles as the job's identity across runs.
type Job struct {
	BatchID  string `json:"batch"`
	Category string `json:"category"`
	Name     string `json:"name"`
	Path     string `json:"path"`
	Prompt   string `json:"prompt"`
	Priority string `json:"priority"`
}

type promptsFile struct {
	Batches []batchEntry `json:"batches"`
}

type batchEntry struct {
	Batch    string       `json:"batch"`
	Category string       `json:"category"`
	Skills   []skillEntry `json:"skills"`
}

type skillEntry struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	Prompt   string `json:"prompt"`
	Priority string `json:"priority,omitempty"`
}

func IsKnownPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Load parses the prompts catalog into a flat job list, preserving batch
// order and within-batch order. Any structural problem is an error; there is
// no partial-catalog mode because job identity depends on the whole file.
func Load(path string) ([]Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prompts catalog %s: %w", path, err)
	}
	var file promptsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse prompts catalog %s: %w", path, err)
	}
	if len(file.Batches) == 0 {
		return nil, fmt.Errorf("prompts catalog %s: no batches defined", path)
	}

	jobs := make([]Job, 0)
	seen := make(map[string]bool)
	for bi, batch := range file.Batches {
		if strings.TrimSpace(batch.Batch) == "" {
			return nil, fmt.Errorf("prompts catalog %s: batch #%d has empty batch id", path, bi+1)
		}
		if len(batch.Skills) == 0 {
			return nil, fmt.Errorf("prompts catalog %s: batch %q has no skills", path, batch.Batch)
		}
		for si, skill := range batch.Skills {
			job := Job{
				BatchID:  strings.TrimSpace(batch.Batch),
				Category: strings.TrimSpace(batch.Category),
				Name:     strings.TrimSpace(skill.Name),
				Path:     strings.TrimSpace(skill.Path),
				Prompt:   skill.Prompt,
				Priority: strings.TrimSpace(strings.ToLower(skill.Priority)),
			}
			if job.Name == "" {
				return nil, fmt.Errorf("prompts catalog %s: batch %q skill #%d has empty name", path, batch.Batch, si+1)
			}
			if job.Path == "" {
				return nil, fmt.Errorf("prompts catalog %s: skill %q has empty path", path, job.Name)
			}
			if strings.TrimSpace(job.Prompt) == "" {
				return nil, fmt.Errorf("prompts catalog %s: skill %q has empty prompt", path, job.Name)
			}
			if job.Priority == "" {
				job.Priority = PriorityMedium
			}
			if !IsKnownPriority(job.Priority) {
				return nil, fmt.Errorf("prompts catalog %s: skill %q has unknown priority %q", path, job.Name, job.Priority)
			}
			if seen[job.Path] {
				return nil, fmt.Errorf("prompts catalog %s: duplicate skill path %q", path, job.Path)
			}
			seen[job.Path] = true
			jobs = append(jobs, job)
		}
	}
	return jobs, nil
}

// BatchIDs returns the distinct batch ids in lexicographic order.
func BatchIDs(jobs []Job) []string {
	seen := make(map[string]bool)
	ids := make([]string, 0)
	for _, j := range jobs {
		if !seen[j.BatchID] {
			seen[j.BatchID] = true
			ids = append(ids, j.BatchID)
		}
	}
	sort.Strings(ids)
	return ids
}

// SelectBatch returns the jobs with an exact batch id match, catalog order.
func SelectBatch(jobs []Job, batchID string) []Job {
	out := make([]Job, 0)
	for _, j := range jobs {
		if j.BatchID == batchID {
			out = append(out, j)
		}
	}
	return out
}

// SelectBatchRange returns the jobs whose batch id falls inside the inclusive
// [start, end] range, catalog order. The comparison is lexicographic: batch
// ids are expected to be zero-padded so string order matches run order.
// Empty start or end leaves that side of the range open.
func SelectBatchRange(jobs []Job, start, end string) []Job {
	out := make([]Job, 0)
	for _, j := range jobs {
		if start != "" && j.BatchID < start {
			continue
		}
		if end != "" && j.BatchID > end {
			continue
		}
		out = append(out, j)
	}
	return out
}

// SelectPriority returns the jobs with an exact priority match, across all
// batches, catalog order.
func SelectPriority(jobs []Job, priority string) []Job {
	out := make([]Job, 0)
	for _, j := range jobs {
		if j.Priority == priority {
			out = append(out, j)
		}
	}
	return out
}

// FindByPath resolves a job path back to its catalog entry.
func FindByPath(jobs []Job, path string) (Job, bool) {
	for _, j := range jobs {
		if j.Path == path {
			return j, true
		}
	}
	return Job{}, false
}
