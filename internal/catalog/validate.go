package catalog

import (
	"fmt"
	"strings"
)

// validate performs structural checks on decoded catalog data.
// Returns a combined error describing all problems found, or nil if valid.
func validate(paths []LearningPath, sections []Section) error {
	var errs []string

	if len(paths) == 0 {
		errs = append(errs, "no learning paths defined")
	}

	pathIDs := make(map[string]bool, len(paths))
	for _, p := range paths {
		if p.ID == "" {
			errs = append(errs, fmt.Sprintf("learning path %q has empty id", p.Title))
			continue
		}
		if pathIDs[p.ID] {
			errs = append(errs, fmt.Sprintf("duplicate learning path id: %q", p.ID))
		}
		pathIDs[p.ID] = true

		if !p.Difficulty.Valid() {
			errs = append(errs, fmt.Sprintf("path %q: unknown difficulty %q", p.ID, p.Difficulty))
		}
		// Duration.Min is a divisor when scaling phases.
		if p.Duration.Min <= 0 || p.Duration.Max < p.Duration.Min {
			errs = append(errs, fmt.Sprintf("path %q: invalid duration range %d-%d", p.ID, p.Duration.Min, p.Duration.Max))
		}
		if len(p.Phases) == 0 {
			errs = append(errs, fmt.Sprintf("path %q has no phases", p.ID))
		}
		for i, ph := range p.Phases {
			prefix := fmt.Sprintf("path %q phase %d", p.ID, i+1)
			if ph.Number != i+1 {
				errs = append(errs, fmt.Sprintf("%s: phase number is %d, want %d", prefix, ph.Number, i+1))
			}
			if ph.Duration <= 0 {
				errs = append(errs, fmt.Sprintf("%s: duration must be > 0, got %g", prefix, ph.Duration))
			}
			if len(ph.Topics) == 0 {
				errs = append(errs, fmt.Sprintf("%s: no topics", prefix))
			}
			if dup := firstDuplicate(ph.Topics); dup != "" {
				errs = append(errs, fmt.Sprintf("%s: duplicate topic %q", prefix, dup))
			}
			if dup := firstDuplicate(ph.Projects); dup != "" {
				errs = append(errs, fmt.Sprintf("%s: duplicate project %q", prefix, dup))
			}
		}
	}

	if len(sections) == 0 {
		errs = append(errs, "no assessment sections defined")
	}

	sectionNames := make(map[string]bool, len(sections))
	questionIDs := make(map[string]bool)
	for _, s := range sections {
		if sectionNames[s.Name] {
			errs = append(errs, fmt.Sprintf("duplicate section: %q", s.Name))
		}
		sectionNames[s.Name] = true
		if len(s.Questions) == 0 {
			errs = append(errs, fmt.Sprintf("section %q has no questions", s.Name))
		}
		for _, q := range s.Questions {
			if questionIDs[q.ID] {
				errs = append(errs, fmt.Sprintf("duplicate question id: %q", q.ID))
			}
			questionIDs[q.ID] = true
			if !q.Category.Valid() {
				errs = append(errs, fmt.Sprintf("question %q: unknown category %q", q.ID, q.Category))
			}
			if len(q.Options) < 2 {
				errs = append(errs, fmt.Sprintf("question %q needs at least 2 options, got %d", q.ID, len(q.Options)))
			}
			values := make(map[string]bool, len(q.Options))
			for _, o := range q.Options {
				if values[o.Value] {
					errs = append(errs, fmt.Sprintf("question %q: duplicate option %q", q.ID, o.Value))
				}
				values[o.Value] = true
				if o.Weight < 1 || o.Weight > 5 {
					errs = append(errs, fmt.Sprintf("question %q option %q: weight must be in [1, 5], got %d", q.ID, o.Value, o.Weight))
				}
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

func firstDuplicate(items []string) string {
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		if seen[it] {
			return it
		}
		seen[it] = true
	}
	return ""
}
