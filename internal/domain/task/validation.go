package task

import (
	"fmt"
	"strings"
)

// ParsePriority accepts a priority name in any case. "All" and the empty
// string yield the zero Priority, meaning no filter.
func ParsePriority(s string) (Priority, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" || strings.EqualFold(trimmed, "all") {
		return "", nil
	}
	for _, p := range AllPriorities() {
		if strings.EqualFold(trimmed, string(p)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPriority, s)
}

// ParseStatus accepts a status name in any case, with spaces, dashes or
// underscores as separators.
func ParseStatus(s string) (Status, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" || strings.EqualFold(trimmed, "all") {
		return "", nil
	}
	key := normalizeStatusKey(trimmed)
	for _, st := range AllStatuses() {
		if key == normalizeStatusKey(string(st)) {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

func normalizeStatusKey(s string) string {
	r := strings.NewReplacer(" ", "", "_", "", "-", "")
	return strings.ToLower(r.Replace(s))
}

// ValidateCreateInput validates fields required to create a task.
func ValidateCreateInput(req CreateRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return ErrInvalidInput
	}
	if req.Priority != "" && !req.Priority.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, req.Priority)
	}
	if req.Status != "" && !req.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, req.Status)
	}
	return nil
}

// ValidateUpdateInput validates the fields present in an update.
func ValidateUpdateInput(req UpdateRequest) error {
	if strings.TrimSpace(req.ID) == "" {
		return ErrInvalidInput
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return ErrInvalidInput
	}
	if req.Priority != nil && !req.Priority.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, *req.Priority)
	}
	if req.Status != nil && !req.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, *req.Status)
	}
	return nil
}

func (f Filter) matches(t Task) bool {
	if f.Priority != "" && t.Priority != f.Priority {
		return false
	}
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	query := strings.ToLower(strings.TrimSpace(f.Search))
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(t.Title), query) ||
		strings.Contains(strings.ToLower(t.Notes), query)
}
