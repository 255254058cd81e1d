package review

import "errors"

// ErrNoParentSelected is returned when a merge is attempted before a
// candidate parent has been chosen for the group.
var ErrNoParentSelected = errors.New("select a parent before merging")

// Validate runs the required-field check over the effective record of the
// group's selected parent. Blank or whitespace-only fields produce one
// "<field> is required" message each; the result is stored so the page
// can render errors next to the offending fields. An empty map means the
// merge may proceed. No network traffic happens here.
func (w *Workspace) Validate(groupKey string) (map[string]string, error) {
	code, ok := w.parents[groupKey]
	if !ok {
		return nil, ErrNoParentSelected
	}
	parent, ok := w.Effective(code)
	if !ok {
		return nil, ErrNoParentSelected
	}

	errs := make(map[string]string)
	for _, field := range EditableFields {
		if blank(FieldOf(parent, field)) {
			errs[field] = field + " is required"
		}
	}

	if len(errs) > 0 {
		w.valErrors[groupKey] = errs
	} else {
		delete(w.valErrors, groupKey)
	}
	return errs, nil
}
