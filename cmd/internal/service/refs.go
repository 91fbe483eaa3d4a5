package service

import "medicore/cmd/internal/domain/entity"

// requireRef records a field error when ref is missing and returns its id.
func requireRef(errs map[string]string, field, label string, ref entity.Ref) int {
	if ref.IsZero() {
		errs[field] = label + " is required"
		return 0
	}
	return refID(errs, field, ref)
}

// refID records a field error when ref does not carry an integer store id.
func refID(errs map[string]string, field string, ref entity.Ref) int {
	id, ok := ref.ID()
	if !ok || id <= 0 {
		errs[field] = field + " must reference a record id"
		return 0
	}
	return id
}
