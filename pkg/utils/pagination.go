package utils

// ListParams normalizes the page/limit query parameters of list
// endpoints. Limit 0 means the caller did not bound the read; the
// storage layer applies its own row cap in that case, so 0 is passed
// through rather than treated as "everything".
type ListParams struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

// NormalizeListParams clamps page and limit to sane values
func NormalizeListParams(page, limit int) ListParams {
	if page < 1 {
		page = 1
	}
	if limit < 0 {
		limit = 0
	}
	return ListParams{
		Page:  page,
		Limit: limit,
	}
}

// Offset returns the SQL offset for the normalized page
func (p ListParams) Offset() int {
	if p.Page < 1 || p.Limit <= 0 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}
