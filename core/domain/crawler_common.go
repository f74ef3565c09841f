package domain

// Pagination request
type PageRequest struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

func (p *PageRequest) Offset() int {
	if p.Page < 1 {
		p.Page = 1
	}
	return (p.Page - 1) * p.PageSize
}

func (p *PageRequest) Limit() int {
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
	return p.PageSize
}
