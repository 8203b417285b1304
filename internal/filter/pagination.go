package filter

import "gorm.io/gorm"

// Pagination reads pagination.offset. A missing offset means the first page.
func Pagination() Chain {
	return New(NewUnit(Int(func(query *gorm.DB, offset int) *gorm.DB {
		if offset < 0 {
			offset = 0
		}
		return query.Offset(offset)
	}), "pagination", "offset"))
}
