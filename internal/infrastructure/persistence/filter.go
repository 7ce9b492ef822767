package persistence

import (
	"strings"

	"gorm.io/gorm"

	"github.com/supplychain/backend/internal/domain/shared"
)

// allowedSortColumns lists the columns a caller may order by. Anything else
// falls through to the created_at default, which keeps user input out of the
// ORDER BY clause.
var allowedSortColumns = map[string]bool{
	"created_at":   true,
	"updated_at":   true,
	"status":       true,
	"order_no":     true,
	"po_number":    true,
	"target_week":  true,
	"total_amount": true,
}

// applyFilter applies pagination and ordering from a shared.Filter.
func applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" && allowedSortColumns[filter.OrderBy] {
		orderDir := "ASC"
		if strings.EqualFold(filter.OrderDir, "desc") {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}
