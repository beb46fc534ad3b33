package response

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	DefaultPageSize = 50
	MaxPageSize     = 1000
)

// Pagination represents the pagination details in a response.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"limit"`
	TotalItems int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// PaginatedResponse is the standard structure for all paginated API responses.
type PaginatedResponse struct {
	Items      any        `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// Paginate applies page/limit query parameters to a GORM query and returns a
// standardized response. The count and the page fetch each run on their own
// session clone of the query, keeping its model and WHERE clauses while
// preventing the two executions from contaminating each other's statement.
func Paginate(c *gin.Context, query *gorm.DB, dest any) (*PaginatedResponse, error) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	pageSize, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultPageSize)))
	if err != nil || pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	var totalItems int64
	countQuery := query.Session(&gorm.Session{})
	if err := countQuery.Count(&totalItems).Error; err != nil {
		logrus.WithError(err).Warn("Pagination COUNT query failed")
		return nil, err
	}

	offset := (page - 1) * pageSize
	dataQuery := query.Session(&gorm.Session{})
	if err := dataQuery.Limit(pageSize).Offset(offset).Find(dest).Error; err != nil {
		logrus.WithError(err).Warn("Pagination data query failed")
		return nil, err
	}

	return &PaginatedResponse{
		Items: dest,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			TotalItems: totalItems,
			TotalPages: int(math.Ceil(float64(totalItems) / float64(pageSize))),
		},
	}, nil
}
