// Package orm is a thin chainable wrapper over GORM with optional
// read-through caching.
package orm

import (
	"time"

	"github.com/tracechain/tracechain/pkg/cache"
	"github.com/tracechain/tracechain/pkg/database"
	"gorm.io/gorm"
)

type Query struct {
	db *gorm.DB
}

func DB() *Query {
	return &Query{db: database.DB}
}

func (q *Query) Model(v interface{}) *Query {
	if q.db == nil {
		return q
	}
	return &Query{db: q.db.Model(v)}
}

func (q *Query) Where(query string, args ...interface{}) *Query {
	if q.db == nil {
		return q
	}
	return &Query{db: q.db.Where(query, args...)}
}

func (q *Query) Order(value interface{}) *Query {
	if q.db == nil {
		return q
	}
	return &Query{db: q.db.Order(value)}
}

func (q *Query) Limit(n int) *Query {
	if q.db == nil {
		return q
	}
	return &Query{db: q.db.Limit(n)}
}

func (q *Query) Get(dest interface{}) error {
	if q.db == nil {
		return gorm.ErrInvalidDB
	}
	return q.db.Find(dest).Error
}

func (q *Query) First(dest interface{}) error {
	if q.db == nil {
		return gorm.ErrInvalidDB
	}
	return q.db.First(dest).Error
}

func (q *Query) Count(count *int64) error {
	if q.db == nil {
		return gorm.ErrInvalidDB
	}
	return q.db.Count(count).Error
}

func (q *Query) Create(value interface{}) error {
	if q.db == nil {
		return gorm.ErrInvalidDB
	}
	return q.db.Create(value).Error
}

func (q *Query) Save(value interface{}) error {
	if q.db == nil {
		return gorm.ErrInvalidDB
	}
	return q.db.Save(value).Error
}

func (q *Query) Delete(value interface{}) error {
	if q.db == nil {
		return gorm.ErrInvalidDB
	}
	return q.db.Delete(value).Error
}

// Cache reads dest from the cache under key, falling back to the query
// and populating the cache on a miss.
func (q *Query) Cache(key string, ttl time.Duration, dest interface{}) error {
	if cache.Get(key, dest) {
		return nil
	}
	if q.db == nil {
		return gorm.ErrInvalidDB
	}

	err := q.db.Find(dest).Error
	if err != nil {
		return err
	}

	cache.Set(key, dest, ttl) //nolint:errcheck
	return nil
}

// Pagination carries the page metadata returned alongside paginated sets.
type Pagination struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// GetWithPagination fills dest with one page of results and returns the
// page metadata. page and limit are normalised to sane minimums.
func (q *Query) GetWithPagination(dest interface{}, page, limit int) (Pagination, error) {
	if q.db == nil {
		return Pagination{}, gorm.ErrInvalidDB
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 15
	}

	var total int64
	if err := q.db.Count(&total).Error; err != nil {
		return Pagination{}, err
	}

	offset := (page - 1) * limit
	if err := q.db.Offset(offset).Limit(limit).Find(dest).Error; err != nil {
		return Pagination{}, err
	}

	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}

	return Pagination{Page: page, PerPage: limit, Total: total, TotalPages: pages}, nil
}
