package search

import (
	"context"

	"gorm.io/gorm"

	"github.com/channelgrid/server/internal/models"
)

// ChannelStore is the datastore surface the engine needs: one windowed
// query and one matching count. Implementations must bind every parameter
// through placeholders.
type ChannelStore interface {
	Search(ctx context.Context, c Conditions, order string, limit, offset int) ([]models.Channel, error)
	Count(ctx context.Context, c Conditions) (int64, error)
}

// GormChannelStore runs searches through GORM's clause composition.
type GormChannelStore struct {
	db *gorm.DB
}

func NewGormChannelStore(db *gorm.DB) *GormChannelStore {
	return &GormChannelStore{db: db}
}

func (c Conditions) scoreAlias() string {
	if c.SortByDistance {
		return "distance"
	}
	return "relevance"
}

// scored builds the base query with the relevance/distance expression
// selected. When a HAVING clause is present the scored select is wrapped
// as a subquery so the computed column can be filtered portably.
func (s *GormChannelStore) scored(ctx context.Context, c Conditions) *gorm.DB {
	q := s.db.WithContext(ctx).Model(&models.Channel{})

	if c.HasScore() {
		q = q.Select("channels.*, "+c.Score+" AS "+c.scoreAlias(), c.ScoreArgs...)
	} else {
		q = q.Select("channels.*")
	}
	if c.Where != "" {
		q = q.Where(c.Where, c.Args...)
	}
	if c.Having != "" {
		q = s.db.WithContext(ctx).Table("(?) AS scored", q).Where(c.Having, c.HavingArgs...)
	}
	return q
}

func (s *GormChannelStore) Search(ctx context.Context, c Conditions, order string, limit, offset int) ([]models.Channel, error) {
	var channels []models.Channel
	err := s.scored(ctx, c).
		Order(order).
		Limit(limit).
		Offset(offset).
		Find(&channels).Error
	if err != nil {
		return nil, err
	}
	return channels, nil
}

// Count uses the same predicate as Search. Without a HAVING clause the
// score expression is skipped entirely, which keeps the unscored "all"
// path a plain COUNT.
func (s *GormChannelStore) Count(ctx context.Context, c Conditions) (int64, error) {
	var total int64

	if c.Having == "" {
		q := s.db.WithContext(ctx).Model(&models.Channel{})
		if c.Where != "" {
			q = q.Where(c.Where, c.Args...)
		}
		err := q.Count(&total).Error
		return total, err
	}

	// Distance filtering needs the computed column, so count the scored
	// subquery's rows.
	err := s.scored(ctx, c).Count(&total).Error
	return total, err
}
