package services

import (
	"context"
	"strings"

	"github.com/channelgrid/server/internal/database"
	"github.com/channelgrid/server/internal/models"
)

// ChannelService covers the single-record lookups the directory needs
// outside of search: slug resolution for channel pages and custom-domain
// resolution for domain-routed requests.
type ChannelService struct {
	db *database.DB
}

func NewChannelService(db *database.DB) *ChannelService {
	return &ChannelService{db: db}
}

// GetBySlug retrieves a channel by its unique slug.
func (s *ChannelService) GetBySlug(ctx context.Context, slug string) (*models.Channel, error) {
	var channel models.Channel
	err := s.db.WithContext(ctx).
		Where("slug = ?", strings.ToLower(strings.TrimSpace(slug))).
		First(&channel).Error
	if err != nil {
		return nil, err
	}
	return &channel, nil
}

// GetByDomain retrieves the channel served from a custom domain.
func (s *ChannelService) GetByDomain(ctx context.Context, domain string) (*models.Channel, error) {
	var channel models.Channel
	err := s.db.WithContext(ctx).
		Where("LOWER(custom_domain) = ?", strings.ToLower(strings.TrimSpace(domain))).
		First(&channel).Error
	if err != nil {
		return nil, err
	}
	return &channel, nil
}
