package cache

import (
	"context"
	"strings"
	"time"

	"crawler_server/core/domain"
	"crawler_server/core/port/out"
	"crawler_server/pkg/logger"
)

const keySetName = "campaigns:keys"

// CachedCampaignRepository decorates a CampaignRepository with a redis copy
// of the fingerprint key set, so incremental runs don't scan the campaigns
// table every cycle. Everything else passes through. Cache failures degrade
// to the store; they are never surfaced.
type CachedCampaignRepository struct {
	out.CampaignRepository

	cache out.Cache
	ttl   time.Duration
	log   *logger.Logger
}

// NewCachedCampaignRepository wraps repo with the fingerprint key cache.
// ttl bounds how long a filled key set lives without a refresh.
func NewCachedCampaignRepository(repo out.CampaignRepository, cache out.Cache, ttl time.Duration) out.CampaignRepository {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &CachedCampaignRepository{
		CampaignRepository: repo,
		cache:              cache,
		ttl:                ttl,
		log:                logger.WithField("component", "key_cache"),
	}
}

func (r *CachedCampaignRepository) ExistingKeys(ctx context.Context) (map[domain.Fingerprint]struct{}, error) {
	members, err := r.cache.SMembers(ctx, keySetName)
	if err == nil && len(members) > 0 {
		keys := make(map[domain.Fingerprint]struct{}, len(members))
		for _, m := range members {
			if fp, ok := parseKey(m); ok {
				keys[fp] = struct{}{}
			}
		}
		return keys, nil
	}
	if err != nil {
		r.log.WithError(err).Warn("key cache read failed, falling back to store")
	}

	keys, err := r.CampaignRepository.ExistingKeys(ctx)
	if err != nil {
		return nil, err
	}
	r.fill(ctx, keys)
	return keys, nil
}

func (r *CachedCampaignRepository) Upsert(ctx context.Context, campaigns []*domain.StandardizedCampaign) error {
	if err := r.CampaignRepository.Upsert(ctx, campaigns); err != nil {
		return err
	}

	members := make([]string, len(campaigns))
	for i, c := range campaigns {
		members[i] = c.Key().String()
	}
	if err := r.cache.SAdd(ctx, keySetName, members...); err != nil {
		r.log.WithError(err).Warn("key cache append failed")
	}
	return nil
}

func (r *CachedCampaignRepository) fill(ctx context.Context, keys map[domain.Fingerprint]struct{}) {
	if len(keys) == 0 {
		return
	}
	members := make([]string, 0, len(keys))
	for fp := range keys {
		members = append(members, fp.String())
	}
	if err := r.cache.SAdd(ctx, keySetName, members...); err != nil {
		r.log.WithError(err).Warn("key cache fill failed")
		return
	}
	if err := r.cache.Expire(ctx, keySetName, r.ttl); err != nil {
		r.log.WithError(err).Warn("key cache expire failed")
	}
}

func parseKey(member string) (domain.Fingerprint, bool) {
	source, id, ok := strings.Cut(member, ":")
	if !ok || source == "" || id == "" {
		return domain.Fingerprint{}, false
	}
	return domain.Fingerprint{Source: domain.SourceID(source), SourceID: id}, true
}
