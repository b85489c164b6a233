//go:build integration

package rediscache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"stripelog/internal/eventlog"
	"stripelog/internal/eventlog/store/memory"
	"stripelog/internal/eventlog/store/rediscache"
	"stripelog/pkg/testutil/containers"
)

type RedisCacheSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	inner *memory.Store
	cache *rediscache.Cache
}

func TestRedisCacheSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisCacheSuite))
}

func (s *RedisCacheSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.redis = mgr.GetRedis(s.T())
}

func (s *RedisCacheSuite) SetupTest() {
	ctx := context.Background()
	s.Require().NoError(s.redis.FlushAll(ctx))
	s.inner = memory.New()
	s.cache = rediscache.New(s.inner, s.redis.Client, time.Minute, nil)
}

func cacheRecord(id, email string, ts time.Time) eventlog.Record {
	return eventlog.Record{
		ID:                 id,
		EventType:          "charge.succeeded",
		Email:              email,
		EventDatetime:      ts,
		EventUnixTimestamp: ts.Unix(),
	}
}

func (s *RedisCacheSuite) TestRepeatedLookupServedFromCache() {
	ctx := context.Background()
	t0 := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	s.Require().NoError(s.cache.Append(ctx, cacheRecord("evt_1", "a@example.com", t0)))

	first, err := s.cache.LookupByEmail(ctx, "a@example.com")
	s.Require().NoError(err)
	s.Require().Len(first, 1)

	// Write to the inner store behind the cache's back: the cached entry
	// keeps serving until an Append through the cache invalidates it.
	s.Require().NoError(s.inner.Append(ctx, cacheRecord("evt_2", "a@example.com", t0.Add(time.Hour))))

	second, err := s.cache.LookupByEmail(ctx, "a@example.com")
	s.Require().NoError(err)
	s.Len(second, 1, "stale entry should still be served from cache")
	s.Equal(first, second)
}

func (s *RedisCacheSuite) TestAppendInvalidatesCachedLookups() {
	ctx := context.Background()
	t0 := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	s.Require().NoError(s.cache.Append(ctx, cacheRecord("evt_1", "a@example.com", t0)))

	warm, err := s.cache.LookupByEmail(ctx, "a@example.com")
	s.Require().NoError(err)
	s.Require().Len(warm, 1)

	s.Require().NoError(s.cache.Append(ctx, cacheRecord("evt_2", "a@example.com", t0.Add(time.Hour))))

	fresh, err := s.cache.LookupByEmail(ctx, "a@example.com")
	s.Require().NoError(err)
	s.Require().Len(fresh, 2)
	s.Equal("evt_1", fresh[0].ID)
	s.Equal("evt_2", fresh[1].ID)
}

func (s *RedisCacheSuite) TestLookupByTypeAndRangeGoThroughCache() {
	ctx := context.Background()
	t0 := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	s.Require().NoError(s.cache.Append(ctx, cacheRecord("evt_1", "a@example.com", t0)))

	byType, err := s.cache.LookupByType(ctx, "charge.succeeded")
	s.Require().NoError(err)
	s.Len(byType, 1)

	again, err := s.cache.LookupByType(ctx, "charge.succeeded")
	s.Require().NoError(err)
	s.Equal(byType, again)

	inRange, err := s.cache.LookupByTimeRange(ctx, t0.Add(-time.Minute), t0.Add(time.Minute))
	s.Require().NoError(err)
	s.Len(inRange, 1)
}

func (s *RedisCacheSuite) TestConflictPropagatesThroughCache() {
	ctx := context.Background()
	t0 := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	s.Require().NoError(s.cache.Append(ctx, cacheRecord("evt_1", "a@example.com", t0)))
	err := s.cache.Append(ctx, cacheRecord("evt_1", "b@example.com", t0))
	s.Error(err)
}
