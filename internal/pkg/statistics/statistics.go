// Package statistics computes the headline numbers for the start page
// and the editor dashboard, cached in Redis so list pages never pay for
// the counts.
package statistics

import (
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/pressroom/newshub/app/models"
	"github.com/pressroom/newshub/internal/pkg/cache"
	"github.com/pressroom/newshub/internal/pkg/database"
)

const (
	CacheKeyArticlesTotal = "statistics:articles:total"
	CacheKeyArticlesDaily = "statistics:articles:daily:%s" // Format with date YYYY-MM-DD
	CacheKeyUsers         = "statistics:users:total"
	CacheKeyComments      = "statistics:comments:total"
	CacheExpiration       = 30 * time.Minute
)

// StatisticsData holds the numbers shown on the start page.
type StatisticsData struct {
	TodayArticles int
	TotalUsers    int
	TotalArticles int
	TotalComments int
}

var (
	lastCacheUpdate     time.Time
	cacheUpdateMutex    sync.Mutex
	cacheUpdateInterval = 5 * time.Minute
)

// ShouldUpdateCache reports whether the cached numbers are stale.
func ShouldUpdateCache() bool {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	return time.Since(lastCacheUpdate) > cacheUpdateInterval
}

// UpdateCacheIfNeeded refreshes the cache when the interval has passed.
func UpdateCacheIfNeeded() {
	if ShouldUpdateCache() {
		cacheUpdateMutex.Lock()
		defer cacheUpdateMutex.Unlock()

		if err := UpdateStatisticsCache(); err != nil {
			log.Printf("Error updating statistics cache: %v", err)
		} else {
			lastCacheUpdate = time.Now()
		}
	}
}

// ResetCacheUpdateTimer forces the next check to refresh.
func ResetCacheUpdateTimer() {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	lastCacheUpdate = time.Time{}
}

// builder composes the count queries with MySQL placeholders.
var builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

func countQuery(q sq.SelectBuilder) (int64, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return 0, err
	}
	var count int64
	if err := database.GetDB().Raw(sql, args...).Scan(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// UpdateStatisticsCache recomputes all statistics and stores them in Redis.
func UpdateStatisticsCache() error {
	totalArticles, err := countQuery(builder.
		Select("COUNT(*)").From("articles").
		Where(sq.Eq{"status": models.STATUS_PUBLISHED}).
		Where(sq.Eq{"deleted_at": nil}))
	if err != nil {
		log.Printf("Error counting published articles: %v", err)
		return err
	}

	today := time.Now().Format("2006-01-02")
	todayArticles, err := countQuery(builder.
		Select("COUNT(*)").From("articles").
		Where(sq.Eq{"status": models.STATUS_PUBLISHED}).
		Where(sq.Eq{"deleted_at": nil}).
		Where(sq.Expr("DATE(published_at) = ?", today)))
	if err != nil {
		log.Printf("Error counting today's articles: %v", err)
		return err
	}

	totalUsers, err := countQuery(builder.
		Select("COUNT(*)").From("users").
		Where(sq.Eq{"deleted_at": nil}))
	if err != nil {
		log.Printf("Error counting users: %v", err)
		return err
	}

	totalComments, err := countQuery(builder.
		Select("COUNT(*)").From("comments"))
	if err != nil {
		log.Printf("Error counting comments: %v", err)
		return err
	}

	if err := cache.Set(CacheKeyArticlesTotal, strconv.FormatInt(totalArticles, 10), CacheExpiration); err != nil {
		return err
	}
	dailyKey := fmt.Sprintf(CacheKeyArticlesDaily, today)
	if err := cache.Set(dailyKey, strconv.FormatInt(todayArticles, 10), CacheExpiration); err != nil {
		return err
	}
	if err := cache.Set(CacheKeyUsers, strconv.FormatInt(totalUsers, 10), CacheExpiration); err != nil {
		return err
	}
	if err := cache.Set(CacheKeyComments, strconv.FormatInt(totalComments, 10), CacheExpiration); err != nil {
		return err
	}

	return nil
}

// GetStatistics returns the cached numbers, refreshing the cache when a
// key is missing.
func GetStatistics() StatisticsData {
	data := StatisticsData{}

	totalArticles, err := cache.GetInt(CacheKeyArticlesTotal)
	if err != nil {
		if err := UpdateStatisticsCache(); err != nil {
			return data
		}
		totalArticles, _ = cache.GetInt(CacheKeyArticlesTotal)
	}
	data.TotalArticles = totalArticles

	dailyKey := fmt.Sprintf(CacheKeyArticlesDaily, time.Now().Format("2006-01-02"))
	data.TodayArticles, _ = cache.GetInt(dailyKey)
	data.TotalUsers, _ = cache.GetInt(CacheKeyUsers)
	data.TotalComments, _ = cache.GetInt(CacheKeyComments)

	return data
}
