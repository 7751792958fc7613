// Package cache 提供进程内 TTL 缓存
//
// 缓存只是读加速层：数据真相永远在存储后端，
// 整个缓存随时可以清空，代价仅是一次冷读。
package cache

import (
	"strings"
	"sync"
	"time"

	"z-novel-studio/pkg/metrics"
)

// DefaultTTL 默认缓存时长
const DefaultTTL = 5 * time.Minute

type entry struct {
	value    any
	storedAt time.Time
	ttl      time.Duration
}

func (e entry) expired(now time.Time) bool {
	return now.Sub(e.storedAt) > e.ttl
}

// Cache 进程内 TTL 缓存
type Cache struct {
	mu         sync.RWMutex
	entries    map[string]entry
	defaultTTL time.Duration

	stopSweep chan struct{}
	sweepOnce sync.Once
}

// New 创建缓存，defaultTTL <= 0 时使用 DefaultTTL
func New(defaultTTL time.Duration) *Cache {
	if defaultTTL <= 0 {
		defaultTTL = DefaultTTL
	}
	return &Cache{
		entries:    make(map[string]entry),
		defaultTTL: defaultTTL,
		stopSweep:  make(chan struct{}),
	}
}

// Get 获取缓存值；条目过期时就地逐出并报告未命中
func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		metrics.CacheMissesTotal.Inc()
		return nil, false
	}

	if e.expired(time.Now()) {
		c.mu.Lock()
		// 二次确认，避免逐出并发 Set 的新值
		if cur, still := c.entries[key]; still && cur.storedAt.Equal(e.storedAt) {
			delete(c.entries, key)
			metrics.CacheEvictionsTotal.WithLabelValues("expired").Inc()
		}
		c.mu.Unlock()

		metrics.CacheMissesTotal.Inc()
		return nil, false
	}

	metrics.CacheHitsTotal.Inc()
	return e.value, true
}

// Set 以默认 TTL 存入缓存
func (c *Cache) Set(key string, value any) {
	c.SetTTL(key, value, c.defaultTTL)
}

// SetTTL 以指定 TTL 存入缓存
func (c *Cache) SetTTL(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	c.mu.Lock()
	c.entries[key] = entry{
		value:    value,
		storedAt: time.Now(),
		ttl:      ttl,
	}
	metrics.CacheEntries.Set(float64(len(c.entries)))
	c.mu.Unlock()
}

// Delete 删除单个键
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	if _, ok := c.entries[key]; ok {
		delete(c.entries, key)
		metrics.CacheEvictionsTotal.WithLabelValues("invalidated").Inc()
	}
	metrics.CacheEntries.Set(float64(len(c.entries)))
	c.mu.Unlock()
}

// Invalidate 按子串模式失效
//
// 凡键名包含 pattern 的条目全部移除；
// 以项目 ID 为模式即可一次失效该项目的全部缓存。
func (c *Cache) Invalidate(pattern string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key := range c.entries {
		if strings.Contains(key, pattern) {
			delete(c.entries, key)
			removed++
		}
	}
	if removed > 0 {
		metrics.CacheEvictionsTotal.WithLabelValues("invalidated").Add(float64(removed))
	}
	metrics.CacheEntries.Set(float64(len(c.entries)))
	return removed
}

// Clear 清空全部缓存
func (c *Cache) Clear() {
	c.mu.Lock()
	n := len(c.entries)
	c.entries = make(map[string]entry)
	if n > 0 {
		metrics.CacheEvictionsTotal.WithLabelValues("cleared").Add(float64(n))
	}
	metrics.CacheEntries.Set(0)
	c.mu.Unlock()
}

// Len 返回当前条目数
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// StartSweeper 启动过期条目后台清理，重复调用只生效一次
func (c *Cache) StartSweeper(interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	c.sweepOnce.Do(func() {
		go c.sweep(interval)
	})
}

// StopSweeper 停止后台清理
func (c *Cache) StopSweeper() {
	select {
	case <-c.stopSweep:
	default:
		close(c.stopSweep)
	}
}

// sweep 周期性移除过期条目
func (c *Cache) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopSweep:
			return
		case <-ticker.C:
			now := time.Now()
			c.mu.Lock()
			removed := 0
			for key, e := range c.entries {
				if e.expired(now) {
					delete(c.entries, key)
					removed++
				}
			}
			if removed > 0 {
				metrics.CacheEvictionsTotal.WithLabelValues("expired").Add(float64(removed))
			}
			metrics.CacheEntries.Set(float64(len(c.entries)))
			c.mu.Unlock()
		}
	}
}
