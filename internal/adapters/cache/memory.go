package cache

import (
	"sync"

	"cordial/internal/core/domain"
)

type memberKey struct {
	guildID string
	userID  string
}

// MemoryCache is an in-process entity cache seeded out of band, typically
// from gateway state events. Lookups never fetch remotely.
type MemoryCache struct {
	mu       sync.RWMutex
	channels map[string]*domain.Channel
	guilds   map[string]*domain.Guild
	users    map[string]*domain.User
	members  map[memberKey]*domain.Member
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		channels: make(map[string]*domain.Channel),
		guilds:   make(map[string]*domain.Guild),
		users:    make(map[string]*domain.User),
		members:  make(map[memberKey]*domain.Member),
	}
}

func (c *MemoryCache) PutChannel(ch *domain.Channel) {
	c.mu.Lock()
	c.channels[ch.ID] = ch
	c.mu.Unlock()
}

func (c *MemoryCache) PutGuild(g *domain.Guild) {
	c.mu.Lock()
	c.guilds[g.ID] = g
	c.mu.Unlock()
}

func (c *MemoryCache) PutUser(u *domain.User) {
	c.mu.Lock()
	c.users[u.ID] = u
	c.mu.Unlock()
}

func (c *MemoryCache) PutMember(m *domain.Member) {
	c.mu.Lock()
	c.members[memberKey{m.GuildID, m.ID()}] = m
	c.mu.Unlock()
}

func (c *MemoryCache) Channel(id string) (*domain.Channel, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ch, ok := c.channels[id]
	return ch, ok
}

func (c *MemoryCache) Guild(id string) (*domain.Guild, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	g, ok := c.guilds[id]
	return g, ok
}

func (c *MemoryCache) User(id string) (*domain.User, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	u, ok := c.users[id]
	return u, ok
}

func (c *MemoryCache) Member(guildID, id string) (*domain.Member, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m, ok := c.members[memberKey{guildID, id}]
	return m, ok
}
