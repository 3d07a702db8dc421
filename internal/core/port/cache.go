package port

import "cordial/internal/core/domain"

// EntityCache is the read-only boundary to the long-lived object cache.
// Lookups never fetch remotely; a miss returns false.
type EntityCache interface {
	Channel(id string) (*domain.Channel, bool)
	Guild(id string) (*domain.Guild, bool)
	User(id string) (*domain.User, bool)
	Member(guildID, id string) (*domain.Member, bool)
}
