package repository

import (
	"github.com/deppfellow/go-catalog/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Products     *ProductRepository
	ProductCache *ProductCache
}

// NewRepositories constructs the repository container from the shared
// database pool and redis client.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Products:     NewProductRepository(s.DB.Pool),
		ProductCache: NewProductCache(s.Redis, s.Config.Cache.TTL),
	}
}
