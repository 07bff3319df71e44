package service

import (
	"github.com/deppfellow/go-catalog/internal/repository"
	"github.com/deppfellow/go-catalog/internal/server"
)

// Services groups the capabilities handed to the HTTP layer.
type Services struct {
	Queries  Queries
	Commands Commands
}

func NewServices(s *server.Server, repos *repository.Repositories) *Services {
	return &Services{
		Queries:  NewProductQueries(repos.Products, repos.ProductCache, s.Logger),
		Commands: NewProductCommands(repos.Products, repos.ProductCache, s.Job, s.Logger),
	}
}
