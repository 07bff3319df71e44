package handler

import (
	"github.com/deppfellow/go-catalog/internal/server"
	"github.com/deppfellow/go-catalog/internal/service"
)

// Handlers groups all HTTP handlers so the router receives a single value.
type Handlers struct {
	Health  *HealthHandler
	Query   *QueryHandler
	Command *CommandHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		Query:   NewQueryHandler(services.Queries),
		Command: NewCommandHandler(services.Commands),
	}
}
