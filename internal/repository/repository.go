// Package repository handles all interactions with PostgreSQL and Redis.
//
// It contains the raw SQL for the products table and the Redis
// cache used by the query side, abstracting storage details away
// from the service layer.
package repository
