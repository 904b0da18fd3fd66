// Package service contains the business logic.
//
// It sits between the procedure/handler layer and the repositories: it
// receives validated data, performs business operations, keeps cache tags
// coherent on mutations, and enqueues background work.
package service
