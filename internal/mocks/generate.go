// Package mocks holds gomock doubles for the client's interfaces.
//
// To regenerate after an interface change, run:
//
//	go generate ./internal/mocks
package mocks

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=backend_mock.go myhair/internal/session Backend
