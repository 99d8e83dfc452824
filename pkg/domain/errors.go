package domain

import "errors"

// ErrInvalidGraph is returned when a graph configuration fails validation.
var ErrInvalidGraph = errors.New("invalid graph")

// ErrReservedEvent is returned when a configuration declares the override key.
var ErrReservedEvent = errors.New("reserved event key")

// ErrUnknownState is returned when a state identifier is not declared in the graph.
var ErrUnknownState = errors.New("unknown state")

// ErrSessionNotFound is returned when a session ID cannot be found in the registry.
var ErrSessionNotFound = errors.New("session not found")

// ErrSessionExists is returned when a session ID is already registered.
var ErrSessionExists = errors.New("session already exists")
