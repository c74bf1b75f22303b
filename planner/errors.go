package planner

import "github.com/pkg/errors"

// ErrNotFound means no obstacle-free route connects start and goal. It is not
// fatal: callers hold position and retry later.
var ErrNotFound = errors.New("no path found")

// ErrExpansionLimit is returned when the search gives up after the configured
// number of expansions. errors.Is(ErrExpansionLimit, ErrNotFound) holds, so
// callers treat it as any other unreachable goal.
var ErrExpansionLimit = errors.WithMessage(ErrNotFound, "search expansion limit reached")

// ErrInvalidPosition rejects a query whose start or goal is not a real position.
var ErrInvalidPosition = errors.New("invalid position")
