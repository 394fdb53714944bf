package gf2

import "errors"

// ErrNotInvertible is returned by Invert when a matrix has no inverse over
// GF(2). Sparse-banded and random-invertible generators absorb this
// internally by resampling; when their retry budget is exhausted they
// return ErrRetryBudgetExhausted instead.
var ErrNotInvertible = errors.New("gf2: matrix is not invertible")

// ErrRetryBudgetExhausted is returned by the random-invertible generators
// when 1000 consecutive rejection-sampling attempts all failed to find an
// invertible candidate. In practice this never triggers; it exists so a
// caller never spins forever on a broken RNG.
var ErrRetryBudgetExhausted = errors.New("gf2: exhausted retry budget sampling an invertible matrix")

// retryBudget bounds rejection sampling for random-invertible matrices, per
// spec's design note: "Cap the retry budget (e.g. 1000) and surface
// exhaustion as a fatal invariant violation — in practice it never
// triggers."
const retryBudget = 1000
