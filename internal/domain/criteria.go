package domain

// SearchOptions drive every threshold in the chain search. Zero values are
// replaced by defaults during normalization, not at use sites.
type SearchOptions struct {
	MaxOriginDeadheadMiles      float64
	MaxDestinationDeadheadMiles float64
	MaxRoutes                   int
	MinRevenue                  float64
	MaxDeadheadRatio            float64
	MaxChainLength              int
}

func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		MaxOriginDeadheadMiles:      100,
		MaxDestinationDeadheadMiles: 100,
		MaxRoutes:                   200,
		MinRevenue:                  0,
		MaxDeadheadRatio:            0.6,
		MaxChainLength:              5,
	}
}

// SearchCriteria is the read-only input for one search invocation.
// Destination is optional; without it the search still enumerates chains but
// skips destination-proximity pruning and annotation distances.
type SearchCriteria struct {
	Origin      Location
	Destination *Location
	Options     SearchOptions
}

// Normalize fills unset options with defaults. The destination deadhead
// tolerance defaults to the origin value when not supplied.
func (c SearchCriteria) Normalize() SearchCriteria {
	def := DefaultSearchOptions()
	opts := c.Options

	if opts.MaxOriginDeadheadMiles <= 0 {
		opts.MaxOriginDeadheadMiles = def.MaxOriginDeadheadMiles
	}
	if opts.MaxDestinationDeadheadMiles <= 0 {
		opts.MaxDestinationDeadheadMiles = opts.MaxOriginDeadheadMiles
	}
	if opts.MaxRoutes <= 0 {
		opts.MaxRoutes = def.MaxRoutes
	}
	if opts.MinRevenue < 0 {
		opts.MinRevenue = 0
	}
	if opts.MaxDeadheadRatio <= 0 {
		opts.MaxDeadheadRatio = def.MaxDeadheadRatio
	}
	if opts.MaxChainLength <= 0 {
		opts.MaxChainLength = def.MaxChainLength
	}

	c.Options = opts
	return c
}
