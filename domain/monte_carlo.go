package domain

// Distribution summarises a sampled quantity.
type Distribution struct {
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
}

// MonteCarloResult summarises NPV and IRR over every trial of a seeded run.
type MonteCarloResult struct {
	Trials int          `json:"trials"`
	Seed   uint64       `json:"seed"`
	NPV    Distribution `json:"npv"`
	IRR    Distribution `json:"irr"`
}
