package extract

// Extraction is everything produced for one extracted fragment.
type Extraction struct {
	Name           string          `json:"name" yaml:"name"`
	Body           string          `json:"body" yaml:"body"`
	Unit           string          `json:"unit" yaml:"unit"`
	CallSite       string          `json:"call_site" yaml:"call_site"`
	Classification *Classification `json:"classification" yaml:"classification"`
	Rewrites       []Rewrite       `json:"rewrites" yaml:"rewrites"`
}

// Extract classifies fragment, names the unit after destination and
// synthesizes both the unit definition and the call site that replaces the
// selection. No I/O is performed.
func Extract(destination, fragment string, opts UnitOptions) (*Extraction, error) {
	name := DeriveName(destination)
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	result, err := ClassifyText(fragment)
	if err != nil {
		return nil, err
	}
	defer result.Close()

	body := result.Body()
	unit, err := SynthesizeUnit(name, body, result.Classification, opts)
	if err != nil {
		return nil, err
	}

	return &Extraction{
		Name:           name,
		Body:           body,
		Unit:           unit,
		CallSite:       SynthesizeCallSite(name, result.Classification),
		Classification: result.Classification,
		Rewrites:       result.Rewrites,
	}, nil
}
