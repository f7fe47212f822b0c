package domain

type RateSource string

const (
	SourceIdentity  RateSource = "identity"
	SourcePrimary   RateSource = "primary"
	SourceSecondary RateSource = "secondary"
	SourceOffline   RateSource = "offline"
)

// Rate means "1 unit of Base = Value units of Quote".
type Rate struct {
	Base   CurrencyCode
	Quote  CurrencyCode
	Value  float64
	Source RateSource
}

func (r Rate) Pair() RatePair {
	return RatePair{Base: r.Base, Quote: r.Quote}
}

type RatePair struct {
	Base  CurrencyCode
	Quote CurrencyCode
}

func (p RatePair) Reversed() RatePair {
	return RatePair{
		Base:  p.Quote,
		Quote: p.Base,
	}
}

func (p RatePair) IsIdentity() bool {
	return p.Base == p.Quote
}

func (p RatePair) String() string {
	return string(p.Base) + "/" + string(p.Quote)
}
