// Package affiliate tags purchase links with partner program IDs and
// aggregates click statistics.
package affiliate

import (
	"net/url"
	"strings"
	"time"

	"github.com/kailas-cloud/partpilot/internal/domain/optional"
	"github.com/kailas-cloud/partpilot/internal/domain/part"
)

// CommissionRate is the blended commission used for the estimate in Stats.
const CommissionRate = 0.075

// IDs are the partner program identifiers. Empty means not enrolled.
type IDs struct {
	Amazon      string
	EBay        string
	AutoZone    string
	AdvanceAuto string
	CarID       string
}

type program struct {
	host  string
	param string
	id    func(IDs) string
}

var programs = []program{
	{"amazon.com", "tag", func(i IDs) string { return i.Amazon }},
	{"ebay", "campid", func(i IDs) string { return i.EBay }},
	{"autozone.com", "affiliateid", func(i IDs) string { return i.AutoZone }},
	{"advanceautoparts.com", "affiliateid", func(i IDs) string { return i.AdvanceAuto }},
	{"carid.com", "affid", func(i IDs) string { return i.CarID }},
}

// Tag adds the partner parameter matching rawURL's host. URLs that do not parse,
// unknown stores and stores without a configured ID come back unchanged.
func (ids IDs) Tag(rawURL string) string {
	if rawURL == "" {
		return rawURL
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	host := strings.ToLower(u.Hostname())
	for _, p := range programs {
		if !strings.Contains(host, p.host) {
			continue
		}
		id := p.id(ids)
		if id == "" {
			return rawURL
		}
		q := u.Query()
		q.Set(p.param, id)
		u.RawQuery = q.Encode()
		return u.String()
	}
	return rawURL
}

// TagParts returns copies of parts with every purchase link tagged.
func (ids IDs) TagParts(parts []part.Part) []part.Part {
	out := make([]part.Part, len(parts))
	for i := range parts {
		out[i] = parts[i]
		if parts[i].PurchaseLinks == nil {
			continue
		}
		links := make([]part.PurchaseLink, len(parts[i].PurchaseLinks))
		for j, l := range parts[i].PurchaseLinks {
			l.URL = ids.Tag(l.URL)
			links[j] = l
		}
		out[i].PurchaseLinks = links
	}
	return out
}

// Click is one followed purchase link.
type Click struct {
	Timestamp time.Time               `json:"timestamp"`
	Store     string                  `json:"store"`
	Part      string                  `json:"part"`
	Price     optional.Value[float64] `json:"price,omitzero"`
}

// StoreStats is the per-store aggregate.
type StoreStats struct {
	Clicks int     `json:"clicks"`
	Value  float64 `json:"value"`
}

// Stats aggregates a click log.
type Stats struct {
	TotalClicks         int                   `json:"total_clicks"`
	ByStore             map[string]StoreStats `json:"by_store"`
	TotalPotentialValue float64               `json:"total_potential_value"`
	EstimatedCommission float64               `json:"estimated_commission"`
}

// Aggregate computes Stats. Clicks without a price add no value.
func Aggregate(clicks []Click) Stats {
	s := Stats{TotalClicks: len(clicks), ByStore: make(map[string]StoreStats)}
	for _, c := range clicks {
		price := c.Price.OrElse(0)
		st := s.ByStore[c.Store]
		st.Clicks++
		st.Value = part.RoundCents(st.Value + price)
		s.ByStore[c.Store] = st
		s.TotalPotentialValue += price
	}
	s.TotalPotentialValue = part.RoundCents(s.TotalPotentialValue)
	s.EstimatedCommission = part.RoundCents(s.TotalPotentialValue * CommissionRate)
	return s
}
