package search

import (
	"fmt"
	"strings"

	domsearch "github.com/kailas-cloud/partpilot/internal/domain/search"
)

const promptHeader = `You are an expert automotive parts specialist with access to OEM parts catalogs from ACDelco, Mopar, Toyota/Lexus, Honda/Acura, Ford/Motorcraft, Nissan, BMW, and other manufacturers.

SEARCH REQUEST: %q
`

const promptBody = `
Search the real OEM catalogs and provide accurate, genuine part information.

Return a JSON object with this structure:
{
  "parts": [
    {
      "part_name": "Full descriptive part name",
      "oem_part_number": "Genuine OEM part number",
      "msrp_price": 49.99,
      "description": "Detailed description",
      "category": "Category (Brakes, Engine, Filters, etc.)",
      "manufacturer": "OEM brand (Motorcraft, ACDelco, Toyota Genuine, etc.)",
      "is_genuine_oem": true,
      "fitment_note": "Specific fitment notes",
      "supersession": {"new_part_number": "Replacement number if superseded", "reason": "Why it changed"},
      "purchase_links": [{"store": "RockAuto", "url": "https://www.rockauto.com/...", "price": 39.99}],
      "installation_steps": ["Safely lift and secure the vehicle on jack stands"],
      "torque_specs": [{"component": "Caliper bracket bolts", "ft_lbs": 85, "nm": 115}],
      "difficulty": "Easy | Medium | Hard",
      "estimated_time": "1-2 hours",
      "tools_needed": ["Torque wrench"]
    }
  ]
}

IMPORTANT:
- Use REAL OEM part numbers
- Include accurate MSRP prices
- Provide detailed installation steps with specific measurements
- Include torque specifications in both ft-lbs and Nm
- List all required tools
- Provide 3-6 relevant parts`

// BuildPrompt renders the lookup prompt for q. A complete vehicle adds a VEHICLE line.
func BuildPrompt(q domsearch.Query) string {
	var b strings.Builder
	fmt.Fprintf(&b, promptHeader, q.Text())
	if v := q.Vehicle(); v != nil {
		fmt.Fprintf(&b, "VEHICLE: %s\n", v.Describe())
	}
	b.WriteString(promptBody)
	return b.String()
}
