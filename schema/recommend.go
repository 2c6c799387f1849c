package schema

// FieldMapping assigns schema fields to visual roles. Roles without a
// suitable field are simply absent; a present entry always names a real
// field from the source schema.
type FieldMapping map[VisualRole]string

// mappingRoleOrder fixes the display order of roles in formatted mappings.
var mappingRoleOrder = []VisualRole{
	RoleX, RoleY, RoleTime, RoleValue, RoleCategory, RoleColor, RoleSize, RoleGroup,
}

// FormatMapping renders a field mapping as "x:date, y:sales" with roles
// in a fixed display order.
func FormatMapping(m FieldMapping) string {
	if len(m) == 0 {
		return ""
	}
	var b []byte
	for _, role := range mappingRoleOrder {
		field, ok := m[role]
		if !ok {
			continue
		}
		if len(b) > 0 {
			b = append(b, ", "...)
		}
		b = append(b, string(role)...)
		b = append(b, ':')
		b = append(b, field...)
	}
	return string(b)
}

// RenderContext carries optional presentation context for the priority
// adjuster. Zero values mean "unspecified".
type RenderContext struct {
	Purpose  Purpose  `json:"purpose,omitempty"`
	Audience Audience `json:"audience,omitempty"`
	Emphasis Emphasis `json:"emphasis,omitempty"`
}

// ChartRecommendation is one scored chart proposal. Recommendations are
// produced fresh per scoring call; sequence order is significant.
type ChartRecommendation struct {
	ChartType        ChartType    `json:"chartType"`
	Confidence       float64      `json:"confidence"` // 0..1
	Reasoning        string       `json:"reasoning"`
	SuggestedMapping FieldMapping `json:"suggestedMapping"`
	Pros             []string     `json:"pros"`
	Cons             []string     `json:"cons"`
	BestFor          string       `json:"bestFor"`
	Priority         Priority     `json:"priority,omitempty"` // set by the context adjuster
}
