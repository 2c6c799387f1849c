package core

import "github.com/plotsense/plotsense/schema"

// SuggestMapping deterministically assigns schema fields to visual roles
// for a chart type. A role is only assigned when a field of the right
// type exists; absent roles are omitted rather than mapped to a
// placeholder. Calling twice with the same input yields the same
// mapping.
func SuggestMapping(ct schema.ChartType, s *schema.DataSchema) schema.FieldMapping {
	numeric := s.FieldsOfType(schema.NumericType)
	categorical := s.FieldsOfType(schema.CategoricalType)
	datetime := s.FieldsOfType(schema.DatetimeType)

	m := schema.FieldMapping{}
	assign := func(role schema.VisualRole, fields []schema.FieldSchema, idx int) {
		if idx < len(fields) {
			m[role] = fields[idx].Name
		}
	}

	switch ct {
	case schema.BarChart:
		assign(schema.RoleX, categorical, 0)
		assign(schema.RoleY, numeric, 0)
		assign(schema.RoleColor, categorical, 1)

	case schema.LineChart, schema.AreaChart:
		if len(datetime) > 0 {
			assign(schema.RoleX, datetime, 0)
			assign(schema.RoleY, numeric, 0)
		} else {
			// No datetime axis: fall back to numeric vs numeric, keeping
			// y distinct from x when a second numeric field exists.
			assign(schema.RoleX, numeric, 0)
			if len(numeric) > 1 {
				assign(schema.RoleY, numeric, 1)
			} else {
				assign(schema.RoleY, numeric, 0)
			}
		}
		assign(schema.RoleColor, categorical, 0)

	case schema.PieChart, schema.TreemapChart:
		assign(schema.RoleCategory, categorical, 0)
		assign(schema.RoleValue, numeric, 0)

	case schema.ScatterChart, schema.BubbleChart:
		assign(schema.RoleX, numeric, 0)
		assign(schema.RoleY, numeric, 1)
		assign(schema.RoleColor, categorical, 0)
		assign(schema.RoleSize, numeric, 2)

	case schema.HistogramChart:
		assign(schema.RoleX, numeric, 0)
		assign(schema.RoleGroup, categorical, 0)

	case schema.BoxplotChart:
		assign(schema.RoleY, numeric, 0)
		assign(schema.RoleX, categorical, 0)

	case schema.HeatmapChart:
		assign(schema.RoleX, categorical, 0)
		assign(schema.RoleY, categorical, 1)
		assign(schema.RoleValue, numeric, 0)

	case schema.RadarChart:
		assign(schema.RoleCategory, categorical, 0)
		assign(schema.RoleValue, numeric, 0)
	}

	// Time-capable charts surface the datetime field under the time role
	// as well so interactive consumers can pre-populate range controls.
	if profile, ok := schema.ChartProfiles[ct]; ok && profile.TimeSeries {
		assign(schema.RoleTime, datetime, 0)
	}

	return m
}
