package countries

import (
	"math"
	"strings"

	"github.com/Makepad-fr/atlas/internal/model"
)

// Normalize converts raw provider entries into countries.
// Entries that are not JSON objects are skipped.
func Normalize(raw []any) []model.Country {
	out := make([]model.Country, 0, len(raw))
	for _, entry := range raw {
		data, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, normalizeOne(data))
	}
	return out
}

func normalizeOne(data map[string]any) model.Country {
	c := model.Country{
		Name:    model.UnknownName,
		Region:  model.UnknownRegion,
		Capital: model.UnknownCapital,
		Flag:    model.PlaceholderFlag,
	}

	if name, ok := data["name"].(map[string]any); ok {
		if common := str(name["common"]); common != "" {
			c.Name = common
		}
	}

	// JSON numbers decode as float64; non-numbers and non-positive values stay 0
	if p, ok := data["population"].(float64); ok && p > 0 {
		if p >= math.MaxInt64 {
			c.Population = math.MaxInt64
		} else {
			c.Population = int64(p)
		}
	}

	if r := str(data["region"]); r != "" {
		c.Region = r
	}

	switch capital := data["capital"].(type) {
	case []any:
		if len(capital) > 0 {
			if s := str(capital[0]); s != "" {
				c.Capital = s
			}
		}
	case string:
		if capital != "" {
			c.Capital = capital
		}
	}

	if flags, ok := data["flags"].(map[string]any); ok {
		if svg := str(flags["svg"]); svg != "" {
			c.Flag = svg
		} else if png := str(flags["png"]); png != "" {
			c.Flag = png
		}
	}

	c.Code = strings.ToLower(str(data["cca2"]))
	return c
}

func str(v any) string {
	s, _ := v.(string)
	return s
}
