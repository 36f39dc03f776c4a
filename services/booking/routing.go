package booking

import (
	"strings"

	"auditorium/config"
)

// EquipmentRouter maps requirement tags of an approved booking to the teams that
// prepare the equipment.
type EquipmentRouter struct {
	routes []config.EquipmentRoute
}

// NewEquipmentRouter normalises the configured routes. Routes without a
// recipient or without tags are dropped.
func NewEquipmentRouter(routes []config.EquipmentRoute) *EquipmentRouter {
	r := &EquipmentRouter{}
	for _, route := range routes {
		recipient := strings.TrimSpace(route.Recipient)
		if recipient == "" {
			continue
		}
		var tags []string
		for _, tag := range route.Tags {
			if t := normalizeTag(tag); t != "" {
				tags = append(tags, t)
			}
		}
		if len(tags) == 0 {
			continue
		}
		subject := route.Subject
		if subject == "" {
			subject = "Equipment Required for Approved Event"
		}
		r.routes = append(r.routes, config.EquipmentRoute{
			Name:      route.Name,
			Tags:      tags,
			Recipient: recipient,
			Subject:   subject,
		})
	}
	return r
}

// Match returns, in configuration order, every route that has at least one tag
// among the requirements. Each route appears at most once.
func (r *EquipmentRouter) Match(requirements []string) []config.EquipmentRoute {
	if len(requirements) == 0 {
		return nil
	}
	wanted := make(map[string]struct{}, len(requirements))
	for _, req := range requirements {
		wanted[normalizeTag(req)] = struct{}{}
	}

	var matched []config.EquipmentRoute
	for _, route := range r.routes {
		for _, tag := range route.Tags {
			if _, ok := wanted[tag]; ok {
				matched = append(matched, route)
				break
			}
		}
	}
	return matched
}

func normalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}
