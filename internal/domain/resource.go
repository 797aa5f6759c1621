package domain

import "strings"

type ResourceKind string

const (
	ResourcePrimary   ResourceKind = "coins"
	ResourceSecondary ResourceKind = "gems"
	ResourceTertiary  ResourceKind = "credits"
)

var resourceKinds = []ResourceKind{ResourcePrimary, ResourceSecondary, ResourceTertiary}

// ResourceKinds returns the closed set of kinds in display order.
func ResourceKinds() []ResourceKind {
	return append([]ResourceKind(nil), resourceKinds...)
}

func (k ResourceKind) IsValid() bool {
	switch k {
	case ResourcePrimary, ResourceSecondary, ResourceTertiary:
		return true
	}
	return false
}

func (k ResourceKind) DisplayName() string {
	switch k {
	case ResourcePrimary:
		return "Coins"
	case ResourceSecondary:
		return "Gems"
	case ResourceTertiary:
		return "Coaching Credits"
	default:
		return string(k)
	}
}

// ParseResourceKind accepts either the wire value or the display name.
func ParseResourceKind(s string) (ResourceKind, error) {
	s = strings.TrimSpace(s)
	for _, k := range resourceKinds {
		if strings.EqualFold(s, string(k)) || strings.EqualFold(s, k.DisplayName()) {
			return k, nil
		}
	}
	return "", ErrInvalidResource
}
