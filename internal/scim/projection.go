package scim

import (
	"net/url"
	"strings"
)

// Projection is the per-request decision of which attributes to materialize
// in a response resource. It is built once per request and threaded into
// the mapping functions.
//
// The rule: an attribute is materialized iff the include set is empty
// (meaning "all attributes") or names it, and the exclude set does not.
// The id and userName attributes are the resource's primary key and are
// never subject to projection. Expensive relation attributes (a user's
// groups, a group's members) are materialized only on an explicit include,
// never by the all-attributes default, because they can cost an extra
// backend round trip per resource.
type Projection struct {
	include map[string]struct{}
	exclude map[string]struct{}

	// forced marks relation attributes an endpoint attaches regardless of
	// the request's attribute parameters. Kept separate from include so
	// that forcing one attribute does not collapse an empty include set's
	// all-attributes meaning.
	forced map[string]struct{}
}

// ProjectionFromQuery builds a Projection from the attributes and
// excludedAttributes query parameters. Comma-separated values and repeated
// parameters are equivalent: both ?attributes=a,b and ?attributes=a&attributes=b
// yield {a, b}.
func ProjectionFromQuery(query url.Values) Projection {
	return Projection{
		include: attrSet(query["attributes"]),
		exclude: attrSet(query["excludedAttributes"]),
	}
}

// NewProjection builds a Projection from explicit attribute lists. Empty
// included means all attributes.
func NewProjection(included, excluded []string) Projection {
	return Projection{
		include: attrSet(included),
		exclude: attrSet(excluded),
	}
}

// Has reports whether a regular attribute should be materialized.
func (p Projection) Has(attr string) bool {
	attr = strings.ToLower(attr)

	if _, excluded := p.exclude[attr]; excluded {
		return false
	}

	if _, ok := p.forced[attr]; ok {
		return true
	}

	if len(p.include) == 0 {
		return true
	}

	_, ok := p.include[attr]

	return ok
}

// Explicit reports whether an attribute was explicitly requested. Used for
// the relation attributes that never materialize by default.
func (p Projection) Explicit(attr string) bool {
	attr = strings.ToLower(attr)

	if _, excluded := p.exclude[attr]; excluded {
		return false
	}

	if _, ok := p.forced[attr]; ok {
		return true
	}

	_, ok := p.include[attr]

	return ok
}

// Including returns a copy with attrs forced on, for endpoints that attach
// a relation attribute unconditionally.
func (p Projection) Including(attrs ...string) Projection {
	forced := make(map[string]struct{}, len(p.forced)+len(attrs))
	for a := range p.forced {
		forced[a] = struct{}{}
	}

	for _, a := range attrs {
		forced[a] = struct{}{}
	}

	return Projection{include: p.include, exclude: p.exclude, forced: forced}
}

// recordAttrs are the attributes that live on the full per-user backend
// record, as opposed to the bare ID a list call returns.
var recordAttrs = []string{"displayname", "name", "active", "emails", "phonenumbers", "addresses"}

// NeedsUserRecord reports whether materializing this projection requires
// a per-user backend fetch, or whether the bare ID from a list call
// suffices.
func (p Projection) NeedsUserRecord() bool {
	if p.Explicit("groups") {
		return true
	}

	for _, attr := range recordAttrs {
		if p.Has(attr) {
			return true
		}
	}

	return false
}

// GroupsOnly reports whether group membership is the only attribute needed
// beyond the bare ID, so a list call can fetch just the membership instead
// of materializing the full record.
func (p Projection) GroupsOnly() bool {
	if !p.Explicit("groups") {
		return false
	}

	for _, attr := range recordAttrs {
		if p.Has(attr) {
			return false
		}
	}

	return true
}

func attrSet(values []string) map[string]struct{} {
	set := map[string]struct{}{}

	for _, v := range values {
		for _, attr := range strings.Split(v, ",") {
			attr = strings.ToLower(strings.TrimSpace(attr))
			if attr != "" {
				set[attr] = struct{}{}
			}
		}
	}

	return set
}
