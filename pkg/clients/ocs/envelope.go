package ocs

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/clbanning/mxj/v2"

	"github.com/Mase3206/nextcloud-scim-connector/pkg/utils/errs"
)

var (
	ErrMalformedXML = errors.New("response is not well-formed XML")
	ErrNoEnvelope   = errors.New("response has no ocs envelope")
)

// elementKey is the wrapper tag the provisioning API uses for every item of
// a multi-valued field, e.g. <groups><element>admin</element></groups>.
const elementKey = "element"

// Envelope is the decoded {meta, data} pair of one OCS response. Data is a
// generic value tree: maps, slices, and strings, with all element wrappers
// already collapsed.
type Envelope struct {
	Meta         map[string]string
	Data         any
	TotalItems   int
	ItemsPerPage int
}

// StatusCode returns the backend's own numeric status, 0 when absent.
func (e *Envelope) StatusCode() int {
	code, _ := strconv.Atoi(e.Meta["statuscode"])
	return code
}

func decodeEnvelope(raw []byte) (*Envelope, error) {
	tree, err := mxj.NewMapXml(raw)
	if err != nil {
		return nil, errs.Wrap(ErrMalformedXML, err)
	}

	root, ok := tree["ocs"].(map[string]any)
	if !ok {
		return nil, ErrNoEnvelope
	}

	env := &Envelope{
		Meta: metaStrings(root["meta"]),
		Data: unwrapElements(root["data"]),
	}

	env.TotalItems, _ = strconv.Atoi(env.Meta["totalitems"])
	env.ItemsPerPage, _ = strconv.Atoi(env.Meta["itemsperpage"])

	return env, nil
}

// unwrapElements normalizes the shapes XML-to-map conversion produces for
// collections: a map whose only key is the element wrapper is replaced by
// the wrapped value, other maps and lists are unwrapped member-wise, and
// scalars pass through. Applying it to an already-unwrapped tree is a no-op.
func unwrapElements(v any) any {
	switch node := v.(type) {
	case map[string]any:
		if inner, ok := node[elementKey]; ok && len(node) == 1 {
			return unwrapElements(inner)
		}

		out := make(map[string]any, len(node))
		for k, child := range node {
			out[k] = unwrapElements(child)
		}

		return out
	case []any:
		out := make([]any, len(node))
		for i, item := range node {
			out[i] = unwrapElements(item)
		}

		return out
	default:
		return v
	}
}

func metaStrings(v any) map[string]string {
	meta := map[string]string{}

	m, ok := v.(map[string]any)
	if !ok {
		return meta
	}

	for k, val := range m {
		switch s := val.(type) {
		case string:
			meta[k] = s
		case nil:
			meta[k] = ""
		default:
			meta[k] = fmt.Sprint(s)
		}
	}

	return meta
}
