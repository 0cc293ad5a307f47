package memoryengine

import (
	"slices"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/ltu-library/eventstore"
)

// matches reports whether the event is selected by the filter.
// Items are OR'ed, an empty filter selects every event.
func matches(filter eventstore.Filter, event eventstore.StorableEvent) bool {
	if filter.IsEmpty() {
		return true
	}

	for _, item := range filter.Items() {
		if itemMatches(item, event) {
			return true
		}
	}

	return false
}

func itemMatches(item eventstore.FilterItem, event eventstore.StorableEvent) bool {
	if len(item.EventTypes()) > 0 && !slices.Contains(item.EventTypes(), event.EventType) {
		return false
	}

	if len(item.Predicates()) == 0 {
		return true
	}

	if item.AllPredicatesMustMatch() {
		for _, predicate := range item.Predicates() {
			if !predicateMatches(predicate, event.PayloadJSON) {
				return false
			}
		}

		return true
	}

	for _, predicate := range item.Predicates() {
		if predicateMatches(predicate, event.PayloadJSON) {
			return true
		}
	}

	return false
}

// predicateMatches compares the top-level payload value at the predicate key with the predicate value.
// Numbers are compared by their JSON text, so P("BookID", "1234") matches {"BookID": 1234}.
func predicateMatches(predicate eventstore.FilterPredicate, payloadJSON []byte) bool {
	value := jsoniter.ConfigFastest.Get(payloadJSON, predicate.Key())
	if value.LastError() != nil {
		return false
	}

	switch value.ValueType() {
	case jsoniter.StringValue, jsoniter.NumberValue, jsoniter.BoolValue:
		return value.ToString() == predicate.Val()
	default:
		return false
	}
}
