// Package topic validates MQTT topic names and filters.
//
// Topic names (PUBLISH topics, will topics) must not contain wildcards;
// topic filters (SUBSCRIBE) may, subject to the placement rules of MQTT
// 3.1.1 and 5.0 Section 4.7. Wildcard matching itself is out of scope
// here and stays with whatever routes messages.
package topic

import (
	"strings"

	"github.com/bromq-dev/mqttkit/pkg/property"
)

const (
	// Separator is the topic level separator.
	Separator = '/'

	// MultiWildcard matches any number of levels (must be last).
	MultiWildcard = '#'

	// SingleWildcard matches exactly one level.
	SingleWildcard = '+'

	// SharePrefix starts a shared subscription filter.
	SharePrefix = "$share/"
)

// ValidateName validates a topic name for use in PUBLISH packets and
// will messages. Names must be valid MQTT UTF-8, fit a 2-byte length
// prefix, and contain no wildcards.
func ValidateName(name string) error {
	if name == "" {
		return ErrEmptyTopic
	}
	if len(name) > property.MaxBytes {
		return ErrTopicTooLong
	}
	if err := property.ValidateUTF8(name); err != nil {
		return err
	}
	if HasWildcard(name) {
		return ErrWildcardInName
	}
	return nil
}

// ValidateFilter validates a topic filter for use in SUBSCRIBE packets.
// Wildcards are allowed, but # must occupy the last level alone and +
// must occupy its level alone. Shared subscription filters
// ($share/{name}/{filter}) are validated as a whole.
func ValidateFilter(filter string) error {
	if filter == "" {
		return ErrEmptyTopic
	}
	if len(filter) > property.MaxBytes {
		return ErrTopicTooLong
	}
	if err := property.ValidateUTF8(filter); err != nil {
		return err
	}

	// The share name is not part of the subscribed filter
	if strings.HasPrefix(filter, SharePrefix) {
		share, rest, ok := IsShared(filter)
		if !ok || HasWildcard(share) {
			return ErrInvalidShareName
		}
		filter = rest
	}

	levels := strings.Split(filter, string(Separator))
	for i, level := range levels {
		switch {
		case strings.ContainsRune(level, MultiWildcard):
			if level != string(MultiWildcard) || i != len(levels)-1 {
				return ErrInvalidMultiWildcard
			}
		case strings.ContainsRune(level, SingleWildcard):
			if level != string(SingleWildcard) {
				return ErrInvalidSingleWildcard
			}
		}
	}
	return nil
}

// IsShared reports whether a filter is a shared subscription
// ($share/{name}/{filter}) and returns its parts if so.
func IsShared(filter string) (shareName, actualFilter string, ok bool) {
	rest, found := strings.CutPrefix(filter, SharePrefix)
	if !found {
		return "", "", false
	}
	shareName, actualFilter, found = strings.Cut(rest, string(Separator))
	if !found || shareName == "" || actualFilter == "" {
		return "", "", false
	}
	return shareName, actualFilter, true
}

// HasWildcard reports whether the filter contains any wildcard characters.
func HasWildcard(filter string) bool {
	return strings.ContainsAny(filter, string(MultiWildcard)+string(SingleWildcard))
}

// Levels splits a topic into its constituent levels.
func Levels(topic string) []string {
	return strings.Split(topic, string(Separator))
}
